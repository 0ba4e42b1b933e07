package elevation

import "time"

// Grant is a short-lived secondary credential required for catalog writes.
// It lives only in process memory; a restart drops every grant by design.
type Grant struct {
	Token     string
	ExpiresAt time.Time
}

// Valid reports whether the grant is usable at the given instant. A grant
// is dead at its expiry instant, not after it.
func (g Grant) Valid(now time.Time) bool {
	return g.Token != "" && now.Before(g.ExpiresAt)
}
