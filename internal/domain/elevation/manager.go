package elevation

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	idgen "github.com/pitwall/fantasy-gp/internal/platform/id"
)

var (
	ErrInvalidKey        = errors.New("invalid elevation key")
	ErrNotElevated       = errors.New("elevation is required")
	ErrElevationExpired  = errors.New("elevation has expired")
	ErrElevationMismatch = errors.New("elevation token does not match the active grant")
)

// DefaultTTL is the grant lifetime when none is configured.
const DefaultTTL = 15 * time.Minute

// Manager owns the elevation-grant lifecycle: issue against a shared
// operator key, validate per request, revoke early, and sweep expired
// grants in the background. Every check consults the wall clock itself;
// the periodic sweep only reclaims memory and surfaces expiry notices.
type Manager struct {
	mu     sync.Mutex
	grants map[string]Grant
	key    string
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(key string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Manager{
		grants: make(map[string]Grant),
		key:    key,
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewManagerWithClock is NewManager with an injected clock.
func NewManagerWithClock(key string, ttl time.Duration, now func() time.Time) *Manager {
	m := NewManager(key, ttl)
	if now != nil {
		m.now = now
	}
	return m
}

// Issue verifies the presented key and stores a fresh grant for the user,
// replacing any prior grant. Issue never extends an existing grant in place.
func (m *Manager) Issue(userID, key string) (Grant, error) {
	if userID == "" {
		return Grant{}, fmt.Errorf("user id is required")
	}
	if m.key == "" {
		return Grant{}, fmt.Errorf("elevation key is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(m.key)) != 1 {
		return Grant{}, ErrInvalidKey
	}

	token, err := idgen.NewToken()
	if err != nil {
		return Grant{}, fmt.Errorf("generate elevation token: %w", err)
	}

	grant := Grant{
		Token:     token,
		ExpiresAt: m.now().Add(m.ttl),
	}

	m.mu.Lock()
	m.grants[userID] = grant
	m.mu.Unlock()

	return grant, nil
}

// IsElevated checks the clock directly, never only the sweep.
func (m *Manager) IsElevated(userID string) bool {
	m.mu.Lock()
	grant, ok := m.grants[userID]
	m.mu.Unlock()

	return ok && grant.Valid(m.now())
}

// Require returns the live grant or the reason elevation is unavailable.
// An expired grant is cleared immediately, same as an explicit revoke.
func (m *Manager) Require(userID string) (Grant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	grant, ok := m.grants[userID]
	if !ok {
		return Grant{}, ErrNotElevated
	}
	if !grant.Valid(m.now()) {
		delete(m.grants, userID)
		return Grant{}, ErrElevationExpired
	}

	return grant, nil
}

// Validate checks a presented token against the user's active grant. Used
// by transport middleware so a mid-flight expiry still denies the request.
func (m *Manager) Validate(userID, token string) error {
	grant, err := m.Require(userID)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(grant.Token)) != 1 {
		return ErrElevationMismatch
	}

	return nil
}

func (m *Manager) Revoke(userID string) {
	m.mu.Lock()
	delete(m.grants, userID)
	m.mu.Unlock()
}

// Sweep removes grants already past expiry and returns the affected users
// so callers can surface an "elevation expired" notice.
func (m *Manager) Sweep() []string {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	var expired []string
	for userID, grant := range m.grants {
		if !grant.Valid(now) {
			delete(m.grants, userID)
			expired = append(expired, userID)
		}
	}

	return expired
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}
