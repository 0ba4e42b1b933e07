package roster

import (
	"fmt"
	"sync"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	"github.com/pitwall/fantasy-gp/internal/domain/race"
)

// Selection is the in-progress candidate roster for one (participant, race)
// pair. All mutation goes through its methods, which re-run the incremental
// guard and the eligibility gate; callers never touch the pick slice
// directly. A lock or passed deadline blocks removal as well as addition,
// since the backend would reject the eventual save anyway.
type Selection struct {
	mu       sync.Mutex
	userID   string
	raceID   string
	budget   int64
	rules    Rules
	picks    []Pick
	rosterID string
}

func NewSelection(userID, raceID string, budget int64, rules Rules) *Selection {
	return &Selection{
		userID: userID,
		raceID: raceID,
		budget: budget,
		rules:  rules,
	}
}

func (s *Selection) UserID() string { return s.userID }
func (s *Selection) RaceID() string { return s.raceID }

func (s *Selection) Add(d driver.Driver, elig race.Eligibility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !elig.CanSubmit {
		return fmt.Errorf("%w: %s", ErrRaceNotOpen, elig.Reason)
	}
	if err := CanAdd(s.picks, d, s.budget, s.rules); err != nil {
		return err
	}

	s.picks = append(s.picks, Pick{
		DriverID:   d.ID,
		Value:      d.Value,
		Categories: append([]driver.Category(nil), d.Categories...),
	})

	return nil
}

func (s *Selection) Remove(driverID string, elig race.Eligibility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !elig.CanSubmit {
		return fmt.Errorf("%w: %s", ErrRaceNotOpen, elig.Reason)
	}

	for i, p := range s.picks {
		if p.DriverID == driverID {
			s.picks = append(s.picks[:i], s.picks[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrDriverNotSelected, driverID)
}

func (s *Selection) Picks() []Pick {
	s.mu.Lock()
	defer s.mu.Unlock()

	return clonePicks(s.picks)
}

func (s *Selection) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.picks)
}

func (s *Selection) TotalValue() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return TotalValue(s.picks)
}

func (s *Selection) Budget() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.budget
}

func (s *Selection) Rules() Rules { return s.rules }

// SetBudget replaces the spending ceiling. The budget is captured when the
// draft starts, so a participant update mid-session must be pushed in
// before the next validation or the stale ceiling would be enforced.
func (s *Selection) SetBudget(budget int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.budget = budget
}

// Validate runs the full pre-submission check against the current picks.
func (s *Selection) Validate(elig race.Eligibility) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Validate(s.picks, s.budget, s.rules, elig)
}

// Reconcile replaces the candidate set with the persisted roster's picks
// and remembers the roster as the update target for future saves. Used
// after load and after a successful save.
func (s *Selection) Reconcile(rosterID string, picks []Pick) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rosterID = rosterID
	s.picks = clonePicks(picks)
}

// RosterID returns the known update target; empty means the next save
// creates a new roster.
func (s *Selection) RosterID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rosterID
}

func clonePicks(picks []Pick) []Pick {
	out := make([]Pick, len(picks))
	for i, p := range picks {
		out[i] = Pick{
			DriverID:   p.DriverID,
			Value:      p.Value,
			Categories: append([]driver.Category(nil), p.Categories...),
		}
	}
	return out
}
