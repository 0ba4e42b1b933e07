package race

import (
	"fmt"
	"time"
)

// Session is one scheduled part of a race weekend (practice, qualifying, race).
type Session struct {
	Name     string
	StartsAt time.Time
	EndsAt   time.Time
}

// Race is one round of a season with a roster submission deadline.
type Race struct {
	ID                 string
	SeasonID           string
	Round              int
	Location           string
	Sessions           []Session
	SubmissionDeadline time.Time
	IsLocked           bool
}

func (r Race) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("race id is required")
	}
	if r.SeasonID == "" {
		return fmt.Errorf("race season id is required")
	}
	if r.Round <= 0 {
		return fmt.Errorf("race round must be greater than zero")
	}
	if r.Location == "" {
		return fmt.Errorf("race location is required")
	}
	if r.SubmissionDeadline.IsZero() {
		return fmt.Errorf("race submission deadline is required")
	}
	for i, s := range r.Sessions {
		if s.Name == "" {
			return fmt.Errorf("session %d name is required", i)
		}
		if s.StartsAt.IsZero() || s.EndsAt.IsZero() {
			return fmt.Errorf("session %q schedule is required", s.Name)
		}
		if !s.EndsAt.After(s.StartsAt) {
			return fmt.Errorf("session %q must end after it starts", s.Name)
		}
	}

	return nil
}

// HasSchedule reports whether the race carries any sessions. A race without
// sessions is never selectable as the current race.
func (r Race) HasSchedule() bool {
	return len(r.Sessions) > 0
}
