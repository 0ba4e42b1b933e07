package race

import (
	"fmt"
	"time"
)

// Status is the submission-window verdict for a race at a point in time.
type Status string

const (
	StatusNoRace  Status = "NO_RACE"
	StatusLocked  Status = "LOCKED"
	StatusExpired Status = "EXPIRED"
	StatusUrgent  Status = "URGENT"
	StatusOpen    Status = "OPEN"
)

// UrgentWindow is how close to the deadline a race is reported as urgent.
const UrgentWindow = 24 * time.Hour

// Eligibility is the result of evaluating a race against the clock.
type Eligibility struct {
	Status        Status
	CanSubmit     bool
	Reason        string
	TimeRemaining time.Duration
}

// Evaluate is a pure function of (race, now). Verdicts follow a strict
// priority order: no race > locked > expired > urgent > open. Callers
// re-evaluate on a timer because the expired transition is time-driven.
func Evaluate(r *Race, now time.Time) Eligibility {
	if r == nil {
		return Eligibility{
			Status:    StatusNoRace,
			CanSubmit: false,
			Reason:    "no race is currently scheduled",
		}
	}

	// A provisional race (no sessions announced) is never submittable,
	// regardless of its deadline.
	if !r.HasSchedule() {
		return Eligibility{
			Status:    StatusNoRace,
			CanSubmit: false,
			Reason:    fmt.Sprintf("round %d (%s) has no announced sessions yet", r.Round, r.Location),
		}
	}

	if r.IsLocked {
		return Eligibility{
			Status:    StatusLocked,
			CanSubmit: false,
			Reason:    fmt.Sprintf("round %d (%s) is locked by an operator", r.Round, r.Location),
		}
	}

	remaining := r.SubmissionDeadline.Sub(now)
	if remaining < 0 {
		return Eligibility{
			Status:    StatusExpired,
			CanSubmit: false,
			Reason:    fmt.Sprintf("submission deadline for round %d (%s) passed at %s", r.Round, r.Location, r.SubmissionDeadline.UTC().Format(time.RFC3339)),
		}
	}

	if remaining < UrgentWindow {
		return Eligibility{
			Status:        StatusUrgent,
			CanSubmit:     true,
			Reason:        fmt.Sprintf("submission closes in %s", remaining.Round(time.Minute)),
			TimeRemaining: remaining,
		}
	}

	return Eligibility{
		Status:        StatusOpen,
		CanSubmit:     true,
		Reason:        "submission is open",
		TimeRemaining: remaining,
	}
}
