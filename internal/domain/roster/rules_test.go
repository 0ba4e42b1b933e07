package roster

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	"github.com/pitwall/fantasy-gp/internal/domain/race"
)

func openEligibility() race.Eligibility {
	return race.Eligibility{Status: race.StatusOpen, CanSubmit: true, Reason: "submission is open", TimeRemaining: 48 * time.Hour}
}

func fullPicks() []Pick {
	return []Pick{
		{DriverID: "d1", Value: 30, Categories: []driver.Category{driver.CategoryElite}},
		{DriverID: "d2", Value: 25, Categories: []driver.Category{driver.CategoryElite}},
		{DriverID: "d3", Value: 15, Categories: []driver.Category{driver.CategoryChallenger}},
		{DriverID: "d4", Value: 12, Categories: []driver.Category{driver.CategoryChallenger}},
		{DriverID: "d5", Value: 10, Categories: []driver.Category{driver.CategoryRookie}},
		{DriverID: "d6", Value: 8, Categories: []driver.Category{driver.CategoryRookie}},
	}
}

func TestCanAdd(t *testing.T) {
	rules := DefaultRules()
	candidate := driver.Driver{ID: "d7", SeasonID: "s1", Name: "New Driver", Value: 10, Categories: []driver.Category{driver.CategoryRookie}}

	tests := []struct {
		name      string
		picks     []Pick
		candidate driver.Driver
		budget    int64
		targetErr error
	}{
		{
			name:      "add to empty roster",
			picks:     nil,
			candidate: candidate,
			budget:    100,
			targetErr: nil,
		},
		{
			name:      "roster already full",
			picks:     fullPicks(),
			candidate: candidate,
			budget:    200,
			targetErr: ErrRosterFull,
		},
		{
			name:      "duplicate driver",
			picks:     fullPicks()[:3],
			candidate: driver.Driver{ID: "d2", Value: 25, Categories: []driver.Category{driver.CategoryElite}},
			budget:    200,
			targetErr: ErrDuplicateDriver,
		},
		{
			name:      "budget exceeded",
			picks:     []Pick{{DriverID: "d1", Value: 60, Categories: []driver.Category{driver.CategoryElite}}},
			candidate: driver.Driver{ID: "d8", Value: 50, Categories: []driver.Category{driver.CategoryRookie}},
			budget:    100,
			targetErr: ErrBudgetExceeded,
		},
		{
			name:      "exactly on budget is allowed",
			picks:     []Pick{{DriverID: "d1", Value: 60, Categories: []driver.Category{driver.CategoryElite}}},
			candidate: driver.Driver{ID: "d8", Value: 40, Categories: []driver.Category{driver.CategoryRookie}},
			budget:    100,
			targetErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAdd(tt.picks, tt.candidate, tt.budget, rules)
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	rules := DefaultRules()

	// Seven picks, over budget, no rookie coverage, one duplicate.
	picks := []Pick{
		{DriverID: "d1", Value: 40, Categories: []driver.Category{driver.CategoryElite}},
		{DriverID: "d2", Value: 40, Categories: []driver.Category{driver.CategoryElite}},
		{DriverID: "d3", Value: 40, Categories: []driver.Category{driver.CategoryChallenger}},
		{DriverID: "d4", Value: 40, Categories: []driver.Category{driver.CategoryChallenger}},
		{DriverID: "d5", Value: 40, Categories: []driver.Category{driver.CategoryChallenger}},
		{DriverID: "d6", Value: 40, Categories: []driver.Category{driver.CategoryElite}},
		{DriverID: "d1", Value: 40, Categories: []driver.Category{driver.CategoryElite}},
	}
	locked := race.Eligibility{Status: race.StatusLocked, CanSubmit: false, Reason: "round 4 is locked by an operator"}

	result := Validate(picks, 100, rules, locked)
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Violations) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(result.Violations), result.Violations)
	}

	wantOrder := []string{
		ErrRaceNotOpen.Error(),
		ErrRosterFull.Error(),
		ErrBudgetExceeded.Error(),
		ErrMissingCategory.Error(),
		ErrDuplicateDriver.Error(),
	}
	for i, want := range wantOrder {
		if !strings.Contains(result.Violations[i], want) {
			t.Fatalf("violation %d: expected %q in %q", i, want, result.Violations[i])
		}
	}
}

func TestValidateMissingCategoryNamesEveryTag(t *testing.T) {
	rules := DefaultRules()

	picks := []Pick{
		{DriverID: "d1", Value: 10, Categories: []driver.Category{driver.CategoryElite}},
		{DriverID: "d2", Value: 10, Categories: []driver.Category{driver.CategoryElite}},
		{DriverID: "d3", Value: 10, Categories: []driver.Category{driver.CategoryElite}},
		{DriverID: "d4", Value: 10, Categories: []driver.Category{driver.CategoryElite}},
		{DriverID: "d5", Value: 10, Categories: []driver.Category{driver.CategoryElite}},
		{DriverID: "d6", Value: 10, Categories: []driver.Category{driver.CategoryElite}},
	}

	result := Validate(picks, 100, rules, openEligibility())
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected a single violation, got %v", result.Violations)
	}
	for _, name := range []string{"CHALLENGER", "ROOKIE"} {
		if !strings.Contains(result.Violations[0], name) {
			t.Fatalf("expected violation to name %s, got %q", name, result.Violations[0])
		}
	}
	if strings.Contains(result.Violations[0], "ELITE") {
		t.Fatalf("covered category must not be reported: %q", result.Violations[0])
	}
}

func TestValidateSingleMissingCategory(t *testing.T) {
	rules := DefaultRules()

	picks := []Pick{
		{DriverID: "d1", Value: 20, Categories: []driver.Category{driver.CategoryElite}},
		{DriverID: "d2", Value: 15, Categories: []driver.Category{driver.CategoryElite}},
		{DriverID: "d3", Value: 15, Categories: []driver.Category{driver.CategoryChallenger}},
		{DriverID: "d4", Value: 10, Categories: []driver.Category{driver.CategoryChallenger}},
		{DriverID: "d5", Value: 10, Categories: []driver.Category{driver.CategoryChallenger}},
		{DriverID: "d6", Value: 10, Categories: []driver.Category{driver.CategoryElite}},
	}

	result := Validate(picks, 100, rules, openEligibility())
	if len(result.Violations) != 1 {
		t.Fatalf("expected a single violation, got %v", result.Violations)
	}
	if !strings.Contains(result.Violations[0], "ROOKIE") {
		t.Fatalf("expected missing ROOKIE, got %q", result.Violations[0])
	}
}

func TestValidateEmptySelection(t *testing.T) {
	result := Validate(nil, 100, DefaultRules(), openEligibility())
	if result.Valid {
		t.Fatal("an empty selection is never submittable")
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected only the size violation, got %v", result.Violations)
	}
	if !strings.Contains(result.Violations[0], ErrIncompleteRoster.Error()) {
		t.Fatalf("expected size violation, got %q", result.Violations[0])
	}
}

func TestValidateCompleteRoster(t *testing.T) {
	result := Validate(fullPicks(), 100, DefaultRules(), openEligibility())
	if !result.Valid {
		t.Fatalf("expected valid roster, got violations %v", result.Violations)
	}
}
