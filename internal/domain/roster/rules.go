package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	"github.com/pitwall/fantasy-gp/internal/domain/race"
)

var (
	ErrRaceNotOpen       = errors.New("race is not open for roster changes")
	ErrRosterFull        = errors.New("roster is already at maximum size")
	ErrDuplicateDriver   = errors.New("driver is already in the roster")
	ErrBudgetExceeded    = errors.New("budget ceiling exceeded")
	ErrIncompleteRoster  = errors.New("roster is below required size")
	ErrMissingCategory   = errors.New("required category is not represented")
	ErrDriverNotSelected = errors.New("driver is not in the roster")
)

// Rules stores roster composition parameters. Incremental edits allow up
// to MaxSize picks; submission requires exactly MaxSize.
type Rules struct {
	MaxSize            int
	RequiredCategories []driver.Category
}

func DefaultRules() Rules {
	return Rules{
		MaxSize: 6,
		RequiredCategories: []driver.Category{
			driver.CategoryElite,
			driver.CategoryChallenger,
			driver.CategoryRookie,
		},
	}
}

// CanAdd is the incremental guard run before every mutation. It rejects
// without mutating; an accepted add can therefore never transiently
// violate the size or budget invariants.
func CanAdd(picks []Pick, candidate driver.Driver, budget int64, rules Rules) error {
	if len(picks) >= rules.MaxSize {
		return fmt.Errorf("%w: max=%d", ErrRosterFull, rules.MaxSize)
	}
	for _, p := range picks {
		if p.DriverID == candidate.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateDriver, candidate.ID)
		}
	}
	if TotalValue(picks)+candidate.Value > budget {
		return fmt.Errorf("%w: budget=%d used=%d driver=%d", ErrBudgetExceeded, budget, TotalValue(picks), candidate.Value)
	}

	return nil
}

// Result is the full-validation verdict shown before submission.
type Result struct {
	Valid      bool
	Violations []string
}

// Validate collects every violation instead of stopping at the first so a
// client can show all problems at once. Order is fixed: race availability,
// size, budget, missing categories, duplicates. An empty selection is
// reported only through the size violation.
func Validate(picks []Pick, budget int64, rules Rules, elig race.Eligibility) Result {
	var violations []string

	if !elig.CanSubmit {
		violations = append(violations, fmt.Sprintf("%s: %s", ErrRaceNotOpen, elig.Reason))
	}

	switch {
	case len(picks) < rules.MaxSize:
		violations = append(violations, fmt.Sprintf("%s: need %d drivers, have %d", ErrIncompleteRoster, rules.MaxSize, len(picks)))
	case len(picks) > rules.MaxSize:
		violations = append(violations, fmt.Sprintf("%s: max=%d, have %d", ErrRosterFull, rules.MaxSize, len(picks)))
	}

	if total := TotalValue(picks); total > budget {
		violations = append(violations, fmt.Sprintf("%s: budget=%d used=%d", ErrBudgetExceeded, budget, total))
	}

	if missing := missingCategories(picks, rules.RequiredCategories); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, c := range missing {
			names = append(names, string(c))
		}
		violations = append(violations, fmt.Sprintf("%s: %s", ErrMissingCategory, strings.Join(names, ", ")))
	}

	seen := make(map[string]struct{}, len(picks))
	for _, p := range picks {
		if _, dup := seen[p.DriverID]; dup {
			violations = append(violations, fmt.Sprintf("%s: %s", ErrDuplicateDriver, p.DriverID))
			continue
		}
		seen[p.DriverID] = struct{}{}
	}

	return Result{
		Valid:      len(violations) == 0,
		Violations: violations,
	}
}

func missingCategories(picks []Pick, required []driver.Category) []driver.Category {
	covered := make(map[driver.Category]struct{})
	for _, p := range picks {
		for _, c := range p.Categories {
			covered[c] = struct{}{}
		}
	}

	var missing []driver.Category
	for _, c := range required {
		if _, ok := covered[c]; !ok {
			missing = append(missing, c)
		}
	}

	return missing
}
