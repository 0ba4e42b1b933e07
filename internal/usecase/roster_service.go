package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	"github.com/pitwall/fantasy-gp/internal/domain/race"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/domain/user"
	idgen "github.com/pitwall/fantasy-gp/internal/platform/id"
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
)

// RosterValidationError carries every composition violation found before a
// save so the transport layer can show all of them at once.
type RosterValidationError struct {
	Violations []string
}

func (e *RosterValidationError) Error() string {
	return "roster validation failed: " + strings.Join(e.Violations, "; ")
}

// RosterService reconciles draft selections with at most one persisted
// roster per (participant, race). It always queries before writing, since
// uniqueness is a protocol guarantee rather than a storage constraint.
type RosterService struct {
	rosterRepo roster.Repository
	driverRepo driver.Repository
	raceRepo   race.Repository
	userRepo   user.Repository
	selections *SelectionService
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewRosterService(
	rosterRepo roster.Repository,
	driverRepo driver.Repository,
	raceRepo race.Repository,
	userRepo user.Repository,
	selections *SelectionService,
	gen idgen.Generator,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		rosterRepo: rosterRepo,
		driverRepo: driverRepo,
		raceRepo:   raceRepo,
		userRepo:   userRepo,
		selections: selections,
		idGen:      gen,
		logger:     logger,
		now:        time.Now,
		inFlight:   make(map[string]struct{}),
	}
}

// Load fetches the persisted roster for (user, race), maps its driver
// references onto the current catalog (silently dropping drivers that were
// removed since the save), and seeds the draft selection with the result.
// Zero rosters means the next save creates; more than one is a backend
// data-integrity fault surfaced as an error.
func (s *RosterService) Load(ctx context.Context, userID, raceID string) (roster.Roster, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Load")
	defer span.End()

	sel, err := s.selections.Selection(ctx, userID, raceID)
	if err != nil {
		return roster.Roster{}, false, err
	}

	rosters, err := s.rosterRepo.ListByUserAndRace(ctx, userID, raceID)
	if err != nil {
		return roster.Roster{}, false, classifyBackendError(fmt.Errorf("list rosters: %w", err))
	}

	switch len(rosters) {
	case 0:
		sel.Reconcile("", nil)
		return roster.Roster{}, false, nil
	case 1:
	default:
		return roster.Roster{}, false, fmt.Errorf("%w: %d rosters exist for user=%s race=%s", ErrDataIntegrity, len(rosters), userID, raceID)
	}

	persisted := rosters[0]
	resolved, dropped, err := s.resolvePicks(ctx, persisted)
	if err != nil {
		return roster.Roster{}, false, err
	}
	if dropped > 0 {
		s.logger.WarnContext(ctx, "dropped stale driver references on roster load",
			"user_id", userID,
			"race_id", raceID,
			"roster_id", persisted.ID,
			"dropped", dropped,
		)
	}

	persisted.Picks = resolved
	sel.Reconcile(persisted.ID, resolved)

	return persisted, true, nil
}

// Save validates the draft, re-checks eligibility, and issues a create or
// an update depending on what already exists. Only one save may run per
// (user, race); a concurrent save is rejected rather than raced, because
// an interleaved create+create would break the one-roster invariant.
func (s *RosterService) Save(ctx context.Context, userID, raceID string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Save")
	defer span.End()

	userID = strings.TrimSpace(userID)
	raceID = strings.TrimSpace(raceID)
	if userID == "" || raceID == "" {
		return roster.Roster{}, fmt.Errorf("%w: user id and race id are required", ErrInvalidInput)
	}

	key := selectionKey(userID, raceID)
	if !s.acquire(key) {
		return roster.Roster{}, ErrSaveInFlight
	}
	defer s.release(key)

	sel, err := s.selections.Selection(ctx, userID, raceID)
	if err != nil {
		return roster.Roster{}, err
	}

	elig, err := s.selections.eligibilityFor(ctx, raceID)
	if err != nil {
		return roster.Roster{}, err
	}

	// The draft captured the budget when it started; an operator may have
	// lowered it since, so the persisted ceiling wins at save time.
	participant, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return roster.Roster{}, classifyBackendError(fmt.Errorf("get participant: %w", err))
	}
	if !exists {
		return roster.Roster{}, fmt.Errorf("%w: participant=%s", ErrNotFound, userID)
	}
	sel.SetBudget(participant.Budget)

	if result := sel.Validate(elig); !result.Valid {
		return roster.Roster{}, &RosterValidationError{Violations: result.Violations}
	}

	rosters, err := s.rosterRepo.ListByUserAndRace(ctx, userID, raceID)
	if err != nil {
		return roster.Roster{}, classifyBackendError(fmt.Errorf("list rosters: %w", err))
	}
	if len(rosters) > 1 {
		return roster.Roster{}, fmt.Errorf("%w: %d rosters exist for user=%s race=%s", ErrDataIntegrity, len(rosters), userID, raceID)
	}

	now := s.now().UTC()
	next := roster.Roster{
		UserID:     userID,
		RaceID:     raceID,
		Picks:      sel.Picks(),
		BudgetUsed: sel.TotalValue(),
		UpdatedAt:  now,
	}

	var saved roster.Roster
	if len(rosters) == 1 {
		existing := rosters[0]
		next.ID = existing.ID
		next.Points = existing.Points
		next.CreatedAt = existing.CreatedAt

		saved, err = s.rosterRepo.Update(ctx, next)
		if err != nil {
			return roster.Roster{}, classifyBackendError(fmt.Errorf("update roster: %w", err))
		}
	} else {
		next.ID, err = s.idGen.NewID()
		if err != nil {
			return roster.Roster{}, fmt.Errorf("generate roster id: %w", err)
		}
		next.CreatedAt = now

		if err := next.ValidateBasic(); err != nil {
			return roster.Roster{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		saved, err = s.rosterRepo.Create(ctx, next)
		if err != nil {
			return roster.Roster{}, classifyBackendError(fmt.Errorf("create roster: %w", err))
		}
	}

	// The response becomes the new update target, covering the
	// create-to-update transition within the same session.
	sel.Reconcile(saved.ID, saved.Picks)

	s.logger.InfoContext(ctx, "roster saved",
		"user_id", userID,
		"race_id", raceID,
		"roster_id", saved.ID,
		"picks", len(saved.Picks),
		"budget_used", saved.BudgetUsed,
	)

	return saved, nil
}

// Delete removes the persisted roster while the window is still open and
// returns the draft to create mode.
func (s *RosterService) Delete(ctx context.Context, userID, raceID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Delete")
	defer span.End()

	key := selectionKey(userID, raceID)
	if !s.acquire(key) {
		return ErrSaveInFlight
	}
	defer s.release(key)

	elig, err := s.selections.eligibilityFor(ctx, raceID)
	if err != nil {
		return err
	}
	if !elig.CanSubmit {
		return fmt.Errorf("%w: %s", roster.ErrRaceNotOpen, elig.Reason)
	}

	rosters, err := s.rosterRepo.ListByUserAndRace(ctx, userID, raceID)
	if err != nil {
		return classifyBackendError(fmt.Errorf("list rosters: %w", err))
	}
	if len(rosters) == 0 {
		return fmt.Errorf("%w: no roster for user=%s race=%s", ErrNotFound, userID, raceID)
	}
	if len(rosters) > 1 {
		return fmt.Errorf("%w: %d rosters exist for user=%s race=%s", ErrDataIntegrity, len(rosters), userID, raceID)
	}

	if err := s.rosterRepo.Delete(ctx, rosters[0].ID); err != nil {
		return classifyBackendError(fmt.Errorf("delete roster: %w", err))
	}

	if sel, selErr := s.selections.Selection(ctx, userID, raceID); selErr == nil {
		sel.Reconcile("", sel.Picks())
	}

	return nil
}

func (s *RosterService) resolvePicks(ctx context.Context, persisted roster.Roster) ([]roster.Pick, int, error) {
	if len(persisted.Picks) == 0 {
		return nil, 0, nil
	}

	resolved := make([]roster.Pick, 0, len(persisted.Picks))
	dropped := 0
	for _, p := range persisted.Picks {
		d, exists, err := s.driverRepo.GetByID(ctx, p.DriverID)
		if err != nil {
			return nil, 0, classifyBackendError(fmt.Errorf("resolve driver %s: %w", p.DriverID, err))
		}
		if !exists {
			dropped++
			continue
		}
		resolved = append(resolved, roster.Pick{
			DriverID:   d.ID,
			Value:      d.Value,
			Categories: append([]driver.Category(nil), d.Categories...),
		})
	}

	return resolved, dropped, nil
}

func (s *RosterService) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[key]; busy {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *RosterService) release(key string) {
	s.mu.Lock()
	delete(s.inFlight, key)
	s.mu.Unlock()
}
