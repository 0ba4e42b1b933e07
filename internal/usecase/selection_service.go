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
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
)

// SelectionService owns the live draft selections, one per
// (participant, race) pair. Every mutation re-checks eligibility against
// the race calendar before touching the selection, and the periodic
// Reevaluate sweep catches the purely time-driven deadline transition
// when no user action arrives.
type SelectionService struct {
	mu         sync.Mutex
	sessions   map[string]*roster.Selection
	lastStatus map[string]race.Status

	raceRepo   race.Repository
	driverRepo driver.Repository
	userRepo   user.Repository
	rules      roster.Rules
	logger     *logging.Logger
	now        func() time.Time
}

func NewSelectionService(
	raceRepo race.Repository,
	driverRepo driver.Repository,
	userRepo user.Repository,
	rules roster.Rules,
	logger *logging.Logger,
) *SelectionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SelectionService{
		sessions:   make(map[string]*roster.Selection),
		lastStatus: make(map[string]race.Status),
		raceRepo:   raceRepo,
		driverRepo: driverRepo,
		userRepo:   userRepo,
		rules:      rules,
		logger:     logger,
		now:        time.Now,
	}
}

func selectionKey(userID, raceID string) string {
	return userID + "::" + raceID
}

// Selection returns the draft for (user, race), creating an empty one on
// first touch. The participant must belong to the race's season partition.
func (s *SelectionService) Selection(ctx context.Context, userID, raceID string) (*roster.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Selection")
	defer span.End()

	userID = strings.TrimSpace(userID)
	raceID = strings.TrimSpace(raceID)
	if userID == "" || raceID == "" {
		return nil, fmt.Errorf("%w: user id and race id are required", ErrInvalidInput)
	}

	key := selectionKey(userID, raceID)
	s.mu.Lock()
	if sel, ok := s.sessions[key]; ok {
		s.mu.Unlock()
		return sel, nil
	}
	s.mu.Unlock()

	participant, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get participant: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: participant=%s", ErrNotFound, userID)
	}

	r, exists, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("get race: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: race=%s", ErrNotFound, raceID)
	}
	if participant.SeasonID != r.SeasonID {
		return nil, fmt.Errorf("%w: participant season %s does not match race season %s", ErrForbidden, participant.SeasonID, r.SeasonID)
	}

	sel := roster.NewSelection(userID, raceID, participant.Budget, s.rules)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[key]; ok {
		return existing, nil
	}
	s.sessions[key] = sel
	return sel, nil
}

func (s *SelectionService) AddDriver(ctx context.Context, userID, raceID, driverID string) (*roster.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.AddDriver")
	defer span.End()

	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return nil, fmt.Errorf("%w: driver id is required", ErrInvalidInput)
	}

	sel, err := s.Selection(ctx, userID, raceID)
	if err != nil {
		return nil, err
	}

	elig, err := s.eligibilityFor(ctx, raceID)
	if err != nil {
		return nil, err
	}

	d, exists, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("get driver: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: driver=%s", ErrNotFound, driverID)
	}

	if err := sel.Add(d, elig); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "driver added to selection",
		"user_id", userID,
		"race_id", raceID,
		"driver_id", driverID,
		"size", sel.Size(),
		"total_value", sel.TotalValue(),
	)

	return sel, nil
}

func (s *SelectionService) RemoveDriver(ctx context.Context, userID, raceID, driverID string) (*roster.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.RemoveDriver")
	defer span.End()

	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return nil, fmt.Errorf("%w: driver id is required", ErrInvalidInput)
	}

	sel, err := s.Selection(ctx, userID, raceID)
	if err != nil {
		return nil, err
	}

	elig, err := s.eligibilityFor(ctx, raceID)
	if err != nil {
		return nil, err
	}

	if err := sel.Remove(driverID, elig); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "driver removed from selection",
		"user_id", userID,
		"race_id", raceID,
		"driver_id", driverID,
		"size", sel.Size(),
	)

	return sel, nil
}

// End discards the draft when the selection session finishes (navigation
// away, logout). The persisted roster is untouched.
func (s *SelectionService) End(userID, raceID string) {
	key := selectionKey(userID, raceID)

	s.mu.Lock()
	delete(s.sessions, key)
	delete(s.lastStatus, key)
	s.mu.Unlock()
}

// Reevaluate re-runs the eligibility gate for every active draft. It is
// idempotent and side-effect-free on the drafts themselves; it only logs
// status transitions so operators can see deadlines closing.
func (s *SelectionService) Reevaluate(ctx context.Context) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Reevaluate")
	defer span.End()

	s.mu.Lock()
	active := make(map[string]*roster.Selection, len(s.sessions))
	for key, sel := range s.sessions {
		active[key] = sel
	}
	s.mu.Unlock()

	for key, sel := range active {
		elig, err := s.eligibilityFor(ctx, sel.RaceID())
		if err != nil {
			s.logger.WarnContext(ctx, "eligibility recheck failed", "race_id", sel.RaceID(), "error", err)
			continue
		}

		s.mu.Lock()
		prev, seen := s.lastStatus[key]
		s.lastStatus[key] = elig.Status
		s.mu.Unlock()

		if seen && prev != elig.Status {
			s.logger.InfoContext(ctx, "selection eligibility changed",
				"user_id", sel.UserID(),
				"race_id", sel.RaceID(),
				"from", string(prev),
				"to", string(elig.Status),
				"can_submit", elig.CanSubmit,
			)
		}
	}
}

func (s *SelectionService) eligibilityFor(ctx context.Context, raceID string) (race.Eligibility, error) {
	r, exists, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		return race.Eligibility{}, fmt.Errorf("get race: %w", err)
	}
	if !exists {
		return race.Evaluate(nil, s.now().UTC()), nil
	}

	return race.Evaluate(&r, s.now().UTC()), nil
}
