package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/race"
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
)

type RaceService struct {
	raceRepo race.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewRaceService(raceRepo race.Repository, logger *logging.Logger) *RaceService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RaceService{
		raceRepo: raceRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *RaceService) ListRaces(ctx context.Context, seasonID string) ([]race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.ListRaces")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	races, err := s.raceRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}

	sort.Slice(races, func(i, j int) bool { return races[i].Round < races[j].Round })
	return races, nil
}

func (s *RaceService) GetRace(ctx context.Context, raceID string) (race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.GetRace")
	defer span.End()

	raceID = strings.TrimSpace(raceID)
	if raceID == "" {
		return race.Race{}, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}

	r, exists, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		return race.Race{}, fmt.Errorf("get race: %w", err)
	}
	if !exists {
		return race.Race{}, fmt.Errorf("%w: race=%s", ErrNotFound, raceID)
	}

	return r, nil
}

// CurrentRace resolves the next selectable round: the earliest race that
// carries a schedule and whose submission deadline has not passed. A race
// without sessions is never current, whatever its deadline says.
func (s *RaceService) CurrentRace(ctx context.Context, seasonID string) (race.Race, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.CurrentRace")
	defer span.End()

	races, err := s.ListRaces(ctx, seasonID)
	if err != nil {
		return race.Race{}, false, err
	}

	now := s.now().UTC()
	for _, r := range races {
		if !r.HasSchedule() {
			continue
		}
		if now.After(r.SubmissionDeadline) {
			continue
		}
		return r, true, nil
	}

	return race.Race{}, false, nil
}

// Eligibility evaluates the submission window for one race right now.
func (s *RaceService) Eligibility(ctx context.Context, raceID string) (race.Eligibility, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.Eligibility")
	defer span.End()

	r, err := s.GetRace(ctx, raceID)
	if err != nil {
		return race.Eligibility{}, err
	}

	return race.Evaluate(&r, s.now().UTC()), nil
}
