package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/pitwall/fantasy-gp/internal/domain/race"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
)

const defaultResultsWorkers = 8

// ApplyResultsInput carries the per-driver points scored in one race.
type ApplyResultsInput struct {
	RaceID         string
	PointsByDriver map[string]int
}

type ApplyResultsReport struct {
	Rosters int `json:"rosters"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// ResultsService fans out the post-race points update across every
// persisted roster of a race. It runs behind the internal job token, not
// user auth; it is the "external updater" of the points-earned field.
type ResultsService struct {
	rosterRepo  roster.Repository
	raceRepo    race.Repository
	workerCount int
	logger      *logging.Logger
}

func NewResultsService(rosterRepo roster.Repository, raceRepo race.Repository, workerCount int, logger *logging.Logger) *ResultsService {
	if workerCount <= 0 {
		workerCount = defaultResultsWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ResultsService{
		rosterRepo:  rosterRepo,
		raceRepo:    raceRepo,
		workerCount: workerCount,
		logger:      logger,
	}
}

func (s *ResultsService) ApplyResults(ctx context.Context, input ApplyResultsInput) (ApplyResultsReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsService.ApplyResults")
	defer span.End()

	input.RaceID = strings.TrimSpace(input.RaceID)
	if input.RaceID == "" {
		return ApplyResultsReport{}, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}
	if len(input.PointsByDriver) == 0 {
		return ApplyResultsReport{}, fmt.Errorf("%w: driver points are required", ErrInvalidInput)
	}

	if _, exists, err := s.raceRepo.GetByID(ctx, input.RaceID); err != nil {
		return ApplyResultsReport{}, fmt.Errorf("get race: %w", err)
	} else if !exists {
		return ApplyResultsReport{}, fmt.Errorf("%w: race=%s", ErrNotFound, input.RaceID)
	}

	rosters, err := s.rosterRepo.ListByRace(ctx, input.RaceID)
	if err != nil {
		return ApplyResultsReport{}, fmt.Errorf("list rosters: %w", err)
	}
	if len(rosters) == 0 {
		return ApplyResultsReport{}, nil
	}

	pool, err := ants.NewPool(s.workerCount)
	if err != nil {
		return ApplyResultsReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var updated, failed atomic.Int32
	var workers sync.WaitGroup

	for _, item := range rosters {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			points := 0
			for _, pick := range item.Picks {
				points += input.PointsByDriver[pick.DriverID]
			}

			item.Points = points
			if _, updateErr := s.rosterRepo.Update(ctx, item); updateErr != nil {
				failed.Add(1)
				s.logger.ErrorContext(ctx, "apply results failed for roster",
					"roster_id", item.ID,
					"race_id", input.RaceID,
					"error", updateErr,
				)
				return
			}
			updated.Add(1)
		}); err != nil {
			workers.Done()
			failed.Add(1)
			s.logger.ErrorContext(ctx, "submit results task failed", "roster_id", item.ID, "error", err)
		}
	}

	workers.Wait()

	report := ApplyResultsReport{
		Rosters: len(rosters),
		Updated: int(updated.Load()),
		Failed:  int(failed.Load()),
	}

	s.logger.InfoContext(ctx, "race results applied",
		"race_id", input.RaceID,
		"rosters", report.Rosters,
		"updated", report.Updated,
		"failed", report.Failed,
	)

	return report, nil
}
