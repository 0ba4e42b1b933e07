package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	"github.com/pitwall/fantasy-gp/internal/platform/cache"
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
)

const driverCachePrefix = "drivers::"

type DriverService struct {
	driverRepo driver.Repository
	store      *cache.Store
	logger     *logging.Logger
}

func NewDriverService(driverRepo driver.Repository, store *cache.Store, logger *logging.Logger) *DriverService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DriverService{
		driverRepo: driverRepo,
		store:      store,
		logger:     logger,
	}
}

func (s *DriverService) ListDrivers(ctx context.Context, seasonID string, category driver.Category) ([]driver.Driver, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DriverService.ListDrivers")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if category != "" {
		if _, ok := driver.AllCategories[category]; !ok {
			return nil, fmt.Errorf("%w: unknown category %s", ErrInvalidInput, category)
		}
	}

	if s.store == nil {
		return s.driverRepo.ListBySeason(ctx, seasonID, category)
	}

	key := driverCachePrefix + seasonID + "::" + string(category)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.driverRepo.ListBySeason(ctx, seasonID, category)
	})
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}

	drivers, ok := value.([]driver.Driver)
	if !ok {
		return nil, fmt.Errorf("unexpected cache entry type for %s", key)
	}

	return drivers, nil
}

func (s *DriverService) GetDriver(ctx context.Context, driverID string) (driver.Driver, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DriverService.GetDriver")
	defer span.End()

	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return driver.Driver{}, fmt.Errorf("%w: driver id is required", ErrInvalidInput)
	}

	d, exists, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return driver.Driver{}, fmt.Errorf("get driver: %w", err)
	}
	if !exists {
		return driver.Driver{}, fmt.Errorf("%w: driver=%s", ErrNotFound, driverID)
	}

	return d, nil
}
