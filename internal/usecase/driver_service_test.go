package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	"github.com/pitwall/fantasy-gp/internal/infrastructure/repository/memory"
	"github.com/pitwall/fantasy-gp/internal/platform/cache"
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
)

type countingDriverRepo struct {
	driver.Repository
	lists int
}

func (r *countingDriverRepo) ListBySeason(ctx context.Context, seasonID string, category driver.Category) ([]driver.Driver, error) {
	r.lists++
	return r.Repository.ListBySeason(ctx, seasonID, category)
}

func TestDriverService_ListDriversFilters(t *testing.T) {
	service := NewDriverService(memory.NewDriverRepository(memory.SeedDrivers()), nil, logging.NewNop())

	all, err := service.ListDrivers(t.Context(), memory.SeedSeasonID, "")
	if err != nil {
		t.Fatalf("list drivers failed: %v", err)
	}
	if len(all) != 9 {
		t.Fatalf("expected 9 drivers, got %d", len(all))
	}

	rookies, err := service.ListDrivers(t.Context(), memory.SeedSeasonID, driver.CategoryRookie)
	if err != nil {
		t.Fatalf("list rookies failed: %v", err)
	}
	for _, d := range rookies {
		found := false
		for _, c := range d.Categories {
			if c == driver.CategoryRookie {
				found = true
			}
		}
		if !found {
			t.Fatalf("driver %s does not carry the rookie category", d.ID)
		}
	}
	// drv-duval is dual category and must appear in the rookie listing.
	seen := false
	for _, d := range rookies {
		if d.ID == "drv-duval" {
			seen = true
		}
	}
	if !seen {
		t.Fatalf("expected dual-category drv-duval in rookie listing")
	}

	if _, err := service.ListDrivers(t.Context(), memory.SeedSeasonID, "VETERAN"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown category, got %v", err)
	}
}

func TestDriverService_ListDriversUsesCache(t *testing.T) {
	repo := &countingDriverRepo{Repository: memory.NewDriverRepository(memory.SeedDrivers())}
	service := NewDriverService(repo, cache.NewStore(time.Minute), logging.NewNop())

	for range 3 {
		if _, err := service.ListDrivers(t.Context(), memory.SeedSeasonID, ""); err != nil {
			t.Fatalf("list drivers failed: %v", err)
		}
	}
	if repo.lists != 1 {
		t.Fatalf("expected a single backend list, got %d", repo.lists)
	}
}

func TestDriverService_GetDriver(t *testing.T) {
	service := NewDriverService(memory.NewDriverRepository(memory.SeedDrivers()), nil, logging.NewNop())

	d, err := service.GetDriver(t.Context(), "drv-maier")
	if err != nil {
		t.Fatalf("get driver failed: %v", err)
	}
	if len(d.Categories) != 2 {
		t.Fatalf("expected dual-category driver, got %v", d.Categories)
	}

	if _, err := service.GetDriver(t.Context(), "drv-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
