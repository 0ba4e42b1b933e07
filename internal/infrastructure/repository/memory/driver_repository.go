package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
)

type DriverRepository struct {
	mu    sync.RWMutex
	items map[string]driver.Driver
}

func NewDriverRepository(seed []driver.Driver) *DriverRepository {
	items := make(map[string]driver.Driver, len(seed))
	for _, d := range seed {
		items[d.ID] = cloneDriver(d)
	}

	return &DriverRepository{items: items}
}

func (r *DriverRepository) ListBySeason(_ context.Context, seasonID string, category driver.Category) ([]driver.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []driver.Driver
	for _, d := range r.items {
		if d.SeasonID != seasonID {
			continue
		}
		if category != "" && !d.HasCategory(category) {
			continue
		}
		out = append(out, cloneDriver(d))
	}

	return out, nil
}

func (r *DriverRepository) GetByID(_ context.Context, driverID string) (driver.Driver, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[driverID]
	if !ok {
		return driver.Driver{}, false, nil
	}

	return cloneDriver(d), true, nil
}

func (r *DriverRepository) GetByIDs(_ context.Context, seasonID string, driverIDs []string) ([]driver.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]driver.Driver, 0, len(driverIDs))
	for _, id := range driverIDs {
		d, ok := r.items[id]
		if !ok || d.SeasonID != seasonID {
			continue
		}
		out = append(out, cloneDriver(d))
	}

	return out, nil
}

func (r *DriverRepository) Create(_ context.Context, d driver.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[d.ID]; exists {
		return fmt.Errorf("driver %s already exists", d.ID)
	}
	r.items[d.ID] = cloneDriver(d)

	return nil
}

func (r *DriverRepository) Update(_ context.Context, d driver.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[d.ID]; !exists {
		return fmt.Errorf("driver %s does not exist", d.ID)
	}
	r.items[d.ID] = cloneDriver(d)

	return nil
}

func (r *DriverRepository) Delete(_ context.Context, driverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[driverID]; !exists {
		return fmt.Errorf("driver %s does not exist", driverID)
	}
	delete(r.items, driverID)

	return nil
}

func cloneDriver(d driver.Driver) driver.Driver {
	copied := d
	copied.Categories = append([]driver.Category(nil), d.Categories...)
	return copied
}
