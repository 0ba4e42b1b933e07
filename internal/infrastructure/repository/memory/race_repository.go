package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitwall/fantasy-gp/internal/domain/race"
)

type RaceRepository struct {
	mu    sync.RWMutex
	items map[string]race.Race
}

func NewRaceRepository(seed []race.Race) *RaceRepository {
	items := make(map[string]race.Race, len(seed))
	for _, r := range seed {
		items[r.ID] = cloneRace(r)
	}

	return &RaceRepository{items: items}
}

func (r *RaceRepository) ListBySeason(_ context.Context, seasonID string) ([]race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []race.Race
	for _, item := range r.items {
		if item.SeasonID != seasonID {
			continue
		}
		out = append(out, cloneRace(item))
	}

	return out, nil
}

func (r *RaceRepository) GetByID(_ context.Context, raceID string) (race.Race, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[raceID]
	if !ok {
		return race.Race{}, false, nil
	}

	return cloneRace(item), true, nil
}

func (r *RaceRepository) Update(_ context.Context, item race.Race) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("race %s does not exist", item.ID)
	}
	r.items[item.ID] = cloneRace(item)

	return nil
}

func cloneRace(r race.Race) race.Race {
	copied := r
	copied.Sessions = append([]race.Session(nil), r.Sessions...)
	return copied
}
