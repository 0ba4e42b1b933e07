package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitwall/fantasy-gp/internal/domain/roster"
)

type RosterRepository struct {
	mu    sync.RWMutex
	items map[string]roster.Roster
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{items: make(map[string]roster.Roster)}
}

func (r *RosterRepository) ListByUserAndRace(_ context.Context, userID, raceID string) ([]roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []roster.Roster
	for _, item := range r.items {
		if item.UserID == userID && item.RaceID == raceID {
			out = append(out, cloneRoster(item))
		}
	}

	return out, nil
}

func (r *RosterRepository) ListByRace(_ context.Context, raceID string) ([]roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []roster.Roster
	for _, item := range r.items {
		if item.RaceID == raceID {
			out = append(out, cloneRoster(item))
		}
	}

	return out, nil
}

func (r *RosterRepository) Create(_ context.Context, item roster.Roster) (roster.Roster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return roster.Roster{}, fmt.Errorf("roster %s already exists", item.ID)
	}
	r.items[item.ID] = cloneRoster(item)

	return cloneRoster(item), nil
}

func (r *RosterRepository) Update(_ context.Context, item roster.Roster) (roster.Roster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return roster.Roster{}, fmt.Errorf("roster %s does not exist", item.ID)
	}
	r.items[item.ID] = cloneRoster(item)

	return cloneRoster(item), nil
}

func (r *RosterRepository) Delete(_ context.Context, rosterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[rosterID]; !exists {
		return fmt.Errorf("roster %s does not exist", rosterID)
	}
	delete(r.items, rosterID)

	return nil
}

func cloneRoster(item roster.Roster) roster.Roster {
	copied := item
	copied.Picks = make([]roster.Pick, len(item.Picks))
	for i, p := range item.Picks {
		copied.Picks[i] = roster.Pick{
			DriverID:   p.DriverID,
			Value:      p.Value,
			Categories: append(p.Categories[:0:0], p.Categories...),
		}
	}
	return copied
}
