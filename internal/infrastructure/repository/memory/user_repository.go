package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitwall/fantasy-gp/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.Participant
}

func NewUserRepository(seed []user.Participant) *UserRepository {
	items := make(map[string]user.Participant, len(seed))
	for _, p := range seed {
		items[p.ID] = p
	}

	return &UserRepository{items: items}
}

func (r *UserRepository) GetByID(_ context.Context, participantID string) (user.Participant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[participantID]
	if !ok {
		return user.Participant{}, false, nil
	}

	return p, true, nil
}

func (r *UserRepository) ListBySeason(_ context.Context, seasonID string) ([]user.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []user.Participant
	for _, p := range r.items {
		if p.SeasonID != seasonID {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *UserRepository) Create(_ context.Context, p user.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; exists {
		return fmt.Errorf("participant %s already exists", p.ID)
	}
	r.items[p.ID] = p

	return nil
}

func (r *UserRepository) Update(_ context.Context, p user.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; !exists {
		return fmt.Errorf("participant %s does not exist", p.ID)
	}
	r.items[p.ID] = p

	return nil
}

func (r *UserRepository) Delete(_ context.Context, participantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[participantID]; !exists {
		return fmt.Errorf("participant %s does not exist", participantID)
	}
	delete(r.items, participantID)

	return nil
}
