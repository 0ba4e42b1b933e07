package user

import "context"

// Repository describes participant persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, participantID string) (Participant, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Participant, error)
	Create(ctx context.Context, p Participant) error
	Update(ctx context.Context, p Participant) error
	Delete(ctx context.Context, participantID string) error
}
