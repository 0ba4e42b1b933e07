package race

import "context"

// Repository describes race calendar persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Race, error)
	GetByID(ctx context.Context, raceID string) (Race, bool, error)
	Update(ctx context.Context, r Race) error
}
