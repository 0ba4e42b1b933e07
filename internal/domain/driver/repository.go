package driver

import "context"

// Repository describes driver catalog persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string, category Category) ([]Driver, error)
	GetByID(ctx context.Context, driverID string) (Driver, bool, error)
	GetByIDs(ctx context.Context, seasonID string, driverIDs []string) ([]Driver, error)
	Create(ctx context.Context, d Driver) error
	Update(ctx context.Context, d Driver) error
	Delete(ctx context.Context, driverID string) error
}
