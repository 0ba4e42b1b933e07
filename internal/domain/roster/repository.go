package roster

import "context"

// Repository describes roster persistence needs from use cases. List is
// deliberately plural: the synchronizer treats more than one row per
// (participant, race) as a data-integrity fault it must surface.
type Repository interface {
	ListByUserAndRace(ctx context.Context, userID, raceID string) ([]Roster, error)
	ListByRace(ctx context.Context, raceID string) ([]Roster, error)
	Create(ctx context.Context, r Roster) (Roster, error)
	Update(ctx context.Context, r Roster) (Roster, error)
	Delete(ctx context.Context, rosterID string) error
}
