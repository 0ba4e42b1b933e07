package roster

import (
	"fmt"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
)

// Pick is one selected driver with the catalog attributes frozen at pick time.
type Pick struct {
	DriverID   string
	Value      int64
	Categories []driver.Category
}

// Roster is the persisted submission for one (participant, race) pair.
// The synchronizer guarantees at most one roster per pair; the storage
// layer carries no uniqueness constraint of its own.
type Roster struct {
	ID         string
	UserID     string
	RaceID     string
	Picks      []Pick
	BudgetUsed int64
	Points     int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r Roster) ValidateBasic() error {
	if r.ID == "" {
		return fmt.Errorf("roster id is required")
	}
	if r.UserID == "" {
		return fmt.Errorf("roster user id is required")
	}
	if r.RaceID == "" {
		return fmt.Errorf("roster race id is required")
	}
	if len(r.Picks) == 0 {
		return fmt.Errorf("roster picks are required")
	}
	if r.BudgetUsed <= 0 {
		return fmt.Errorf("roster budget used must be greater than zero")
	}

	return nil
}

// TotalValue sums the frozen value of every pick.
func TotalValue(picks []Pick) int64 {
	var total int64
	for _, p := range picks {
		total += p.Value
	}
	return total
}
