package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/pitwall/fantasy-gp/internal/domain/roster"
)

type rosterTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	UserID     string     `db:"user_id"`
	RacePubID  string     `db:"race_public_id"`
	BudgetUsed int64      `db:"budget_used"`
	Points     int        `db:"points"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type rosterPickTableModel struct {
	RosterPublicID string         `db:"roster_public_id"`
	DriverPublicID string         `db:"driver_public_id"`
	Value          int64          `db:"value"`
	Categories     pq.StringArray `db:"categories"`
}

func (m rosterTableModel) toDomain(picks []roster.Pick) roster.Roster {
	return roster.Roster{
		ID:         m.PublicID,
		UserID:     m.UserID,
		RaceID:     m.RacePubID,
		Picks:      picks,
		BudgetUsed: m.BudgetUsed,
		Points:     m.Points,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (m rosterPickTableModel) toDomain() roster.Pick {
	return roster.Pick{
		DriverID:   m.DriverPublicID,
		Value:      m.Value,
		Categories: categoriesFromStrings(m.Categories),
	}
}
