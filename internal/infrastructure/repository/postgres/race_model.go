package postgres

import (
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/race"
)

type raceTableModel struct {
	ID                 int64      `db:"id"`
	PublicID           string     `db:"public_id"`
	SeasonID           string     `db:"season_id"`
	Round              int        `db:"round"`
	Location           string     `db:"location"`
	SubmissionDeadline time.Time  `db:"submission_deadline"`
	IsLocked           bool       `db:"is_locked"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at"`
}

type raceSessionTableModel struct {
	RacePublicID string    `db:"race_public_id"`
	Name         string    `db:"name"`
	StartsAt     time.Time `db:"starts_at"`
	EndsAt       time.Time `db:"ends_at"`
}

func (m raceTableModel) toDomain(sessions []race.Session) race.Race {
	return race.Race{
		ID:                 m.PublicID,
		SeasonID:           m.SeasonID,
		Round:              m.Round,
		Location:           m.Location,
		Sessions:           sessions,
		SubmissionDeadline: m.SubmissionDeadline,
		IsLocked:           m.IsLocked,
	}
}
