package postgres

import (
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/user"
)

type participantTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Username  string     `db:"username"`
	Role      string     `db:"role"`
	Budget    int64      `db:"budget"`
	SeasonID  string     `db:"season_id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (m participantTableModel) toDomain() user.Participant {
	return user.Participant{
		ID:       m.PublicID,
		Username: m.Username,
		Role:     user.Role(m.Role),
		Budget:   m.Budget,
		SeasonID: m.SeasonID,
	}
}
