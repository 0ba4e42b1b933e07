package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
)

type driverTableModel struct {
	ID         int64          `db:"id"`
	PublicID   string         `db:"public_id"`
	SeasonID   string         `db:"season_id"`
	Name       string         `db:"name"`
	TeamName   string         `db:"team_name"`
	Value      int64          `db:"value"`
	Categories pq.StringArray `db:"categories"`
	Country    string         `db:"country"`
	ImageURL   string         `db:"image_url"`
	Bio        string         `db:"bio"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  *time.Time     `db:"deleted_at"`
}

func (m driverTableModel) toDomain() driver.Driver {
	return driver.Driver{
		ID:         m.PublicID,
		SeasonID:   m.SeasonID,
		Name:       m.Name,
		TeamName:   m.TeamName,
		Value:      m.Value,
		Categories: categoriesFromStrings(m.Categories),
		Country:    m.Country,
		ImageURL:   m.ImageURL,
		Bio:        m.Bio,
	}
}

func categoriesFromStrings(values []string) []driver.Category {
	out := make([]driver.Category, 0, len(values))
	for _, v := range values {
		out = append(out, driver.Category(v))
	}
	return out
}

func categoriesToStrings(categories []driver.Category) pq.StringArray {
	out := make(pq.StringArray, 0, len(categories))
	for _, c := range categories {
		out = append(out, string(c))
	}
	return out
}
