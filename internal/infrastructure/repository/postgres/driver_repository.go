package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	qb "github.com/pitwall/fantasy-gp/internal/platform/querybuilder"
)

type DriverRepository struct {
	db *sqlx.DB
}

var driverSelectColumns = []string{
	"id",
	"public_id",
	"season_id",
	"name",
	"team_name",
	"value",
	"categories",
	"country",
	"image_url",
	"bio",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewDriverRepository(db *sqlx.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) ListBySeason(ctx context.Context, seasonID string, category driver.Category) ([]driver.Driver, error) {
	conditions := []qb.Condition{
		qb.Eq("season_id", seasonID),
		qb.IsNull("deleted_at"),
	}
	if category != "" {
		conditions = append(conditions, qb.Expr("? = ANY(categories)", string(category)))
	}

	query, args, err := qb.Select(driverSelectColumns...).From("drivers").
		Where(conditions...).
		OrderBy("value DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select drivers by season query: %w", err)
	}

	var rows []driverTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select drivers by season: %w", err)
	}

	out := make([]driver.Driver, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *DriverRepository) GetByID(ctx context.Context, driverID string) (driver.Driver, bool, error) {
	query, args, err := qb.Select(driverSelectColumns...).From("drivers").
		Where(
			qb.Eq("public_id", driverID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return driver.Driver{}, false, fmt.Errorf("build select driver query: %w", err)
	}

	var row driverTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return driver.Driver{}, false, nil
		}
		return driver.Driver{}, false, fmt.Errorf("select driver: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *DriverRepository) GetByIDs(ctx context.Context, seasonID string, driverIDs []string) ([]driver.Driver, error) {
	if len(driverIDs) == 0 {
		return []driver.Driver{}, nil
	}

	query, args, err := qb.Select(driverSelectColumns...).From("drivers").
		Where(
			qb.Eq("season_id", seasonID),
			qb.In("public_id", stringSliceToAny(driverIDs)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select drivers by ids query: %w", err)
	}

	var rows []driverTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select drivers by ids: %w", err)
	}

	out := make([]driver.Driver, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *DriverRepository) Create(ctx context.Context, d driver.Driver) error {
	query, args, err := qb.InsertInto("drivers").
		Columns("public_id", "season_id", "name", "team_name", "value", "categories", "country", "image_url", "bio").
		Values(d.ID, d.SeasonID, d.Name, d.TeamName, d.Value, categoriesToStrings(d.Categories), d.Country, d.ImageURL, d.Bio).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert driver query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert driver %s: %w", d.ID, err)
	}

	return nil
}

func (r *DriverRepository) Update(ctx context.Context, d driver.Driver) error {
	query, args, err := qb.Update("drivers").
		Set("season_id", d.SeasonID).
		Set("name", d.Name).
		Set("team_name", d.TeamName).
		Set("value", d.Value).
		Set("categories", categoriesToStrings(d.Categories)).
		Set("country", d.Country).
		Set("image_url", d.ImageURL).
		Set("bio", d.Bio).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", d.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update driver query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update driver %s: %w", d.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update driver %s rows affected: %w", d.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("driver %s does not exist", d.ID)
	}

	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, driverID string) error {
	query, args, err := qb.Update("drivers").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", driverID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete driver query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete driver %s: %w", driverID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete driver %s rows affected: %w", driverID, err)
	}
	if affected == 0 {
		return fmt.Errorf("driver %s does not exist", driverID)
	}

	return nil
}
