package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	qb "github.com/pitwall/fantasy-gp/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

var rosterSelectColumns = []string{
	"id",
	"public_id",
	"user_id",
	"race_public_id",
	"budget_used",
	"points",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListByUserAndRace(ctx context.Context, userID, raceID string) ([]roster.Roster, error) {
	return r.list(ctx, []qb.Condition{
		qb.Eq("user_id", userID),
		qb.Eq("race_public_id", raceID),
		qb.IsNull("deleted_at"),
	})
}

func (r *RosterRepository) ListByRace(ctx context.Context, raceID string) ([]roster.Roster, error) {
	return r.list(ctx, []qb.Condition{
		qb.Eq("race_public_id", raceID),
		qb.IsNull("deleted_at"),
	})
}

func (r *RosterRepository) list(ctx context.Context, conditions []qb.Condition) ([]roster.Roster, error) {
	query, args, err := qb.Select(rosterSelectColumns...).From("rosters").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select rosters query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select rosters: %w", err)
	}
	if len(rows) == 0 {
		return []roster.Roster{}, nil
	}

	rosterIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		rosterIDs = append(rosterIDs, row.PublicID)
	}
	picksByRoster, err := r.picksByRoster(ctx, rosterIDs)
	if err != nil {
		return nil, err
	}

	out := make([]roster.Roster, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(picksByRoster[row.PublicID]))
	}

	return out, nil
}

func (r *RosterRepository) Create(ctx context.Context, item roster.Roster) (roster.Roster, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("begin tx for roster create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertRosterQuery = `
INSERT INTO rosters (public_id, user_id, race_public_id, budget_used, points)
VALUES (:public_id, :user_id, :race_public_id, :budget_used, :points)
RETURNING created_at, updated_at`

	insertSQL, insertArgs, err := sqlx.Named(insertRosterQuery, map[string]any{
		"public_id":      item.ID,
		"user_id":        item.UserID,
		"race_public_id": item.RaceID,
		"budget_used":    item.BudgetUsed,
		"points":         item.Points,
	})
	if err != nil {
		return roster.Roster{}, fmt.Errorf("bind insert roster query: %w", err)
	}
	insertSQL = tx.Rebind(insertSQL)

	var createdAt, updatedAt time.Time
	if err := tx.QueryRowxContext(ctx, insertSQL, insertArgs...).Scan(&createdAt, &updatedAt); err != nil {
		return roster.Roster{}, fmt.Errorf("insert roster %s: %w", item.ID, err)
	}

	if err := r.insertPicks(ctx, tx, item.ID, item.Picks); err != nil {
		return roster.Roster{}, err
	}

	if err := tx.Commit(); err != nil {
		return roster.Roster{}, fmt.Errorf("commit roster create tx: %w", err)
	}

	saved := item
	saved.CreatedAt = createdAt
	saved.UpdatedAt = updatedAt

	return saved, nil
}

// Update rewrites the roster row and replaces its picks in one transaction.
func (r *RosterRepository) Update(ctx context.Context, item roster.Roster) (roster.Roster, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("begin tx for roster update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updateRosterQuery = `
UPDATE rosters
SET budget_used = :budget_used,
    points = :points,
    updated_at = NOW()
WHERE public_id = :public_id
  AND deleted_at IS NULL
RETURNING created_at, updated_at`

	updateSQL, updateArgs, err := sqlx.Named(updateRosterQuery, map[string]any{
		"public_id":   item.ID,
		"budget_used": item.BudgetUsed,
		"points":      item.Points,
	})
	if err != nil {
		return roster.Roster{}, fmt.Errorf("bind update roster query: %w", err)
	}
	updateSQL = tx.Rebind(updateSQL)

	var createdAt, updatedAt time.Time
	if err := tx.QueryRowxContext(ctx, updateSQL, updateArgs...).Scan(&createdAt, &updatedAt); err != nil {
		if isNotFound(err) {
			return roster.Roster{}, fmt.Errorf("roster %s does not exist", item.ID)
		}
		return roster.Roster{}, fmt.Errorf("update roster %s: %w", item.ID, err)
	}

	const clearPicksQuery = `
DELETE FROM roster_picks
WHERE roster_public_id = $1`
	if _, err := tx.ExecContext(ctx, clearPicksQuery, item.ID); err != nil {
		return roster.Roster{}, fmt.Errorf("clear roster %s picks: %w", item.ID, err)
	}

	if err := r.insertPicks(ctx, tx, item.ID, item.Picks); err != nil {
		return roster.Roster{}, err
	}

	if err := tx.Commit(); err != nil {
		return roster.Roster{}, fmt.Errorf("commit roster update tx: %w", err)
	}

	saved := item
	saved.CreatedAt = createdAt
	saved.UpdatedAt = updatedAt

	return saved, nil
}

func (r *RosterRepository) Delete(ctx context.Context, rosterID string) error {
	query, args, err := qb.Update("rosters").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", rosterID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete roster query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete roster %s: %w", rosterID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete roster %s rows affected: %w", rosterID, err)
	}
	if affected == 0 {
		return fmt.Errorf("roster %s does not exist", rosterID)
	}

	return nil
}

func (r *RosterRepository) insertPicks(ctx context.Context, tx *sqlx.Tx, rosterID string, picks []roster.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	builder := qb.InsertInto("roster_picks").
		Columns("roster_public_id", "driver_public_id", "value", "categories")
	for _, p := range picks {
		builder = builder.Values(rosterID, p.DriverID, p.Value, categoriesToStrings(p.Categories))
	}
	insertSQL, insertArgs, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert roster picks query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("insert roster %s picks: %w", rosterID, err)
	}

	return nil
}

func (r *RosterRepository) picksByRoster(ctx context.Context, rosterIDs []string) (map[string][]roster.Pick, error) {
	query, args, err := qb.Select("roster_public_id", "driver_public_id", "value", "categories").From("roster_picks").
		Where(qb.In("roster_public_id", stringSliceToAny(rosterIDs))).
		OrderBy("driver_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster picks query: %w", err)
	}

	var rows []rosterPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster picks: %w", err)
	}

	out := make(map[string][]roster.Pick, len(rosterIDs))
	for _, row := range rows {
		out[row.RosterPublicID] = append(out[row.RosterPublicID], row.toDomain())
	}

	return out, nil
}
