package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitwall/fantasy-gp/internal/domain/race"
	qb "github.com/pitwall/fantasy-gp/internal/platform/querybuilder"
)

type RaceRepository struct {
	db *sqlx.DB
}

var raceSelectColumns = []string{
	"id",
	"public_id",
	"season_id",
	"round",
	"location",
	"submission_deadline",
	"is_locked",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewRaceRepository(db *sqlx.DB) *RaceRepository {
	return &RaceRepository{db: db}
}

func (r *RaceRepository) ListBySeason(ctx context.Context, seasonID string) ([]race.Race, error) {
	query, args, err := qb.Select(raceSelectColumns...).From("races").
		Where(
			qb.Eq("season_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("round").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select races by season query: %w", err)
	}

	var rows []raceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select races by season: %w", err)
	}
	if len(rows) == 0 {
		return []race.Race{}, nil
	}

	raceIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		raceIDs = append(raceIDs, row.PublicID)
	}
	sessionsByRace, err := r.sessionsByRace(ctx, raceIDs)
	if err != nil {
		return nil, err
	}

	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(sessionsByRace[row.PublicID]))
	}

	return out, nil
}

func (r *RaceRepository) GetByID(ctx context.Context, raceID string) (race.Race, bool, error) {
	query, args, err := qb.Select(raceSelectColumns...).From("races").
		Where(
			qb.Eq("public_id", raceID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return race.Race{}, false, fmt.Errorf("build select race query: %w", err)
	}

	var row raceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return race.Race{}, false, nil
		}
		return race.Race{}, false, fmt.Errorf("select race: %w", err)
	}

	sessionsByRace, err := r.sessionsByRace(ctx, []string{row.PublicID})
	if err != nil {
		return race.Race{}, false, err
	}

	return row.toDomain(sessionsByRace[row.PublicID]), true, nil
}

// Update rewrites the race row and replaces its session schedule in one
// transaction.
func (r *RaceRepository) Update(ctx context.Context, item race.Race) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for race update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("races").
		Set("season_id", item.SeasonID).
		Set("round", item.Round).
		Set("location", item.Location).
		Set("submission_deadline", item.SubmissionDeadline).
		Set("is_locked", item.IsLocked).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update race query: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update race %s: %w", item.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update race %s rows affected: %w", item.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("race %s does not exist", item.ID)
	}

	const clearSessionsQuery = `
DELETE FROM race_sessions
WHERE race_public_id = $1`
	if _, err := tx.ExecContext(ctx, clearSessionsQuery, item.ID); err != nil {
		return fmt.Errorf("clear race %s sessions: %w", item.ID, err)
	}

	if len(item.Sessions) > 0 {
		builder := qb.InsertInto("race_sessions").
			Columns("race_public_id", "name", "starts_at", "ends_at")
		for _, s := range item.Sessions {
			builder = builder.Values(item.ID, s.Name, s.StartsAt, s.EndsAt)
		}
		insertSQL, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert race sessions query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return fmt.Errorf("insert race %s sessions: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit race update tx: %w", err)
	}

	return nil
}

func (r *RaceRepository) sessionsByRace(ctx context.Context, raceIDs []string) (map[string][]race.Session, error) {
	query, args, err := qb.Select("race_public_id", "name", "starts_at", "ends_at").From("race_sessions").
		Where(qb.In("race_public_id", stringSliceToAny(raceIDs))).
		OrderBy("starts_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select race sessions query: %w", err)
	}

	var rows []raceSessionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select race sessions: %w", err)
	}

	out := make(map[string][]race.Session, len(raceIDs))
	for _, row := range rows {
		out[row.RacePublicID] = append(out[row.RacePublicID], race.Session{
			Name:     row.Name,
			StartsAt: row.StartsAt,
			EndsAt:   row.EndsAt,
		})
	}

	return out, nil
}
