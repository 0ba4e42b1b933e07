package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitwall/fantasy-gp/internal/domain/user"
	qb "github.com/pitwall/fantasy-gp/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

var participantSelectColumns = []string{
	"id",
	"public_id",
	"username",
	"role",
	"budget",
	"season_id",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, participantID string) (user.Participant, bool, error) {
	query, args, err := qb.Select(participantSelectColumns...).From("participants").
		Where(
			qb.Eq("public_id", participantID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return user.Participant{}, false, fmt.Errorf("build select participant query: %w", err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Participant{}, false, nil
		}
		return user.Participant{}, false, fmt.Errorf("select participant: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *UserRepository) ListBySeason(ctx context.Context, seasonID string) ([]user.Participant, error) {
	query, args, err := qb.Select(participantSelectColumns...).From("participants").
		Where(
			qb.Eq("season_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("username").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participants by season query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participants by season: %w", err)
	}

	out := make([]user.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, p user.Participant) error {
	query, args, err := qb.InsertInto("participants").
		Columns("public_id", "username", "role", "budget", "season_id").
		Values(p.ID, p.Username, string(p.Role), p.Budget, p.SeasonID).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert participant query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert participant %s: %w", p.ID, err)
	}

	return nil
}

func (r *UserRepository) Update(ctx context.Context, p user.Participant) error {
	query, args, err := qb.Update("participants").
		Set("username", p.Username).
		Set("role", string(p.Role)).
		Set("budget", p.Budget).
		Set("season_id", p.SeasonID).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", p.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update participant query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update participant %s: %w", p.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update participant %s rows affected: %w", p.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("participant %s does not exist", p.ID)
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, participantID string) error {
	query, args, err := qb.Update("participants").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", participantID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete participant query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete participant %s: %w", participantID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete participant %s rows affected: %w", participantID, err)
	}
	if affected == 0 {
		return fmt.Errorf("participant %s does not exist", participantID)
	}

	return nil
}
