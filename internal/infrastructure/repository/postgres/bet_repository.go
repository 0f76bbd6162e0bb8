package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pitwall/gridbet/internal/domain/bet"
	qb "github.com/pitwall/gridbet/internal/platform/querybuilder"
)

type BetRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewBetRepository(db *sqlx.DB) *BetRepository {
	return &BetRepository{db: db, now: time.Now}
}

func (r *BetRepository) GetByID(ctx context.Context, betID string) (bet.Bet, bool, error) {
	query, args, err := qb.Select("*").From("bets").
		Where(qb.Eq("id", betID)).
		ToSQL()
	if err != nil {
		return bet.Bet{}, false, fmt.Errorf("build get bet by id query: %w", err)
	}

	var row betTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return bet.Bet{}, false, nil
		}
		return bet.Bet{}, false, fmt.Errorf("get bet by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *BetRepository) GetByUserAndRace(ctx context.Context, userID, raceID string) (bet.Bet, bool, error) {
	query, args, err := qb.Select("*").From("bets").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("race_id", raceID),
		).
		ToSQL()
	if err != nil {
		return bet.Bet{}, false, fmt.Errorf("build get bet by user and race query: %w", err)
	}

	var row betTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return bet.Bet{}, false, nil
		}
		return bet.Bet{}, false, fmt.Errorf("get bet by user and race: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *BetRepository) ListByRace(ctx context.Context, raceID string) ([]bet.Bet, error) {
	return r.list(ctx, "select bets by race", qb.Eq("race_id", raceID))
}

func (r *BetRepository) ListByUser(ctx context.Context, userID string) ([]bet.Bet, error) {
	return r.list(ctx, "select bets by user", qb.Eq("user_id", userID))
}

func (r *BetRepository) list(ctx context.Context, op string, cond qb.Condition) ([]bet.Bet, error) {
	query, args, err := qb.Select("*").From("bets").
		Where(cond).
		OrderBy("created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []betTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]bet.Bet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *BetRepository) Create(ctx context.Context, item bet.Bet) error {
	query, args, err := qb.InsertModel("bets", betToTableModel(item), "")
	if err != nil {
		return fmt.Errorf("build insert bet query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}
	return nil
}

func (r *BetRepository) Update(ctx context.Context, item bet.Bet) error {
	model := betToTableModel(item)
	query, args, err := qb.Update("bets").
		Set("p1", model.P1).
		Set("p2", model.P2).
		Set("p3", model.P3).
		Set("p4", model.P4).
		Set("p5", model.P5).
		Set("p6", model.P6).
		Set("p7", model.P7).
		Set("p8", model.P8).
		Set("p9", model.P9).
		Set("p10", model.P10).
		Set("bonus_pole_position", model.PolePosition).
		Set("bonus_fastest_lap", model.FastestLap).
		Set("bonus_driver_of_the_day", model.DriverOfDay).
		Set("bonus_no_dnfs", model.NoDNFs).
		Set("status", model.Status).
		Set("awarded_points", model.AwardedPoints).
		Set("updated_at", model.UpdatedAt).
		Where(qb.Eq("id", model.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update bet query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update bet: %w", err)
	}
	return nil
}

func (r *BetRepository) UpdateScore(ctx context.Context, betID, status string, awardedPoints int) error {
	query, args, err := qb.Update("bets").
		Set("status", status).
		Set("awarded_points", awardedPoints).
		Set("updated_at", r.now().UTC()).
		Where(qb.Eq("id", betID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update bet score query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update bet score: %w", err)
	}
	return nil
}

func (r *BetRepository) Delete(ctx context.Context, betID string) error {
	query, args, err := qb.DeleteFrom("bets").
		Where(qb.Eq("id", betID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete bet query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete bet: %w", err)
	}
	return nil
}
