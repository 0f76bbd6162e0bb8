package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pitwall/gridbet/internal/domain/scoring"
	qb "github.com/pitwall/gridbet/internal/platform/querybuilder"
)

type rulesTableModel struct {
	ID           string    `db:"id"`
	ExactMatch   int       `db:"exact_match"`
	OneOff       int       `db:"one_off"`
	TwoOff       int       `db:"two_off"`
	PolePosition int       `db:"bonus_pole_position"`
	FastestLap   int       `db:"bonus_fastest_lap"`
	DriverOfDay  int       `db:"bonus_driver_of_the_day"`
	NoDNFs       int       `db:"bonus_no_dnfs"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func rulesToTableModel(r scoring.Rules) rulesTableModel {
	return rulesTableModel{
		ID:           r.ID,
		ExactMatch:   r.ExactMatch,
		OneOff:       r.OneOff,
		TwoOff:       r.TwoOff,
		PolePosition: r.Bonus.PolePosition,
		FastestLap:   r.Bonus.FastestLap,
		DriverOfDay:  r.Bonus.DriverOfTheDay,
		NoDNFs:       r.Bonus.NoDNFs,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (m rulesTableModel) toDomain() scoring.Rules {
	return scoring.Rules{
		ID:         m.ID,
		ExactMatch: m.ExactMatch,
		OneOff:     m.OneOff,
		TwoOff:     m.TwoOff,
		Bonus: scoring.BonusPoints{
			PolePosition:   m.PolePosition,
			FastestLap:     m.FastestLap,
			DriverOfTheDay: m.DriverOfDay,
			NoDNFs:         m.NoDNFs,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type RulesRepository struct {
	db *sqlx.DB
}

func NewRulesRepository(db *sqlx.DB) *RulesRepository {
	return &RulesRepository{db: db}
}

// GetActive relies on the single-row discipline the rules service enforces:
// at most one scoring_rules row exists at a time.
func (r *RulesRepository) GetActive(ctx context.Context) (scoring.Rules, bool, error) {
	query, args, err := qb.Select("*").From("scoring_rules").
		OrderBy("created_at").
		Limit(1).
		ToSQL()
	if err != nil {
		return scoring.Rules{}, false, fmt.Errorf("build get active rules query: %w", err)
	}

	var row rulesTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Rules{}, false, nil
		}
		return scoring.Rules{}, false, fmt.Errorf("get active rules: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *RulesRepository) Create(ctx context.Context, item scoring.Rules) error {
	query, args, err := qb.InsertModel("scoring_rules", rulesToTableModel(item), "")
	if err != nil {
		return fmt.Errorf("build insert rules query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert rules: %w", err)
	}
	return nil
}

func (r *RulesRepository) Update(ctx context.Context, item scoring.Rules) error {
	model := rulesToTableModel(item)
	query, args, err := qb.Update("scoring_rules").
		Set("exact_match", model.ExactMatch).
		Set("one_off", model.OneOff).
		Set("two_off", model.TwoOff).
		Set("bonus_pole_position", model.PolePosition).
		Set("bonus_fastest_lap", model.FastestLap).
		Set("bonus_driver_of_the_day", model.DriverOfDay).
		Set("bonus_no_dnfs", model.NoDNFs).
		Set("updated_at", model.UpdatedAt).
		Where(qb.Eq("id", model.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update rules query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update rules: %w", err)
	}
	return nil
}

func (r *RulesRepository) Delete(ctx context.Context, rulesID string) error {
	query, args, err := qb.DeleteFrom("scoring_rules").
		Where(qb.Eq("id", rulesID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete rules query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete rules: %w", err)
	}
	return nil
}
