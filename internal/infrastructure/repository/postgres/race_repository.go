package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pitwall/gridbet/internal/domain/race"
	qb "github.com/pitwall/gridbet/internal/platform/querybuilder"
)

type RaceRepository struct {
	db *sqlx.DB
}

func NewRaceRepository(db *sqlx.DB) *RaceRepository {
	return &RaceRepository{db: db}
}

func (r *RaceRepository) List(ctx context.Context) ([]race.Race, error) {
	query, args, err := qb.Select("*").From("races").
		OrderBy("date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select races query: %w", err)
	}

	var rows []raceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select races: %w", err)
	}

	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RaceRepository) ListUpcoming(ctx context.Context, after time.Time) ([]race.Race, error) {
	query, args, err := qb.Select("*").From("races").
		Where(qb.Gt("date", after)).
		OrderBy("date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select upcoming races query: %w", err)
	}

	var rows []raceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select upcoming races: %w", err)
	}

	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RaceRepository) ListBySeason(ctx context.Context, season int) ([]race.Race, error) {
	query, args, err := qb.Select("*").From("races").
		Where(qb.Eq("season", season)).
		OrderBy("date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select races by season query: %w", err)
	}

	var rows []raceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select races by season: %w", err)
	}

	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RaceRepository) GetByID(ctx context.Context, raceID string) (race.Race, bool, error) {
	query, args, err := qb.Select("*").From("races").
		Where(qb.Eq("id", raceID)).
		ToSQL()
	if err != nil {
		return race.Race{}, false, fmt.Errorf("build get race by id query: %w", err)
	}

	var row raceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return race.Race{}, false, nil
		}
		return race.Race{}, false, fmt.Errorf("get race by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *RaceRepository) Create(ctx context.Context, item race.Race) error {
	query, args, err := qb.InsertModel("races", raceToTableModel(item), "")
	if err != nil {
		return fmt.Errorf("build insert race query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert race: %w", err)
	}
	return nil
}

func (r *RaceRepository) Update(ctx context.Context, item race.Race) error {
	model := raceToTableModel(item)
	query, args, err := qb.Update("races").
		Set("name", model.Name).
		Set("date", model.Date).
		Set("bet_deadline", model.BetDeadline).
		Set("season", model.Season).
		Set("is_sprint", model.IsSprint).
		Set("country_name", model.CountryName).
		Set("flag_file_name", model.FlagFileName).
		Set("status", model.Status).
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
		Set("p11", model.P11).
		Set("p12", model.P12).
		Set("bonus_pole_position", model.PolePosition).
		Set("bonus_fastest_lap", model.FastestLap).
		Set("bonus_driver_of_the_day", model.DriverOfDay).
		Set("bonus_no_dnfs", model.NoDNFs).
		Set("updated_at", model.UpdatedAt).
		Where(qb.Eq("id", model.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update race query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update race: %w", err)
	}
	return nil
}

func (r *RaceRepository) Delete(ctx context.Context, raceID string) error {
	query, args, err := qb.DeleteFrom("races").
		Where(qb.Eq("id", raceID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete race query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete race: %w", err)
	}
	return nil
}
