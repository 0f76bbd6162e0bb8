package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pitwall/gridbet/internal/domain/driver"
	qb "github.com/pitwall/gridbet/internal/platform/querybuilder"
)

type driverTableModel struct {
	ID        string    `db:"id"`
	FullName  string    `db:"full_name"`
	TeamName  string    `db:"team_name"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func driverToTableModel(d driver.Driver) driverTableModel {
	return driverTableModel{
		ID:        d.ID,
		FullName:  d.FullName,
		TeamName:  d.TeamName,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (m driverTableModel) toDomain() driver.Driver {
	return driver.Driver{
		ID:        m.ID,
		FullName:  m.FullName,
		TeamName:  m.TeamName,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type DriverRepository struct {
	db *sqlx.DB
}

func NewDriverRepository(db *sqlx.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) List(ctx context.Context) ([]driver.Driver, error) {
	query, args, err := qb.Select("*").From("drivers").
		OrderBy("full_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select drivers query: %w", err)
	}

	var rows []driverTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select drivers: %w", err)
	}

	out := make([]driver.Driver, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *DriverRepository) GetByID(ctx context.Context, driverID string) (driver.Driver, bool, error) {
	query, args, err := qb.Select("*").From("drivers").
		Where(qb.Eq("id", driverID)).
		ToSQL()
	if err != nil {
		return driver.Driver{}, false, fmt.Errorf("build get driver by id query: %w", err)
	}

	var row driverTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return driver.Driver{}, false, nil
		}
		return driver.Driver{}, false, fmt.Errorf("get driver by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *DriverRepository) Create(ctx context.Context, item driver.Driver) error {
	query, args, err := qb.InsertModel("drivers", driverToTableModel(item), "")
	if err != nil {
		return fmt.Errorf("build insert driver query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

func (r *DriverRepository) Update(ctx context.Context, item driver.Driver) error {
	model := driverToTableModel(item)
	query, args, err := qb.Update("drivers").
		Set("full_name", model.FullName).
		Set("team_name", model.TeamName).
		Set("is_active", model.IsActive).
		Set("updated_at", model.UpdatedAt).
		Where(qb.Eq("id", model.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update driver query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, driverID string) error {
	query, args, err := qb.DeleteFrom("drivers").
		Where(qb.Eq("id", driverID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete driver query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	return nil
}
