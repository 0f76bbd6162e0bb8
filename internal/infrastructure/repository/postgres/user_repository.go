package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pitwall/gridbet/internal/domain/user"
	qb "github.com/pitwall/gridbet/internal/platform/querybuilder"
)

type userTableModel struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	Role         string    `db:"role"`
	PasswordHash string    `db:"password_hash"`
	TotalPoints  int       `db:"total_points"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func userToTableModel(u user.User) userTableModel {
	return userTableModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		PasswordHash: u.PasswordHash,
		TotalPoints:  u.TotalPoints,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m userTableModel) toDomain() user.User {
	return user.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		TotalPoints:  m.TotalPoints,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type UserRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db, now: time.Now}
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query, args, err := qb.Select("*").From("users").
		OrderBy("username").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *UserRepository) ListByIDs(ctx context.Context, userIDs []string) ([]user.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").From("users").
		Where(qb.In("id", ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select users by ids query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select users by ids: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	return r.get(ctx, "get user by id", qb.Eq("id", userID))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, bool, error) {
	return r.get(ctx, "get user by username", qb.Eq("username", username))
}

func (r *UserRepository) get(ctx context.Context, op string, cond qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(cond).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return row.toDomain(), true, nil
}

func (r *UserRepository) Create(ctx context.Context, item user.User) error {
	query, args, err := qb.InsertModel("users", userToTableModel(item), "")
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, item user.User) error {
	model := userToTableModel(item)
	query, args, err := qb.Update("users").
		Set("username", model.Username).
		Set("email", model.Email).
		Set("role", model.Role).
		Set("password_hash", model.PasswordHash).
		Set("total_points", model.TotalPoints).
		Set("updated_at", model.UpdatedAt).
		Where(qb.Eq("id", model.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateTotalPoints(ctx context.Context, userID string, totalPoints int) error {
	query, args, err := qb.Update("users").
		Set("total_points", totalPoints).
		Set("updated_at", r.now().UTC()).
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user total points query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update user total points: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	query, args, err := qb.DeleteFrom("users").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
