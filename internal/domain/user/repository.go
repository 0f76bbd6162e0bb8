package user

import "context"

type Repository interface {
	List(ctx context.Context) ([]User, error)
	ListByIDs(ctx context.Context, userIDs []string) ([]User, error)
	GetByID(ctx context.Context, userID string) (User, bool, error)
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	Create(ctx context.Context, item User) error
	Update(ctx context.Context, item User) error
	// UpdateTotalPoints is an idempotent write of the derived running total.
	UpdateTotalPoints(ctx context.Context, userID string, totalPoints int) error
	Delete(ctx context.Context, userID string) error
}
