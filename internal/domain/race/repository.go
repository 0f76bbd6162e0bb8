package race

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context) ([]Race, error)
	ListUpcoming(ctx context.Context, after time.Time) ([]Race, error)
	ListBySeason(ctx context.Context, season int) ([]Race, error)
	GetByID(ctx context.Context, raceID string) (Race, bool, error)
	Create(ctx context.Context, item Race) error
	Update(ctx context.Context, item Race) error
	Delete(ctx context.Context, raceID string) error
}
