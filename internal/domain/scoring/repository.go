package scoring

import "context"

type Repository interface {
	// GetActive returns the single active rules instance, if one exists.
	GetActive(ctx context.Context) (Rules, bool, error)
	Create(ctx context.Context, item Rules) error
	Update(ctx context.Context, item Rules) error
	Delete(ctx context.Context, rulesID string) error
}
