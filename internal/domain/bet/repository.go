package bet

import "context"

type Repository interface {
	GetByID(ctx context.Context, betID string) (Bet, bool, error)
	GetByUserAndRace(ctx context.Context, userID, raceID string) (Bet, bool, error)
	ListByRace(ctx context.Context, raceID string) ([]Bet, error)
	ListByUser(ctx context.Context, userID string) ([]Bet, error)
	Create(ctx context.Context, item Bet) error
	Update(ctx context.Context, item Bet) error
	// UpdateScore writes status and awarded points for one bet. The write is
	// idempotent so a retried finalization can safely repeat it.
	UpdateScore(ctx context.Context, betID, status string, awardedPoints int) error
	Delete(ctx context.Context, betID string) error
}
