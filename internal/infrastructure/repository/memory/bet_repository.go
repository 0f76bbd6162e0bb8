package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pitwall/gridbet/internal/domain/bet"
)

type BetRepository struct {
	mu     sync.RWMutex
	items  map[string]bet.Bet
	orders []string
	now    func() time.Time
}

func NewBetRepository(bets []bet.Bet) *BetRepository {
	items := make(map[string]bet.Bet, len(bets))
	orders := make([]string, 0, len(bets))

	for _, b := range bets {
		items[b.ID] = b
		orders = append(orders, b.ID)
	}

	return &BetRepository{
		items:  items,
		orders: orders,
		now:    time.Now,
	}
}

func (r *BetRepository) GetByID(_ context.Context, betID string) (bet.Bet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[betID]
	if !ok {
		return bet.Bet{}, false, nil
	}

	return item, true, nil
}

func (r *BetRepository) GetByUserAndRace(_ context.Context, userID, raceID string) (bet.Bet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		item := r.items[id]
		if item.UserID == userID && item.RaceID == raceID {
			return item, true, nil
		}
	}

	return bet.Bet{}, false, nil
}

func (r *BetRepository) ListByRace(_ context.Context, raceID string) ([]bet.Bet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bet.Bet, 0, len(r.orders))
	for _, id := range r.orders {
		item := r.items[id]
		if item.RaceID == raceID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *BetRepository) ListByUser(_ context.Context, userID string) ([]bet.Bet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bet.Bet, 0, len(r.orders))
	for _, id := range r.orders {
		item := r.items[id]
		if item.UserID == userID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *BetRepository) Create(_ context.Context, item bet.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("bet %s already exists", item.ID)
	}

	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *BetRepository) Update(_ context.Context, item bet.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("bet %s does not exist", item.ID)
	}

	r.items[item.ID] = item
	return nil
}

func (r *BetRepository) UpdateScore(_ context.Context, betID, status string, awardedPoints int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[betID]
	if !exists {
		return fmt.Errorf("bet %s does not exist", betID)
	}

	item.Status = status
	item.AwardedPoints = awardedPoints
	item.UpdatedAt = r.now().UTC()
	r.items[betID] = item
	return nil
}

func (r *BetRepository) Delete(_ context.Context, betID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[betID]; !exists {
		return fmt.Errorf("bet %s does not exist", betID)
	}

	delete(r.items, betID)
	for i, id := range r.orders {
		if id == betID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}
