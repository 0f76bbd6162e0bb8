package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pitwall/gridbet/internal/domain/race"
)

type RaceRepository struct {
	mu     sync.RWMutex
	items  map[string]race.Race
	orders []string
}

func NewRaceRepository(races []race.Race) *RaceRepository {
	items := make(map[string]race.Race, len(races))
	orders := make([]string, 0, len(races))

	for _, r := range races {
		items[r.ID] = r
		orders = append(orders, r.ID)
	}

	return &RaceRepository{
		items:  items,
		orders: orders,
	}
}

func (r *RaceRepository) List(_ context.Context) ([]race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Race, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *RaceRepository) ListUpcoming(_ context.Context, after time.Time) ([]race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Race, 0, len(r.orders))
	for _, id := range r.orders {
		item := r.items[id]
		if item.Status != race.StatusFinished && item.Date.After(after) {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *RaceRepository) ListBySeason(_ context.Context, season int) ([]race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Race, 0, len(r.orders))
	for _, id := range r.orders {
		item := r.items[id]
		if item.Season == season {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *RaceRepository) GetByID(_ context.Context, raceID string) (race.Race, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[raceID]
	if !ok {
		return race.Race{}, false, nil
	}

	return item, true, nil
}

func (r *RaceRepository) Create(_ context.Context, item race.Race) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("race %s already exists", item.ID)
	}

	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *RaceRepository) Update(_ context.Context, item race.Race) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("race %s does not exist", item.ID)
	}

	r.items[item.ID] = item
	return nil
}

func (r *RaceRepository) Delete(_ context.Context, raceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[raceID]; !exists {
		return fmt.Errorf("race %s does not exist", raceID)
	}

	delete(r.items, raceID)
	for i, id := range r.orders {
		if id == raceID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}
