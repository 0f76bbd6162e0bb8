package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pitwall/gridbet/internal/domain/user"
)

type UserRepository struct {
	mu     sync.RWMutex
	items  map[string]user.User
	orders []string
	now    func() time.Time
}

func NewUserRepository(users []user.User) *UserRepository {
	items := make(map[string]user.User, len(users))
	orders := make([]string, 0, len(users))

	for _, u := range users {
		items[u.ID] = u
		orders = append(orders, u.ID)
	}

	return &UserRepository{
		items:  items,
		orders: orders,
		now:    time.Now,
	}
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *UserRepository) ListByIDs(_ context.Context, userIDs []string) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	if !ok {
		return user.User{}, false, nil
	}

	return item, true, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		item := r.items[id]
		if item.Username == username {
			return item, true, nil
		}
	}

	return user.User{}, false, nil
}

func (r *UserRepository) Create(_ context.Context, item user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("user %s already exists", item.ID)
	}

	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *UserRepository) Update(_ context.Context, item user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("user %s does not exist", item.ID)
	}

	r.items[item.ID] = item
	return nil
}

func (r *UserRepository) UpdateTotalPoints(_ context.Context, userID string, totalPoints int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[userID]
	if !exists {
		return fmt.Errorf("user %s does not exist", userID)
	}

	item.TotalPoints = totalPoints
	item.UpdatedAt = r.now().UTC()
	r.items[userID] = item
	return nil
}

func (r *UserRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[userID]; !exists {
		return fmt.Errorf("user %s does not exist", userID)
	}

	delete(r.items, userID)
	for i, id := range r.orders {
		if id == userID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}
