package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitwall/gridbet/internal/domain/driver"
)

type DriverRepository struct {
	mu     sync.RWMutex
	items  map[string]driver.Driver
	orders []string
}

func NewDriverRepository(drivers []driver.Driver) *DriverRepository {
	items := make(map[string]driver.Driver, len(drivers))
	orders := make([]string, 0, len(drivers))

	for _, d := range drivers {
		items[d.ID] = d
		orders = append(orders, d.ID)
	}

	return &DriverRepository{
		items:  items,
		orders: orders,
	}
}

func (r *DriverRepository) List(_ context.Context) ([]driver.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]driver.Driver, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *DriverRepository) GetByID(_ context.Context, driverID string) (driver.Driver, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[driverID]
	if !ok {
		return driver.Driver{}, false, nil
	}

	return item, true, nil
}

func (r *DriverRepository) Create(_ context.Context, item driver.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("driver %s already exists", item.ID)
	}

	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *DriverRepository) Update(_ context.Context, item driver.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("driver %s does not exist", item.ID)
	}

	r.items[item.ID] = item
	return nil
}

func (r *DriverRepository) Delete(_ context.Context, driverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[driverID]; !exists {
		return fmt.Errorf("driver %s does not exist", driverID)
	}

	delete(r.items, driverID)
	for i, id := range r.orders {
		if id == driverID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}
