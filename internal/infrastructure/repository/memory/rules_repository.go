package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitwall/gridbet/internal/domain/scoring"
)

// RulesRepository stores the single active scoring configuration.
type RulesRepository struct {
	mu     sync.RWMutex
	active *scoring.Rules
}

func NewRulesRepository(rules *scoring.Rules) *RulesRepository {
	repo := &RulesRepository{}
	if rules != nil {
		copied := *rules
		repo.active = &copied
	}
	return repo
}

func (r *RulesRepository) GetActive(_ context.Context) (scoring.Rules, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.active == nil {
		return scoring.Rules{}, false, nil
	}

	return *r.active, true, nil
}

func (r *RulesRepository) Create(_ context.Context, item scoring.Rules) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return fmt.Errorf("scoring rules already exist")
	}

	r.active = &item
	return nil
}

func (r *RulesRepository) Update(_ context.Context, item scoring.Rules) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil || r.active.ID != item.ID {
		return fmt.Errorf("scoring rules %s do not exist", item.ID)
	}

	r.active = &item
	return nil
}

func (r *RulesRepository) Delete(_ context.Context, rulesID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil || r.active.ID != rulesID {
		return fmt.Errorf("scoring rules %s do not exist", rulesID)
	}

	r.active = nil
	return nil
}
