package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/pitwall/gridbet/internal/domain/scoring"
	"github.com/pitwall/gridbet/internal/infrastructure/repository/memory"
	"github.com/pitwall/gridbet/internal/platform/cache"
	"github.com/pitwall/gridbet/internal/platform/id"
)

func newRulesFixture(rules *scoring.Rules) *RulesService {
	return NewRulesService(memory.NewRulesRepository(rules), cache.NewStore(0), id.NewRandomGenerator())
}

func TestRulesActive_MissingRules(t *testing.T) {
	t.Parallel()

	if _, err := newRulesFixture(nil).Active(context.Background()); !errors.Is(err, ErrRulesMissing) {
		t.Fatalf("Active error = %v, want ErrRulesMissing", err)
	}
}

func TestRulesCreate_RefusesSecondInstance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newRulesFixture(nil)

	if _, err := svc.Create(ctx, scoring.DefaultRules()); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.Create(ctx, scoring.DefaultRules()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("second Create error = %v, want ErrInvalidInput", err)
	}
}

func TestRulesUpdate_InvalidatesCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newRulesFixture(activeDefaultRules())

	before, err := svc.Active(ctx)
	if err != nil {
		t.Fatalf("Active error: %v", err)
	}
	if before.ExactMatch != 5 {
		t.Fatalf("ExactMatch = %d, want default 5", before.ExactMatch)
	}

	exact := 10
	if _, err := svc.Update(ctx, scoring.Patch{ExactMatch: &exact}); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	after, err := svc.Active(ctx)
	if err != nil {
		t.Fatalf("Active error: %v", err)
	}
	if after.ExactMatch != 10 {
		t.Fatalf("ExactMatch = %d after update, cache was not invalidated", after.ExactMatch)
	}
}

func TestRulesUpdate_RejectsNegativeValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newRulesFixture(activeDefaultRules())

	negative := -1
	if _, err := svc.Update(ctx, scoring.Patch{OneOff: &negative}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Update error = %v, want ErrInvalidInput", err)
	}
}

func TestRulesReset_RestoresDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	custom := activeDefaultRules()
	custom.ExactMatch = 25
	svc := newRulesFixture(custom)

	reset, err := svc.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	if reset.ExactMatch != 5 || reset.Bonus.NoDNFs != 5 {
		t.Fatalf("reset rules = %+v, want defaults", reset)
	}
	if reset.ID != custom.ID {
		t.Fatalf("reset changed the record identity: %s", reset.ID)
	}
}
