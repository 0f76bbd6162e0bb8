package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pitwall/gridbet/internal/domain/scoring"
	"github.com/pitwall/gridbet/internal/platform/cache"
	"github.com/pitwall/gridbet/internal/platform/id"
)

const rulesCacheKey = "scoring:rules:active"

// RulesService manages the single active scoring configuration. Reads go
// through a small TTL cache; every write invalidates it.
type RulesService struct {
	rulesRepo scoring.Repository
	cache     *cache.Store
	idGen     id.Generator
	now       func() time.Time
}

func NewRulesService(rulesRepo scoring.Repository, store *cache.Store, idGen id.Generator) *RulesService {
	return &RulesService{
		rulesRepo: rulesRepo,
		cache:     store,
		idGen:     idGen,
		now:       time.Now,
	}
}

// Active returns the active rules. Missing rules surface as ErrRulesMissing;
// the engine never scores with silently assumed defaults.
func (s *RulesService) Active(ctx context.Context) (scoring.Rules, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RulesService.Active")
	defer span.End()

	if cached, ok := s.cache.Get(ctx, rulesCacheKey); ok {
		if rules, ok := cached.(scoring.Rules); ok {
			return rules, nil
		}
	}

	rules, found, err := s.rulesRepo.GetActive(ctx)
	if err != nil {
		return scoring.Rules{}, fmt.Errorf("load active scoring rules: %w", err)
	}
	if !found {
		return scoring.Rules{}, ErrRulesMissing
	}

	s.cache.Set(ctx, rulesCacheKey, rules)
	return rules, nil
}

// Create installs the initial rules. It refuses to run twice; updates go
// through Update or Reset.
func (s *RulesService) Create(ctx context.Context, rules scoring.Rules) (scoring.Rules, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RulesService.Create")
	defer span.End()

	if err := rules.Validate(); err != nil {
		return scoring.Rules{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.rulesRepo.GetActive(ctx)
	if err != nil {
		return scoring.Rules{}, fmt.Errorf("check active scoring rules: %w", err)
	}
	if exists {
		return scoring.Rules{}, fmt.Errorf("%w: scoring rules already exist", ErrInvalidInput)
	}

	rulesID, err := s.idGen.NewID()
	if err != nil {
		return scoring.Rules{}, fmt.Errorf("generate rules id: %w", err)
	}

	now := s.now().UTC()
	rules.ID = rulesID
	rules.CreatedAt = now
	rules.UpdatedAt = now
	if err := s.rulesRepo.Create(ctx, rules); err != nil {
		return scoring.Rules{}, fmt.Errorf("create scoring rules: %w", err)
	}

	s.cache.Delete(ctx, rulesCacheKey)
	return rules, nil
}

func (s *RulesService) Update(ctx context.Context, patch scoring.Patch) (scoring.Rules, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RulesService.Update")
	defer span.End()

	current, found, err := s.rulesRepo.GetActive(ctx)
	if err != nil {
		return scoring.Rules{}, fmt.Errorf("load active scoring rules: %w", err)
	}
	if !found {
		return scoring.Rules{}, ErrRulesMissing
	}

	next := current.Apply(patch)
	if err := next.Validate(); err != nil {
		return scoring.Rules{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	next.UpdatedAt = s.now().UTC()

	if err := s.rulesRepo.Update(ctx, next); err != nil {
		return scoring.Rules{}, fmt.Errorf("update scoring rules: %w", err)
	}

	s.cache.Delete(ctx, rulesCacheKey)
	return next, nil
}

// Reset restores the default point scale, keeping the record's identity.
func (s *RulesService) Reset(ctx context.Context) (scoring.Rules, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RulesService.Reset")
	defer span.End()

	current, found, err := s.rulesRepo.GetActive(ctx)
	if err != nil {
		return scoring.Rules{}, fmt.Errorf("load active scoring rules: %w", err)
	}
	if !found {
		return s.Create(ctx, scoring.DefaultRules())
	}

	next := scoring.DefaultRules()
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.now().UTC()

	if err := s.rulesRepo.Update(ctx, next); err != nil {
		return scoring.Rules{}, fmt.Errorf("reset scoring rules: %w", err)
	}

	s.cache.Delete(ctx, rulesCacheKey)
	return next, nil
}
