package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pitwall/gridbet/internal/domain/bet"
	"github.com/pitwall/gridbet/internal/domain/race"
	"github.com/pitwall/gridbet/internal/platform/id"
)

// BetService guards the betting window: one bet per user and race, mutable
// only while the race is still open for betting and the bet is ungraded.
type BetService struct {
	betRepo  bet.Repository
	raceRepo race.Repository
	idGen    id.Generator
	now      func() time.Time
}

func NewBetService(betRepo bet.Repository, raceRepo race.Repository, idGen id.Generator) *BetService {
	return &BetService{
		betRepo:  betRepo,
		raceRepo: raceRepo,
		idGen:    idGen,
		now:      time.Now,
	}
}

func (s *BetService) Place(ctx context.Context, userID, raceID string, predictions bet.Predictions) (bet.Bet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BetService.Place")
	defer span.End()

	if userID == "" {
		return bet.Bet{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if err := predictions.Validate(); err != nil {
		return bet.Bet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	target, err := s.openRace(ctx, raceID)
	if err != nil {
		return bet.Bet{}, err
	}

	_, exists, err := s.betRepo.GetByUserAndRace(ctx, userID, raceID)
	if err != nil {
		return bet.Bet{}, fmt.Errorf("check existing bet: %w", err)
	}
	if exists {
		return bet.Bet{}, fmt.Errorf("%w: a bet for this race already exists", ErrInvalidInput)
	}

	betID, err := s.idGen.NewID()
	if err != nil {
		return bet.Bet{}, fmt.Errorf("generate bet id: %w", err)
	}

	now := s.now().UTC()
	placed := bet.Bet{
		ID:          betID,
		UserID:      userID,
		RaceID:      target.ID,
		RaceName:    target.Name,
		Season:      target.Season,
		Predictions: predictions,
		Status:      bet.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.betRepo.Create(ctx, placed); err != nil {
		return bet.Bet{}, fmt.Errorf("create bet: %w", err)
	}
	return placed, nil
}

func (s *BetService) Get(ctx context.Context, userID, betID string) (bet.Bet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BetService.Get")
	defer span.End()

	return s.ownedBet(ctx, userID, betID)
}

func (s *BetService) ListForUser(ctx context.Context, userID string) ([]bet.Bet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BetService.ListForUser")
	defer span.End()

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	bets, err := s.betRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bets for user: %w", err)
	}
	return bets, nil
}

func (s *BetService) Update(ctx context.Context, userID, betID string, patch bet.Patch) (bet.Bet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BetService.Update")
	defer span.End()

	current, err := s.ownedBet(ctx, userID, betID)
	if err != nil {
		return bet.Bet{}, err
	}
	if current.Status != bet.StatusPending {
		return bet.Bet{}, fmt.Errorf("%w: graded bets cannot be changed", ErrInvalidInput)
	}
	if _, err := s.openRace(ctx, current.RaceID); err != nil {
		return bet.Bet{}, err
	}

	current.Predictions = current.Predictions.Apply(patch)
	if err := current.Predictions.Validate(); err != nil {
		return bet.Bet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	current.UpdatedAt = s.now().UTC()

	if err := s.betRepo.Update(ctx, current); err != nil {
		return bet.Bet{}, fmt.Errorf("update bet: %w", err)
	}
	return current, nil
}

func (s *BetService) Delete(ctx context.Context, userID, betID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BetService.Delete")
	defer span.End()

	current, err := s.ownedBet(ctx, userID, betID)
	if err != nil {
		return err
	}
	if current.Status != bet.StatusPending {
		return fmt.Errorf("%w: graded bets cannot be withdrawn", ErrInvalidInput)
	}
	if _, err := s.openRace(ctx, current.RaceID); err != nil {
		return err
	}

	if err := s.betRepo.Delete(ctx, betID); err != nil {
		return fmt.Errorf("delete bet: %w", err)
	}
	return nil
}

// openRace loads the race and checks that its betting window is still open.
func (s *BetService) openRace(ctx context.Context, raceID string) (race.Race, error) {
	if raceID == "" {
		return race.Race{}, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}
	target, found, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		return race.Race{}, fmt.Errorf("get race for bet: %w", err)
	}
	if !found {
		return race.Race{}, fmt.Errorf("%w: race %s", ErrNotFound, raceID)
	}
	if target.Status != race.StatusWaiting {
		return race.Race{}, fmt.Errorf("%w: race %s is no longer open for betting", ErrInvalidInput, raceID)
	}
	if !s.now().UTC().Before(target.BetDeadline) {
		return race.Race{}, fmt.Errorf("%w: the betting deadline for race %s has passed", ErrInvalidInput, raceID)
	}
	return target, nil
}

// ownedBet loads a bet and enforces ownership. A foreign bet reads as not
// found so bet ids do not leak across accounts.
func (s *BetService) ownedBet(ctx context.Context, userID, betID string) (bet.Bet, error) {
	if betID == "" {
		return bet.Bet{}, fmt.Errorf("%w: bet id is required", ErrInvalidInput)
	}
	current, found, err := s.betRepo.GetByID(ctx, betID)
	if err != nil {
		return bet.Bet{}, fmt.Errorf("get bet: %w", err)
	}
	if !found || current.UserID != userID {
		return bet.Bet{}, fmt.Errorf("%w: bet %s", ErrNotFound, betID)
	}
	return current, nil
}
