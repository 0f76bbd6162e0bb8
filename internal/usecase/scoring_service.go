package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pitwall/gridbet/internal/domain/bet"
	"github.com/pitwall/gridbet/internal/domain/race"
	"github.com/pitwall/gridbet/internal/domain/scoring"
	"github.com/pitwall/gridbet/internal/domain/user"
	"github.com/pitwall/gridbet/internal/platform/resilience"
)

const defaultFinalizeWorkers = 8

// ScoringService settles races: it grades every pending bet against the final
// classification and recomputes the total points of the affected users.
type ScoringService struct {
	raceRepo        race.Repository
	betRepo         bet.Repository
	userRepo        user.Repository
	rulesRepo       scoring.Repository
	now             func() time.Time
	finalizeFlight  resilience.SingleFlight
	finalizeWorkers int
}

func NewScoringService(
	raceRepo race.Repository,
	betRepo bet.Repository,
	userRepo user.Repository,
	rulesRepo scoring.Repository,
) *ScoringService {
	return &ScoringService{
		raceRepo:        raceRepo,
		betRepo:         betRepo,
		userRepo:        userRepo,
		rulesRepo:       rulesRepo,
		now:             time.Now,
		finalizeWorkers: defaultFinalizeWorkers,
	}
}

// FinalizeSummary reports what a finalize or regrade run touched.
type FinalizeSummary struct {
	RaceID       string `json:"race_id"`
	BetsScored   int    `json:"bets_scored"`
	UsersUpdated int    `json:"users_updated"`
}

// FinalizeRace moves a race to finished, grades every pending bet against the
// supplied results, and recomputes the totals of every user who had a bet on
// the race. Calling it again on a finished race that still holds pending bets
// resumes grading against the stored results, so a partial write failure is
// retried with the same call; once every bet is settled, further calls fail.
func (s *ScoringService) FinalizeRace(ctx context.Context, raceID string, results race.Results) (FinalizeSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.FinalizeRace")
	defer span.End()

	if raceID == "" {
		return FinalizeSummary{}, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}
	if err := results.CompleteForFinish(); err != nil {
		return FinalizeSummary{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	key := "finalize:" + raceID
	value, err, _ := s.finalizeFlight.Do(key, func() (any, error) {
		return s.finalizeRaceOnce(ctx, raceID, results)
	})
	// The summary rides along even on error so a partial failure still
	// reports how many bets were settled before it.
	summary, ok := value.(FinalizeSummary)
	if err != nil {
		return summary, err
	}
	if !ok {
		return FinalizeSummary{}, fmt.Errorf("finalize race %s: unexpected result type", raceID)
	}
	return summary, nil
}

func (s *ScoringService) finalizeRaceOnce(ctx context.Context, raceID string, results race.Results) (FinalizeSummary, error) {
	current, found, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		return FinalizeSummary{}, fmt.Errorf("get race for finalize: %w", err)
	}
	if !found {
		return FinalizeSummary{}, fmt.Errorf("%w: race %s", ErrNotFound, raceID)
	}
	if current.Status == race.StatusFinished {
		return s.resumeFinalize(ctx, current)
	}

	rules, err := s.activeRules(ctx)
	if err != nil {
		return FinalizeSummary{}, err
	}

	current.Status = race.StatusFinished
	current.Results = results.Clone()
	current.UpdatedAt = s.now().UTC()
	if err := s.raceRepo.Update(ctx, current); err != nil {
		return FinalizeSummary{}, fmt.Errorf("persist finished race: %w", err)
	}

	return s.gradeRaceBets(ctx, current, rules, false)
}

// resumeFinalize handles a finalize call for a race that is already finished.
// If pending bets remain from an earlier run that failed partway, grading
// resumes against the stored results; otherwise the call is rejected.
func (s *ScoringService) resumeFinalize(ctx context.Context, current race.Race) (FinalizeSummary, error) {
	bets, err := s.betRepo.ListByRace(ctx, current.ID)
	if err != nil {
		return FinalizeSummary{}, fmt.Errorf("list bets for race %s: %w", current.ID, err)
	}

	pending := false
	for _, b := range bets {
		if b.Status == bet.StatusPending {
			pending = true
			break
		}
	}
	if !pending {
		return FinalizeSummary{}, fmt.Errorf("%w: race %s is already finished", ErrInvalidInput, current.ID)
	}

	rules, err := s.activeRules(ctx)
	if err != nil {
		return FinalizeSummary{}, err
	}

	return s.gradeRaceBets(ctx, current, rules, false)
}

// RegradeRace rescores every bet of an already finished race with the active
// rules and the stored results. Operators use it after fixing a wrong
// classification or adjusting the point scale.
func (s *ScoringService) RegradeRace(ctx context.Context, raceID string) (FinalizeSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RegradeRace")
	defer span.End()

	if raceID == "" {
		return FinalizeSummary{}, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}

	key := "finalize:" + raceID
	value, err, _ := s.finalizeFlight.Do(key, func() (any, error) {
		current, found, err := s.raceRepo.GetByID(ctx, raceID)
		if err != nil {
			return FinalizeSummary{}, fmt.Errorf("get race for regrade: %w", err)
		}
		if !found {
			return FinalizeSummary{}, fmt.Errorf("%w: race %s", ErrNotFound, raceID)
		}
		if current.Status != race.StatusFinished {
			return FinalizeSummary{}, fmt.Errorf("%w: race %s is not finished", ErrInvalidInput, raceID)
		}
		if err := current.Results.CompleteForFinish(); err != nil {
			return FinalizeSummary{}, fmt.Errorf("%w: stored results are incomplete: %v", ErrInvalidInput, err)
		}

		rules, err := s.activeRules(ctx)
		if err != nil {
			return FinalizeSummary{}, err
		}

		return s.gradeRaceBets(ctx, current, rules, true)
	})
	summary, ok := value.(FinalizeSummary)
	if err != nil {
		return summary, err
	}
	if !ok {
		return FinalizeSummary{}, fmt.Errorf("regrade race %s: unexpected result type", raceID)
	}
	return summary, nil
}

func (s *ScoringService) activeRules(ctx context.Context) (scoring.Rules, error) {
	rules, found, err := s.rulesRepo.GetActive(ctx)
	if err != nil {
		return scoring.Rules{}, fmt.Errorf("load active scoring rules: %w", err)
	}
	if !found {
		return scoring.Rules{}, ErrRulesMissing
	}
	return rules, nil
}

// gradeRaceBets scores the race's bets on a worker pool and then recomputes
// each affected user's total from all their finished bets. With includeFinished
// false, bets already settled keep their points (finalize retry); with it true,
// every bet is rescored (regrade).
func (s *ScoringService) gradeRaceBets(ctx context.Context, current race.Race, rules scoring.Rules, includeFinished bool) (FinalizeSummary, error) {
	bets, err := s.betRepo.ListByRace(ctx, current.ID)
	if err != nil {
		return FinalizeSummary{}, fmt.Errorf("list bets for race %s: %w", current.ID, err)
	}

	toScore := make([]bet.Bet, 0, len(bets))
	for _, b := range bets {
		if !includeFinished && b.Status == bet.StatusFinished {
			continue
		}
		toScore = append(toScore, b)
	}

	summary := FinalizeSummary{RaceID: current.ID}
	if len(bets) == 0 {
		return summary, nil
	}

	var scored atomic.Int32
	var failed atomic.Int32

	pool, err := ants.NewPool(s.finalizeWorkers)
	if err != nil {
		return FinalizeSummary{}, fmt.Errorf("create scoring worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, b := range toScore {
		b := b
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			points := scoring.Score(current.Results, b.Predictions, rules)
			if err := s.betRepo.UpdateScore(ctx, b.ID, bet.StatusFinished, points); err != nil {
				failed.Add(1)
				return
			}
			scored.Add(1)
		}); err != nil {
			workers.Done()
			return FinalizeSummary{}, fmt.Errorf("submit bet %s to scoring pool: %w", b.ID, err)
		}
	}
	workers.Wait()

	summary.BetsScored = int(scored.Load())

	// Totals are rebuilt even after write failures so users whose bets did
	// persist never carry a stale total while the remainder is retried.
	usersUpdated, totalsErr := s.recomputeUserTotals(ctx, bets)
	summary.UsersUpdated = usersUpdated

	if failures := int(failed.Load()); failures > 0 {
		if totalsErr != nil {
			return summary, fmt.Errorf("score bets for race %s: %d of %d failed: %v", current.ID, failures, len(toScore), totalsErr)
		}
		return summary, fmt.Errorf("score bets for race %s: %d of %d failed", current.ID, failures, len(toScore))
	}
	return summary, totalsErr
}

// recomputeUserTotals rebuilds each affected user's total from the full set of
// their finished bets rather than adding deltas, so reruns and regrades always
// converge on the same number.
func (s *ScoringService) recomputeUserTotals(ctx context.Context, raceBets []bet.Bet) (int, error) {
	seen := make(map[string]struct{}, len(raceBets))
	updated := 0
	for _, b := range raceBets {
		if _, ok := seen[b.UserID]; ok {
			continue
		}
		seen[b.UserID] = struct{}{}

		userBets, err := s.betRepo.ListByUser(ctx, b.UserID)
		if err != nil {
			return updated, fmt.Errorf("list bets for user %s: %w", b.UserID, err)
		}

		total := 0
		for _, ub := range userBets {
			if ub.Status == bet.StatusFinished {
				total += ub.AwardedPoints
			}
		}

		if err := s.userRepo.UpdateTotalPoints(ctx, b.UserID, total); err != nil {
			return updated, fmt.Errorf("update total points for user %s: %w", b.UserID, err)
		}
		updated++
	}
	return updated, nil
}
