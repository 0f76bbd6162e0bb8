package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pitwall/gridbet/internal/domain/bet"
	"github.com/pitwall/gridbet/internal/domain/race"
	"github.com/pitwall/gridbet/internal/platform/id"
)

// RaceService manages the race calendar. Finishing a race is not done here;
// that goes through ScoringService.FinalizeRace so results and bet grading
// stay in one transaction of intent.
type RaceService struct {
	raceRepo race.Repository
	betRepo  bet.Repository
	idGen    id.Generator
	now      func() time.Time
}

func NewRaceService(raceRepo race.Repository, betRepo bet.Repository, idGen id.Generator) *RaceService {
	return &RaceService{
		raceRepo: raceRepo,
		betRepo:  betRepo,
		idGen:    idGen,
		now:      time.Now,
	}
}

type CreateRaceInput struct {
	Name         string
	Date         time.Time
	BetDeadline  time.Time
	Season       int
	IsSprint     bool
	CountryName  string
	FlagFileName string
}

func (in CreateRaceInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: race name is required", ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: race date is required", ErrInvalidInput)
	}
	if in.BetDeadline.IsZero() {
		return fmt.Errorf("%w: bet deadline is required", ErrInvalidInput)
	}
	if !in.BetDeadline.Before(in.Date) {
		return fmt.Errorf("%w: bet deadline must be before the race date", ErrInvalidInput)
	}
	if in.Season <= 0 {
		return fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	return nil
}

func (s *RaceService) Create(ctx context.Context, input CreateRaceInput) (race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.Create")
	defer span.End()

	if err := input.validate(); err != nil {
		return race.Race{}, err
	}

	raceID, err := s.idGen.NewID()
	if err != nil {
		return race.Race{}, fmt.Errorf("generate race id: %w", err)
	}

	now := s.now().UTC()
	created := race.Race{
		ID:           raceID,
		Name:         input.Name,
		Date:         input.Date.UTC(),
		BetDeadline:  input.BetDeadline.UTC(),
		Season:       input.Season,
		IsSprint:     input.IsSprint,
		CountryName:  input.CountryName,
		FlagFileName: input.FlagFileName,
		Status:       race.StatusWaiting,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.raceRepo.Create(ctx, created); err != nil {
		return race.Race{}, fmt.Errorf("create race: %w", err)
	}
	return created, nil
}

func (s *RaceService) Get(ctx context.Context, raceID string) (race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.Get")
	defer span.End()

	return s.getRace(ctx, raceID)
}

func (s *RaceService) List(ctx context.Context) ([]race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.List")
	defer span.End()

	races, err := s.raceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}
	sortRacesByDate(races)
	return races, nil
}

func (s *RaceService) ListUpcoming(ctx context.Context) ([]race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.ListUpcoming")
	defer span.End()

	races, err := s.raceRepo.ListUpcoming(ctx, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list upcoming races: %w", err)
	}
	sortRacesByDate(races)
	return races, nil
}

func (s *RaceService) ListBySeason(ctx context.Context, season int) ([]race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.ListBySeason")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}
	races, err := s.raceRepo.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list races by season: %w", err)
	}
	sortRacesByDate(races)
	return races, nil
}

// Update applies a partial update. Status may only move forward
// (waiting → in_progress); finishing goes through FinalizeRace, so a direct
// status=finished is rejected here.
func (s *RaceService) Update(ctx context.Context, raceID string, patch race.Patch) (race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.Update")
	defer span.End()

	current, err := s.getRace(ctx, raceID)
	if err != nil {
		return race.Race{}, err
	}
	if current.Status == race.StatusFinished {
		return race.Race{}, fmt.Errorf("%w: race %s is finished", ErrInvalidInput, raceID)
	}

	if patch.Status != nil {
		next := *patch.Status
		if !race.ValidStatus(next) {
			return race.Race{}, fmt.Errorf("%w: unknown race status %q", ErrInvalidInput, next)
		}
		if next == race.StatusFinished {
			return race.Race{}, fmt.Errorf("%w: finishing a race requires the finalize operation", ErrInvalidInput)
		}
		if !race.CanTransition(current.Status, next) {
			return race.Race{}, fmt.Errorf("%w: race status cannot move from %s to %s", ErrInvalidInput, current.Status, next)
		}
		current.Status = next
	}

	current = current.ApplyPatch(patch)
	if !current.BetDeadline.Before(current.Date) {
		return race.Race{}, fmt.Errorf("%w: bet deadline must be before the race date", ErrInvalidInput)
	}
	current.UpdatedAt = s.now().UTC()

	if err := s.raceRepo.Update(ctx, current); err != nil {
		return race.Race{}, fmt.Errorf("update race: %w", err)
	}
	return current, nil
}

func (s *RaceService) Delete(ctx context.Context, raceID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.Delete")
	defer span.End()

	current, err := s.getRace(ctx, raceID)
	if err != nil {
		return err
	}
	if current.Status == race.StatusFinished {
		return fmt.Errorf("%w: finished races cannot be deleted", ErrInvalidInput)
	}
	if err := s.raceRepo.Delete(ctx, raceID); err != nil {
		return fmt.Errorf("delete race: %w", err)
	}
	return nil
}

// RaceDashboard is the per-race view for one signed-in user: the race itself,
// the user's bet when one exists, and whether the betting window is still open.
type RaceDashboard struct {
	Race        race.Race `json:"race"`
	Bet         *bet.Bet  `json:"bet,omitempty"`
	BettingOpen bool      `json:"betting_open"`
}

func (s *RaceService) Dashboard(ctx context.Context, userID, raceID string) (RaceDashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.Dashboard")
	defer span.End()

	current, err := s.getRace(ctx, raceID)
	if err != nil {
		return RaceDashboard{}, err
	}

	dashboard := RaceDashboard{
		Race:        current,
		BettingOpen: s.now().UTC().Before(current.BetDeadline) && current.Status == race.StatusWaiting,
	}

	userBet, found, err := s.betRepo.GetByUserAndRace(ctx, userID, raceID)
	if err != nil {
		return RaceDashboard{}, fmt.Errorf("get bet for dashboard: %w", err)
	}
	if found {
		dashboard.Bet = &userBet
	}
	return dashboard, nil
}

func (s *RaceService) getRace(ctx context.Context, raceID string) (race.Race, error) {
	if raceID == "" {
		return race.Race{}, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}
	current, found, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		return race.Race{}, fmt.Errorf("get race: %w", err)
	}
	if !found {
		return race.Race{}, fmt.Errorf("%w: race %s", ErrNotFound, raceID)
	}
	return current, nil
}

func sortRacesByDate(races []race.Race) {
	sort.SliceStable(races, func(i, j int) bool {
		if !races[i].Date.Equal(races[j].Date) {
			return races[i].Date.Before(races[j].Date)
		}
		return races[i].Name < races[j].Name
	})
}
