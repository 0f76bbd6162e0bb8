package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitwall/gridbet/internal/domain/bet"
	"github.com/pitwall/gridbet/internal/domain/race"
	"github.com/pitwall/gridbet/internal/infrastructure/repository/memory"
	"github.com/pitwall/gridbet/internal/platform/id"
)

func newRaceFixture(races []race.Race, bets []bet.Bet) *RaceService {
	svc := NewRaceService(memory.NewRaceRepository(races), memory.NewBetRepository(bets), id.NewRandomGenerator())
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestCreateRace_RejectsDeadlineAfterDate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newRaceFixture(nil, nil)

	date := time.Date(2026, time.March, 8, 13, 0, 0, 0, time.UTC)
	_, err := svc.Create(ctx, CreateRaceInput{
		Name:        "Australian Grand Prix",
		Date:        date,
		BetDeadline: date.Add(time.Hour),
		Season:      2026,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Create error = %v, want ErrInvalidInput", err)
	}
}

func TestCreateRace_StartsWaiting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newRaceFixture(nil, nil)

	date := time.Date(2026, time.March, 8, 13, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, CreateRaceInput{
		Name:        "Australian Grand Prix",
		Date:        date,
		BetDeadline: date.Add(-time.Hour),
		Season:      2026,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Status != race.StatusWaiting {
		t.Fatalf("status = %s, want waiting", created.Status)
	}
	if created.ID == "" {
		t.Fatal("created race has no id")
	}
}

func TestUpdateRace_StatusIsMonotonic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	inProgress := waitingRace("r1")
	inProgress.Status = race.StatusInProgress
	svc := newRaceFixture([]race.Race{inProgress}, nil)

	back := race.StatusWaiting
	if _, err := svc.Update(ctx, "r1", race.Patch{Status: &back}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Update error = %v, want ErrInvalidInput for backwards transition", err)
	}
}

func TestUpdateRace_RejectsDirectFinish(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newRaceFixture([]race.Race{waitingRace("r1")}, nil)

	finished := race.StatusFinished
	if _, err := svc.Update(ctx, "r1", race.Patch{Status: &finished}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Update error = %v, finishing must go through finalize", err)
	}
}

func TestUpdateRace_AllowsForwardTransitionAndPartialResults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newRaceFixture([]race.Race{waitingRace("r1")}, nil)

	next := race.StatusInProgress
	updated, err := svc.Update(ctx, "r1", race.Patch{
		Status:    &next,
		Positions: map[int]string{1: "d1", 2: "d2"},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Status != race.StatusInProgress {
		t.Fatalf("status = %s, want in_progress", updated.Status)
	}
	if updated.Results.Positions[2] != "d2" {
		t.Fatalf("partial results not merged: %v", updated.Results.Positions)
	}
}

func TestUpdateRace_RejectsFinishedRace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	finished := waitingRace("r1")
	finished.Status = race.StatusFinished
	svc := newRaceFixture([]race.Race{finished}, nil)

	name := "Renamed Grand Prix"
	if _, err := svc.Update(ctx, "r1", race.Patch{Name: &name}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Update error = %v, finished races are immutable", err)
	}
}

func TestRaceDashboard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	bets := []bet.Bet{{ID: "b1", UserID: "u1", RaceID: "r1", Status: bet.StatusPending}}
	svc := newRaceFixture([]race.Race{waitingRace("r1")}, bets)

	dashboard, err := svc.Dashboard(ctx, "u1", "r1")
	if err != nil {
		t.Fatalf("Dashboard error: %v", err)
	}
	if dashboard.Bet == nil || dashboard.Bet.ID != "b1" {
		t.Fatalf("dashboard bet = %+v", dashboard.Bet)
	}
	if !dashboard.BettingOpen {
		t.Fatal("betting should be open before the deadline")
	}

	other, err := svc.Dashboard(ctx, "u2", "r1")
	if err != nil {
		t.Fatalf("Dashboard error: %v", err)
	}
	if other.Bet != nil {
		t.Fatal("dashboard leaked a foreign bet")
	}
}
