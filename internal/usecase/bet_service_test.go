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

func newBetFixture(t *testing.T, races []race.Race, bets []bet.Bet) (*BetService, *memory.BetRepository) {
	t.Helper()

	betRepo := memory.NewBetRepository(bets)
	svc := NewBetService(betRepo, memory.NewRaceRepository(races), id.NewRandomGenerator())
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, betRepo
}

func TestPlaceBet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newBetFixture(t, []race.Race{waitingRace("r1")}, nil)

	placed, err := svc.Place(ctx, "u1", "r1", scenarioPredictions())
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if placed.Status != bet.StatusPending {
		t.Fatalf("status = %s, want pending", placed.Status)
	}
	if placed.RaceName != "Australian Grand Prix" || placed.Season != 2026 {
		t.Fatalf("race snapshot not copied: %+v", placed)
	}
}

func TestPlaceBet_RejectsSecondBetForSameRace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newBetFixture(t, []race.Race{waitingRace("r1")}, nil)

	if _, err := svc.Place(ctx, "u1", "r1", scenarioPredictions()); err != nil {
		t.Fatalf("first Place error: %v", err)
	}
	if _, err := svc.Place(ctx, "u1", "r1", scenarioPredictions()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("second Place error = %v, want ErrInvalidInput", err)
	}
}

func TestPlaceBet_RejectsAfterDeadline(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newBetFixture(t, []race.Race{waitingRace("r1")}, nil)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 8, 12, 30, 0, 0, time.UTC) // past the deadline
	}

	if _, err := svc.Place(ctx, "u1", "r1", scenarioPredictions()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Place error = %v, want ErrInvalidInput after deadline", err)
	}
}

func TestPlaceBet_RejectsIncompletePredictions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newBetFixture(t, []race.Race{waitingRace("r1")}, nil)

	picks := scenarioPredictions()
	delete(picks.Positions, 4)

	if _, err := svc.Place(ctx, "u1", "r1", picks); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Place error = %v, want ErrInvalidInput for incomplete picks", err)
	}
}

func TestUpdateBet_RejectsGradedBet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	graded := bet.Bet{
		ID:          "b1",
		UserID:      "u1",
		RaceID:      "r1",
		Predictions: scenarioPredictions(),
		Status:      bet.StatusFinished,
	}
	svc, _ := newBetFixture(t, []race.Race{waitingRace("r1")}, []bet.Bet{graded})

	pole := "d9"
	if _, err := svc.Update(ctx, "u1", "b1", bet.Patch{PolePosition: &pole}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Update error = %v, want ErrInvalidInput for graded bet", err)
	}
}

func TestUpdateBet_MergesPatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pending := bet.Bet{
		ID:          "b1",
		UserID:      "u1",
		RaceID:      "r1",
		Predictions: scenarioPredictions(),
		Status:      bet.StatusPending,
	}
	svc, betRepo := newBetFixture(t, []race.Race{waitingRace("r1")}, []bet.Bet{pending})

	pole := "d9"
	updated, err := svc.Update(ctx, "u1", "b1", bet.Patch{
		Positions:    map[int]string{1: "d1"},
		PolePosition: &pole,
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Predictions.Positions[1] != "d1" || updated.Predictions.Positions[2] != "d1" {
		t.Fatalf("positions after patch: %v", updated.Predictions.Positions)
	}
	if updated.Predictions.Bonus.PolePosition != "d9" {
		t.Fatalf("pole after patch = %s", updated.Predictions.Bonus.PolePosition)
	}
	if updated.Predictions.Bonus.FastestLap != "d2" {
		t.Fatalf("untouched bonus changed: %s", updated.Predictions.Bonus.FastestLap)
	}

	stored, _, err := betRepo.GetByID(ctx, "b1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if stored.Predictions.Positions[1] != "d1" {
		t.Fatal("patched bet was not persisted")
	}
}

func TestGetBet_ForeignBetReadsAsNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	owned := bet.Bet{ID: "b1", UserID: "u1", RaceID: "r1", Status: bet.StatusPending}
	svc, _ := newBetFixture(t, []race.Race{waitingRace("r1")}, []bet.Bet{owned})

	if _, err := svc.Get(ctx, "u2", "b1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get error = %v, want ErrNotFound for foreign bet", err)
	}
}

func TestDeleteBet_RejectsAfterDeadline(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pending := bet.Bet{ID: "b1", UserID: "u1", RaceID: "r1", Status: bet.StatusPending}
	svc, _ := newBetFixture(t, []race.Race{waitingRace("r1")}, []bet.Bet{pending})
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 8, 12, 30, 0, 0, time.UTC)
	}

	if err := svc.Delete(ctx, "u1", "b1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Delete error = %v, want ErrInvalidInput after deadline", err)
	}
}
