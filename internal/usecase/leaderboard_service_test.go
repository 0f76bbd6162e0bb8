package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/pitwall/gridbet/internal/domain/bet"
	"github.com/pitwall/gridbet/internal/domain/race"
	"github.com/pitwall/gridbet/internal/domain/user"
	"github.com/pitwall/gridbet/internal/infrastructure/repository/memory"
)

func TestLeaderboardGlobal_OrderingAndTiebreak(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := []user.User{
		{ID: "u1", Username: "niki", Role: user.RolePlayer, TotalPoints: 40},
		{ID: "u2", Username: "ayrton", Role: user.RolePlayer, TotalPoints: 55},
		{ID: "u3", Username: "alain", Role: user.RolePlayer, TotalPoints: 40},
		{ID: "u4", Username: "race-control", Role: user.RoleOperator, TotalPoints: 100},
	}

	svc := NewLeaderboardService(memory.NewUserRepository(users), memory.NewBetRepository(nil), memory.NewRaceRepository(nil))

	entries, err := svc.Global(ctx)
	if err != nil {
		t.Fatalf("Global error: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, operators must not rank", len(entries))
	}

	wantOrder := []string{"ayrton", "alain", "niki"}
	for i, want := range wantOrder {
		if entries[i].Username != want {
			t.Fatalf("entries[%d] = %s, want %s", i, entries[i].Username, want)
		}
		if entries[i].Rank != i+1 {
			t.Fatalf("entries[%d].Rank = %d, want sequential %d", i, entries[i].Rank, i+1)
		}
	}
}

func TestLeaderboardByRace_OrderingAndPendingExcluded(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	finished := waitingRace("r1")
	finished.Status = race.StatusFinished

	users := []user.User{
		{ID: "u1", Username: "niki", Role: user.RolePlayer},
		{ID: "u2", Username: "ayrton", Role: user.RolePlayer},
		{ID: "u3", Username: "alain", Role: user.RolePlayer},
	}
	bets := []bet.Bet{
		{ID: "b1", UserID: "u1", RaceID: "r1", Status: bet.StatusFinished, AwardedPoints: 30},
		{ID: "b2", UserID: "u2", RaceID: "r1", Status: bet.StatusFinished, AwardedPoints: 45},
		{ID: "b3", UserID: "u3", RaceID: "r1", Status: bet.StatusPending},
	}

	svc := NewLeaderboardService(memory.NewUserRepository(users), memory.NewBetRepository(bets), memory.NewRaceRepository([]race.Race{finished}))

	entries, err := svc.ByRace(ctx, "r1")
	if err != nil {
		t.Fatalf("ByRace error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, pending bets must not rank", len(entries))
	}
	if entries[0].Username != "ayrton" || entries[0].Points != 45 || entries[0].Rank != 1 {
		t.Fatalf("entries[0] = %+v", entries[0])
	}
	if entries[1].Username != "niki" || entries[1].Points != 30 || entries[1].Rank != 2 {
		t.Fatalf("entries[1] = %+v", entries[1])
	}
}

func TestLeaderboardByRace_TiesBreakOnUsername(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	finished := waitingRace("r1")
	finished.Status = race.StatusFinished

	users := []user.User{
		{ID: "u1", Username: "niki", Role: user.RolePlayer},
		{ID: "u2", Username: "alain", Role: user.RolePlayer},
	}
	bets := []bet.Bet{
		{ID: "b1", UserID: "u1", RaceID: "r1", Status: bet.StatusFinished, AwardedPoints: 30},
		{ID: "b2", UserID: "u2", RaceID: "r1", Status: bet.StatusFinished, AwardedPoints: 30},
	}

	svc := NewLeaderboardService(memory.NewUserRepository(users), memory.NewBetRepository(bets), memory.NewRaceRepository([]race.Race{finished}))

	entries, err := svc.ByRace(ctx, "r1")
	if err != nil {
		t.Fatalf("ByRace error: %v", err)
	}
	if entries[0].Username != "alain" || entries[1].Username != "niki" {
		t.Fatalf("tie order = %s, %s; want alain, niki", entries[0].Username, entries[1].Username)
	}
}

func TestLeaderboardByRace_RejectsUnfinishedRace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewLeaderboardService(memory.NewUserRepository(nil), memory.NewBetRepository(nil), memory.NewRaceRepository([]race.Race{waitingRace("r1")}))

	if _, err := svc.ByRace(ctx, "r1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("ByRace error = %v, want ErrInvalidInput", err)
	}
}
