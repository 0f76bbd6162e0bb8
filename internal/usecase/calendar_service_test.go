package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitwall/gridbet/internal/domain/race"
	"github.com/pitwall/gridbet/internal/infrastructure/repository/memory"
	"github.com/pitwall/gridbet/internal/platform/id"
	"github.com/pitwall/gridbet/internal/platform/logging"
)

type staticCalendar struct {
	rounds []ExternalRound
	err    error
}

func (s staticCalendar) FetchSeasonCalendar(_ context.Context, _ int) ([]ExternalRound, error) {
	return s.rounds, s.err
}

func TestImportSeason_SkipsExistingRounds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	existing := waitingRace("r1") // named "Australian Grand Prix"

	rounds := []ExternalRound{
		{Round: 1, Name: "Australian Grand Prix", Date: existing.Date, CountryName: "Australia"},
		{Round: 2, Name: "Chinese Grand Prix", Date: existing.Date.AddDate(0, 0, 7), IsSprint: true, CountryName: "China"},
		{Round: 3, Name: ""}, // feed gap
	}

	raceRepo := memory.NewRaceRepository([]race.Race{existing})
	svc := NewCalendarService(raceRepo, staticCalendar{rounds: rounds}, id.NewRandomGenerator(), logging.NewNop())

	result, err := svc.ImportSeason(ctx, 2026)
	if err != nil {
		t.Fatalf("ImportSeason error: %v", err)
	}
	if result.Fetched != 3 || result.Imported != 1 || result.Skipped != 2 {
		t.Fatalf("result = %+v", result)
	}

	races, err := raceRepo.ListBySeason(ctx, 2026)
	if err != nil {
		t.Fatalf("ListBySeason error: %v", err)
	}
	if len(races) != 2 {
		t.Fatalf("len(races) = %d, want 2", len(races))
	}

	var imported race.Race
	for _, r := range races {
		if r.Name == "Chinese Grand Prix" {
			imported = r
		}
	}
	if imported.Status != race.StatusWaiting || !imported.IsSprint {
		t.Fatalf("imported race = %+v", imported)
	}
	if !imported.BetDeadline.Equal(imported.Date.Add(-time.Hour)) {
		t.Fatalf("bet deadline = %v, want one hour before %v", imported.BetDeadline, imported.Date)
	}
}

func TestImportSeason_FeedFailure(t *testing.T) {
	t.Parallel()

	svc := NewCalendarService(memory.NewRaceRepository(nil), staticCalendar{err: errors.New("boom")}, id.NewRandomGenerator(), logging.NewNop())

	if _, err := svc.ImportSeason(context.Background(), 2026); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("ImportSeason error = %v, want ErrDependencyUnavailable", err)
	}
}
