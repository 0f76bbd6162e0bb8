package postgres

import (
	"testing"
	"time"

	"github.com/pitwall/gridbet/internal/domain/race"
)

func TestRaceTableModel_PositionColumns(t *testing.T) {
	t.Parallel()

	noDNFs := true
	src := race.Race{
		ID:     "race-1",
		Name:   "Australian Grand Prix",
		Date:   time.Date(2026, time.March, 8, 13, 0, 0, 0, time.UTC),
		Season: 2026,
		Status: race.StatusFinished,
		Results: race.Results{
			Positions: map[int]string{1: "drv-1", 2: "drv-2", 10: "drv-10"},
			Bonus: race.BonusResults{
				PolePosition:   "drv-1",
				FastestLap:     "drv-2",
				DriverOfTheDay: "drv-3",
				NoDNFs:         &noDNFs,
			},
		},
	}

	model := raceToTableModel(src)
	if model.P1.String != "drv-1" || model.P10.String != "drv-10" {
		t.Fatalf("position columns not mapped: p1=%q p10=%q", model.P1.String, model.P10.String)
	}
	if model.P3.Valid {
		t.Fatal("empty position must map to a NULL column")
	}

	back := model.toDomain()
	if len(back.Results.Positions) != 3 {
		t.Fatalf("expected 3 positions after round trip, got %d", len(back.Results.Positions))
	}
	if back.Results.Positions[10] != "drv-10" {
		t.Fatalf("position 10 = %q, want drv-10", back.Results.Positions[10])
	}
	if back.Results.Bonus.NoDNFs == nil || !*back.Results.Bonus.NoDNFs {
		t.Fatal("noDNFs bonus lost in round trip")
	}
}

func TestRaceTableModel_UnsetBonusStaysNil(t *testing.T) {
	t.Parallel()

	back := raceToTableModel(race.Race{ID: "race-1", Status: race.StatusWaiting}).toDomain()
	if back.Results.Bonus.NoDNFs != nil {
		t.Fatal("unset noDNFs must stay nil, not become false")
	}
	if len(back.Results.Positions) != 0 {
		t.Fatalf("expected no positions, got %d", len(back.Results.Positions))
	}
}
