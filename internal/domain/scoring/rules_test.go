package scoring

import (
	"testing"

	"github.com/pitwall/gridbet/internal/domain/bet"
	"github.com/pitwall/gridbet/internal/domain/race"
)

func boolPtr(v bool) *bool { return &v }

func resultsWithOrder(order ...string) race.Results {
	positions := make(map[int]string, len(order))
	for idx, driverID := range order {
		positions[idx+1] = driverID
	}
	return race.Results{Positions: positions}
}

func TestScore_ToleranceTiers(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	tests := []struct {
		name           string
		actualPosition int
		want           int
	}{
		{name: "exact match", actualPosition: 1, want: 5},
		{name: "one off", actualPosition: 2, want: 3},
		{name: "two off", actualPosition: 3, want: 1},
		{name: "three off", actualPosition: 4, want: 0},
		{name: "way off", actualPosition: 12, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			results := race.Results{Positions: map[int]string{tc.actualPosition: "d-ver"}}
			picks := bet.Predictions{Positions: map[int]string{1: "d-ver"}}

			if got := Score(results, picks, rules); got != tc.want {
				t.Fatalf("Score() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestScore_DriverAbsentFromResults(t *testing.T) {
	t.Parallel()

	results := resultsWithOrder("d1", "d2", "d3")
	picks := bet.Predictions{Positions: map[int]string{1: "d-missing"}}

	if got := Score(results, picks, DefaultRules()); got != 0 {
		t.Fatalf("Score() = %d, want 0 for a driver outside the results", got)
	}
}

func TestScore_EmptyPositionContributesNothing(t *testing.T) {
	t.Parallel()

	results := resultsWithOrder("d1", "d2")
	picks := bet.Predictions{Positions: map[int]string{2: "d2"}}

	if got := Score(results, picks, DefaultRules()); got != 5 {
		t.Fatalf("Score() = %d, want 5 (only p2 predicted)", got)
	}
}

func TestScore_BonusEquality(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	results := race.Results{
		Positions: map[int]string{},
		Bonus: race.BonusResults{
			PolePosition:   "d1",
			FastestLap:     "d2",
			DriverOfTheDay: "d3",
			NoDNFs:         boolPtr(true),
		},
	}

	picks := bet.Predictions{
		Positions: map[int]string{},
		Bonus: bet.BonusPredictions{
			PolePosition:   "d1",
			FastestLap:     "d9",
			DriverOfTheDay: "d3",
			NoDNFs:         false,
		},
	}

	// pole +5, fastest lap miss, driver of the day +5, noDNFs miss.
	if got := Score(results, picks, rules); got != 10 {
		t.Fatalf("Score() = %d, want 10", got)
	}
}

func TestScore_BonusAbsentActualScoresNothing(t *testing.T) {
	t.Parallel()

	results := race.Results{Positions: map[int]string{}}
	picks := bet.Predictions{
		Positions: map[int]string{},
		Bonus: bet.BonusPredictions{
			PolePosition:   "d1",
			FastestLap:     "d2",
			DriverOfTheDay: "d3",
			NoDNFs:         true,
		},
	}

	if got := Score(results, picks, DefaultRules()); got != 0 {
		t.Fatalf("Score() = %d, want 0 against empty results", got)
	}
}

func TestScore_FullRaceScenario(t *testing.T) {
	t.Parallel()

	// Actual order d1..d10, pole d1, fastest lap d2, driver of the day d3,
	// no DNFs. The bet swaps p1/p2 and nails p3..p10, matching pole, fastest
	// lap and noDNFs but missing driver of the day:
	// 3 + 3 + 8*5 + 5 + 5 + 0 + 5 = 61.
	results := resultsWithOrder("d1", "d2", "d3", "d4", "d5", "d6", "d7", "d8", "d9", "d10")
	results.Bonus = race.BonusResults{
		PolePosition:   "d1",
		FastestLap:     "d2",
		DriverOfTheDay: "d3",
		NoDNFs:         boolPtr(true),
	}

	picks := bet.Predictions{
		Positions: map[int]string{
			1: "d2", 2: "d1", 3: "d3", 4: "d4", 5: "d5",
			6: "d6", 7: "d7", 8: "d8", 9: "d9", 10: "d10",
		},
		Bonus: bet.BonusPredictions{
			PolePosition:   "d1",
			FastestLap:     "d2",
			DriverOfTheDay: "d5",
			NoDNFs:         true,
		},
	}

	if got := Score(results, picks, DefaultRules()); got != 61 {
		t.Fatalf("Score() = %d, want 61", got)
	}
}

func TestRules_Validate(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	if err := rules.Validate(); err != nil {
		t.Fatalf("Validate() error for defaults: %v", err)
	}

	rules.TwoOff = -1
	if err := rules.Validate(); err == nil {
		t.Fatal("Validate() accepted a negative point value")
	}
}

func TestRules_Apply(t *testing.T) {
	t.Parallel()

	exact := 10
	noDNFs := 2
	got := DefaultRules().Apply(Patch{ExactMatch: &exact, NoDNFs: &noDNFs})

	if got.ExactMatch != 10 {
		t.Fatalf("ExactMatch = %d, want 10", got.ExactMatch)
	}
	if got.OneOff != 3 || got.TwoOff != 1 {
		t.Fatalf("untouched tiers changed: %+v", got)
	}
	if got.Bonus.NoDNFs != 2 || got.Bonus.PolePosition != 5 {
		t.Fatalf("unexpected bonus values: %+v", got.Bonus)
	}
}
