package scoring

import (
	"fmt"

	"github.com/pitwall/gridbet/internal/domain/bet"
	"github.com/pitwall/gridbet/internal/domain/race"
)

// Score computes the points one bet earns against a finished race's results.
// It is a pure function of {results, predictions, rules}.
//
// Finishing-order picks score by tolerance tier on the absolute difference
// between predicted and actual position: 0 off earns ExactMatch, 1 off earns
// OneOff, 2 off earns TwoOff, anything further (or a driver absent from the
// top 12) earns nothing. Bonus picks score their configured value on exact
// equality with the recorded outcome.
func Score(results race.Results, picks bet.Predictions, rules Rules) int {
	total := 0

	for predicted := 1; predicted <= bet.PredictedPositions; predicted++ {
		driverID := picks.Positions[predicted]
		if driverID == "" {
			continue
		}
		actual, found := results.ActualPosition(driverID)
		if !found {
			continue
		}
		switch diff := abs(predicted - actual); diff {
		case 0:
			total += rules.ExactMatch
		case 1:
			total += rules.OneOff
		case 2:
			total += rules.TwoOff
		}
	}

	if picks.Bonus.PolePosition != "" && picks.Bonus.PolePosition == results.Bonus.PolePosition {
		total += rules.Bonus.PolePosition
	}
	if picks.Bonus.FastestLap != "" && picks.Bonus.FastestLap == results.Bonus.FastestLap {
		total += rules.Bonus.FastestLap
	}
	if picks.Bonus.DriverOfTheDay != "" && picks.Bonus.DriverOfTheDay == results.Bonus.DriverOfTheDay {
		total += rules.Bonus.DriverOfTheDay
	}
	if results.Bonus.NoDNFs != nil && picks.Bonus.NoDNFs == *results.Bonus.NoDNFs {
		total += rules.Bonus.NoDNFs
	}

	return total
}

// Validate rejects negative point values. Zero is allowed so operators can
// switch a tier off.
func (r Rules) Validate() error {
	for _, check := range []struct {
		name  string
		value int
	}{
		{"exactMatch", r.ExactMatch},
		{"oneOff", r.OneOff},
		{"twoOff", r.TwoOff},
		{"polePosition", r.Bonus.PolePosition},
		{"fastestLap", r.Bonus.FastestLap},
		{"driverOfTheDay", r.Bonus.DriverOfTheDay},
		{"noDNFs", r.Bonus.NoDNFs},
	} {
		if check.value < 0 {
			return fmt.Errorf("point value %s must not be negative", check.name)
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
