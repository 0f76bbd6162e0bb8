package bet

import (
	"fmt"
	"time"
)

const (
	StatusPending  = "pending"
	StatusFinished = "finished"
)

// PredictedPositions is how many finishing positions a bet must predict.
const PredictedPositions = 10

// Bet is one user's stored prediction for one race. A user holds at most one
// bet per race.
type Bet struct {
	ID            string
	UserID        string
	RaceID        string
	RaceName      string
	Season        int
	Predictions   Predictions
	Status        string
	AwardedPoints int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Predictions is the full pre-race forecast: finishing order P1..P10 plus the
// four bonus calls.
type Predictions struct {
	Positions map[int]string
	Bonus     BonusPredictions
}

type BonusPredictions struct {
	PolePosition   string
	FastestLap     string
	DriverOfTheDay string
	NoDNFs         bool
}

// Patch enumerates the fields a partial bet update may carry. Positions only
// overwrites the keys it contains.
type Patch struct {
	Positions      map[int]string
	PolePosition   *string
	FastestLap     *string
	DriverOfTheDay *string
	NoDNFs         *bool
}

// Validate checks that a prediction is complete: every position 1..10 and all
// bonus driver picks filled in.
func (p Predictions) Validate() error {
	for pos := 1; pos <= PredictedPositions; pos++ {
		if p.Positions[pos] == "" {
			return fmt.Errorf("driver prediction for position p%d is required", pos)
		}
	}
	if p.Bonus.PolePosition == "" {
		return fmt.Errorf("bonus prediction polePosition is required")
	}
	if p.Bonus.FastestLap == "" {
		return fmt.Errorf("bonus prediction fastestLap is required")
	}
	if p.Bonus.DriverOfTheDay == "" {
		return fmt.Errorf("bonus prediction driverOfTheDay is required")
	}
	return nil
}

// Apply merges a patch into the predictions and returns the result.
func (p Predictions) Apply(patch Patch) Predictions {
	out := Predictions{Bonus: p.Bonus}
	out.Positions = make(map[int]string, len(p.Positions))
	for pos, driverID := range p.Positions {
		out.Positions[pos] = driverID
	}
	for pos, driverID := range patch.Positions {
		out.Positions[pos] = driverID
	}
	if patch.PolePosition != nil {
		out.Bonus.PolePosition = *patch.PolePosition
	}
	if patch.FastestLap != nil {
		out.Bonus.FastestLap = *patch.FastestLap
	}
	if patch.DriverOfTheDay != nil {
		out.Bonus.DriverOfTheDay = *patch.DriverOfTheDay
	}
	if patch.NoDNFs != nil {
		out.Bonus.NoDNFs = *patch.NoDNFs
	}
	return out
}
