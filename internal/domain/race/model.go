package race

import (
	"fmt"
	"time"
)

const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

const (
	// ResultPositions is how many finishing positions a result sheet can carry.
	ResultPositions = 12
	// ScoredPositions is how many of them must be present before a race can finish.
	ScoredPositions = 10
)

// Race represents one grand prix weekend on the calendar.
type Race struct {
	ID           string
	Name         string
	Date         time.Time
	BetDeadline  time.Time
	Season       int
	IsSprint     bool
	CountryName  string
	FlagFileName string
	Status       string
	Results      Results
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Results is the authoritative outcome of a finished race. Positions maps
// finishing position (1-based) to driver id; entries are absent until an
// operator fills them in.
type Results struct {
	Positions map[int]string
	Bonus     BonusResults
}

// BonusResults holds the four bonus-category outcomes. NoDNFs stays nil
// until the operator records it.
type BonusResults struct {
	PolePosition   string
	FastestLap     string
	DriverOfTheDay string
	NoDNFs         *bool
}

// Patch enumerates the fields a partial race update may carry.
type Patch struct {
	Name         *string
	Date         *time.Time
	BetDeadline  *time.Time
	Season       *int
	IsSprint     *bool
	CountryName  *string
	FlagFileName *string
	Status       *string
	Positions    map[int]string
	Bonus        BonusPatch
}

// BonusPatch carries partial bonus-result updates.
type BonusPatch struct {
	PolePosition   *string
	FastestLap     *string
	DriverOfTheDay *string
	NoDNFs         *bool
}

// ApplyPatch merges a partial update into the race. Position entries are
// merged one by one so operators can record results incrementally; status is
// ignored here because transitions carry their own rules.
func (r Race) ApplyPatch(patch Patch) Race {
	if patch.Name != nil {
		r.Name = *patch.Name
	}
	if patch.Date != nil {
		r.Date = patch.Date.UTC()
	}
	if patch.BetDeadline != nil {
		r.BetDeadline = patch.BetDeadline.UTC()
	}
	if patch.Season != nil {
		r.Season = *patch.Season
	}
	if patch.IsSprint != nil {
		r.IsSprint = *patch.IsSprint
	}
	if patch.CountryName != nil {
		r.CountryName = *patch.CountryName
	}
	if patch.FlagFileName != nil {
		r.FlagFileName = *patch.FlagFileName
	}

	if len(patch.Positions) > 0 {
		r.Results = r.Results.Clone()
		if r.Results.Positions == nil {
			r.Results.Positions = make(map[int]string, len(patch.Positions))
		}
		for pos, driverID := range patch.Positions {
			r.Results.Positions[pos] = driverID
		}
	}
	if patch.Bonus.PolePosition != nil {
		r.Results.Bonus.PolePosition = *patch.Bonus.PolePosition
	}
	if patch.Bonus.FastestLap != nil {
		r.Results.Bonus.FastestLap = *patch.Bonus.FastestLap
	}
	if patch.Bonus.DriverOfTheDay != nil {
		r.Results.Bonus.DriverOfTheDay = *patch.Bonus.DriverOfTheDay
	}
	if patch.Bonus.NoDNFs != nil {
		v := *patch.Bonus.NoDNFs
		r.Results.Bonus.NoDNFs = &v
	}

	return r
}

// CanTransition reports whether a status change is allowed. Progression is
// one-way; nothing leaves finished.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusWaiting:
		return to == StatusInProgress || to == StatusFinished
	case StatusInProgress:
		return to == StatusFinished
	default:
		return false
	}
}

func ValidStatus(status string) bool {
	switch status {
	case StatusWaiting, StatusInProgress, StatusFinished:
		return true
	default:
		return false
	}
}

// CompleteForFinish checks the invariant for entering the finished status:
// positions 1..10 and all four bonus outcomes must be present. Positions 11
// and 12 are optional and never scored.
func (r Results) CompleteForFinish() error {
	for pos := 1; pos <= ScoredPositions; pos++ {
		if r.Positions[pos] == "" {
			return fmt.Errorf("missing driver result for position p%d", pos)
		}
	}
	if r.Bonus.PolePosition == "" {
		return fmt.Errorf("missing bonus result: polePosition")
	}
	if r.Bonus.FastestLap == "" {
		return fmt.Errorf("missing bonus result: fastestLap")
	}
	if r.Bonus.DriverOfTheDay == "" {
		return fmt.Errorf("missing bonus result: driverOfTheDay")
	}
	if r.Bonus.NoDNFs == nil {
		return fmt.Errorf("missing bonus result: noDNFs")
	}
	return nil
}

// ActualPosition scans positions 1..12 for the given driver and returns its
// finishing position. Result sheets list each driver at most once, so the
// first match is authoritative.
func (r Results) ActualPosition(driverID string) (int, bool) {
	if driverID == "" {
		return 0, false
	}
	for pos := 1; pos <= ResultPositions; pos++ {
		if r.Positions[pos] == driverID {
			return pos, true
		}
	}
	return 0, false
}

// Clone returns a deep copy so callers can stage edits without mutating the
// stored value.
func (r Results) Clone() Results {
	out := Results{Bonus: r.Bonus}
	if r.Positions != nil {
		out.Positions = make(map[int]string, len(r.Positions))
		for pos, driverID := range r.Positions {
			out.Positions[pos] = driverID
		}
	}
	if r.Bonus.NoDNFs != nil {
		v := *r.Bonus.NoDNFs
		out.Bonus.NoDNFs = &v
	}
	return out
}
