package scoring

import "time"

// Rules stores the configured point values for every scoring tier and bonus
// category. At most one active instance exists; operators may update it or
// reset it to defaults.
type Rules struct {
	ID         string
	ExactMatch int
	OneOff     int
	TwoOff     int
	Bonus      BonusPoints
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BonusPoints maps each bonus category to its configured value.
type BonusPoints struct {
	PolePosition   int
	FastestLap     int
	DriverOfTheDay int
	NoDNFs         int
}

// Patch enumerates the fields a partial rules update may carry.
type Patch struct {
	ExactMatch     *int
	OneOff         *int
	TwoOff         *int
	PolePosition   *int
	FastestLap     *int
	DriverOfTheDay *int
	NoDNFs         *int
}

func DefaultRules() Rules {
	return Rules{
		ExactMatch: 5,
		OneOff:     3,
		TwoOff:     1,
		Bonus: BonusPoints{
			PolePosition:   5,
			FastestLap:     5,
			DriverOfTheDay: 5,
			NoDNFs:         5,
		},
	}
}

// Apply merges a patch into the rules and returns the result.
func (r Rules) Apply(patch Patch) Rules {
	out := r
	if patch.ExactMatch != nil {
		out.ExactMatch = *patch.ExactMatch
	}
	if patch.OneOff != nil {
		out.OneOff = *patch.OneOff
	}
	if patch.TwoOff != nil {
		out.TwoOff = *patch.TwoOff
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
