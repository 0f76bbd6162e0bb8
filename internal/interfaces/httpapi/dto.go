package httpapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pitwall/gridbet/internal/domain/bet"
	"github.com/pitwall/gridbet/internal/domain/driver"
	"github.com/pitwall/gridbet/internal/domain/race"
	"github.com/pitwall/gridbet/internal/domain/scoring"
	"github.com/pitwall/gridbet/internal/domain/user"
	"github.com/pitwall/gridbet/internal/usecase"
)

// Positions travel on the wire as "p1".."p12" keys, matching the stored
// column layout.

func positionsToWire(positions map[int]string) map[string]string {
	if len(positions) == 0 {
		return nil
	}
	out := make(map[string]string, len(positions))
	for pos, driverID := range positions {
		out["p"+strconv.Itoa(pos)] = driverID
	}
	return out
}

func wirePositions(wire map[string]string, maxPos int) (map[int]string, error) {
	if len(wire) == 0 {
		return nil, nil
	}
	out := make(map[int]string, len(wire))
	for key, driverID := range wire {
		if !strings.HasPrefix(key, "p") {
			return nil, fmt.Errorf("%w: unknown position key %q", usecase.ErrInvalidInput, key)
		}
		pos, err := strconv.Atoi(strings.TrimPrefix(key, "p"))
		if err != nil || pos < 1 || pos > maxPos {
			return nil, fmt.Errorf("%w: position key %q is out of range p1..p%d", usecase.ErrInvalidInput, key, maxPos)
		}
		out[pos] = driverID
	}
	return out, nil
}

type raceResultsDTO struct {
	Positions      map[string]string `json:"positions,omitempty"`
	PolePosition   string            `json:"polePosition,omitempty"`
	FastestLap     string            `json:"fastestLap,omitempty"`
	DriverOfTheDay string            `json:"driverOfTheDay,omitempty"`
	NoDNFs         *bool             `json:"noDNFs,omitempty"`
}

type raceDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Date         time.Time       `json:"date"`
	BetDeadline  time.Time       `json:"betDeadline"`
	Season       int             `json:"season"`
	IsSprint     bool            `json:"isSprint"`
	CountryName  string          `json:"countryName,omitempty"`
	FlagFileName string          `json:"flagFileName,omitempty"`
	Status       string          `json:"status"`
	Results      *raceResultsDTO `json:"results,omitempty"`
}

func raceToDTO(r race.Race) raceDTO {
	dto := raceDTO{
		ID:           r.ID,
		Name:         r.Name,
		Date:         r.Date,
		BetDeadline:  r.BetDeadline,
		Season:       r.Season,
		IsSprint:     r.IsSprint,
		CountryName:  r.CountryName,
		FlagFileName: r.FlagFileName,
		Status:       r.Status,
	}

	if len(r.Results.Positions) > 0 || r.Results.Bonus != (race.BonusResults{}) {
		dto.Results = &raceResultsDTO{
			Positions:      positionsToWire(r.Results.Positions),
			PolePosition:   r.Results.Bonus.PolePosition,
			FastestLap:     r.Results.Bonus.FastestLap,
			DriverOfTheDay: r.Results.Bonus.DriverOfTheDay,
			NoDNFs:         r.Results.Bonus.NoDNFs,
		}
	}
	return dto
}

func racesToDTO(races []race.Race) []raceDTO {
	out := make([]raceDTO, 0, len(races))
	for _, r := range races {
		out = append(out, raceToDTO(r))
	}
	return out
}

type betPredictionsDTO struct {
	Positions      map[string]string `json:"positions"`
	PolePosition   string            `json:"polePosition"`
	FastestLap     string            `json:"fastestLap"`
	DriverOfTheDay string            `json:"driverOfTheDay"`
	NoDNFs         bool              `json:"noDNFs"`
}

type betDTO struct {
	ID            string            `json:"id"`
	RaceID        string            `json:"raceId"`
	RaceName      string            `json:"raceName"`
	Season        int               `json:"season"`
	Predictions   betPredictionsDTO `json:"predictions"`
	Status        string            `json:"status"`
	AwardedPoints int               `json:"awardedPoints"`
}

func betToDTO(b bet.Bet) betDTO {
	return betDTO{
		ID:       b.ID,
		RaceID:   b.RaceID,
		RaceName: b.RaceName,
		Season:   b.Season,
		Predictions: betPredictionsDTO{
			Positions:      positionsToWire(b.Predictions.Positions),
			PolePosition:   b.Predictions.Bonus.PolePosition,
			FastestLap:     b.Predictions.Bonus.FastestLap,
			DriverOfTheDay: b.Predictions.Bonus.DriverOfTheDay,
			NoDNFs:         b.Predictions.Bonus.NoDNFs,
		},
		Status:        b.Status,
		AwardedPoints: b.AwardedPoints,
	}
}

func betsToDTO(bets []bet.Bet) []betDTO {
	out := make([]betDTO, 0, len(bets))
	for _, b := range bets {
		out = append(out, betToDTO(b))
	}
	return out
}

type driverDTO struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	TeamName string `json:"teamName"`
	IsActive bool   `json:"isActive"`
}

func driverToDTO(d driver.Driver) driverDTO {
	return driverDTO{
		ID:       d.ID,
		FullName: d.FullName,
		TeamName: d.TeamName,
		IsActive: d.IsActive,
	}
}

func driversToDTO(drivers []driver.Driver) []driverDTO {
	out := make([]driverDTO, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, driverToDTO(d))
	}
	return out
}

type userDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	TotalPoints int    `json:"totalPoints"`
}

func userToDTO(u user.User) userDTO {
	return userDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		TotalPoints: u.TotalPoints,
	}
}

func usersToDTO(users []user.User) []userDTO {
	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, userToDTO(u))
	}
	return out
}

type rulesDTO struct {
	ExactMatch int `json:"exactMatch"`
	OneOff     int `json:"oneOff"`
	TwoOff     int `json:"twoOff"`
	Bonus      struct {
		PolePosition   int `json:"polePosition"`
		FastestLap     int `json:"fastestLap"`
		DriverOfTheDay int `json:"driverOfTheDay"`
		NoDNFs         int `json:"noDNFs"`
	} `json:"bonus"`
}

func rulesToDTO(r scoring.Rules) rulesDTO {
	dto := rulesDTO{
		ExactMatch: r.ExactMatch,
		OneOff:     r.OneOff,
		TwoOff:     r.TwoOff,
	}
	dto.Bonus.PolePosition = r.Bonus.PolePosition
	dto.Bonus.FastestLap = r.Bonus.FastestLap
	dto.Bonus.DriverOfTheDay = r.Bonus.DriverOfTheDay
	dto.Bonus.NoDNFs = r.Bonus.NoDNFs
	return dto
}

type raceDashboardDTO struct {
	Race        raceDTO `json:"race"`
	Bet         *betDTO `json:"bet,omitempty"`
	BettingOpen bool    `json:"bettingOpen"`
}

func dashboardToDTO(d usecase.RaceDashboard) raceDashboardDTO {
	dto := raceDashboardDTO{
		Race:        raceToDTO(d.Race),
		BettingOpen: d.BettingOpen,
	}
	if d.Bet != nil {
		b := betToDTO(*d.Bet)
		dto.Bet = &b
	}
	return dto
}
