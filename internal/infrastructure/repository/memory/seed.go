package memory

import (
	"time"

	"github.com/pitwall/gridbet/internal/domain/driver"
	"github.com/pitwall/gridbet/internal/domain/race"
	"github.com/pitwall/gridbet/internal/domain/scoring"
	"github.com/pitwall/gridbet/internal/domain/user"
)

const (
	SeedSeason = 2026

	// bcrypt hash of "changeme-now", the dev-mode operator password.
	seedOperatorHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

func SeedUsers() []user.User {
	return []user.User{
		{
			ID:           "usr-operator",
			Username:     "race-control",
			Email:        "race-control@gridbet.local",
			Role:         user.RoleOperator,
			PasswordHash: seedOperatorHash,
		},
		{
			ID:           "usr-demo",
			Username:     "demo-player",
			Email:        "demo@gridbet.local",
			Role:         user.RolePlayer,
			PasswordHash: seedOperatorHash,
		},
	}
}

func SeedDrivers() []driver.Driver {
	return []driver.Driver{
		{ID: "drv-verstappen", FullName: "Max Verstappen", TeamName: "Red Bull Racing", IsActive: true},
		{ID: "drv-norris", FullName: "Lando Norris", TeamName: "McLaren", IsActive: true},
		{ID: "drv-piastri", FullName: "Oscar Piastri", TeamName: "McLaren", IsActive: true},
		{ID: "drv-leclerc", FullName: "Charles Leclerc", TeamName: "Ferrari", IsActive: true},
		{ID: "drv-hamilton", FullName: "Lewis Hamilton", TeamName: "Ferrari", IsActive: true},
		{ID: "drv-russell", FullName: "George Russell", TeamName: "Mercedes", IsActive: true},
		{ID: "drv-antonelli", FullName: "Andrea Kimi Antonelli", TeamName: "Mercedes", IsActive: true},
		{ID: "drv-alonso", FullName: "Fernando Alonso", TeamName: "Aston Martin", IsActive: true},
		{ID: "drv-stroll", FullName: "Lance Stroll", TeamName: "Aston Martin", IsActive: true},
		{ID: "drv-gasly", FullName: "Pierre Gasly", TeamName: "Alpine", IsActive: true},
		{ID: "drv-hulkenberg", FullName: "Nico Hulkenberg", TeamName: "Sauber", IsActive: true},
		{ID: "drv-albon", FullName: "Alexander Albon", TeamName: "Williams", IsActive: true},
	}
}

func SeedRaces() []race.Race {
	raceDate := time.Date(SeedSeason, time.March, 8, 13, 0, 0, 0, time.UTC)
	return []race.Race{
		{
			ID:           "race-australia",
			Name:         "Australian Grand Prix",
			Date:         raceDate,
			BetDeadline:  raceDate.Add(-time.Hour),
			Season:       SeedSeason,
			CountryName:  "Australia",
			FlagFileName: "au.svg",
			Status:       race.StatusWaiting,
		},
		{
			ID:           "race-china",
			Name:         "Chinese Grand Prix",
			Date:         raceDate.AddDate(0, 0, 7),
			BetDeadline:  raceDate.AddDate(0, 0, 7).Add(-time.Hour),
			Season:       SeedSeason,
			IsSprint:     true,
			CountryName:  "China",
			FlagFileName: "cn.svg",
			Status:       race.StatusWaiting,
		},
	}
}

func SeedRules() *scoring.Rules {
	rules := scoring.DefaultRules()
	rules.ID = "rules-default"
	return &rules
}
