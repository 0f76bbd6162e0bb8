package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pitwall/gridbet/internal/domain/race"
	"github.com/pitwall/gridbet/internal/platform/id"
	"github.com/pitwall/gridbet/internal/platform/logging"
)

// CalendarProvider fetches a season's race schedule from an upstream feed.
// The HTTP implementation lives in external/racefeed.
type CalendarProvider interface {
	FetchSeasonCalendar(ctx context.Context, season int) ([]ExternalRound, error)
}

// ExternalRound is one calendar entry as reported by the feed.
type ExternalRound struct {
	Round        int
	Name         string
	Date         time.Time
	IsSprint     bool
	CountryName  string
	FlagFileName string
}

// Betting closes one hour before lights out unless the feed says otherwise.
const defaultBetDeadlineLead = time.Hour

// CalendarService imports a season's schedule as waiting races. Imports are
// additive: rounds already present (same season and name) are skipped, so the
// operation can be re-run safely as the feed fills in late-season dates.
type CalendarService struct {
	raceRepo race.Repository
	provider CalendarProvider
	idGen    id.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewCalendarService(raceRepo race.Repository, provider CalendarProvider, idGen id.Generator, logger *logging.Logger) *CalendarService {
	return &CalendarService{
		raceRepo: raceRepo,
		provider: provider,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

type CalendarImportResult struct {
	Season   int `json:"season"`
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

func (s *CalendarService) ImportSeason(ctx context.Context, season int) (CalendarImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarService.ImportSeason")
	defer span.End()

	if season <= 0 {
		return CalendarImportResult{}, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	rounds, err := s.provider.FetchSeasonCalendar(ctx, season)
	if err != nil {
		return CalendarImportResult{}, fmt.Errorf("%w: fetch season calendar: %v", ErrDependencyUnavailable, err)
	}

	existing, err := s.raceRepo.ListBySeason(ctx, season)
	if err != nil {
		return CalendarImportResult{}, fmt.Errorf("list races for season %d: %w", season, err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		known[r.Name] = struct{}{}
	}

	result := CalendarImportResult{Season: season, Fetched: len(rounds)}
	for _, round := range rounds {
		if round.Name == "" || round.Date.IsZero() {
			result.Skipped++
			continue
		}
		if _, ok := known[round.Name]; ok {
			result.Skipped++
			continue
		}

		raceID, err := s.idGen.NewID()
		if err != nil {
			return result, fmt.Errorf("generate race id: %w", err)
		}

		now := s.now().UTC()
		imported := race.Race{
			ID:           raceID,
			Name:         round.Name,
			Date:         round.Date.UTC(),
			BetDeadline:  round.Date.UTC().Add(-defaultBetDeadlineLead),
			Season:       season,
			IsSprint:     round.IsSprint,
			CountryName:  round.CountryName,
			FlagFileName: round.FlagFileName,
			Status:       race.StatusWaiting,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.raceRepo.Create(ctx, imported); err != nil {
			return result, fmt.Errorf("import race %q: %w", round.Name, err)
		}
		known[round.Name] = struct{}{}
		result.Imported++
	}

	s.logger.InfoContext(ctx, "season calendar imported",
		"season", season,
		"fetched", result.Fetched,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	return result, nil
}
