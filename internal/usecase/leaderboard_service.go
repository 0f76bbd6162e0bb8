package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/pitwall/gridbet/internal/domain/bet"
	"github.com/pitwall/gridbet/internal/domain/race"
	"github.com/pitwall/gridbet/internal/domain/user"
)

// LeaderboardService projects standings from stored users and graded bets. It
// owns no state of its own; ranks are recomputed on every read.
type LeaderboardService struct {
	userRepo user.Repository
	betRepo  bet.Repository
	raceRepo race.Repository
}

func NewLeaderboardService(userRepo user.Repository, betRepo bet.Repository, raceRepo race.Repository) *LeaderboardService {
	return &LeaderboardService{
		userRepo: userRepo,
		betRepo:  betRepo,
		raceRepo: raceRepo,
	}
}

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	TotalPoints int    `json:"total_points"`
}

type RaceLeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// Global ranks every player by accumulated total points, highest first, with
// username as the tiebreak. Ranks are sequential: equal totals still get
// distinct ranks, ordered by username.
func (s *LeaderboardService) Global(ctx context.Context) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Global")
	defer span.End()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users for leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		if u.Role != user.RolePlayer {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID:      u.ID,
			Username:    u.Username,
			TotalPoints: u.TotalPoints,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].Username < entries[j].Username
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

// ByRace ranks the graded bets of one finished race, highest points first with
// username as the tiebreak. Pending bets are excluded.
func (s *LeaderboardService) ByRace(ctx context.Context, raceID string) ([]RaceLeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.ByRace")
	defer span.End()

	if raceID == "" {
		return nil, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}

	current, found, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("get race for leaderboard: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: race %s", ErrNotFound, raceID)
	}
	if current.Status != race.StatusFinished {
		return nil, fmt.Errorf("%w: race %s has no results yet", ErrInvalidInput, raceID)
	}

	bets, err := s.betRepo.ListByRace(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("list bets for race leaderboard: %w", err)
	}

	userIDs := make([]string, 0, len(bets))
	for _, b := range bets {
		if b.Status == bet.StatusFinished {
			userIDs = append(userIDs, b.UserID)
		}
	}
	users, err := s.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list users for race leaderboard: %w", err)
	}
	usernames := make(map[string]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	entries := make([]RaceLeaderboardEntry, 0, len(bets))
	for _, b := range bets {
		if b.Status != bet.StatusFinished {
			continue
		}
		entries = append(entries, RaceLeaderboardEntry{
			UserID:   b.UserID,
			Username: usernames[b.UserID],
			Points:   b.AwardedPoints,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Username < entries[j].Username
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}
