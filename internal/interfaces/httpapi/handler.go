package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/pitwall/gridbet/internal/platform/logging"
	"github.com/pitwall/gridbet/internal/usecase"
)

type Handler struct {
	authService        *usecase.AuthService
	raceService        *usecase.RaceService
	betService         *usecase.BetService
	driverService      *usecase.DriverService
	userService        *usecase.UserService
	rulesService       *usecase.RulesService
	scoringService     *usecase.ScoringService
	leaderboardService *usecase.LeaderboardService
	calendarService    *usecase.CalendarService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	raceService *usecase.RaceService,
	betService *usecase.BetService,
	driverService *usecase.DriverService,
	userService *usecase.UserService,
	rulesService *usecase.RulesService,
	scoringService *usecase.ScoringService,
	leaderboardService *usecase.LeaderboardService,
	calendarService *usecase.CalendarService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:        authService,
		raceService:        raceService,
		betService:         betService,
		driverService:      driverService,
		userService:        userService,
		rulesService:       rulesService,
		scoringService:     scoringService,
		leaderboardService: leaderboardService,
		calendarService:    calendarService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, target)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
