package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pitwall/gridbet/internal/domain/race"
	"github.com/pitwall/gridbet/internal/usecase"
)

type createRaceRequest struct {
	Name         string    `json:"name" validate:"required"`
	Date         time.Time `json:"date" validate:"required"`
	BetDeadline  time.Time `json:"betDeadline" validate:"required"`
	Season       int       `json:"season" validate:"required,gt=0"`
	IsSprint     bool      `json:"isSprint"`
	CountryName  string    `json:"countryName"`
	FlagFileName string    `json:"flagFileName"`
}

type updateRaceRequest struct {
	Name           *string           `json:"name"`
	Date           *time.Time        `json:"date"`
	BetDeadline    *time.Time        `json:"betDeadline"`
	Season         *int              `json:"season" validate:"omitempty,gt=0"`
	IsSprint       *bool             `json:"isSprint"`
	CountryName    *string           `json:"countryName"`
	FlagFileName   *string           `json:"flagFileName"`
	Status         *string           `json:"status"`
	Positions      map[string]string `json:"positions"`
	PolePosition   *string           `json:"polePosition"`
	FastestLap     *string           `json:"fastestLap"`
	DriverOfTheDay *string           `json:"driverOfTheDay"`
	NoDNFs         *bool             `json:"noDNFs"`
}

type finalizeRaceRequest struct {
	Positions      map[string]string `json:"positions" validate:"required"`
	PolePosition   string            `json:"polePosition" validate:"required"`
	FastestLap     string            `json:"fastestLap" validate:"required"`
	DriverOfTheDay string            `json:"driverOfTheDay" validate:"required"`
	NoDNFs         *bool             `json:"noDNFs" validate:"required"`
}

func (h *Handler) ListRaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaces")
	defer span.End()

	races, err := h.raceService.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, racesToDTO(races))
}

func (h *Handler) ListUpcomingRaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUpcomingRaces")
	defer span.End()

	races, err := h.raceService.ListUpcoming(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, racesToDTO(races))
}

func (h *Handler) ListRacesBySeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRacesBySeason")
	defer span.End()

	season, err := strconv.Atoi(r.PathValue("season"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: season must be a number", usecase.ErrInvalidInput))
		return
	}

	races, err := h.raceService.ListBySeason(ctx, season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, racesToDTO(races))
}

func (h *Handler) GetRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRace")
	defer span.End()

	found, err := h.raceService.Get(ctx, r.PathValue("raceID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, raceToDTO(found))
}

func (h *Handler) GetRaceDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRaceDashboard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	dashboard, err := h.raceService.Dashboard(ctx, principal.UserID, r.PathValue("raceID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}

func (h *Handler) CreateRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRace")
	defer span.End()

	var req createRaceRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.raceService.Create(ctx, usecase.CreateRaceInput{
		Name:         req.Name,
		Date:         req.Date,
		BetDeadline:  req.BetDeadline,
		Season:       req.Season,
		IsSprint:     req.IsSprint,
		CountryName:  req.CountryName,
		FlagFileName: req.FlagFileName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create race failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, raceToDTO(created))
}

func (h *Handler) UpdateRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateRace")
	defer span.End()

	var req updateRaceRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	positions, err := wirePositions(req.Positions, race.ResultPositions)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.raceService.Update(ctx, r.PathValue("raceID"), race.Patch{
		Name:         req.Name,
		Date:         req.Date,
		BetDeadline:  req.BetDeadline,
		Season:       req.Season,
		IsSprint:     req.IsSprint,
		CountryName:  req.CountryName,
		FlagFileName: req.FlagFileName,
		Status:       req.Status,
		Positions:    positions,
		Bonus: race.BonusPatch{
			PolePosition:   req.PolePosition,
			FastestLap:     req.FastestLap,
			DriverOfTheDay: req.DriverOfTheDay,
			NoDNFs:         req.NoDNFs,
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update race failed", "race_id", r.PathValue("raceID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, raceToDTO(updated))
}

func (h *Handler) DeleteRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteRace")
	defer span.End()

	if err := h.raceService.Delete(ctx, r.PathValue("raceID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) FinalizeRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeRace")
	defer span.End()

	var req finalizeRaceRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	positions, err := wirePositions(req.Positions, race.ResultPositions)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.scoringService.FinalizeRace(ctx, r.PathValue("raceID"), race.Results{
		Positions: positions,
		Bonus: race.BonusResults{
			PolePosition:   req.PolePosition,
			FastestLap:     req.FastestLap,
			DriverOfTheDay: req.DriverOfTheDay,
			NoDNFs:         req.NoDNFs,
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "finalize race failed", "race_id", r.PathValue("raceID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "race finalized",
		"race_id", summary.RaceID,
		"bets_scored", summary.BetsScored,
		"users_updated", summary.UsersUpdated,
	)
	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) RegradeRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegradeRace")
	defer span.End()

	summary, err := h.scoringService.RegradeRace(ctx, r.PathValue("raceID"))
	if err != nil {
		h.logger.WarnContext(ctx, "regrade race failed", "race_id", r.PathValue("raceID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "race regraded",
		"race_id", summary.RaceID,
		"bets_scored", summary.BetsScored,
		"users_updated", summary.UsersUpdated,
	)
	writeSuccess(ctx, w, http.StatusOK, summary)
}
