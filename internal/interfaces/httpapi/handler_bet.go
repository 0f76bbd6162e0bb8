package httpapi

import (
	"fmt"
	"net/http"

	"github.com/pitwall/gridbet/internal/domain/bet"
	"github.com/pitwall/gridbet/internal/usecase"
)

type placeBetRequest struct {
	RaceID         string            `json:"raceId" validate:"required"`
	Positions      map[string]string `json:"positions" validate:"required"`
	PolePosition   string            `json:"polePosition" validate:"required"`
	FastestLap     string            `json:"fastestLap" validate:"required"`
	DriverOfTheDay string            `json:"driverOfTheDay" validate:"required"`
	NoDNFs         bool              `json:"noDNFs"`
}

type updateBetRequest struct {
	Positions      map[string]string `json:"positions"`
	PolePosition   *string           `json:"polePosition"`
	FastestLap     *string           `json:"fastestLap"`
	DriverOfTheDay *string           `json:"driverOfTheDay"`
	NoDNFs         *bool             `json:"noDNFs"`
}

func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlaceBet")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req placeBetRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	positions, err := wirePositions(req.Positions, bet.PredictedPositions)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	placed, err := h.betService.Place(ctx, principal.UserID, req.RaceID, bet.Predictions{
		Positions: positions,
		Bonus: bet.BonusPredictions{
			PolePosition:   req.PolePosition,
			FastestLap:     req.FastestLap,
			DriverOfTheDay: req.DriverOfTheDay,
			NoDNFs:         req.NoDNFs,
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "place bet failed", "user_id", principal.UserID, "race_id", req.RaceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, betToDTO(placed))
}

func (h *Handler) ListMyBets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyBets")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	bets, err := h.betService.ListForUser(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, betsToDTO(bets))
}

func (h *Handler) GetBet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBet")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	found, err := h.betService.Get(ctx, principal.UserID, r.PathValue("betID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, betToDTO(found))
}

func (h *Handler) UpdateBet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateBet")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req updateBetRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	positions, err := wirePositions(req.Positions, bet.PredictedPositions)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.betService.Update(ctx, principal.UserID, r.PathValue("betID"), bet.Patch{
		Positions:      positions,
		PolePosition:   req.PolePosition,
		FastestLap:     req.FastestLap,
		DriverOfTheDay: req.DriverOfTheDay,
		NoDNFs:         req.NoDNFs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update bet failed", "user_id", principal.UserID, "bet_id", r.PathValue("betID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, betToDTO(updated))
}

func (h *Handler) DeleteBet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteBet")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	if err := h.betService.Delete(ctx, principal.UserID, r.PathValue("betID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}
