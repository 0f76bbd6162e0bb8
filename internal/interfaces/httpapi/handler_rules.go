package httpapi

import (
	"net/http"

	"github.com/pitwall/gridbet/internal/domain/scoring"
)

type createRulesRequest struct {
	ExactMatch     int `json:"exactMatch" validate:"gte=0"`
	OneOff         int `json:"oneOff" validate:"gte=0"`
	TwoOff         int `json:"twoOff" validate:"gte=0"`
	PolePosition   int `json:"polePosition" validate:"gte=0"`
	FastestLap     int `json:"fastestLap" validate:"gte=0"`
	DriverOfTheDay int `json:"driverOfTheDay" validate:"gte=0"`
	NoDNFs         int `json:"noDNFs" validate:"gte=0"`
}

type updateRulesRequest struct {
	ExactMatch     *int `json:"exactMatch" validate:"omitempty,gte=0"`
	OneOff         *int `json:"oneOff" validate:"omitempty,gte=0"`
	TwoOff         *int `json:"twoOff" validate:"omitempty,gte=0"`
	PolePosition   *int `json:"polePosition" validate:"omitempty,gte=0"`
	FastestLap     *int `json:"fastestLap" validate:"omitempty,gte=0"`
	DriverOfTheDay *int `json:"driverOfTheDay" validate:"omitempty,gte=0"`
	NoDNFs         *int `json:"noDNFs" validate:"omitempty,gte=0"`
}

func (h *Handler) GetScoringRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoringRules")
	defer span.End()

	rules, err := h.rulesService.Active(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rulesToDTO(rules))
}

func (h *Handler) CreateScoringRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateScoringRules")
	defer span.End()

	var req createRulesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.rulesService.Create(ctx, scoring.Rules{
		ExactMatch: req.ExactMatch,
		OneOff:     req.OneOff,
		TwoOff:     req.TwoOff,
		Bonus: scoring.BonusPoints{
			PolePosition:   req.PolePosition,
			FastestLap:     req.FastestLap,
			DriverOfTheDay: req.DriverOfTheDay,
			NoDNFs:         req.NoDNFs,
		},
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, rulesToDTO(created))
}

func (h *Handler) UpdateScoringRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateScoringRules")
	defer span.End()

	var req updateRulesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.rulesService.Update(ctx, scoring.Patch{
		ExactMatch:     req.ExactMatch,
		OneOff:         req.OneOff,
		TwoOff:         req.TwoOff,
		PolePosition:   req.PolePosition,
		FastestLap:     req.FastestLap,
		DriverOfTheDay: req.DriverOfTheDay,
		NoDNFs:         req.NoDNFs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update scoring rules failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rulesToDTO(updated))
}

func (h *Handler) ResetScoringRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetScoringRules")
	defer span.End()

	reset, err := h.rulesService.Reset(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rulesToDTO(reset))
}
