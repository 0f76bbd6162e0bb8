package httpapi

import (
	"net/http"
)

type importCalendarRequest struct {
	Season int `json:"season" validate:"required,gt=0"`
}

func (h *Handler) ImportSeasonCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportSeasonCalendar")
	defer span.End()

	var req importCalendarRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.calendarService.ImportSeason(ctx, req.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "calendar import failed", "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
