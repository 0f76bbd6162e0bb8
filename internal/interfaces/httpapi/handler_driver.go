package httpapi

import (
	"net/http"

	"github.com/pitwall/gridbet/internal/domain/driver"
	"github.com/pitwall/gridbet/internal/usecase"
)

type createDriverRequest struct {
	FullName string `json:"fullname" validate:"required"`
	TeamName string `json:"teamName" validate:"required"`
	IsActive bool   `json:"isActive"`
}

type updateDriverRequest struct {
	FullName *string `json:"fullname"`
	TeamName *string `json:"teamName"`
	IsActive *bool   `json:"isActive"`
}

func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDrivers")
	defer span.End()

	activeOnly := r.URL.Query().Get("active") == "true"

	drivers, err := h.driverService.List(ctx, activeOnly)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, driversToDTO(drivers))
}

func (h *Handler) GetDriver(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDriver")
	defer span.End()

	found, err := h.driverService.Get(ctx, r.PathValue("driverID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, driverToDTO(found))
}

func (h *Handler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDriver")
	defer span.End()

	var req createDriverRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.driverService.Create(ctx, usecase.CreateDriverInput{
		FullName: req.FullName,
		TeamName: req.TeamName,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create driver failed", "fullname", req.FullName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, driverToDTO(created))
}

func (h *Handler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateDriver")
	defer span.End()

	var req updateDriverRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.driverService.Update(ctx, r.PathValue("driverID"), driver.Patch{
		FullName: req.FullName,
		TeamName: req.TeamName,
		IsActive: req.IsActive,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, driverToDTO(updated))
}

func (h *Handler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteDriver")
	defer span.End()

	if err := h.driverService.Delete(ctx, r.PathValue("driverID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}
