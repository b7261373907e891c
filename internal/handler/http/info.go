package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp := models.WelcomeResponse{
		Message: fmt.Sprintf("Welcome to %s", h.services.AppInfoService.GetAppName(ctx)),
		Version: h.services.AppInfoService.GetAppVersion(ctx),
	}
	if principal, ok := utils.GetPrincipalFromContext(ctx); ok {
		resp.Username = principal.Username
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{
		Status:  "healthy",
		Service: h.services.AppInfoService.GetAppName(r.Context()),
	}, http.StatusOK)
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{
		Code:   CodeNotFound,
		Detail: http.StatusText(http.StatusNotFound),
	}, http.StatusNotFound)
}
