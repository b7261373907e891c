package http

import (
	"net/http"

	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

// comingSoon answers feature routes that exist in the API surface but have
// no backing implementation yet.
func comingSoon(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, models.MessageResponse{Message: message + " - Coming soon"}, http.StatusOK)
	}
}

// Admin user management placeholders. The listing is empty and lookups of
// single users always miss.

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, []models.UserResponse{}, http.StatusOK)
}

func (h *Handler) userNotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Code: CodeNotFound, Detail: "User not found"}, http.StatusNotFound)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: "User deleted successfully"}, http.StatusOK)
}
