package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrMalformedBody, err))
		return
	}

	user, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", user.UserID).Msg("user successfully registered")
	utils.WriteJSON(w, models.NewUserResponse(user), http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrMalformedBody, err))
		return
	}

	pair, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

// loginForm accepts the OAuth2 password grant body
// (application/x-www-form-urlencoded username and password).
func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, utils.MaxRequestBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrMalformedBody, err))
		return
	}

	req := models.LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}

	pair, err := h.services.AuthService.LoginForm(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrMalformedBody, err))
		return
	}

	pair, err := h.services.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrPrincipalMissing)
		return
	}

	utils.WriteJSON(w, models.NewUserResponse(principal), http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		writeError(w, r, ErrPrincipalMissing)
		return
	}

	var req models.ChangePasswordRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrMalformedBody, err))
		return
	}

	if err := h.services.AuthService.ChangePassword(ctx, principal, req); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", principal.UserID).Msg("password updated")
	utils.WriteJSON(w, models.MessageResponse{Message: "Password updated successfully"}, http.StatusOK)
}
