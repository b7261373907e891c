package grpc

import (
	"context"

	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

const passwordUpdatedMessage = "Password updated successfully"

func (h *Handler) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	user, err := h.services.AuthService.Register(ctx, *req)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	logger.FromContext(ctx).Debug().Int64("id", user.UserID).Msg("user successfully registered")
	resp := models.NewUserResponse(user)
	return &resp, nil
}

func (h *Handler) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenPair, error) {
	pair, err := h.services.AuthService.Login(ctx, *req)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &pair, nil
}

// LoginForm is the OAuth2 password grant counterpart of Login. Over gRPC the
// credentials arrive in the same JSON shape.
func (h *Handler) LoginForm(ctx context.Context, req *models.LoginRequest) (*models.TokenPair, error) {
	pair, err := h.services.AuthService.LoginForm(ctx, *req)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &pair, nil
}

func (h *Handler) Refresh(ctx context.Context, req *models.RefreshTokenRequest) (*models.TokenPair, error) {
	pair, err := h.services.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &pair, nil
}

func (h *Handler) Me(ctx context.Context, _ *Empty) (*models.UserResponse, error) {
	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, toStatus(ctx, errPrincipalMissing)
	}

	resp := models.NewUserResponse(principal)
	return &resp, nil
}

func (h *Handler) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) (*models.MessageResponse, error) {
	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, toStatus(ctx, errPrincipalMissing)
	}

	if err := h.services.AuthService.ChangePassword(ctx, principal, *req); err != nil {
		return nil, toStatus(ctx, err)
	}
	return &models.MessageResponse{Message: passwordUpdatedMessage}, nil
}
