package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/black-swan-sentinel/internal/validators"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

// AuthValidationService checks request shape before the wrapped
// AuthService sees it. Errors match both ErrInvalidDataProvided and
// validators.ErrInvalidRequest.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *AuthValidationService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Register(ctx, req)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) LoginForm(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.LoginForm(ctx, req)
}

func (v *AuthValidationService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	if err := v.validator.Validate(ctx, models.RefreshTokenRequest{RefreshToken: refreshToken}); err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Refresh(ctx, refreshToken)
}

func (v *AuthValidationService) ChangePassword(ctx context.Context, principal models.User, req models.ChangePasswordRequest) error {
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.ChangePassword(ctx, principal, req)
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}
