package service

import (
	"fmt"

	"github.com/MKhiriev/black-swan-sentinel/internal/config"
	"github.com/MKhiriev/black-swan-sentinel/internal/crypto"
	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/internal/store"
)

type Services struct {
	AuthService          AuthService
	AuthorizationService AuthorizationService
	TokenService         TokenService
	AppInfoService       AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	tokenService, err := NewTokenService(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("error creating token service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	hasher := crypto.NewBcryptHasher(cfg.App.BcryptCost)
	authService := NewAuthValidationService().Wrap(
		NewAuthService(storages.UserRepository, hasher, tokenService, cfg.App, logger),
	)

	return &Services{
		AuthService:          authService,
		AuthorizationService: NewAuthorizationService(tokenService, storages.UserRepository, logger),
		TokenService:         tokenService,
		AppInfoService:       appInfoService,
	}, nil
}
