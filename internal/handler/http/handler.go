package http

import (
	"time"

	"github.com/MKhiriev/black-swan-sentinel/internal/config"
	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/internal/service"
)

type Handler struct {
	services *service.Services

	requestTimeout time.Duration
	corsOrigins    []string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: cfg.RequestTimeout,
		corsOrigins:    cfg.AllowedOrigins(),
		logger:         logger,
	}
}
