package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/black-swan-sentinel/internal/config"
	"github.com/MKhiriev/black-swan-sentinel/internal/handler"
	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/internal/server"
	"github.com/MKhiriev/black-swan-sentinel/internal/service"
	"github.com/MKhiriev/black-swan-sentinel/internal/store"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("sentinel-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	// the secret key is never logged
	log.Debug().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("algorithm", cfg.App.Algorithm).
		Int("access_token_expire_minutes", cfg.App.AccessTokenExpireMinutes).
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Strs("cors_origins", cfg.Server.CORSOrigins).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Error().Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
