package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/black-swan-sentinel/internal/adapter"
	"github.com/MKhiriev/black-swan-sentinel/internal/config"
	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	log := logger.NewConsoleLogger("sentinel-client", os.Stderr, level)
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Debug().
		Str("build_version", build.BuildVersion()).
		Str("build_date", build.BuildDate()).
		Str("build_commit", build.BuildCommit()).
		Send()

	serverAdapter, err := adapter.NewHTTPServerAdapter(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, serverAdapter, args, os.Stdout); err != nil {
		log.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}
