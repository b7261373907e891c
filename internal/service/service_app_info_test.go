package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/black-swan-sentinel/internal/config"
	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Name: "Black Swan Sentinel"}, logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

// ─────────────────────────────────────────────
// GetAppName / GetAppVersion
// ─────────────────────────────────────────────

func TestAppInfoService_ReturnsConfiguredValues(t *testing.T) {
	tests := []struct {
		name    string
		appName string
		version string
	}{
		{"plain", "Black Swan Sentinel", "1.0.0"},
		{"prerelease", "sentinel-staging", "v1.2.3-beta+build.42"},
		{"unnamed", "", "0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Name: tt.appName, Version: tt.version}, logger.Nop())
			require.NoError(t, err)

			assert.Equal(t, tt.appName, svc.GetAppName(context.Background()))
			assert.Equal(t, tt.version, svc.GetAppVersion(context.Background()))
		})
	}
}

func TestAppInfoService_CancelledContext_StillReturnsVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}
