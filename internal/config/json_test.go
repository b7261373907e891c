package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParseJSON_Success(t *testing.T) {
	p := writeFile(t, "config.json", `{
		"app": {
			"name": "Sentinel",
			"version": "2.0.0",
			"secret_key": "json-secret",
			"algorithm": "HS256",
			"access_token_expire_minutes": 60,
			"token_issuer": "sentinel",
			"bcrypt_cost": 11,
			"form_login_updates_last_login": true
		},
		"storage": { "db": { "dsn": "file:test.db" } },
		"server": {
			"http_address": "127.0.0.1:8000",
			"grpc_address": "127.0.0.1:9000",
			"request_timeout": "5s",
			"cors_origins": ["https://app.example.com"]
		}
	}`)

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, "Sentinel", cfg.App.Name)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, "json-secret", cfg.App.SecretKey)
	assert.Equal(t, "HS256", cfg.App.Algorithm)
	assert.Equal(t, 60, cfg.App.AccessTokenExpireMinutes)
	assert.Equal(t, "sentinel", cfg.App.TokenIssuer)
	assert.Equal(t, 11, cfg.App.BcryptCost)
	assert.True(t, cfg.App.FormLoginUpdatesLastLogin)
	assert.Equal(t, "file:test.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "127.0.0.1:8000", cfg.Server.HTTPAddress)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.GRPCAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON("definitely-does-not-exist.json")

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := writeFile(t, "bad.json", `{ this is not json }`)

	cfg, err := parseJSON(p)

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	p := writeFile(t, "bad_duration.json", `{"server": {"request_timeout": "not-a-duration"}}`)

	cfg, err := parseJSON(p)

	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	p := writeFile(t, "empty.json", `{}`)

	cfg, err := parseJSON(p)
	require.NoError(t, err)
	assert.Equal(t, StructuredConfig{}, *cfg)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", input: `"1m30s"`, want: 90 * time.Second},
		{name: "nanoseconds", input: `1000000000`, want: time.Second},
		{name: "null", input: `null`, want: 0},
		{name: "bool", input: `true`, wantErr: true},
		{name: "bad string", input: `"abc"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}
