package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/black-swan-sentinel/internal/config"
	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

const testSecret = "test-secret-key"

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testAppConfig() config.App {
	return config.App{
		Name:                     "Black Swan Sentinel",
		Version:                  "1.0.0",
		SecretKey:                testSecret,
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 30,
		BcryptCost:               4,
	}
}

// clock is a settable time source shared by a service under test.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestTokenService(t *testing.T, cfg config.App) (*tokenService, *clock) {
	t.Helper()
	c := &clock{t: testNow}
	svc, err := newTokenService(cfg, c.now)
	require.NoError(t, err)
	return svc, c
}

// ─────────────────────────────────────────────
// NewTokenService
// ─────────────────────────────────────────────

func TestNewTokenService_Success(t *testing.T) {
	svc, err := NewTokenService(testAppConfig())

	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, svc.AccessTokenTTL())
}

func TestNewTokenService_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.App)
	}{
		{"empty secret", func(c *config.App) { c.SecretKey = "" }},
		{"asymmetric algorithm", func(c *config.App) { c.Algorithm = "RS256" }},
		{"unknown algorithm", func(c *config.App) { c.Algorithm = "HS999" }},
		{"none algorithm", func(c *config.App) { c.Algorithm = "none" }},
		{"zero lifetime", func(c *config.App) { c.AccessTokenExpireMinutes = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAppConfig()
			tt.mutate(&cfg)

			svc, err := NewTokenService(cfg)

			assert.Nil(t, svc)
			assert.ErrorIs(t, err, ErrInvalidTokenConfig)
		})
	}
}

// ─────────────────────────────────────────────
// Issue
// ─────────────────────────────────────────────

func TestTokenService_IssueAccess_Claims(t *testing.T) {
	svc, _ := newTestTokenService(t, testAppConfig())

	token, err := svc.IssueAccess("alice", 7, 15*time.Minute)
	require.NoError(t, err)

	claims, err := utils.ParseUnverifiedClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, models.AccessToken, claims.Kind)
	assert.Equal(t, testNow, claims.IssuedAt.Time.UTC())
	assert.Equal(t, testNow.Add(15*time.Minute), claims.ExpiresAt.Time.UTC())
	assert.NotEmpty(t, claims.ID)
}

func TestTokenService_IssueRefresh_FixedLifetime(t *testing.T) {
	cfg := testAppConfig()
	cfg.AccessTokenExpireMinutes = 1
	svc, _ := newTestTokenService(t, cfg)

	token, err := svc.IssueRefresh("alice", 7)
	require.NoError(t, err)

	claims, err := utils.ParseUnverifiedClaims(token)
	require.NoError(t, err)
	assert.Equal(t, models.RefreshToken, claims.Kind)
	assert.Equal(t, 7*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenService_Issue_SameSecondTokensDiffer(t *testing.T) {
	svc, _ := newTestTokenService(t, testAppConfig())

	first, err := svc.IssueAccess("alice", 1, time.Minute)
	require.NoError(t, err)
	second, err := svc.IssueAccess("alice", 1, time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenService_Issue_InvalidParams(t *testing.T) {
	svc, _ := newTestTokenService(t, testAppConfig())

	_, err := svc.IssueAccess("", 1, time.Minute)
	assert.ErrorIs(t, err, ErrTokenCreationFailed)

	_, err = svc.IssueAccess("alice", 1, 0)
	assert.ErrorIs(t, err, ErrTokenCreationFailed)

	_, err = svc.IssueRefresh("", 1)
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestTokenService_Issue_Issuer(t *testing.T) {
	cfg := testAppConfig()
	cfg.TokenIssuer = "sentinel"
	svc, _ := newTestTokenService(t, cfg)

	token, err := svc.IssueAccess("alice", 1, time.Minute)
	require.NoError(t, err)

	claims, err := utils.ParseUnverifiedClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "sentinel", claims.Issuer)
}

// ─────────────────────────────────────────────
// Verify
// ─────────────────────────────────────────────

func TestTokenService_Verify_RoundTrip(t *testing.T) {
	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			cfg := testAppConfig()
			cfg.Algorithm = alg
			svc, _ := newTestTokenService(t, cfg)

			access, err := svc.IssueAccess("alice", 3, time.Minute)
			require.NoError(t, err)
			refresh, err := svc.IssueRefresh("alice", 3)
			require.NoError(t, err)

			claims, err := svc.Verify(access, models.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, "alice", claims.Username())
			assert.Equal(t, int64(3), claims.UserID)

			claims, err = svc.Verify(refresh, models.RefreshToken)
			require.NoError(t, err)
			assert.Equal(t, models.RefreshToken, claims.Kind)
		})
	}
}

func TestTokenService_Verify_WrongKind(t *testing.T) {
	svc, _ := newTestTokenService(t, testAppConfig())

	access, err := svc.IssueAccess("alice", 1, time.Minute)
	require.NoError(t, err)
	refresh, err := svc.IssueRefresh("alice", 1)
	require.NoError(t, err)

	_, err = svc.Verify(access, models.RefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenKind)

	_, err = svc.Verify(refresh, models.AccessToken)
	assert.ErrorIs(t, err, ErrWrongTokenKind)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc, c := newTestTokenService(t, testAppConfig())

	token, err := svc.IssueAccess("alice", 1, time.Minute)
	require.NoError(t, err)

	c.t = testNow.Add(59 * time.Second)
	_, err = svc.Verify(token, models.AccessToken)
	require.NoError(t, err)

	c.t = testNow.Add(time.Minute + time.Second)
	_, err = svc.Verify(token, models.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_ExpiredRefresh(t *testing.T) {
	svc, c := newTestTokenService(t, testAppConfig())

	token, err := svc.IssueRefresh("alice", 1)
	require.NoError(t, err)

	c.t = testNow.Add(models.RefreshTokenTTL + time.Second)
	_, err = svc.Verify(token, models.RefreshToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_Verify_ForeignKey(t *testing.T) {
	svc, _ := newTestTokenService(t, testAppConfig())

	other := testAppConfig()
	other.SecretKey = "another-secret"
	otherSvc, _ := newTestTokenService(t, other)

	token, err := otherSvc.IssueAccess("alice", 1, time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token, models.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_OtherAlgorithmSameKey(t *testing.T) {
	svc, _ := newTestTokenService(t, testAppConfig())

	other := testAppConfig()
	other.Algorithm = "HS512"
	otherSvc, _ := newTestTokenService(t, other)

	token, err := otherSvc.IssueAccess("alice", 1, time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token, models.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_Tampered(t *testing.T) {
	svc, _ := newTestTokenService(t, testAppConfig())

	token, err := svc.IssueAccess("alice", 1, time.Minute)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	forged, err := svc.IssueAccess("mallory", 1, time.Minute)
	require.NoError(t, err)
	parts[1] = strings.Split(forged, ".")[1]

	_, err = svc.Verify(strings.Join(parts, "."), models.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	svc, _ := newTestTokenService(t, testAppConfig())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(token, models.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestTokenService_Verify_IssuerMismatch(t *testing.T) {
	cfg := testAppConfig()
	cfg.TokenIssuer = "sentinel"
	svc, _ := newTestTokenService(t, cfg)

	other := testAppConfig()
	other.TokenIssuer = "someone-else"
	otherSvc, _ := newTestTokenService(t, other)

	token, err := otherSvc.IssueAccess("alice", 1, time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token, models.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_HandcraftedClaims(t *testing.T) {
	svc, _ := newTestTokenService(t, testAppConfig())

	sign := func(claims models.Claims) string {
		token, err := utils.SignJWTToken(claims, "HS256", testSecret)
		require.NoError(t, err)
		return token
	}
	exp := jwt.NewNumericDate(testNow.Add(time.Hour))

	t.Run("missing subject", func(t *testing.T) {
		token := sign(models.Claims{Kind: models.AccessToken, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}})
		_, err := svc.Verify(token, models.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown kind", func(t *testing.T) {
		token := sign(models.Claims{Kind: "session", RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ExpiresAt: exp}})
		_, err := svc.Verify(token, models.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.NotErrorIs(t, err, ErrWrongTokenKind)
	})

	t.Run("missing expiry", func(t *testing.T) {
		token := sign(models.Claims{Kind: models.AccessToken, RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}})
		_, err := svc.Verify(token, models.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
