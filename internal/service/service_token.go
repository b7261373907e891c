package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/black-swan-sentinel/internal/config"
	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

// tokenService is the JWT implementation of [TokenService].
//
// All fields are read-only after construction; the service is safe for
// concurrent use. Rotating signKey invalidates every outstanding token.
type tokenService struct {
	signKey   string
	algorithm string
	issuer    string
	accessTTL time.Duration

	now func() time.Time
	ids func() string
}

// NewTokenService builds a [TokenService] from the app configuration.
// It fails when the secret is empty or the algorithm is not HMAC based.
func NewTokenService(cfg config.App) (TokenService, error) {
	return newTokenService(cfg, time.Now)
}

func newTokenService(cfg config.App, now func() time.Time) (*tokenService, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: empty secret key", ErrInvalidTokenConfig)
	}
	if cfg.AccessTokenTTL() <= 0 {
		return nil, fmt.Errorf("%w: access token lifetime must be positive", ErrInvalidTokenConfig)
	}
	// sign a throwaway token to reject unsupported algorithms at startup
	if _, err := utils.SignJWTToken(models.Claims{}, cfg.Algorithm, cfg.SecretKey); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTokenConfig, err)
	}

	return &tokenService{
		signKey:   cfg.SecretKey,
		algorithm: cfg.Algorithm,
		issuer:    cfg.TokenIssuer,
		accessTTL: cfg.AccessTokenTTL(),
		now:       now,
		ids:       utils.NewUUIDGenerator().Generate,
	}, nil
}

// IssueAccess implements [TokenService].
func (s *tokenService) IssueAccess(subject string, userID int64, ttl time.Duration) (string, error) {
	return s.issue(models.AccessToken, subject, userID, ttl)
}

// IssueRefresh implements [TokenService].
func (s *tokenService) IssueRefresh(subject string, userID int64) (string, error) {
	return s.issue(models.RefreshToken, subject, userID, models.RefreshTokenTTL)
}

// AccessTokenTTL implements [TokenService].
func (s *tokenService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

func (s *tokenService) issue(kind models.TokenKind, subject string, userID int64, ttl time.Duration) (string, error) {
	if subject == "" || ttl <= 0 {
		return "", fmt.Errorf("%w: empty subject or non-positive lifetime", ErrTokenCreationFailed)
	}

	now := s.now()
	claims := models.Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ids(),
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := utils.SignJWTToken(claims, s.algorithm, s.signKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify implements [TokenService]. The jwt error is kept in the chain
// for logging; callers match on the service errors only.
func (s *tokenService) Verify(token string, expected models.TokenKind) (models.Claims, error) {
	if token == "" {
		return models.Claims{}, ErrInvalidToken
	}

	claims, err := utils.ValidateAndParseJWTToken(token, s.signKey, s.algorithm, s.issuer, s.now)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Claims{}, fmt.Errorf("%w: %w", ErrExpiredToken, err)
		}
		return models.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Username() == "" {
		return models.Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	switch claims.Kind {
	case expected:
		return claims, nil
	case models.AccessToken, models.RefreshToken:
		return models.Claims{}, fmt.Errorf("%w: got %s, want %s", ErrWrongTokenKind, claims.Kind, expected)
	default:
		return models.Claims{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidToken, claims.Kind)
	}
}
