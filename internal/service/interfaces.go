package service

import (
	"context"
	"time"

	"github.com/MKhiriev/black-swan-sentinel/models"
)

// TokenService issues and verifies signed bearer tokens. It is a pure
// function of the signing configuration and the clock; it never touches the
// store or the password hasher.
type TokenService interface {
	// IssueAccess signs an access token for subject that expires after ttl.
	IssueAccess(subject string, userID int64, ttl time.Duration) (string, error)

	// IssueRefresh signs a refresh token with the fixed [models.RefreshTokenTTL].
	IssueRefresh(subject string, userID int64) (string, error)

	// Verify checks signature, algorithm, expiry and kind of token.
	// Failures are [ErrInvalidToken], [ErrExpiredToken] or [ErrWrongTokenKind].
	Verify(token string, expected models.TokenKind) (models.Claims, error)

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration
}

// AuthorizationService gates protected operations.
type AuthorizationService interface {
	// ResolvePrincipal turns an access token into an active principal.
	// Failures are [ErrUnauthenticated] or [ErrInactiveAccount].
	ResolvePrincipal(ctx context.Context, token string) (models.User, error)

	// RequireAdmin passes principal through unchanged or fails with
	// [ErrForbidden].
	RequireAdmin(principal models.User) (models.User, error)

	// ResolveOptional resolves token for endpoints open to anonymous
	// callers. An empty token is anonymous; any failure is reported in the
	// returned [Resolution] and the caller decides what to do with it.
	ResolveOptional(ctx context.Context, token string) Resolution
}

// AuthService holds the account use-cases.
type AuthService interface {
	// Register creates an active, non-admin principal.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login checks credentials, records the login time and returns a fresh
	// token pair.
	Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error)

	// LoginForm is Login for form-encoded credentials. Unless configured
	// otherwise it does not record the login time.
	LoginForm(ctx context.Context, req models.LoginRequest) (models.TokenPair, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// ChangePassword replaces the password of principal after checking the
	// current one.
	ChangePassword(ctx context.Context, principal models.User, req models.ChangePasswordRequest) error
}

// AppInfoService exposes build and identity information of the running app.
type AppInfoService interface {
	GetAppName(ctx context.Context) string
	GetAppVersion(ctx context.Context) string
}

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}
