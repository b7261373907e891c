package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes access tokens from refresh tokens.
// It is carried as the "kind" claim of every issued token.
type TokenKind string

const (
	// AccessToken authorizes API calls. Its lifetime is configured by
	// access_token_expire_minutes.
	AccessToken TokenKind = "access"

	// RefreshToken is used solely to mint a new token pair.
	RefreshToken TokenKind = "refresh"
)

// RefreshTokenTTL is the fixed lifetime of refresh tokens. It does not depend
// on the access token configuration.
const RefreshTokenTTL = 7 * 24 * time.Hour

// TokenTypeBearer is the token_type label returned with every token pair.
const TokenTypeBearer = "bearer"

// Claims is the claim set signed into every token.
//
// The standard "sub" claim holds the username; UserID duplicates the
// numeric identifier for callers that need it without a store lookup.
type Claims struct {
	// UserID is the numeric identifier of the principal at issuance time.
	UserID int64 `json:"user_id"`

	// Kind is either [AccessToken] or [RefreshToken].
	Kind TokenKind `json:"kind"`

	// RegisteredClaims provides sub, iat, exp and iss.
	jwt.RegisteredClaims
}

// Username returns the "sub" claim.
func (c Claims) Username() string {
	return c.Subject
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`

	// ExpiresIn is the access token validity in seconds.
	ExpiresIn int64 `json:"expires_in"`
}
