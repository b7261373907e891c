package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/black-swan-sentinel/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrUnsupportedSigningMethod = errors.New("unsupported signing method")
	ErrInvalidAuthHeader        = errors.New("invalid authorization header")
)

// SignJWTToken signs claims with the HMAC method named by algorithm
// ("HS256", "HS384" or "HS512") and returns the compact token string.
//
// Example usage:
//
//	token, err := utils.SignJWTToken(claims, "HS256", "secret")
func SignJWTToken(claims models.Claims, algorithm, signKey string) (string, error) {
	if signKey == "" {
		return "", errors.New("invalid params for signing JWT Token: empty sign key")
	}

	method, err := hmacMethod(algorithm)
	if err != nil {
		return "", err
	}

	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return signed, nil
}

// ValidateAndParseJWTToken verifies tokenString and returns its claims.
//
// Validation includes:
//   - the header algorithm must equal algorithm (no "none", no downgrade)
//   - signature verification with signKey
//   - presence and lapse of the exp claim, measured with now
//   - the iss claim, when issuer is not empty
//
// A nil now uses time.Now. The returned error wraps the jwt/v5 sentinel
// (jwt.ErrTokenExpired, jwt.ErrTokenSignatureInvalid, ...) so callers can
// classify it with errors.Is.
func ValidateAndParseJWTToken(tokenString, signKey, algorithm, issuer string, now func() time.Time) (models.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{algorithm}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if now != nil {
		opts = append(opts, jwt.WithTimeFunc(now))
	}

	claims := &models.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedSigningMethod, token.Header["alg"])
		}
		return []byte(signKey), nil
	}, opts...)
	if err != nil {
		return models.Claims{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	return *claims, nil
}

// ParseUnverifiedClaims decodes the claims of tokenString without checking
// its signature or expiry. It must only be used for display purposes on the
// client side, never for authorization.
func ParseUnverifiedClaims(tokenString string) (models.Claims, error) {
	claims := &models.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return models.Claims{}, err
	}
	return *claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidAuthHeader
	}
	return parts[1], nil
}

func hmacMethod(algorithm string) (jwt.SigningMethod, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSigningMethod, algorithm)
	}
	return method, nil
}
