package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/black-swan-sentinel/models"
	"github.com/golang-jwt/jwt/v5"
)

func testClaims(kind models.TokenKind, issuedAt time.Time, ttl time.Duration) models.Claims {
	return models.Claims{
		UserID: 42,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
}

func TestSignJWTToken_RoundTrip(t *testing.T) {
	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			token, err := SignJWTToken(testClaims(models.AccessToken, time.Now(), time.Hour), alg, "secret-key")
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if token == "" {
				t.Fatal("expected non-empty token")
			}

			claims, err := ValidateAndParseJWTToken(token, "secret-key", alg, "", nil)
			if err != nil {
				t.Fatalf("expected token to be valid, got error: %v", err)
			}
			if claims.Username() != "alice" {
				t.Errorf("expected subject alice, got %s", claims.Username())
			}
			if claims.UserID != 42 {
				t.Errorf("expected user id 42, got %d", claims.UserID)
			}
			if claims.Kind != models.AccessToken {
				t.Errorf("expected kind access, got %s", claims.Kind)
			}
		})
	}
}

func TestSignJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		key       string
	}{
		{"empty key", "HS256", ""},
		{"asymmetric algorithm", "RS256", "key"},
		{"none algorithm", "none", "key"},
		{"unknown algorithm", "XX999", "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SignJWTToken(testClaims(models.AccessToken, time.Now(), time.Hour), tt.algorithm, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	token, _ := SignJWTToken(testClaims(models.AccessToken, time.Now(), time.Hour), "HS256", "correct-key")

	_, err := ValidateAndParseJWTToken(token, "wrong-key", "HS256", "", nil)
	if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		t.Errorf("expected signature error, got: %v", err)
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	token, _ := SignJWTToken(testClaims(models.AccessToken, issued, time.Minute), "HS256", "key")

	_, err := ValidateAndParseJWTToken(token, "key", "HS256", "", func() time.Time {
		return issued.Add(2 * time.Minute)
	})
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected expired error, got: %v", err)
	}

	_, err = ValidateAndParseJWTToken(token, "key", "HS256", "", func() time.Time {
		return issued.Add(30 * time.Second)
	})
	if err != nil {
		t.Errorf("expected token to be valid before expiry, got: %v", err)
	}
}

func TestValidateAndParseJWTToken_MissingExpiry(t *testing.T) {
	claims := testClaims(models.AccessToken, time.Now(), time.Hour)
	claims.ExpiresAt = nil
	token, _ := SignJWTToken(claims, "HS256", "key")

	_, err := ValidateAndParseJWTToken(token, "key", "HS256", "", nil)
	if err == nil {
		t.Error("expected error for token without exp, got nil")
	}
}

func TestValidateAndParseJWTToken_AlgorithmMismatch(t *testing.T) {
	token, _ := SignJWTToken(testClaims(models.AccessToken, time.Now(), time.Hour), "HS512", "key")

	_, err := ValidateAndParseJWTToken(token, "key", "HS256", "", nil)
	if err == nil {
		t.Error("expected error for algorithm mismatch, got nil")
	}
}

func TestValidateAndParseJWTToken_NoneAlgorithm(t *testing.T) {
	claims := testClaims(models.AccessToken, time.Now(), time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err = ValidateAndParseJWTToken(token, "key", "HS256", "", nil); err == nil {
		t.Error("expected unsigned token to be rejected, got nil")
	}
}

func TestValidateAndParseJWTToken_Issuer(t *testing.T) {
	claims := testClaims(models.AccessToken, time.Now(), time.Hour)
	claims.Issuer = "real-issuer"
	token, _ := SignJWTToken(claims, "HS256", "key")

	if _, err := ValidateAndParseJWTToken(token, "key", "HS256", "fake-issuer", nil); !errors.Is(err, jwt.ErrTokenInvalidIssuer) {
		t.Errorf("expected issuer error, got: %v", err)
	}
	if _, err := ValidateAndParseJWTToken(token, "key", "HS256", "real-issuer", nil); err != nil {
		t.Errorf("expected matching issuer to pass, got: %v", err)
	}
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not.a.token", "key", "HS256", "", nil)
	if err == nil {
		t.Error("expected error for malformed token string, got nil")
	}
}

func TestParseUnverifiedClaims(t *testing.T) {
	issued := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	token, _ := SignJWTToken(testClaims(models.RefreshToken, issued, time.Minute), "HS256", "key")

	claims, err := ParseUnverifiedClaims(token)
	if err != nil {
		t.Fatalf("expected no error for expired token, got: %v", err)
	}
	if claims.Kind != models.RefreshToken || claims.Username() != "alice" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err = ParseUnverifiedClaims("garbage"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "surrounding spaces", header: "  Bearer   abc  ", want: "abc"},
		{name: "empty", header: "", wantErr: true},
		{name: "scheme only", header: "Bearer", wantErr: true},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: true},
		{name: "too many parts", header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAuthHeader) {
					t.Errorf("expected ErrInvalidAuthHeader, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
