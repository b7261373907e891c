package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/black-swan-sentinel/internal/service"
	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

// principalRecorder captures the principal seen by the next handler.
type principalRecorder struct {
	called    bool
	principal models.User
	ok        bool
}

func (p *principalRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.principal, p.ok = utils.GetPrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithAuthHeader(header string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return req
}

// ─────────────────────────────────────────────
// bearerToken
// ─────────────────────────────────────────────

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "", want: ""},
		{header: "Bearer abc", want: "abc"},
		{header: "bearer abc", want: "abc"},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "Bearer a b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := bearerToken(requestWithAuthHeader(tt.header))
			if tt.wantErr {
				assert.ErrorIs(t, err, utils.ErrInvalidAuthHeader)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ─────────────────────────────────────────────
// auth
// ─────────────────────────────────────────────

func TestAuth_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
		wantUser   string
	}{
		{name: "valid token", header: "Bearer " + aliceToken, wantStatus: http.StatusOK, wantUser: "alice"},
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantCode: CodeUnauthenticated},
		{name: "wrong scheme", header: "Token " + aliceToken, wantStatus: http.StatusUnauthorized, wantCode: CodeUnauthenticated},
		{name: "unknown token", header: "Bearer nope", wantStatus: http.StatusUnauthorized, wantCode: CodeUnauthenticated},
		{name: "inactive", header: "Bearer inactive", wantStatus: http.StatusBadRequest, wantCode: CodeInactiveAccount},
		{name: "store failure", header: "Bearer broken", wantStatus: http.StatusInternalServerError, wantCode: CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&mockAuthService{})
			h.services.AuthorizationService = &mockAuthorizationService{
				principals: map[string]models.User{aliceToken: alice},
				errs: map[string]error{
					"inactive": service.ErrInactiveAccount,
					"broken":   errors.New("db down"),
				},
			}
			rec := &principalRecorder{}
			rr := httptest.NewRecorder()

			h.auth(rec.handler()).ServeHTTP(rr, requestWithAuthHeader(tt.header))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode == "" {
				require.True(t, rec.ok)
				assert.Equal(t, tt.wantUser, rec.principal.Username)
				return
			}
			assert.False(t, rec.called)
			assert.Equal(t, tt.wantCode, decodeError(t, rr).Code)
			assert.Equal(t, tt.wantStatus == http.StatusUnauthorized, rr.Header().Get("WWW-Authenticate") == "Bearer")
		})
	}
}

// ─────────────────────────────────────────────
// adminOnly
// ─────────────────────────────────────────────

func TestAdminOnly(t *testing.T) {
	h := newTestHandler(&mockAuthService{})

	tests := []struct {
		name       string
		principal  *models.User
		wantStatus int
	}{
		{name: "admin", principal: &admin, wantStatus: http.StatusOK},
		{name: "regular user", principal: &alice, wantStatus: http.StatusForbidden},
		{name: "no principal", wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/", nil)
			if tt.principal != nil {
				req = req.WithContext(utils.WithPrincipal(req.Context(), *tt.principal))
			}
			rec := &principalRecorder{}
			rr := httptest.NewRecorder()

			h.adminOnly(rec.handler()).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, rec.called)
		})
	}
}

// ─────────────────────────────────────────────
// optionalAuth
// ─────────────────────────────────────────────

func TestOptionalAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantOK     bool
	}{
		{name: "anonymous", wantStatus: http.StatusOK},
		{name: "malformed header", header: "Bearer", wantStatus: http.StatusOK},
		{name: "invalid token", header: "Bearer nope", wantStatus: http.StatusOK},
		{name: "valid token", header: "Bearer " + aliceToken, wantStatus: http.StatusOK, wantOK: true},
		{name: "inactive", header: "Bearer inactive", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&mockAuthService{})
			h.services.AuthorizationService = &mockAuthorizationService{
				principals: map[string]models.User{aliceToken: alice},
				errs:       map[string]error{"inactive": service.ErrInactiveAccount},
			}
			rec := &principalRecorder{}
			rr := httptest.NewRecorder()

			h.optionalAuth(rec.handler()).ServeHTTP(rr, requestWithAuthHeader(tt.header))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantOK, rec.ok)
		})
	}
}
