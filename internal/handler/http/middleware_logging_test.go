package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeRequest creates a test request with a buffered logger in context.
func makeRequest(method, target string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	l := zerolog.New(buf)
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		status     int
		response   string
		wantURI    string
		wantStatus float64
		wantSize   float64
	}{
		{"GET 200", http.MethodGet, "/health", http.StatusOK, "OK", "/health", 200, 2},
		{"POST 201", http.MethodPost, "/api/v1/auth/register", http.StatusCreated, `{"id":1}`, "/api/v1/auth/register", 201, 8},
		{"implicit 200", http.MethodGet, "/", 0, "", "/", 200, 0},
		{"query string dropped", http.MethodGet, "/api/v1/auth/me?token=secret", http.StatusUnauthorized, "", "/api/v1/auth/me", 401, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{}
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.response != "" {
					w.Write([]byte(tt.response))
				}
			})

			rr := httptest.NewRecorder()
			h.withLogging(next).ServeHTTP(rr, makeRequest(tt.method, tt.target, &buf))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.method, entry["method"])
			assert.Equal(t, tt.wantURI, entry["uri"])
			assert.Equal(t, tt.wantStatus, entry["status"])
			assert.Equal(t, tt.wantSize, entry["size"])
			assert.Contains(t, entry, "duration")
			assert.NotContains(t, buf.String(), "secret")
		})
	}
}
