package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
)

// bufferedHandler returns a Handler whose base logger writes JSON to buf.
func bufferedHandler(buf *bytes.Buffer) *Handler {
	return &Handler{logger: &logger.Logger{Logger: zerolog.New(buf)}}
}

func TestWithTraceID_TableTest(t *testing.T) {
	tests := []struct {
		name           string
		requestTraceID string
		wantSame       bool
	}{
		{name: "trace ID from request header is reused", requestTraceID: "my-custom-trace-id", wantSame: true},
		{name: "uuid from request header is reused", requestTraceID: "550e8400-e29b-41d4-a716-446655440000", wantSame: true},
		{name: "no trace ID in request, UUID generated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := bufferedHandler(&buf)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.FromRequest(r).Info().Msg("inside")
				w.WriteHeader(http.StatusTeapot)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.requestTraceID != "" {
				req.Header.Set(traceIDHeader, tt.requestTraceID)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusTeapot, rr.Code)
			responseTraceID := rr.Header().Get(traceIDHeader)
			require.NotEmpty(t, responseTraceID)
			if tt.wantSame {
				assert.Equal(t, tt.requestTraceID, responseTraceID)
			} else {
				_, err := uuid.Parse(responseTraceID)
				assert.NoError(t, err)
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, responseTraceID, entry[logger.TraceIDField])
		})
	}
}

func TestWithTraceID_GeneratesUniqueIDs(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	seen := make(map[string]struct{})

	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		h.withTraceID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rr.Header().Get(traceIDHeader)
		_, dup := seen[id]
		require.False(t, dup, "duplicate trace ID generated: %s", id)
		seen[id] = struct{}{}
	}
}
