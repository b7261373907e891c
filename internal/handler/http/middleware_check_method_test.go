// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRouter creates a minimal chi.Mux with a set of routes for tests.
// It intentionally does not use Handler.Init() to avoid service setup.
func buildRouter() *chi.Mux {
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

	router := chi.NewRouter()
	router.Get("/api/items", ok)
	router.Post("/api/items", ok)
	router.Route("/api/users", func(r chi.Router) {
		r.Get("/{id}", ok)
		r.Delete("/{id}", ok)
	})
	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantAllow  string
	}{
		{"registered method", http.MethodGet, "/api/items", http.StatusOK, ""},
		{"unregistered method", http.MethodDelete, "/api/items", http.StatusMethodNotAllowed, "GET, POST"},
		{"parameterised path", http.MethodPut, "/api/users/7", http.StatusMethodNotAllowed, "GET, DELETE"},
		{"parameterised path allowed", http.MethodDelete, "/api/users/7", http.StatusOK, ""},
		{"unknown path", http.MethodGet, "/api/unknown", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Allow"))
			if tt.wantStatus == http.StatusMethodNotAllowed {
				assert.Equal(t, CodeMethodNotAllowed, decodeError(t, rr).Code)
			}
		})
	}
}

func TestAllowedMethods(t *testing.T) {
	router := buildRouter()

	assert.Equal(t, []string{http.MethodGet, http.MethodPost}, allowedMethods(router, "/api/items"))
	assert.Nil(t, allowedMethods(router, "/nowhere"))
}
