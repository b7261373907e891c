// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

var routableMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

// CheckHTTPMethod returns the router's MethodNotAllowed handler.
//
// It answers 405 with the JSON error body and an Allow header listing the
// methods the matched path does accept. The lookup goes through
// [chi.Mux.Match], so parameterised patterns such as /users/{id} are
// resolved like any other request.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed := allowedMethods(router, r.URL.Path)
		if len(allowed) == 0 {
			notFound(w, r)
			return
		}

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		utils.WriteJSON(w, models.ErrorResponse{
			Code:   CodeMethodNotAllowed,
			Detail: http.StatusText(http.StatusMethodNotAllowed),
		}, http.StatusMethodNotAllowed)
	}
}

func allowedMethods(router *chi.Mux, path string) []string {
	var allowed []string
	for _, method := range routableMethods {
		if router.Match(chi.NewRouteContext(), method, path) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}
