package http

import (
	"net/http"

	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
)

// bearerToken extracts the token from the "Authorization" header.
// An absent header yields an empty token and no error.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", nil
	}
	return utils.ParseBearerToken(header)
}

// auth is an HTTP middleware that requires an active principal.
//
// The bearer token is resolved via [service.AuthorizationService] and the
// principal is stored in the request context with [utils.WithPrincipal].
// Requests without a usable token are rejected with 401 and a Bearer
// challenge; inactive principals get 400.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if token == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		ctx := r.Context()
		principal, err := h.services.AuthorizationService.ResolvePrincipal(ctx, token)
		if err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(ctx, principal)))
	})
}

// adminOnly must run after auth. Non-admin principals get 403.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := utils.GetPrincipalFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrPrincipalMissing)
			return
		}

		if _, err := h.services.AuthorizationService.RequireAdmin(principal); err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// optionalAuth attaches the principal when the request carries a valid
// token and lets anonymous callers through. Invalid tokens count as
// anonymous; inactive accounts and store failures do not.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		resolution := h.services.AuthorizationService.ResolveOptional(ctx, token)
		principal, ok, err := resolution.Principal(true)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if ok {
			ctx = utils.WithPrincipal(ctx, principal)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
