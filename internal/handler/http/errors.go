// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport itself, before a request reaches
// the service layer. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrMalformedBody is returned when the request body cannot be decoded
	// as JSON or as a form.
	ErrMalformedBody = errors.New("malformed request body")

	// ErrPrincipalMissing means a protected handler ran without the auth
	// middleware in front of it.
	ErrPrincipalMissing = errors.New("no principal in request context")
)
