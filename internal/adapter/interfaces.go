// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client SDK of the black-swan-sentinel HTTP API.
//
// [ServerAdapter] hides the transport from callers. Error bodies returned by
// the server are decoded into [*APIError], which unwraps to the sentinel
// errors of this package so callers can use [errors.Is]
// (e.g. [ErrInvalidCredentials] for a failed login).
package adapter

import (
	"context"

	"github.com/MKhiriev/black-swan-sentinel/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the black-swan-sentinel server.
type ServerAdapter interface {
	// SetToken stores the access token attached to authenticated requests.
	// Login, LoginForm and Refresh call it on success.
	SetToken(token string)

	// Token returns the stored access token, or "" if none has been set.
	Token() string

	// Register creates an account and returns its public representation.
	// It does not log in.
	Register(ctx context.Context, req models.RegisterRequest) (models.UserResponse, error)

	// Login authenticates with a JSON credential pair.
	Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error)

	// LoginForm authenticates with the OAuth2 password grant form.
	LoginForm(ctx context.Context, req models.LoginRequest) (models.TokenPair, error)

	// Refresh exchanges a refresh token for a new pair.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// Me returns the principal of the stored access token.
	Me(ctx context.Context) (models.UserResponse, error)

	// ChangePassword replaces the password of the current principal.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// Health reports whether the server is up.
	Health(ctx context.Context) (models.HealthResponse, error)
}
