// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"strings"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// black-swan-sentinel backend. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and built-in defaults.
//
// The config is loaded once at startup and treated as immutable afterwards.
// Components receive the sections they need through their constructors.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application identity and security settings: the token
	// signing secret, algorithm and lifetimes, and password hashing cost.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the user store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Name is the human-readable service name.
	// Env: APP_NAME
	Name string `env:"NAME"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// SecretKey is the secret used to sign and verify tokens. Rotating it
	// invalidates every outstanding token.
	// Env: APP_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// Algorithm is the HMAC signing algorithm (HS256, HS384 or HS512).
	// Env: APP_ALGORITHM
	Algorithm string `env:"ALGORITHM"`

	// AccessTokenExpireMinutes is the lifetime of access tokens.
	// Env: APP_ACCESS_TOKEN_EXPIRE_MINUTES
	AccessTokenExpireMinutes int `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`

	// TokenIssuer is the optional "iss" claim. When set, tokens with a
	// different issuer are rejected.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// BcryptCost is the work factor of password hashing.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// FormLoginUpdatesLastLogin makes the form-encoded login record the
	// login time like the JSON login does. Off by default.
	// Env: APP_FORM_LOGIN_UPDATES_LAST_LOGIN
	FormLoginUpdatesLastLogin bool `env:"FORM_LOGIN_UPDATES_LAST_LOGIN"`
}

// AccessTokenTTL returns the access token lifetime as a duration.
func (a App) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenExpireMinutes) * time.Minute
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the backend by scheme: "postgres://" or "postgresql://"
	// for PostgreSQL, "file:" or ":memory:" for SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP server ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC server ("host:port").
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration of a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// CORSOrigins lists the browser origins allowed to call the HTTP API.
	// "*" allows any origin.
	// Env: SERVER_CORS_ORIGINS (comma separated)
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

// AllowedOrigins returns CORSOrigins trimmed, without empty entries.
func (s Server) AllowedOrigins() []string {
	origins := make([]string, 0, len(s.CORSOrigins))
	for _, origin := range s.CORSOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// GetStructuredConfig loads, merges, and validates the application
// configuration. Sources are consulted in the following priority order
// (the first source that sets a field wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
