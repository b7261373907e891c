package adapter

import (
	"errors"
	"fmt"
)

// Sentinel errors matching the stable codes of the server's error body.
var (
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateUsername   = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("incorrect username or password")
	ErrInactiveAccount     = errors.New("inactive user")
	ErrIncorrectPassword   = errors.New("incorrect current password")
	ErrInvalidToken        = errors.New("invalid token")
	ErrExpiredToken        = errors.New("token has expired")
	ErrWrongTokenKind      = errors.New("wrong token kind")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedResponse  = errors.New("unexpected response")

	errEmptyAddress = errors.New("empty address")
)

// APIError is a non-2xx response of the server.
type APIError struct {
	Status int
	Code   string
	Detail string
	Fields map[string]string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("http %d %s: %s", e.Status, e.Code, e.Detail)
}

// Unwrap returns the sentinel error of e.Code, or nil for unknown codes.
func (e *APIError) Unwrap() error {
	return sentinelFromCode(e.Code, e.Status)
}
