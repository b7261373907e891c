package service

import "errors"

// Auth error kinds. Every one of them is terminal for the current request
// and maps to a distinct, stable code at the transport layer.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInactiveAccount    = errors.New("inactive user")
	ErrIncorrectPassword  = errors.New("incorrect current password")

	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenKind = errors.New("wrong token kind")

	ErrUnauthenticated = errors.New("could not validate credentials")
	ErrForbidden       = errors.New("not enough permissions")
)

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrInvalidTokenConfig    = errors.New("invalid token configuration")
)
