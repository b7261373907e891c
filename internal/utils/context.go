// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP request and response bodies, HTTP client initialization,
// JWT signing and validation, and trace id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/black-swan-sentinel/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// PrincipalCtxKey is the key under which the resolved principal is stored.
// Use WithPrincipal and GetPrincipalFromContext rather than the raw key.
var PrincipalCtxKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying principal.
func WithPrincipal(ctx context.Context, principal models.User) context.Context {
	return context.WithValue(ctx, PrincipalCtxKey, principal)
}

// GetPrincipalFromContext retrieves the principal stored by WithPrincipal.
//
// Returns the principal and an ok flag:
//   - ok == true: a principal was stored
//   - ok == false: the request is anonymous or the value has another type
//
// Example usage:
//
//	user, ok := utils.GetPrincipalFromContext(ctx)
//	if !ok {
//	    // handle anonymous caller
//	}
func GetPrincipalFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(PrincipalCtxKey).(models.User)
	return user, ok
}
