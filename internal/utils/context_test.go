// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/black-swan-sentinel/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestPrincipalCtxKey(t *testing.T) {
	if PrincipalCtxKey.String() != "principal" {
		t.Errorf("expected 'principal', got '%s'", PrincipalCtxKey.String())
	}
}

func TestGetPrincipalFromContext_Success(t *testing.T) {
	ctx := WithPrincipal(context.Background(), models.User{UserID: 42, Username: "alice"})

	user, ok := GetPrincipalFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if user.UserID != 42 || user.Username != "alice" {
		t.Errorf("unexpected principal: %+v", user)
	}
}

func TestGetPrincipalFromContext_Missing(t *testing.T) {
	user, ok := GetPrincipalFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if user.UserID != 0 {
		t.Errorf("expected zero principal, got %+v", user)
	}
}

func TestGetPrincipalFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), PrincipalCtxKey, "alice")

	if _, ok := GetPrincipalFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetPrincipalFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), models.User{UserID: 99})

	if _, ok := GetPrincipalFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
