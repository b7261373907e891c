// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptMaxPasswordLen is the input limit of bcrypt in bytes.
const bcryptMaxPasswordLen = 72

// bcryptHasher is the private implementation of [PasswordHasher].
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a [PasswordHasher] backed by bcrypt.
//
// A cost outside [bcrypt.MinCost, bcrypt.MaxCost] falls back to
// bcrypt.DefaultCost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash implements [PasswordHasher].
func (b *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingFailed, err)
	}

	return string(hash), nil
}

// Verify implements [PasswordHasher]. The comparison is constant time.
func (b *bcryptHasher) Verify(password, hash string) bool {
	if hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password)) == nil
}

// bcryptInput returns password unchanged when bcrypt can take it whole.
// Longer passwords are reduced to the base64 SHA-256 digest so that every
// byte still counts.
func bcryptInput(password string) []byte {
	if len(password) <= bcryptMaxPasswordLen {
		return []byte(password)
	}

	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
