package utils

import "github.com/google/uuid"

// UUIDGenerator produces the unique "jti" id of every issued token.
// Time-ordered v7 ids are preferred so that ids sort by issuance time.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
