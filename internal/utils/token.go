package utils

import "github.com/google/uuid"

// TokenGenerator produces opaque session tokens. Tokens carry no
// embedded claims; they are only meaningful as lookup keys in the
// session store, which is what makes revocation a plain delete.
type TokenGenerator struct {
}

func NewTokenGenerator() *TokenGenerator {
	return &TokenGenerator{}
}

// Generate returns a new random token. Prefers time-ordered UUIDv7
// and falls back to UUIDv4 if the entropy source misbehaves.
func (g *TokenGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
