package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt hash from a plaintext password.
//
// cost is the bcrypt cost factor; pass 0 to use bcrypt.DefaultCost. The
// work factor is the point: bcrypt is deliberately slow, which is what
// makes offline brute-forcing of leaked hashes expensive. Do not replace
// it with a fast general-purpose hash.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored bcrypt hash.
//
// Returns true only on an exact match. The comparison is performed by
// bcrypt itself and is constant-time with respect to the hash contents.
// A malformed stored hash also reports false: a corrupt credential record
// must never authenticate.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
