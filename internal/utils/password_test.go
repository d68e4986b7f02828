package utils

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !CheckPassword("secret123", hash) {
		t.Error("expected stored hash to verify the original password")
	}
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword("secret123", 0)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("expected parseable hash, got: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("expected cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	second, err := HashPassword("secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if first == second {
		t.Error("expected per-hash salting, got identical hashes")
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	// bcrypt rejects inputs longer than 72 bytes
	_, err := HashPassword(strings.Repeat("x", 100), bcrypt.MinCost)
	if err == nil {
		t.Fatal("expected error for over-long password, got nil")
	}
}

func TestCheckPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if CheckPassword("Secret123", hash) {
		t.Error("expected mismatching password to fail verification")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if CheckPassword("secret123", "not-a-bcrypt-hash") {
		t.Error("expected malformed hash to fail verification")
	}
}
