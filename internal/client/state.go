package client

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// loadToken reads the persisted session token from path. A missing state file
// is not an error: it simply means nobody is signed in.
func loadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}

// saveToken persists the session token to path, creating parent directories
// as needed. The file is readable by the owner only: the token is a
// credential.
func saveToken(path string, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(token+"\n"), 0600)
}

// clearToken removes the state file. Already-absent files are ignored so that
// logout stays idempotent on the client side too.
func clearToken(path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}
