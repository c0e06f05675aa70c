package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultTokenPath returns where the CLI stores the session token between
// invocations (~/.watchcall/session).
func DefaultTokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".watchcall", "session"), nil
}

// SaveToken writes the session token to path, creating parent directories.
func SaveToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

// LoadToken reads a previously saved session token. A missing file returns
// an empty token, not an error: the caller treats it as "not logged in".
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ClearToken removes the saved token, ignoring a missing file.
func ClearToken(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}
