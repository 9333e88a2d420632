package config

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultAPIURL = "http://localhost:8080"

const tokenFileName = ".file_comparator_token"

// APIURL returns the base URL for the File Comparator API.
// It can be overridden with the FILE_COMPARATOR_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("FILE_COMPARATOR_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// tokenPath returns the token file location in the user's home directory,
// falling back to the working directory when home is unknown.
func tokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return tokenFileName
	}
	return filepath.Join(home, tokenFileName)
}

// SaveToken stores the JWT for later CLI commands.
func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0o600)
}

// LoadToken returns the stored JWT, or an empty string when not logged in.
func LoadToken() string {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ClearToken removes the stored JWT.
func ClearToken() error {
	err := os.Remove(tokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
