// Package config resolves gumshoe's directories and request limits.
//
// Settings here are process-level: the home directory, the user config
// file path, and the timeouts for outbound HTTP requests. User-facing
// preferences (provider, model) live in the userconfig package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// EnvGumshoeHome overrides the default gumshoe home directory.
	EnvGumshoeHome = "GUMSHOE_HOME"

	// EnvSearchTimeout configures the search and page-fetch request timeout.
	EnvSearchTimeout = "GUMSHOE_SEARCH_TIMEOUT"

	// DefaultSearchTimeout bounds one search-engine or page-fetch request.
	DefaultSearchTimeout = 10 * time.Second
)

// Config holds resolved paths for the current process.
type Config struct {
	// Home is the gumshoe home directory (default ~/.gumshoe).
	Home string

	// ConfigFile is the path to the user config file.
	ConfigFile string
}

// DefaultConfig resolves the home directory from GUMSHOE_HOME or the
// user's home directory.
func DefaultConfig() (*Config, error) {
	home := os.Getenv(EnvGumshoeHome)
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
		home = filepath.Join(userHome, ".gumshoe")
	}

	return &Config{
		Home:       home,
		ConfigFile: filepath.Join(home, "config.toml"),
	}, nil
}

// GetSearchTimeout returns the configured outbound request timeout from
// GUMSHOE_SEARCH_TIMEOUT. If unset or invalid, returns DefaultSearchTimeout.
// Accepts duration strings like "10s", "30s", "1m".
func GetSearchTimeout() time.Duration {
	envValue := os.Getenv(EnvSearchTimeout)
	if envValue == "" {
		return DefaultSearchTimeout
	}

	duration, err := time.ParseDuration(envValue)
	if err != nil || duration <= 0 {
		return DefaultSearchTimeout
	}

	return duration
}
