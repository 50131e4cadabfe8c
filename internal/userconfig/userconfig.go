// Package userconfig provides user configuration management for gumshoe.
// Configuration is stored in ~/.gumshoe/config.toml and can be modified
// via the `gumshoe config` command.
package userconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gumshoe-dev/gumshoe/internal/config"
)

// Config represents user-configurable settings.
type Config struct {
	// Provider is the preferred LLM provider ("ollama", "claude", "gemini").
	// Other available providers act as fallbacks.
	Provider string `toml:"provider"`

	// Model is the model identifier passed to the Ollama provider.
	// Claude and Gemini use their own fixed model constants.
	Model string `toml:"model"`

	// OllamaURL is the base URL of the local Ollama server.
	OllamaURL string `toml:"ollama_url"`

	// Secrets holds API keys by canonical name. Environment variables
	// take priority; see the secrets package.
	Secrets map[string]string `toml:"secrets,omitempty"`
}

// DefaultConfig returns a Config with default values. The defaults match
// the original local-model setup: Ollama on localhost running llama3.2.
func DefaultConfig() *Config {
	return &Config{
		Provider:  "ollama",
		Model:     "llama3.2",
		OllamaURL: "http://localhost:11434",
	}
}

// Load reads the config file and returns the configuration.
// Returns default values if the file doesn't exist.
// Returns an error only for file parsing issues, not missing files.
func Load() (*Config, error) {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return DefaultConfig(), nil // Silently use defaults
	}

	return loadFromPath(cfg.ConfigFile)
}

// loadFromPath reads config from a specific file path (for testing).
func loadFromPath(path string) (*Config, error) {
	userCfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return userCfg, nil // File doesn't exist, use defaults
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), userCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return userCfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return c.saveToPath(cfg.ConfigFile)
}

// saveToPath writes config to a specific file path (for testing).
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the value of a config key as a string.
// Returns empty string and false if the key doesn't exist.
func (c *Config) Get(key string) (string, bool) {
	switch strings.ToLower(key) {
	case "provider":
		return c.Provider, true
	case "model":
		return c.Model, true
	case "ollama_url":
		return c.OllamaURL, true
	default:
		return "", false
	}
}

// Set updates a config value from a string.
// Returns an error if the key doesn't exist or the value is invalid.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "provider":
		switch value {
		case "ollama", "claude", "gemini":
			c.Provider = value
			return nil
		default:
			return fmt.Errorf("invalid provider: must be ollama, claude, or gemini")
		}
	case "model":
		if value == "" {
			return fmt.Errorf("model must not be empty")
		}
		c.Model = value
		return nil
	case "ollama_url":
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("invalid ollama_url: must start with http:// or https://")
		}
		c.OllamaURL = value
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// AvailableKeys returns a list of all configurable keys with descriptions.
func AvailableKeys() map[string]string {
	return map[string]string{
		"provider":   "Preferred LLM provider (ollama/claude/gemini)",
		"model":      "Ollama model identifier (e.g. llama3.2)",
		"ollama_url": "Base URL of the local Ollama server",
	}
}
