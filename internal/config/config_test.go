package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigUsesEnvHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvGumshoeHome, dir)

	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig: %v", err)
	}

	if cfg.Home != dir {
		t.Errorf("expected home %q, got %q", dir, cfg.Home)
	}
	if cfg.ConfigFile != filepath.Join(dir, "config.toml") {
		t.Errorf("unexpected config file path: %s", cfg.ConfigFile)
	}
}

func TestDefaultConfigFallsBackToUserHome(t *testing.T) {
	t.Setenv(EnvGumshoeHome, "")

	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig: %v", err)
	}

	if filepath.Base(cfg.Home) != ".gumshoe" {
		t.Errorf("expected home to end in .gumshoe, got %s", cfg.Home)
	}
}

func TestGetSearchTimeout(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
	}{
		{name: "unset", value: "", expected: DefaultSearchTimeout},
		{name: "valid", value: "30s", expected: 30 * time.Second},
		{name: "invalid", value: "soon", expected: DefaultSearchTimeout},
		{name: "negative", value: "-5s", expected: DefaultSearchTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvSearchTimeout, tt.value)
			if got := GetSearchTimeout(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
