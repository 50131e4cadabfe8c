package userconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Provider != "ollama" {
		t.Errorf("expected default provider ollama, got %q", cfg.Provider)
	}
	if cfg.Model != "llama3.2" {
		t.Errorf("expected default model llama3.2, got %q", cfg.Model)
	}
	if cfg.OllamaURL != "http://localhost:11434" {
		t.Errorf("unexpected default ollama_url: %q", cfg.OllamaURL)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("loadFromPath: %v", err)
	}

	if cfg.Provider != "ollama" {
		t.Errorf("expected defaults for missing file, got provider %q", cfg.Provider)
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("provider = ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadFromPath(path); err == nil {
		t.Error("expected parse error for malformed TOML")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Provider = "claude"
	cfg.Model = "llama3.1"

	if err := cfg.saveToPath(path); err != nil {
		t.Fatalf("saveToPath: %v", err)
	}

	loaded, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath: %v", err)
	}

	if loaded.Provider != "claude" {
		t.Errorf("expected provider claude, got %q", loaded.Provider)
	}
	if loaded.Model != "llama3.1" {
		t.Errorf("expected model llama3.1, got %q", loaded.Model)
	}
	if loaded.OllamaURL != cfg.OllamaURL {
		t.Errorf("ollama_url changed across round trip: %q", loaded.OllamaURL)
	}
}

func TestGet(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key      string
		expected string
		ok       bool
	}{
		{"provider", "ollama", true},
		{"Model", "llama3.2", true},
		{"ollama_url", "http://localhost:11434", true},
		{"unknown", "", false},
	}

	for _, tt := range tests {
		got, ok := cfg.Get(tt.key)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("Get(%q) = (%q, %v), expected (%q, %v)", tt.key, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{name: "valid provider", key: "provider", value: "gemini"},
		{name: "invalid provider", key: "provider", value: "openai", wantErr: true},
		{name: "valid model", key: "model", value: "mistral"},
		{name: "empty model", key: "model", value: "", wantErr: true},
		{name: "valid url", key: "ollama_url", value: "http://10.0.0.2:11434"},
		{name: "invalid url", key: "ollama_url", value: "localhost:11434", wantErr: true},
		{name: "unknown key", key: "nope", value: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAvailableKeys(t *testing.T) {
	keys := AvailableKeys()
	for _, k := range []string{"provider", "model", "ollama_url"} {
		if _, ok := keys[k]; !ok {
			t.Errorf("expected key %q in AvailableKeys", k)
		}
	}
}
