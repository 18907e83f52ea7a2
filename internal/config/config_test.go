package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadAPIKey(t *testing.T) {
	path := writeFile(t, ".secret", "  abc123token\n")
	key, err := ReadAPIKey(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "abc123token" {
		t.Errorf("key = %q, want trimmed %q", key, "abc123token")
	}
}

func TestReadAPIKeyEmpty(t *testing.T) {
	path := writeFile(t, ".secret", "   \n")
	if _, err := ReadAPIKey(path); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("error = %v, want ErrEmptyInput", err)
	}
}

func TestReadAPIKeyMissingFile(t *testing.T) {
	if _, err := ReadAPIKey(filepath.Join(t.TempDir(), "none")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeFile(t, "defaults.json", `{"status": "Activated", "limit": 25, "ratio": 0.5}`)
	defaults, err := LoadDefaults(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{"status": "Activated", "limit": "25", "ratio": "0.5"}
	for name, value := range want {
		if defaults[name] != value {
			t.Errorf("defaults[%q] = %q, want %q", name, defaults[name], value)
		}
	}
}

func TestLoadDefaultsEmpty(t *testing.T) {
	path := writeFile(t, "defaults.json", `{}`)
	if _, err := LoadDefaults(path); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("error = %v, want ErrEmptyInput", err)
	}
}

func TestLoadDefaultsMalformed(t *testing.T) {
	path := writeFile(t, "defaults.json", `not json`)
	if _, err := LoadDefaults(path); err == nil {
		t.Error("expected error for malformed defaults")
	}
}

func TestLoadPollConfig(t *testing.T) {
	t.Setenv("CAPTURE_DIR", "/var/captures")
	path := writeFile(t, "poll.yaml", `
base_url: https://api.example.net/v1/api
interval: 15
log_dir: ${CAPTURE_DIR}
`)

	cfg, err := LoadPollConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://api.example.net/v1/api" {
		t.Errorf("base_url = %q", cfg.BaseURL)
	}
	if cfg.Interval != 15 {
		t.Errorf("interval = %d, want 15", cfg.Interval)
	}
	if cfg.LogDir != "/var/captures" {
		t.Errorf("log_dir = %q, want env-expanded path", cfg.LogDir)
	}
	// Unset fields keep their defaults.
	if cfg.APIKeyFile != "./.secret" {
		t.Errorf("api_key_file = %q, want default", cfg.APIKeyFile)
	}
}

func TestLoadPollConfigInvalid(t *testing.T) {
	path := writeFile(t, "poll.yaml", "base_url: not-a-url\ninterval: 0\n")
	if _, err := LoadPollConfig(path); err == nil {
		t.Error("expected validation error")
	}
}
