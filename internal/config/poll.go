package config

import (
	"fmt"
	"os"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// PollConfig configures the capture daemon. Values from a config file are
// overlaid by CLI flags in cmd.
type PollConfig struct {
	BaseURL    string `yaml:"base_url" validate:"required,url"`
	Interval   int    `yaml:"interval" validate:"min=1"` // minutes between captures
	APIKeyFile string `yaml:"api_key_file" validate:"required"`
	LogDir     string `yaml:"log_dir" validate:"required"`
	Database   string `yaml:"database"` // optional SQLite archive path
}

// DefaultPollConfig returns the flag-level defaults.
func DefaultPollConfig() *PollConfig {
	return &PollConfig{
		Interval:   60,
		APIKeyFile: "./.secret",
		LogDir:     "./logs",
	}
}

// LoadPollConfig reads a YAML poll config, expanding ${ENV} references before
// parsing. Missing fields fall back to the defaults; the result is validated.
func LoadPollConfig(path string) (*PollConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("expanding env vars: %w", err)
	}

	cfg := DefaultPollConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config's struct tags.
func (c *PollConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}
