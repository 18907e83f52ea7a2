// Package config reads and validates the caller-supplied inputs: API key,
// parameter defaults and the poller configuration.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyInput indicates a required input that was readable but empty.
// Empty inputs are fatal before any network activity.
var ErrEmptyInput = errors.New("input is empty")

// ReadAPIKey reads the API key file and trims surrounding whitespace.
func ReadAPIKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("API key file %s: %w", path, ErrEmptyInput)
	}
	return key, nil
}

// LoadDefaults reads the flat name → value JSON mapping used to satisfy
// required parameters. Number values keep their literal form ("10", not
// "10.000000"); an empty mapping is an error.
func LoadDefaults(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading defaults: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing defaults: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("defaults file %s: %w", path, ErrEmptyInput)
	}

	defaults := make(map[string]string, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case string:
			defaults[name] = v
		case json.Number:
			defaults[name] = v.String()
		default:
			defaults[name] = fmt.Sprint(v)
		}
	}
	return defaults, nil
}
