// Package sink serializes probe outcomes for downstream consumers.
package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mkraj/apiprobe/internal/probe"
)

// Write serializes the ordered outcome list as an indented JSON array.
func Write(w io.Writer, outcomes []probe.Outcome) error {
	if outcomes == nil {
		outcomes = []probe.Outcome{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(outcomes); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

// WriteFile writes the outcome list to path, replacing any existing file.
func WriteFile(path string, outcomes []probe.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}

	if err := Write(f, outcomes); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing results file: %w", err)
	}
	return nil
}
