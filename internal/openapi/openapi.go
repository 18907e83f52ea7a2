// Package openapi loads Swagger-style API descriptions into an
// order-preserving in-memory model.
package openapi

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrInvalidSpec indicates a document that parsed but does not describe an API
// (empty, or missing a paths section).
var ErrInvalidSpec = errors.New("invalid API spec")

// Document is the loaded API description.
type Document struct {
	Host     string `yaml:"host"`
	BasePath string `yaml:"basePath"`
	Paths    Paths  `yaml:"paths"`
}

// BaseURL returns the root URL all operation paths are relative to.
func (d *Document) BaseURL() string {
	return "https://" + d.Host + d.BasePath
}

// Paths holds the path → operations mapping in document order. YAML mappings
// lose ordering when decoded into a Go map, so decoding goes through
// yaml.MapSlice and keeps the key sequence separately.
type Paths struct {
	Order []string
	Items map[string]PathItem
}

// PathItem maps a lower-cased HTTP method to its operation.
type PathItem map[string]Operation

// Operation describes one method+path pair.
type Operation struct {
	Summary    string      `yaml:"summary"`
	Parameters []Parameter `yaml:"parameters"`
}

// Parameter is a single declared operation parameter.
type Parameter struct {
	Name     string `yaml:"name"`
	In       string `yaml:"in"`
	Required bool   `yaml:"required"`
}

func (p *Paths) UnmarshalYAML(unmarshal func(any) error) error {
	var ms yaml.MapSlice
	if err := unmarshal(&ms); err != nil {
		return fmt.Errorf("paths: must be a mapping: %w", err)
	}

	p.Items = make(map[string]PathItem, len(ms))
	for _, entry := range ms {
		path, ok := entry.Key.(string)
		if !ok {
			return fmt.Errorf("paths: key must be a string, got %T", entry.Key)
		}

		raw, err := yaml.Marshal(entry.Value)
		if err != nil {
			return fmt.Errorf("paths: re-encoding %s: %w", path, err)
		}
		var methods map[string]Operation
		if err := yaml.Unmarshal(raw, &methods); err != nil {
			return fmt.Errorf("paths: parsing %s: %w", path, err)
		}

		item := make(PathItem, len(methods))
		for method, op := range methods {
			item[strings.ToLower(method)] = op
		}

		p.Order = append(p.Order, path)
		p.Items[path] = item
	}

	return nil
}

// Load parses an API description from r.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading spec: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing spec: %w", err)
	}

	if len(doc.Paths.Order) == 0 {
		return nil, fmt.Errorf("spec declares no paths: %w", ErrInvalidSpec)
	}

	return &doc, nil
}

// LoadFile parses the API description at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening spec: %w", err)
	}
	defer f.Close()
	return Load(f)
}
