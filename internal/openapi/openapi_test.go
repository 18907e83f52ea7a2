package openapi

import (
	"errors"
	"strings"
	"testing"
)

const sampleSpec = `
host: api.example.net
basePath: /v1/api
paths:
  /devices:
    get:
      summary: List devices
      parameters:
        - name: status
          in: query
          required: true
        - name: limit
          in: query
          required: false
  /sites:
    get:
      parameters:
        - name: region
          in: query
          required: true
  /sites/{id}/radios:
    get: {}
  /health:
    get: {}
  /devices/reboot:
    post: {}
`

func TestLoad(t *testing.T) {
	doc, err := Load(strings.NewReader(sampleSpec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Host != "api.example.net" {
		t.Errorf("host = %q, want %q", doc.Host, "api.example.net")
	}
	if got, want := doc.BaseURL(), "https://api.example.net/v1/api"; got != want {
		t.Errorf("BaseURL() = %q, want %q", got, want)
	}

	wantOrder := []string{"/devices", "/sites", "/sites/{id}/radios", "/health", "/devices/reboot"}
	if len(doc.Paths.Order) != len(wantOrder) {
		t.Fatalf("path count = %d, want %d", len(doc.Paths.Order), len(wantOrder))
	}
	for i, path := range wantOrder {
		if doc.Paths.Order[i] != path {
			t.Errorf("order[%d] = %q, want %q", i, doc.Paths.Order[i], path)
		}
	}

	devices, ok := doc.Paths.Items["/devices"]["get"]
	if !ok {
		t.Fatal("expected GET operation on /devices")
	}
	if len(devices.Parameters) != 2 {
		t.Fatalf("parameter count = %d, want 2", len(devices.Parameters))
	}
	if p := devices.Parameters[0]; p.Name != "status" || !p.Required {
		t.Errorf("first parameter = %+v, want required status", p)
	}
	if p := devices.Parameters[1]; p.Name != "limit" || p.Required {
		t.Errorf("second parameter = %+v, want optional limit", p)
	}

	if _, ok := doc.Paths.Items["/devices/reboot"]["post"]; !ok {
		t.Error("expected POST operation on /devices/reboot")
	}
}

func TestLoadMethodCaseInsensitive(t *testing.T) {
	doc, err := Load(strings.NewReader("host: h\npaths:\n  /a:\n    GET: {}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := doc.Paths.Items["/a"]["get"]; !ok {
		t.Error("expected upper-cased method key to be normalized")
	}
}

func TestLoadEmptyDocument(t *testing.T) {
	_, err := Load(strings.NewReader(""))
	if !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("error = %v, want ErrInvalidSpec", err)
	}
}

func TestLoadMissingPaths(t *testing.T) {
	_, err := Load(strings.NewReader("host: api.example.net\nbasePath: /v1\n"))
	if !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("error = %v, want ErrInvalidSpec", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	if _, err := Load(strings.NewReader("paths: [not, a, mapping]")); err == nil {
		t.Error("expected error for non-mapping paths")
	}
}

func TestLoadFileNotFound(t *testing.T) {
	if _, err := LoadFile("/nonexistent/spec.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
