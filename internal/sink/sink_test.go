package sink

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkraj/apiprobe/internal/probe"
)

func TestWrite(t *testing.T) {
	outcomes := []probe.Outcome{
		{Path: "/devices", FullURL: "https://h/v1/devices?status=Activated", Code: 200, Kind: probe.KindOK, Presence: probe.PresenceExists},
		{Path: "/sites", FullURL: "https://h/v1/sites", Code: probe.SentinelCode, Kind: probe.KindSkipped},
		{Path: "/health", FullURL: "https://h/v1/health", Code: probe.SentinelCode, Kind: probe.KindNetworkError},
	}

	var buf bytes.Buffer
	if err := Write(&buf, outcomes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("record count = %d, want 3", len(decoded))
	}

	// Field names are a downstream contract.
	for i, rec := range decoded {
		for _, field := range []string{"path", "full_url", "code", "result"} {
			if _, ok := rec[field]; !ok {
				t.Errorf("record %d: missing field %q", i, field)
			}
		}
	}

	if decoded[0]["result"] != "exists" || decoded[1]["result"] != "skipped" || decoded[2]["result"] != "empty" {
		t.Errorf("results = %v, %v, %v", decoded[0]["result"], decoded[1]["result"], decoded[2]["result"])
	}
	// Order follows discovery order.
	if decoded[0]["path"] != "/devices" || decoded[2]["path"] != "/health" {
		t.Errorf("order not preserved: %v", decoded)
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("output = %q, want empty array", got)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	outcomes := []probe.Outcome{{Path: "/a", FullURL: "https://h/a", Code: 200, Kind: probe.KindOK, Presence: probe.PresenceEmpty}}

	if err := WriteFile(path, outcomes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("file is not a JSON array: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["result"] != "empty" {
		t.Errorf("decoded = %v", decoded)
	}
}
