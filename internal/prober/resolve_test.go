package prober

import (
	"testing"

	"github.com/mkraj/apiprobe/internal/openapi"
)

func TestResolveNoRequiredParams(t *testing.T) {
	tests := []struct {
		name string
		op   openapi.Operation
	}{
		{"no parameters", openapi.Operation{}},
		{"only optional", openapi.Operation{Parameters: []openapi.Parameter{
			{Name: "limit", Required: false},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.op, map[string]string{})
			if !res.Runnable {
				t.Fatal("expected runnable")
			}
			if res.Query != "" {
				t.Errorf("query = %q, want empty", res.Query)
			}
		})
	}
}

func TestResolveCovered(t *testing.T) {
	op := openapi.Operation{Parameters: []openapi.Parameter{
		{Name: "status", Required: true},
		{Name: "limit", Required: false},
		{Name: "region", Required: true},
	}}
	defaults := map[string]string{
		"status": "Activated",
		"region": "west",
		"limit":  "10", // optional, must never appear
	}

	res := Resolve(op, defaults)
	if !res.Runnable {
		t.Fatalf("expected runnable, missing = %v", res.Missing)
	}
	// Declaration order, required params only.
	if want := "status=Activated&region=west"; res.Query != want {
		t.Errorf("query = %q, want %q", res.Query, want)
	}
}

func TestResolveMissing(t *testing.T) {
	op := openapi.Operation{Parameters: []openapi.Parameter{
		{Name: "status", Required: true},
		{Name: "region", Required: true},
	}}

	res := Resolve(op, map[string]string{"status": "Activated"})
	if res.Runnable {
		t.Fatal("expected unresolvable")
	}
	if len(res.Missing) != 1 || res.Missing[0] != "region" {
		t.Errorf("missing = %v, want [region]", res.Missing)
	}
}
