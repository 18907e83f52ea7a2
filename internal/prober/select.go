package prober

import (
	"strings"

	"github.com/mkraj/apiprobe/internal/openapi"
)

// Endpoint is an eligible operation selected for probing.
type Endpoint struct {
	Path string
	Op   openapi.Operation
}

// SelectEndpoints returns the probeable subset of a spec: first-level paths
// (exactly one separator) that expose a GET operation, in document order.
// Nested paths and paths without a read operation are excluded silently.
func SelectEndpoints(doc *openapi.Document) []Endpoint {
	var endpoints []Endpoint
	for _, path := range doc.Paths.Order {
		if strings.Count(path, "/") != 1 {
			continue
		}
		op, ok := doc.Paths.Items[path]["get"]
		if !ok {
			continue
		}
		endpoints = append(endpoints, Endpoint{Path: path, Op: op})
	}
	return endpoints
}
