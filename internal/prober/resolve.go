package prober

import (
	"strings"

	"github.com/mkraj/apiprobe/internal/openapi"
)

// Resolution is the explicit outcome of matching an operation's required
// parameters against the defaults. The tagged form keeps the skip decision
// auditable instead of hiding it in a truthy check.
type Resolution struct {
	Runnable bool
	Query    string   // "name=value&..." over required params, declaration order
	Missing  []string // required parameter names without defaults
}

// Resolve determines whether op can be invoked with the given defaults.
// Only parameters flagged required contribute to the query string; optional
// parameters are never sent even when defaults cover them. An operation with
// no required parameters is always runnable with an empty query.
func Resolve(op openapi.Operation, defaults map[string]string) Resolution {
	var required []openapi.Parameter
	for _, p := range op.Parameters {
		if p.Required {
			required = append(required, p)
		}
	}

	var missing []string
	for _, p := range required {
		if _, ok := defaults[p.Name]; !ok {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return Resolution{Missing: missing}
	}

	pairs := make([]string, len(required))
	for i, p := range required {
		pairs[i] = p.Name + "=" + defaults[p.Name]
	}
	return Resolution{Runnable: true, Query: strings.Join(pairs, "&")}
}
