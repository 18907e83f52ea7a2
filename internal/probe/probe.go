// Package probe defines the outcome model for endpoint probing.
package probe

import "encoding/json"

// Kind classifies how an outcome was produced. Network errors and genuinely
// empty responses share a serialized form but stay distinguishable here.
type Kind int

const (
	// KindOK means an HTTP call completed and returned decodable JSON,
	// regardless of status code.
	KindOK Kind = iota
	// KindSkipped means required parameters had no defaults; no call was made.
	KindSkipped
	// KindNetworkError means the call failed at transport level or the body
	// was not valid JSON.
	KindNetworkError
)

// Presence reports whether a decoded JSON payload was non-empty.
type Presence int

const (
	PresenceUnknown Presence = iota
	PresenceExists
	PresenceEmpty
)

// SentinelCode is the non-HTTP status recorded for skipped endpoints and
// transport failures, kept for downstream consumers that expect a code field.
const SentinelCode = 500

// Outcome is the recorded result of attempting (or skipping) one endpoint.
// Outcomes are appended in discovery order and never mutated afterwards.
type Outcome struct {
	Path     string
	FullURL  string
	Code     int
	Kind     Kind
	Presence Presence
}

// Result returns the serialized classification: "skipped", "exists" or
// "empty". Network errors report "empty", matching what the result file's
// consumers have always been given.
func (o Outcome) Result() string {
	switch o.Kind {
	case KindSkipped:
		return "skipped"
	case KindNetworkError:
		return "empty"
	default:
		if o.Presence == PresenceExists {
			return "exists"
		}
		return "empty"
	}
}

// MarshalJSON emits the fixed downstream wire format. The field names are a
// compatibility contract; do not rename them.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path    string `json:"path"`
		FullURL string `json:"full_url"`
		Code    int    `json:"code"`
		Result  string `json:"result"`
	}{o.Path, o.FullURL, o.Code, o.Result()})
}

// Truthy reports whether a decoded JSON value counts as a non-empty payload:
// non-empty object/array/string, non-zero number, or true. Null, zero, the
// empty string, false and empty composites do not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case json.Number:
		return t.String() != "0" && t.String() != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
