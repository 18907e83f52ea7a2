// Package prober discovers the safely callable operations of an API spec and
// invokes them sequentially against a live service.
package prober

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mkraj/apiprobe/internal/probe"
)

// DefaultTimeout bounds each probe call.
const DefaultTimeout = 10 * time.Second

// DefaultDelay is the inter-call pause that keeps the run under the external
// service's rate limit.
const DefaultDelay = 1 * time.Second

// Prober issues one GET per resolvable endpoint, strictly sequentially.
type Prober struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Delay   time.Duration
	Logger  *slog.Logger
}

// New creates a Prober with the default client timeout and rate-limit delay.
func New(baseURL, apiKey string) *Prober {
	return &Prober{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: DefaultTimeout},
		Delay:   DefaultDelay,
		Logger:  slog.Default(),
	}
}

// Run probes every endpoint in discovery order and returns one outcome per
// endpoint. No failure aborts the run: unresolvable endpoints are recorded as
// skipped without an HTTP call, transport failures as network errors. The
// rate-limit delay applies only after performed calls; skips are free.
func (p *Prober) Run(ctx context.Context, endpoints []Endpoint, defaults map[string]string) []probe.Outcome {
	outcomes := make([]probe.Outcome, 0, len(endpoints))

	for _, ep := range endpoints {
		callURL := p.BaseURL + ep.Path

		res := Resolve(ep.Op, defaults)
		if !res.Runnable {
			p.Logger.Warn("skipping endpoint, required parameters without defaults",
				"path", ep.Path, "missing", res.Missing)
			outcomes = append(outcomes, probe.Outcome{
				Path:    ep.Path,
				FullURL: callURL,
				Code:    probe.SentinelCode,
				Kind:    probe.KindSkipped,
			})
			continue
		}
		if res.Query != "" {
			callURL += "?" + res.Query
		}

		out := p.fetch(ctx, ep.Path, callURL)
		outcomes = append(outcomes, out)

		if p.Delay > 0 {
			select {
			case <-time.After(p.Delay):
			case <-ctx.Done():
				return outcomes
			}
		}
	}

	return outcomes
}

func (p *Prober) fetch(ctx context.Context, path, callURL string) probe.Outcome {
	out := probe.Outcome{Path: path, FullURL: callURL}

	p.Logger.Info("probing endpoint", "url", callURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, callURL, nil)
	if err != nil {
		p.Logger.Error("building request failed", "url", callURL, "error", err)
		out.Code = probe.SentinelCode
		out.Kind = probe.KindNetworkError
		return out
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		p.Logger.Error("request failed", "url", callURL, "error", err)
		out.Code = probe.SentinelCode
		out.Kind = probe.KindNetworkError
		return out
	}
	defer resp.Body.Close()

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		p.Logger.Error("response was not valid JSON", "url", callURL, "error", err)
		out.Code = probe.SentinelCode
		out.Kind = probe.KindNetworkError
		return out
	}

	// Existence probing, not success validation: a non-2xx status with a
	// valid JSON body still counts as a completed probe.
	out.Code = resp.StatusCode
	out.Kind = probe.KindOK
	if probe.Truthy(body) {
		out.Presence = probe.PresenceExists
	} else {
		out.Presence = probe.PresenceEmpty
	}

	p.Logger.Info("endpoint probed", "path", path, "code", out.Code, "result", out.Result())
	return out
}
