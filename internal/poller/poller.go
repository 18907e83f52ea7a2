// Package poller periodically captures the controller and device endpoints
// and archives the payloads for later flattening.
package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	units "github.com/docker/go-units"

	"github.com/mkraj/apiprobe/internal/config"
	"github.com/mkraj/apiprobe/internal/store"
)

const (
	controllersPath = "/cfgm/controllers"
	devicesPath     = "/cfgm/devices?config-status=Activated"

	// LatestFile always holds the most recent snapshot.
	LatestFile = "latest.json"
)

// envelope is the polled API's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Snapshot is one capture of both endpoints. Endpoints whose call failed (or
// reported success=false) stay null rather than aborting the capture.
type Snapshot struct {
	Timestamp   string          `json:"timestamp"`
	Controllers json.RawMessage `json:"controllers"`
	Devices     json.RawMessage `json:"devices"`
}

// Poller drives the capture loop.
type Poller struct {
	BaseURL  string
	KeyFile  string
	LogDir   string
	Interval time.Duration
	Delay    time.Duration // pause between the two calls (rate limit)
	Client   *http.Client
	Store    *store.Store // optional archive
	Logger   *slog.Logger
}

// New creates a Poller with the default client timeout and inter-call delay.
func New(cfg *config.PollConfig) *Poller {
	return &Poller{
		BaseURL:  cfg.BaseURL,
		KeyFile:  cfg.APIKeyFile,
		LogDir:   cfg.LogDir,
		Interval: time.Duration(cfg.Interval) * time.Minute,
		Delay:    1 * time.Second,
		Client:   &http.Client{Timeout: 10 * time.Second},
		Logger:   slog.Default(),
	}
}

// Run captures immediately and then on every interval tick until ctx is
// cancelled. A failed capture is logged and the loop continues.
func (p *Poller) Run(ctx context.Context) error {
	if err := os.MkdirAll(p.LogDir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	for {
		if err := p.Capture(ctx); err != nil {
			p.Logger.Error("capture failed", "error", err)
		}

		p.Logger.Info("sleeping until next capture", "interval", units.HumanDuration(p.Interval))
		select {
		case <-ctx.Done():
			p.Logger.Info("poller stopping")
			return nil
		case <-time.After(p.Interval):
		}
	}
}

// Capture performs one two-endpoint capture cycle. The API key is re-read on
// every cycle so key rotation does not require a restart.
func (p *Poller) Capture(ctx context.Context) error {
	key, err := config.ReadAPIKey(p.KeyFile)
	if err != nil {
		return err
	}

	snap := Snapshot{Timestamp: time.Now().Format(time.RFC3339)}

	p.Logger.Info("fetching controllers")
	if data, err := p.fetch(ctx, key, controllersPath); err != nil {
		p.Logger.Error("controllers fetch failed", "error", err)
	} else {
		snap.Controllers = data
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.Delay):
	}

	p.Logger.Info("fetching devices")
	if data, err := p.fetch(ctx, key, devicesPath); err != nil {
		p.Logger.Error("devices fetch failed", "error", err)
	} else {
		snap.Devices = data
	}

	return p.write(ctx, snap)
}

func (p *Poller) fetch(ctx context.Context, key, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", key)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("service reported success=false for %s", path)
	}
	return env.Data, nil
}

func (p *Poller) write(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	snapPath := filepath.Join(p.LogDir, snap.Timestamp+".json")
	if err := os.WriteFile(snapPath, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(p.LogDir, LatestFile), data, 0o644); err != nil {
		return fmt.Errorf("write latest snapshot: %w", err)
	}

	if p.Store != nil {
		if err := p.Store.Save(ctx, snap.Timestamp, data); err != nil {
			return err
		}
	}

	p.Logger.Info("snapshot written",
		"file", snapPath,
		"size", units.HumanSize(float64(len(data))),
	)
	return nil
}
