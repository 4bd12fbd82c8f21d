// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bbt talks to the Better BibTeX plugin's JSON-RPC endpoint.
//
// A Prober tracks whether the plugin is ready. Ready is sticky for the life
// of the process. Unavailable is not: every enrichment attempt checks again,
// so starting Zotero after the server starts is picked up on the next call.
package bbt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/pdiddy/zotero-mcp/internal/httputil"
	"github.com/pdiddy/zotero-mcp/pkg/types"
)

// Defaults applied by New for zero config values.
const (
	DefaultEndpoint     = "http://127.0.0.1:23119/better-bibtex/json-rpc"
	DefaultProbeTimeout = 1 * time.Second
	DefaultReadyTimeout = 2 * time.Second
)

// ErrUnavailable is returned by CitationKeys when the plugin is not ready.
var ErrUnavailable = errors.New("better bibtex is not available")

// State is the readiness of the plugin as last observed.
type State int

const (
	StateUnknown State = iota
	StateUnavailable
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUnavailable:
		return "unavailable"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Versions is the api.ready result.
type Versions struct {
	Zotero       string `json:"zotero"`
	BetterBibTeX string `json:"betterbibtex"`
}

// Status is a snapshot of the prober for display.
type Status struct {
	Endpoint string `json:"endpoint"`
	State    string `json:"state"`
	Versions
}

// Prober checks plugin readiness and resolves citation keys. It is safe
// for concurrent use; probes are serialized.
type Prober struct {
	endpoint     string
	client       *http.Client
	probeTimeout time.Duration
	readyTimeout time.Duration

	mu       sync.Mutex
	state    State
	versions Versions
}

// New returns a Prober in StateUnknown. A nil client uses
// http.DefaultClient; per-call timeouts come from cfg.
func New(cfg types.BBTConfig, client *http.Client) *Prober {
	if client == nil {
		client = http.DefaultClient
	}
	p := &Prober{
		endpoint:     cfg.Endpoint,
		client:       client,
		probeTimeout: cfg.ProbeTimeout,
		readyTimeout: cfg.ReadyTimeout,
	}
	if p.endpoint == "" {
		p.endpoint = DefaultEndpoint
	}
	if p.probeTimeout <= 0 {
		p.probeTimeout = DefaultProbeTimeout
	}
	if p.readyTimeout <= 0 {
		p.readyTimeout = DefaultReadyTimeout
	}
	return p
}

// Endpoint returns the JSON-RPC URL in use.
func (p *Prober) Endpoint() string { return p.endpoint }

// State returns the last observed state without contacting the plugin.
func (p *Prober) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// ProbeEndpoint reports whether anything answers at the endpoint. A
// failure marks the plugin unavailable. Once ready, the plugin is not
// contacted again and the answer is always true.
func (p *Prober) ProbeEndpoint(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateReady {
		return true
	}
	return p.probeEndpoint(ctx)
}

func (p *Prober) probeEndpoint(ctx context.Context) bool {
	if !httputil.Reachable(ctx, p.client, p.endpoint, p.probeTimeout) {
		p.state = StateUnavailable
		return false
	}
	return true
}

// ProbeReady reports whether the plugin is ready, caching a positive
// answer. When the endpoint does not answer, api.ready is not called.
func (p *Prober) ProbeReady(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateReady {
		return true
	}
	if !p.probeEndpoint(ctx) {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, p.readyTimeout)
	defer cancel()

	raw, err := call(ctx, p.client, p.endpoint, "api.ready", []any{})
	if err != nil {
		p.state = StateUnavailable
		return false
	}
	var v Versions
	if err := json.Unmarshal(raw, &v); err != nil || v.Zotero == "" || v.BetterBibTeX == "" {
		p.state = StateUnavailable
		return false
	}
	p.state = StateReady
	p.versions = v
	return true
}

// CitationKeys maps item keys to their citation keys in one batched call.
// Keys without a citation key are absent from the result. An empty input
// returns an empty map without contacting the plugin.
func (p *Prober) CitationKeys(ctx context.Context, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}
	if !p.ProbeReady(ctx) {
		return nil, ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, p.readyTimeout)
	defer cancel()

	raw, err := call(ctx, p.client, p.endpoint, "item.citationkey", []any{keys})
	if err != nil {
		return nil, fmt.Errorf("looking up citation keys: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, errors.New("looking up citation keys: empty item.citationkey result")
	}
	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("looking up citation keys: malformed item.citationkey result: %w", err)
	}

	out := make(map[string]string, len(result))
	for k, v := range result {
		if s, ok := v.(string); ok && s != "" {
			out[k] = s
		}
	}
	return out, nil
}

// Status probes readiness and reports the outcome.
func (p *Prober) Status(ctx context.Context) Status {
	p.ProbeReady(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{Endpoint: p.endpoint, State: p.state.String(), Versions: p.versions}
}
