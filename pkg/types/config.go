// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by clients that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "zotero-mcp/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LibraryType selects the library namespace in API paths.
type LibraryType string

const (
	LibraryUser  LibraryType = "users"
	LibraryGroup LibraryType = "groups"
)

// ZoteroConfig holds settings for the Zotero API client.
type ZoteroConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API root. The local API served by the running Zotero
	// application lives at http://localhost:23119/api.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// LibraryID identifies the library. The local API accepts 0 for the
	// signed-in user's library.
	LibraryID string `json:"library_id" yaml:"library_id"`

	// LibraryType is "users" (default) or "groups".
	LibraryType LibraryType `json:"library_type" yaml:"library_type"`

	// APIKey is sent as Zotero-API-Key when set. Only needed when BaseURL
	// points at the web API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// BBTConfig holds settings for the Better BibTeX companion service.
type BBTConfig struct {
	// Enabled turns citation-key enrichment on. When false the probe is
	// never constructed.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Endpoint is the JSON-RPC endpoint of the Better BibTeX plugin.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// ProbeTimeout bounds the connectivity check (default 1s).
	ProbeTimeout time.Duration `json:"probe_timeout" yaml:"probe_timeout"`

	// ReadyTimeout bounds the api.ready and lookup calls (default 2s).
	ReadyTimeout time.Duration `json:"ready_timeout" yaml:"ready_timeout"`
}

// Transport selects how the MCP server talks to its client.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

// ServerConfig holds settings for the MCP server.
type ServerConfig struct {
	// Name and Version are reported in the MCP initialize handshake.
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`

	// Transport is stdio (default) or http (streamable HTTP).
	Transport Transport `json:"transport" yaml:"transport"`

	// HTTPAddr and HTTPPath locate the streamable HTTP endpoint.
	HTTPAddr string `json:"http_addr" yaml:"http_addr"`
	HTTPPath string `json:"http_path" yaml:"http_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level"`
}

// Config groups all settings.
type Config struct {
	Zotero ZoteroConfig `json:"zotero" yaml:"zotero"`
	BBT    BBTConfig    `json:"bbt" yaml:"bbt"`
	Server ServerConfig `json:"server" yaml:"server"`
	Log    LogConfig    `json:"log" yaml:"log"`
}
