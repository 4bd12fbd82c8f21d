// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/pdiddy/zotero-mcp/internal/bbt"
	"github.com/pdiddy/zotero-mcp/internal/secrets"
	"github.com/pdiddy/zotero-mcp/internal/server"
	"github.com/pdiddy/zotero-mcp/internal/zotero"
	"github.com/pdiddy/zotero-mcp/pkg/types"
)

const envPrefix = "ZOTERO_MCP"

func setDefaults(v *viper.Viper) {
	v.SetDefault("zotero.base_url", zotero.DefaultBaseURL)
	v.SetDefault("zotero.library_id", zotero.DefaultLibraryID)
	v.SetDefault("zotero.library_type", string(types.LibraryUser))
	v.SetDefault("zotero.timeout", zotero.DefaultTimeout)
	v.SetDefault("zotero.user_agent", zotero.DefaultUserAgent+"/"+version)

	v.SetDefault("bbt.enabled", true)
	v.SetDefault("bbt.endpoint", bbt.DefaultEndpoint)
	v.SetDefault("bbt.probe_timeout", bbt.DefaultProbeTimeout)
	v.SetDefault("bbt.ready_timeout", bbt.DefaultReadyTimeout)

	v.SetDefault("server.name", server.DefaultName)
	v.SetDefault("server.transport", string(types.TransportStdio))
	v.SetDefault("server.http_addr", server.DefaultHTTPAddr)
	v.SetDefault("server.http_path", server.DefaultHTTPPath)

	v.SetDefault("log.level", "info")
	v.SetDefault("secrets_dir", ".secrets")
}

// bindEnv maps every key to ZOTERO_MCP_<KEY> (dots become underscores).
// ZOTERO_USER_ID is honored for the library id.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("zotero.library_id", envPrefix+"_ZOTERO_LIBRARY_ID", "ZOTERO_USER_ID")
}

// loadConfig resolves the settings in v and fills credentials from the
// secrets directory where the config leaves them unset.
func loadConfig(v *viper.Viper, log zerolog.Logger) (types.Config, error) {
	c := types.Config{
		Zotero: types.ZoteroConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("zotero.timeout"),
				UserAgent: v.GetString("zotero.user_agent"),
			},
			BaseURL:     v.GetString("zotero.base_url"),
			LibraryID:   v.GetString("zotero.library_id"),
			LibraryType: types.LibraryType(v.GetString("zotero.library_type")),
			APIKey:      v.GetString("zotero.api_key"),
		},
		BBT: types.BBTConfig{
			Enabled:      v.GetBool("bbt.enabled"),
			Endpoint:     v.GetString("bbt.endpoint"),
			ProbeTimeout: v.GetDuration("bbt.probe_timeout"),
			ReadyTimeout: v.GetDuration("bbt.ready_timeout"),
		},
		Server: types.ServerConfig{
			Name:      v.GetString("server.name"),
			Version:   version,
			Transport: types.Transport(v.GetString("server.transport")),
			HTTPAddr:  v.GetString("server.http_addr"),
			HTTPPath:  v.GetString("server.http_path"),
		},
		Log: types.LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	switch c.Zotero.LibraryType {
	case "", types.LibraryUser, types.LibraryGroup:
	default:
		return c, fmt.Errorf("zotero.library_type must be %q or %q, got %q",
			types.LibraryUser, types.LibraryGroup, c.Zotero.LibraryType)
	}
	switch c.Server.Transport {
	case types.TransportStdio, types.TransportHTTP:
	default:
		return c, fmt.Errorf("server.transport must be %q or %q, got %q",
			types.TransportStdio, types.TransportHTTP, c.Server.Transport)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return c, fmt.Errorf("log.level: %w", err)
	}

	s, err := secrets.Load(v.GetString("secrets_dir"), log)
	if err != nil {
		return c, err
	}
	secrets.Apply(&c.Zotero, s)
	return c, nil
}

// newLogger writes human-readable logs to w. Stdout is reserved for the
// MCP stdio channel and command output, so callers pass stderr.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().Timestamp().Logger()
}
