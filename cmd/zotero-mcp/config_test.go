// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/zotero-mcp/internal/bbt"
	"github.com/pdiddy/zotero-mcp/internal/secrets"
	"github.com/pdiddy/zotero-mcp/pkg/types"
)

// newTestViper returns a viper with defaults and env bindings and a
// private, empty secrets directory.
func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	bindEnv(v)
	v.Set("secrets_dir", t.TempDir())
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ZOTERO_USER_ID", "")
	t.Setenv("ZOTERO_MCP_ZOTERO_LIBRARY_ID", "")

	c, err := loadConfig(newTestViper(t), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:23119/api", c.Zotero.BaseURL)
	assert.Equal(t, "0", c.Zotero.LibraryID)
	assert.Equal(t, types.LibraryUser, c.Zotero.LibraryType)
	assert.Equal(t, 30*time.Second, c.Zotero.Timeout)
	assert.Equal(t, "zotero-mcp/dev", c.Zotero.UserAgent)
	assert.Empty(t, c.Zotero.APIKey)

	assert.True(t, c.BBT.Enabled)
	assert.Equal(t, "http://127.0.0.1:23119/better-bibtex/json-rpc", c.BBT.Endpoint)
	assert.Equal(t, time.Second, c.BBT.ProbeTimeout)
	assert.Equal(t, 2*time.Second, c.BBT.ReadyTimeout)

	assert.Equal(t, types.TransportStdio, c.Server.Transport)
	assert.Equal(t, "zotero-mcp", c.Server.Name)
	assert.Equal(t, "dev", c.Server.Version)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadConfigUserIDFromEnv(t *testing.T) {
	t.Setenv("ZOTERO_MCP_ZOTERO_LIBRARY_ID", "")
	t.Setenv("ZOTERO_USER_ID", "123456")

	c, err := loadConfig(newTestViper(t), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "123456", c.Zotero.LibraryID)
}

func TestLoadConfigPrefixedEnvWins(t *testing.T) {
	t.Setenv("ZOTERO_MCP_ZOTERO_LIBRARY_ID", "777")
	t.Setenv("ZOTERO_USER_ID", "123456")

	c, err := loadConfig(newTestViper(t), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "777", c.Zotero.LibraryID)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("ZOTERO_MCP_BBT_ENABLED", "false")
	t.Setenv("ZOTERO_MCP_SERVER_TRANSPORT", "http")
	t.Setenv("ZOTERO_MCP_ZOTERO_TIMEOUT", "5s")

	c, err := loadConfig(newTestViper(t), zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, c.BBT.Enabled)
	assert.Equal(t, types.TransportHTTP, c.Server.Transport)
	assert.Equal(t, 5*time.Second, c.Zotero.Timeout)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zotero-mcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
zotero:
  base_url: http://zotero.test/api
  library_type: groups
  library_id: "42"
bbt:
  enabled: false
log:
  level: debug
`), 0o644))

	v := newTestViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	c, err := loadConfig(v, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "http://zotero.test/api", c.Zotero.BaseURL)
	assert.Equal(t, types.LibraryGroup, c.Zotero.LibraryType)
	assert.Equal(t, "42", c.Zotero.LibraryID)
	assert.False(t, c.BBT.Enabled)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoadConfigSecrets(t *testing.T) {
	t.Setenv("ZOTERO_USER_ID", "")
	t.Setenv("ZOTERO_MCP_ZOTERO_LIBRARY_ID", "")

	v := newTestViper(t)
	dir := v.GetString("secrets_dir")
	require.NoError(t, os.WriteFile(filepath.Join(dir, secrets.ZoteroAPIKey), []byte("zk_secret\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, secrets.ZoteroUserID), []byte("99\n"), 0o600))

	c, err := loadConfig(v, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "zk_secret", c.Zotero.APIKey)
	assert.Equal(t, "99", c.Zotero.LibraryID)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"server.transport", "carrier-pigeon", "server.transport"},
		{"zotero.library_type", "teams", "zotero.library_type"},
		{"log.level", "loud", "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := newTestViper(t)
			v.Set(tt.key, tt.value)
			_, err := loadConfig(v, zerolog.Nop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "warn")
	log.Info().Msg("quiet")
	log.Warn().Msg("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")

	assert.Equal(t, zerolog.InfoLevel, newLogger(&buf, "").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, newLogger(&buf, "bogus").GetLevel())
}

func TestNewService(t *testing.T) {
	c := types.Config{Zotero: types.ZoteroConfig{LibraryID: "0"}}

	svc, prober := newService(c, zerolog.Nop())
	assert.Nil(t, prober)
	assert.False(t, svc.CitationsEnabled())

	c.BBT.Enabled = true
	svc, prober = newService(c, zerolog.Nop())
	require.NotNil(t, prober)
	assert.True(t, svc.CitationsEnabled())
	assert.Equal(t, bbt.StateUnknown, prober.State(), "readiness is probed lazily")
}

func TestPrintPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPayload(&buf, map[string]int{"count": 3}))
	assert.JSONEq(t, `{"count":3}`, buf.String())

	buf.Reset()
	require.NoError(t, printPayload(&buf, types.Advisory{Code: types.CodeNotFound, Message: "No results found"}))
	assert.Contains(t, buf.String(), "not_found")

	buf.Reset()
	err := printPayload(&buf, types.Advisory{Code: types.CodeBackend, Message: "connection refused"})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "backend_error")
	assert.EqualError(t, err, "connection refused")
}
