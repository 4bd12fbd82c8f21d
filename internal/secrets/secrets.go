// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file holds one secret: the filename is the key name and the trimmed
// file contents are the value.
//
// Recognized files: zotero-api-key, zotero-user-id. Only needed when the
// client talks to the Zotero web API instead of the local one.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/zotero-mcp/pkg/types"
)

// Secret file names.
const (
	ZoteroAPIKey = "zotero-api-key"
	ZoteroUserID = "zotero-user-id"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error and yields an empty map.
// Unreadable files are logged as warnings and skipped.
func Load(dir string, log zerolog.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply fills Zotero credentials from secrets where cfg leaves them unset.
// Explicit configuration always wins.
func Apply(cfg *types.ZoteroConfig, secrets map[string]string) {
	if cfg.APIKey == "" {
		cfg.APIKey = secrets[ZoteroAPIKey]
	}
	if v := secrets[ZoteroUserID]; v != "" && (cfg.LibraryID == "" || cfg.LibraryID == "0") {
		cfg.LibraryID = v
	}
}
