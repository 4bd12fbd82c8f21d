// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/zotero-mcp/internal/bbt"
	"github.com/pdiddy/zotero-mcp/internal/diag"
	"github.com/pdiddy/zotero-mcp/internal/library"
	"github.com/pdiddy/zotero-mcp/internal/zotero"
	"github.com/pdiddy/zotero-mcp/pkg/types"
)

// newService builds the single client handle and, when enabled, the
// Better BibTeX prober. The prober is nil when the integration is off.
func newService(c types.Config, log zerolog.Logger) (*library.Service, *bbt.Prober) {
	opts := []library.Option{
		library.WithSink(diag.NewLogger(log)),
		library.WithLibraryID(c.Zotero.LibraryID),
		library.WithLogger(log),
	}

	var prober *bbt.Prober
	if c.BBT.Enabled {
		prober = bbt.New(c.BBT, nil)
		opts = append(opts, library.WithCitations(prober))
	}
	return library.New(zotero.New(c.Zotero, log), opts...), prober
}

// runQuery runs op once against a fresh service and prints its payload.
func runQuery(cmd *cobra.Command, op func(context.Context, *library.Service) any) error {
	svc, _ := newService(cfg, logger)
	return printPayload(cmd.OutOrStdout(), op(cmd.Context(), svc))
}

// printPayload writes payload as indented JSON. Backend advisories are
// printed and also returned as an error so the process exits non-zero.
func printPayload(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if a, ok := payload.(types.Advisory); ok && a.IsError() {
		return errors.New(a.Message)
	}
	return nil
}
