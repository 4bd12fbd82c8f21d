// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/zotero-mcp/internal/bbt"
)

var bbtCmd = &cobra.Command{
	Use:   "bbt",
	Short: "Check whether Better BibTeX is reachable and ready",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.BBT.Enabled {
			return fmt.Errorf("better bibtex integration is disabled (bbt.enabled=false)")
		}
		st := bbt.New(cfg.BBT, nil).Status(cmd.Context())
		if err := printPayload(cmd.OutOrStdout(), st); err != nil {
			return err
		}
		if st.State != bbt.StateReady.String() {
			return bbt.ErrUnavailable
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bbtCmd)
}
