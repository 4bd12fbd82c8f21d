// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/zotero-mcp/internal/library"
	"github.com/pdiddy/zotero-mcp/pkg/types"
)

var itemsCmd = &cobra.Command{
	Use:   "items <key>[,<key>...]",
	Short: "Show items by key",
	Long: `Items fetches one or more items by key. Keys may be given as separate
arguments or comma separated. Keys that do not exist are reported in the
payload's log.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := library.ItemsRequest{ItemKeys: strings.Join(args, ",")}
		if cmd.Flags().Changed("abstract") {
			v, _ := cmd.Flags().GetBool("abstract")
			req.IncludeAbstract = &v
		}
		req.IncludeFulltext, _ = cmd.Flags().GetBool("fulltext")
		req.IncludeCitationKey, _ = cmd.Flags().GetBool("citation-key")
		return runQuery(cmd, func(ctx context.Context, svc *library.Service) any {
			return svc.Items(ctx, req)
		})
	},
}

var childrenCmd = &cobra.Command{
	Use:   "children <item-key>",
	Short: "List the notes and attachments of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, func(ctx context.Context, svc *library.Service) any {
			return svc.Children(ctx, library.ChildrenRequest{ItemKey: args[0]})
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <key>[,<key>...]",
	Short: "Export items as CSL-YAML",
	Long: `Export renders items as CSL-YAML, ready for pandoc --bibliography.
Entries use Better BibTeX citation keys as ids when the plugin is running.
With --json the whole export payload is printed instead of the YAML.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		svc, _ := newService(cfg, logger)
		payload := svc.ExportCSL(cmd.Context(), library.ExportRequest{ItemKeys: strings.Join(args, ",")})

		exp, ok := payload.(types.Export)
		if !ok || asJSON {
			return printPayload(cmd.OutOrStdout(), payload)
		}
		if len(exp.Missing) > 0 {
			logger.Warn().Strs("keys", exp.Missing).Msg("items not found")
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), exp.Content)
		return err
	},
}

func init() {
	itemsCmd.Flags().Bool("abstract", true, "include abstracts")
	itemsCmd.Flags().Bool("fulltext", false, "include indexed full text")
	itemsCmd.Flags().Bool("citation-key", false, "include Better BibTeX citation keys")
	exportCmd.Flags().Bool("json", false, "print the export payload as JSON")

	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(childrenCmd)
	rootCmd.AddCommand(exportCmd)
}
