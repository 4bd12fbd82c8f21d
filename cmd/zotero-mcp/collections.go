// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/zotero-mcp/internal/library"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List collections with their keys and item counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return runQuery(cmd, func(ctx context.Context, svc *library.Service) any {
			return svc.Collections(ctx, library.CollectionsRequest{Limit: limit})
		})
	},
}

var collectionItemsCmd = &cobra.Command{
	Use:   "collection-items <collection-key>",
	Short: "List the items in a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return runQuery(cmd, func(ctx context.Context, svc *library.Service) any {
			return svc.CollectionItems(ctx, library.CollectionItemsRequest{CollectionKey: args[0], Limit: limit})
		})
	},
}

func init() {
	collectionsCmd.Flags().Int("limit", 0, "maximum number of collections (default: all)")
	collectionItemsCmd.Flags().Int("limit", 0, "maximum number of items (default: all)")

	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(collectionItemsCmd)
}
