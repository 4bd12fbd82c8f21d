// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/zotero-mcp/internal/library"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the library",
	Long: `Search runs a Zotero quick search. By default it matches titles, creators
and years; --mode everything also searches full text and notes. --item-type
and --tag take Zotero filter expressions such as "book || journalArticle" or
"-attachment".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := library.SearchRequest{Query: strings.Join(args, " ")}
		req.Mode, _ = cmd.Flags().GetString("mode")
		req.ItemType, _ = cmd.Flags().GetString("item-type")
		req.Tag, _ = cmd.Flags().GetString("tag")
		req.Limit, _ = cmd.Flags().GetInt("limit")
		return runQuery(cmd, func(ctx context.Context, svc *library.Service) any {
			return svc.Search(ctx, req)
		})
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags [query]",
	Short: "List tags, optionally filtered",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req library.TagsRequest
		if len(args) == 1 {
			req.Query = args[0]
		}
		req.Mode, _ = cmd.Flags().GetString("mode")
		req.Limit, _ = cmd.Flags().GetInt("limit")
		return runQuery(cmd, func(ctx context.Context, svc *library.Service) any {
			return svc.Tags(ctx, req)
		})
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently added items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var req library.RecentRequest
		req.Limit, _ = cmd.Flags().GetInt("limit")
		req.ItemType, _ = cmd.Flags().GetString("item-type")
		return runQuery(cmd, func(ctx context.Context, svc *library.Service) any {
			return svc.Recent(ctx, req)
		})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show an overview of the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, func(ctx context.Context, svc *library.Service) any {
			return svc.Summary(ctx, library.SummaryRequest{})
		})
	},
}

func init() {
	searchCmd.Flags().String("mode", "", "titleCreatorYear (default) or everything")
	searchCmd.Flags().String("item-type", "", "item type filter")
	searchCmd.Flags().String("tag", "", "tag filter")
	searchCmd.Flags().Int("limit", 0, "maximum number of results")

	tagsCmd.Flags().String("mode", "", "contains (default) or startsWith")
	tagsCmd.Flags().Int("limit", 0, "maximum number of tags")

	recentCmd.Flags().Int("limit", library.DefaultRecentLimit, "number of items (max 100)")
	recentCmd.Flags().String("item-type", library.DefaultRecentItemType, "item type filter")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(summaryCmd)
}
