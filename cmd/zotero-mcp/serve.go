// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/zotero-mcp/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Serve exposes the library as MCP tools. The default stdio transport is
what desktop MCP clients launch; --transport http serves streamable HTTP at
--http-addr and --http-path, with a health report at /healthz.

Logs go to stderr. Stdout carries the MCP protocol in stdio mode.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Better BibTeX is probed on the first citation-key lookup, not here.
		svc, prober := newService(cfg, logger)
		logger.Info().
			Str("base_url", cfg.Zotero.BaseURL).
			Str("library", cfg.Zotero.LibraryID).
			Bool("citations", svc.CitationsEnabled()).
			Msg("zotero-mcp starting")
		return server.New(svc, prober, cfg.Server, logger).Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("transport", "", "stdio or http (default stdio)")
	serveCmd.Flags().String("http-addr", "", "listen address for http transport (default "+server.DefaultHTTPAddr+")")
	serveCmd.Flags().String("http-path", "", "MCP endpoint path for http transport (default "+server.DefaultHTTPPath+")")
	viper.BindPFlag("server.transport", serveCmd.Flags().Lookup("transport"))
	viper.BindPFlag("server.http_addr", serveCmd.Flags().Lookup("http-addr"))
	viper.BindPFlag("server.http_path", serveCmd.Flags().Lookup("http-path"))

	rootCmd.AddCommand(serveCmd)
}
