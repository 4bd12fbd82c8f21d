// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the zotero-mcp CLI.
//
// The serve subcommand exposes a Zotero library to MCP clients; the other
// subcommands run the same queries once and print the JSON payload.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/zotero-mcp/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Resolved in PersistentPreRunE before any subcommand runs.
var (
	cfg    types.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "zotero-mcp",
	Short: "Read-only access to a Zotero library over MCP",
	Long: `zotero-mcp talks to the local API of a running Zotero application and
exposes the library to MCP clients: collections, items, search, tags, notes,
attachments and CSL export. Citation keys come from the Better BibTeX plugin
when it is installed.

Run "zotero-mcp serve" from your MCP client configuration. The query
subcommands print the same JSON the tools return and are handy for checking
that Zotero is reachable.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(os.Stderr, viper.GetString("log.level"))
		c, err := loadConfig(viper.GetViper(), logger)
		if err != nil {
			return err
		}
		cfg = c
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug().Str("file", f).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./zotero-mcp.yaml or ~/.config/zotero-mcp/zotero-mcp.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default info)")
	rootCmd.PersistentFlags().String("secrets-dir", "", "directory of secret files (default .secrets)")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("zotero-mcp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "zotero-mcp"))
		}
	}

	setDefaults(viper.GetViper())
	bindEnv(viper.GetViper())

	// A missing config file is normal; defaults and env cover everything.
	viper.ReadInConfig()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
