package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/use-agent/dinnermenu/config"
)

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	var logLevel string

	root := &cobra.Command{
		Use:   "recipectl",
		Short: "recipectl extracts recipes from web pages",
		Long: `recipectl fetches a recipe page and prints the recipe it finds, using the
page's schema.org JSON-LD when present and markup heuristics otherwise.

Usage:
  recipectl scrape <url> [flags]`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg.Log.Level = logLevel
			cfg.Log.Format = "text"
			slog.SetDefault(config.NewLogger(cfg.Log, cmd.ErrOrStderr()))
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(newScrapeCmd(cfg))
	return root
}
