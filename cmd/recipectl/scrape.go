package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/use-agent/dinnermenu/config"
	"github.com/use-agent/dinnermenu/fetch"
	"github.com/use-agent/dinnermenu/models"
	"github.com/use-agent/dinnermenu/recipe"
	"github.com/use-agent/dinnermenu/render"
)

type scrapeOptions struct {
	format         string
	timeout        time.Duration
	out            string
	tlsFingerprint bool
}

func newScrapeCmd(cfg *config.Config) *cobra.Command {
	opts := scrapeOptions{}

	cmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "Extract a recipe from a URL",
		Long: `Scrape fetches the page once, extracts the recipe and writes it to stdout
or to the file given with --out.

Examples:
  recipectl scrape https://example.com/lemon-risotto
  recipectl scrape https://example.com/lemon-risotto --format markdown --out risotto.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fc := cfg.Fetch
			fc.Timeout = opts.timeout
			fc.TLSFingerprint = opts.tlsFingerprint
			return runScrape(cmd, args[0], fc, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "json", "Output format: json, markdown or html")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", cfg.Fetch.Timeout, "Fetch timeout")
	cmd.Flags().StringVar(&opts.out, "out", "", "Write output to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.tlsFingerprint, "tls-fingerprint", cfg.Fetch.TLSFingerprint, "Dial HTTPS with a Chrome TLS fingerprint")
	return cmd
}

func runScrape(cmd *cobra.Command, rawURL string, fc config.FetchConfig, opts scrapeOptions) error {
	switch opts.format {
	case "json", "markdown", "html":
	default:
		return fmt.Errorf("unknown format %q (want json, markdown or html)", opts.format)
	}

	rec, err := recipe.New(fetch.NewHTTPFetcher(fc)).Extract(cmd.Context(), rawURL)
	if err != nil {
		return err
	}

	data, err := encode(rec, opts.format)
	if err != nil {
		return err
	}

	if opts.out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Written: %s\n", opts.out)
	return nil
}

func encode(rec *models.ScrapedRecipe, format string) ([]byte, error) {
	switch format {
	case "markdown":
		md, err := render.New().Markdown(rec)
		return []byte(md + "\n"), err
	case "html":
		card, err := render.New().HTML(rec)
		return []byte(card), err
	default:
		data, err := json.MarshalIndent(rec, "", "  ")
		return append(data, '\n'), err
	}
}
