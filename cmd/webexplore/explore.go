package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/webexplore/webexplore/internal/config"
	"github.com/webexplore/webexplore/internal/database"
	"github.com/webexplore/webexplore/internal/explorer"
	"github.com/webexplore/webexplore/internal/fetch"
	"github.com/webexplore/webexplore/internal/log"
	"github.com/webexplore/webexplore/internal/model"
	"github.com/webexplore/webexplore/internal/report"
)

// NewExploreCmd creates the explore command.
func NewExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [url...]",
		Short: "Explore a URL and its same-domain neighborhood",
		Long: `Explore fetches the given URLs and follows their most relevant
same-domain links to a bounded depth. Each page is fetched over plain
HTTP first; pages that fail or come back empty are rendered in a
headless browser. The run stops at the global deadline and reports
whatever was collected by then.

Examples:
  # Explore a single page
  webexplore explore https://example.com

  # Follow links two levels deep and print JSON
  webexplore explore --depth 2 --json https://example.com

  # Explore several roots and write a Markdown report to a file
  webexplore explore -m -o report.md https://a.example https://b.example

Configuration file (.webexplore) example:
  defaults:
    headers:
      Accept-Language: en
  sites:
    docs.example.com:
      depth: 3
      force_render: true
      headers:
        X-Client: webexplore`,
		Args: cobra.ArbitraryArgs,
		RunE: runExploreCmd,
	}

	// Traversal flags
	cmd.Flags().IntP("depth", "d", config.DefaultDepth,
		fmt.Sprintf("Exploration depth, clamped to [%d, %d]", explorer.MinDepth, explorer.MaxDepth))
	cmd.Flags().DurationP("deadline", "t", explorer.DefaultDeadline,
		"Global time budget per exploration")
	cmd.Flags().IntP("batch", "b", explorer.DefaultBatchConcurrency,
		"Number of roots explored concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .webexplore in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not archive results to the history database")

	return cmd
}

// runExploreCmd executes the explore command.
func runExploreCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	// Cancel the run on interrupt so browser processes shut down.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runExplore(ctx, cmd.OutOrStdout(), cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its
// parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.Depth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}
	cfg.Depth = explorer.ClampDepth(cfg.Depth)

	cfg.Deadline, err = cmd.Flags().GetDuration("deadline")
	if err != nil {
		return nil, err
	}

	cfg.BatchConcurrency, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath, err := config.FindConfigFile(cfg.ConfigFilePath)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		cfg.Sites, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.NoHistory, err = cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Targets = args
	return cfg, nil
}

// runExplore executes the exploration and writes the reports.
func runExplore(ctx context.Context, stdout io.Writer, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting exploration",
		"targets", cfg.Targets,
		"depth", cfg.Depth,
		"deadline", cfg.Deadline,
		"batch", cfg.BatchConcurrency)

	var db *database.HistoryDB
	if !cfg.NoHistory {
		var err error
		db, err = database.Open(cfg.DatabasePath(), database.DefaultOptions())
		if err != nil {
			// History is an archive, not part of the exploration.
			logger.Warn("history database unavailable", "error", err)
		} else {
			defer db.Close()
			logger.Info("history database opened", "path", db.Path())
		}
	}

	factory := func(rawURL string) (*explorer.Explorer, func()) {
		site := cfg.Sites.SiteFor(rawURL)

		lightweight := fetch.NewHTTPFetcher(
			fetch.WithHTTPTimeout(cfg.HTTPTimeout),
			fetch.WithUserAgent(cfg.UserAgent),
			fetch.WithHeaders(site.Headers),
		)
		rendered := fetch.NewRenderedFetcher(
			fetch.WithNavigationTimeout(cfg.RenderTimeout),
			fetch.WithRenderedUserAgent(cfg.UserAgent),
			fetch.WithRenderedLogger(logger),
		)
		strategy := fetch.NewStrategy(lightweight, rendered,
			fetch.WithForceRender(site.ForceRender),
			fetch.WithStrategyLogger(logger),
		)

		ex := explorer.New(strategy,
			explorer.WithLogger(logger),
			explorer.WithDeadline(cfg.Deadline),
			explorer.WithMaxLinksPerPage(cfg.MaxLinksPerPage),
			explorer.WithMaxChildrenPerPage(cfg.MaxChildrenPerPage),
			explorer.WithFanOut(cfg.FanOut),
			explorer.WithMaxContentLength(cfg.MaxContentLength),
		)
		return ex, strategy.Close
	}

	requests := make([]explorer.Request, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		depth := cfg.Depth
		if siteDepth := cfg.Sites.SiteFor(target).Depth; siteDepth != 0 {
			depth = explorer.ClampDepth(siteDepth)
		}
		requests = append(requests, explorer.Request{URL: target, Depth: depth})
	}

	batch := explorer.NewBatch(factory,
		explorer.WithBatchConcurrency(cfg.BatchConcurrency),
		explorer.WithBatchLogger(logger))
	results := batch.ExploreAll(ctx, requests)

	writer, cleanup, err := buildWriter(stdout, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	failures := 0
	for _, result := range results {
		if _, err := writer.Write(result); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if result.Status == model.StatusFailed {
			failures++
		}
		if db != nil {
			if _, err := db.SaveExploration(ctx, result); err != nil {
				logger.Warn("archiving result failed", "url", result.RootURL, "error", err)
			}
		}
	}

	if failures == len(results) {
		return errors.New("all explorations failed")
	}
	return nil
}

// buildWriter picks the report writer and destination from the config.
// The cleanup closes the output file when one was opened.
func buildWriter(stdout io.Writer, cfg *config.Config) (report.Writer, func(), error) {
	out := stdout
	cleanup := func() {}

	if cfg.OutputFile != "" {
		if dir := filepath.Dir(cfg.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, nil, fmt.Errorf("create report directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.OutputFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("open report file: %w", err)
		}
		out = f
		cleanup = func() { _ = f.Close() }
	}

	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out, report.WithPrettyPrint()), cleanup, nil
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out), cleanup, nil
	default:
		return report.NewTextWriter(out), cleanup, nil
	}
}
