package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/webexplore/webexplore/internal/explorer"
	"github.com/webexplore/webexplore/internal/fetch"
	"github.com/webexplore/webexplore/internal/model"
)

// AppName names the application for XDG directory paths.
const AppName = "webexplore"

// DefaultDepth is the exploration depth used when none is given.
const DefaultDepth = 1

// Config collects every setting for one invocation. Fields are filled
// from defaults, then the config file, then command-line flags.
type Config struct {
	// Targets are the root URLs to explore.
	Targets []string
	// Depth is the exploration depth, 1-indexed.
	Depth int
	// Deadline is the global budget per exploration.
	Deadline time.Duration
	// HTTPTimeout bounds one lightweight fetch.
	HTTPTimeout time.Duration
	// RenderTimeout bounds one rendered navigation attempt.
	RenderTimeout time.Duration
	// UserAgent is sent with every fetch.
	UserAgent string
	// MaxLinksPerPage bounds the links kept per page result.
	MaxLinksPerPage int
	// MaxChildrenPerPage bounds the children followed per page.
	MaxChildrenPerPage int
	// FanOut bounds concurrent child fetches under one parent.
	FanOut int
	// BatchConcurrency bounds concurrently explored roots.
	BatchConcurrency int
	// MaxContentLength bounds the normalized content per page.
	MaxContentLength int

	// JSONReport selects machine-readable JSON output.
	JSONReport bool
	// MarkdownReport selects Markdown output.
	MarkdownReport bool
	// OutputFile is the report destination; empty means stdout.
	OutputFile string

	// NoHistory disables archiving results to the history database.
	NoHistory bool
	// DatabaseDir overrides the history database directory.
	DatabaseDir string

	// ConfigFilePath is an explicit .webexplore file location.
	ConfigFilePath string
	// Sites holds per-host overrides loaded from the config file.
	Sites *File
	// Verbose enables debug logging.
	Verbose bool
}

// NewConfig returns a Config with every default applied.
func NewConfig() *Config {
	return &Config{
		Depth:              DefaultDepth,
		Deadline:           explorer.DefaultDeadline,
		HTTPTimeout:        fetch.DefaultHTTPTimeout,
		RenderTimeout:      fetch.DefaultNavigationTimeout,
		UserAgent:          fetch.DefaultUserAgent,
		MaxLinksPerPage:    explorer.DefaultMaxLinksPerPage,
		MaxChildrenPerPage: explorer.DefaultMaxChildrenPerPage,
		FanOut:             explorer.DefaultFanOut,
		BatchConcurrency:   explorer.DefaultBatchConcurrency,
		MaxContentLength:   model.MaxContentLength,
		Sites:              &File{},
	}
}

// Validate checks the configuration for contradictions. It returns the
// first problem found.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTargets
	}
	if c.Depth < explorer.MinDepth || c.Depth > explorer.MaxDepth {
		return fmt.Errorf("%w: %d not in [%d, %d]",
			ErrInvalidDepth, c.Depth, explorer.MinDepth, explorer.MaxDepth)
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingFormats
	}
	if c.Deadline <= 0 || c.HTTPTimeout <= 0 || c.RenderTimeout <= 0 {
		return ErrNonPositiveTimeout
	}
	if c.MaxLinksPerPage <= 0 || c.MaxChildrenPerPage <= 0 ||
		c.FanOut <= 0 || c.BatchConcurrency <= 0 || c.MaxContentLength <= 0 {
		return ErrNonPositiveLimit
	}
	return nil
}

// DatabasePath returns the directory holding the history database,
// honoring the override and falling back to the XDG data directory.
func (c *Config) DatabasePath() string {
	if c.DatabaseDir != "" {
		return c.DatabaseDir
	}
	return XDGDataDir()
}

// XDGDataDir returns the application's XDG data directory.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
