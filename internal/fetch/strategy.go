package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
)

// Strategy picks between the lightweight and rendered fetchers. The
// lightweight path runs first; any non-fatal failure triggers one
// rendered attempt for the same URL.
type Strategy struct {
	lightweight PageFetcher
	rendered    PageFetcher
	forceRender bool
	logger      *slog.Logger
}

// StrategyOption configures a Strategy.
type StrategyOption func(*Strategy)

// WithForceRender skips the lightweight attempt and always renders.
// Used for hosts the config file marks as script-dependent.
func WithForceRender(force bool) StrategyOption {
	return func(s *Strategy) {
		s.forceRender = force
	}
}

// WithStrategyLogger sets the logger for fallback diagnostics.
func WithStrategyLogger(logger *slog.Logger) StrategyOption {
	return func(s *Strategy) {
		s.logger = logger
	}
}

// NewStrategy returns a Strategy over the given fetchers. rendered may
// be nil, in which case lightweight failures are returned as-is.
func NewStrategy(lightweight, rendered PageFetcher, opts ...StrategyOption) *Strategy {
	s := &Strategy{
		lightweight: lightweight,
		rendered:    rendered,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateURL checks that rawURL is an absolute http or https URL and
// returns its parsed form.
func ValidateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidURL, rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return u, nil
}

// Fetch retrieves rawURL, trying the lightweight fetcher first and
// falling back to the rendered fetcher on any non-fatal failure.
func (s *Strategy) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if _, err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	if s.forceRender && s.rendered != nil {
		return s.rendered.Fetch(ctx, rawURL)
	}

	page, err := s.lightweight.Fetch(ctx, rawURL)
	if err == nil {
		return page, nil
	}
	if IsFatal(err) || ctx.Err() != nil || s.rendered == nil {
		return nil, err
	}

	s.logger.Debug("lightweight fetch failed, falling back to rendered",
		"url", rawURL, "reason", err)
	return s.rendered.Fetch(ctx, rawURL)
}

// Close releases the rendered fetcher's browser process, if any.
func (s *Strategy) Close() {
	if c, ok := s.rendered.(interface{ Close() }); ok {
		c.Close()
	}
}
