package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const (
	// DefaultNavigationTimeout bounds one rendered navigation attempt,
	// script execution and DOM serialization included.
	DefaultNavigationTimeout = 20 * time.Second

	// DefaultNavigationAttempts is how many times a navigation is tried
	// before the fetch fails.
	DefaultNavigationAttempts = 3

	// DefaultNavigationBackoff is the fixed pause between navigation
	// attempts.
	DefaultNavigationBackoff = time.Second

	// MinRenderedTextBytes is the smallest rendered document text
	// treated as usable. Shorter documents yield ErrEmptyContent
	// without further attempts.
	MinRenderedTextBytes = 200
)

// blockedResourcePatterns names resource URLs the browser never loads.
// The extractor only reads text, so images, styles, fonts, and media
// are dead weight on the navigation timeout.
var blockedResourcePatterns = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.svg", "*.webp", "*.ico",
	"*.css", "*.woff", "*.woff2", "*.ttf", "*.otf",
	"*.mp3", "*.mp4", "*.webm", "*.avi",
}

// RenderedFetcher fetches pages through a headless browser so that
// script-driven documents produce their full DOM. The browser process
// starts lazily on the first fetch and is reused for every fetch until
// Close. A RenderedFetcher must not be shared across explorations.
type RenderedFetcher struct {
	userAgent   string
	navTimeout  time.Duration
	attempts    int
	backoffWait time.Duration
	minText     int
	logger      *slog.Logger

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// RenderedOption configures a RenderedFetcher.
type RenderedOption func(*RenderedFetcher)

// WithNavigationTimeout sets the per-attempt navigation timeout.
func WithNavigationTimeout(d time.Duration) RenderedOption {
	return func(f *RenderedFetcher) {
		f.navTimeout = d
	}
}

// WithNavigationAttempts sets how many times a navigation is tried.
func WithNavigationAttempts(n int) RenderedOption {
	return func(f *RenderedFetcher) {
		f.attempts = n
	}
}

// WithNavigationBackoff sets the fixed pause between attempts.
func WithNavigationBackoff(d time.Duration) RenderedOption {
	return func(f *RenderedFetcher) {
		f.backoffWait = d
	}
}

// WithRenderedUserAgent sets the browser User-Agent string.
func WithRenderedUserAgent(ua string) RenderedOption {
	return func(f *RenderedFetcher) {
		f.userAgent = ua
	}
}

// WithRenderedLogger sets the logger for fetch attempt diagnostics.
func WithRenderedLogger(logger *slog.Logger) RenderedOption {
	return func(f *RenderedFetcher) {
		f.logger = logger
	}
}

// NewRenderedFetcher returns a RenderedFetcher with default timeouts.
// The browser process is not started until the first Fetch call.
func NewRenderedFetcher(opts ...RenderedOption) *RenderedFetcher {
	f := &RenderedFetcher{
		userAgent:   DefaultUserAgent,
		navTimeout:  DefaultNavigationTimeout,
		attempts:    DefaultNavigationAttempts,
		backoffWait: DefaultNavigationBackoff,
		minText:     MinRenderedTextBytes,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ensureBrowser starts the shared browser process if it is not already
// running.
func (f *RenderedFetcher) ensureBrowser() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browserCtx != nil {
		return nil
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(f.userAgent),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("start headless browser: %w", err)
	}

	f.allocCancel = allocCancel
	f.browserCtx = browserCtx
	f.browserCancel = browserCancel
	return nil
}

// Fetch renders rawURL in a fresh browser tab and returns the DOM
// after scripts ran. Navigation is retried with a fixed backoff; a
// rendered document whose text stays below MinRenderedTextBytes fails
// immediately with ErrEmptyContent.
func (f *RenderedFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if err := f.ensureBrowser(); err != nil {
		return nil, &NetworkError{URL: rawURL, Err: err}
	}

	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()

	// Cancelling the caller's context must tear down the in-flight
	// navigation, not just the wait on its result.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var page *Page
	attempt := 0
	operation := func() error {
		attempt++
		navCtx, cancel := context.WithTimeout(tabCtx, f.navTimeout)
		defer cancel()

		var (
			html     string
			location string
			textLen  int
		)
		err := chromedp.Run(navCtx,
			network.Enable(),
			network.SetBlockedURLs(blockedResourcePatterns),
			chromedp.Navigate(rawURL),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Evaluate(`document.body ? document.body.innerText.length : 0`, &textLen),
			chromedp.Location(&location),
			chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			if errors.Is(err, context.DeadlineExceeded) {
				f.logger.Debug("rendered navigation timed out",
					"url", rawURL, "attempt", attempt)
				return fmt.Errorf("%w: %s: %v", ErrRenderTimeout, rawURL, err)
			}
			f.logger.Debug("rendered navigation failed",
				"url", rawURL, "attempt", attempt, "error", err)
			return &NetworkError{URL: rawURL, Err: err}
		}
		if textLen < f.minText {
			return backoff.Permanent(
				fmt.Errorf("%w: %s (%d rendered chars)", ErrEmptyContent, rawURL, textLen))
		}

		page = &Page{
			URL:       rawURL,
			FinalURL:  location,
			HTML:      html,
			Rendered:  true,
			FetchedAt: time.Now(),
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewConstantBackOff(f.backoffWait),
			uint64(f.attempts-1),
		),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return page, nil
}

// Close shuts down the browser process. The fetcher cannot be reused
// afterwards.
func (f *RenderedFetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browserCancel != nil {
		f.browserCancel()
		f.browserCancel = nil
	}
	if f.allocCancel != nil {
		f.allocCancel()
		f.allocCancel = nil
	}
	f.browserCtx = nil
}
