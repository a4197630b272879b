package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultHTTPTimeout bounds a single lightweight fetch, connection
	// setup and body read included.
	DefaultHTTPTimeout = 10 * time.Second

	// DefaultMaxBodySize bounds how many bytes of a response body are
	// read. Larger bodies are cut at the bound.
	DefaultMaxBodySize = 5 << 20

	// DefaultUserAgent identifies the fetcher as a current desktop
	// browser. Servers routinely vary responses on this header.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

	// MinBodyBytes is the smallest response body treated as usable
	// content. Anything shorter yields ErrEmptyContent.
	MinBodyBytes = 200
)

// HTTPFetcher fetches pages with a plain HTTP client. It is the cheap
// first attempt; pages that need script execution fail here and are
// retried by the rendered fetcher.
type HTTPFetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	headers     map[string]string
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPTimeout sets the total timeout for one fetch.
func WithHTTPTimeout(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		f.client.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) HTTPOption {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize bounds how many bytes of a body are read.
func WithMaxBodySize(n int64) HTTPOption {
	return func(f *HTTPFetcher) {
		f.maxBodySize = n
	}
}

// WithHeaders adds extra request headers, such as per-site overrides
// from the config file.
func WithHeaders(h map[string]string) HTTPOption {
	return func(f *HTTPFetcher) {
		f.headers = h
	}
}

// NewHTTPFetcher returns an HTTPFetcher with default limits applied.
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client: &http.Client{
			Timeout: DefaultHTTPTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves rawURL over plain HTTP. Failures are classified:
// transport problems become NetworkError, non-success statuses become
// StatusError, non-markup content types become ErrNonTextResponse, and
// bodies below MinBodyBytes become ErrEmptyContent.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidURL, rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{URL: rawURL, Code: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isTextualType(contentType) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNonTextResponse, rawURL, contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: err}
	}
	if len(body) < MinBodyBytes {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrEmptyContent, rawURL, len(body))
	}

	return &Page{
		URL:         rawURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		HTML:        string(body),
		FetchedAt:   time.Now(),
	}, nil
}

// isTextualType reports whether the Content-Type header names textual
// markup the extractor can handle.
func isTextualType(contentType string) bool {
	mediaType := contentType
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))

	switch mediaType {
	case "text/html", "application/xhtml+xml", "text/plain", "application/xml", "text/xml":
		return true
	}
	return strings.HasPrefix(mediaType, "text/")
}
