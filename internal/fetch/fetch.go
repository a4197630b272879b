package fetch

import (
	"context"
	"time"
)

// Page is the raw outcome of fetching one URL, before extraction.
type Page struct {
	// URL is the URL the fetch was requested for.
	URL string
	// FinalURL is the URL after redirects; equal to URL when none
	// occurred.
	FinalURL string
	// StatusCode is the HTTP status of the final response. Zero for
	// rendered fetches where no status is observed.
	StatusCode int
	// ContentType is the Content-Type header of the response.
	ContentType string
	// HTML is the document markup. For rendered fetches this is the
	// serialized DOM after scripts ran.
	HTML string
	// Rendered reports whether a headless browser produced the markup.
	Rendered bool
	// FetchedAt records when the fetch completed.
	FetchedAt time.Time
}

// PageFetcher fetches a single page. Implementations classify failures
// with the error types in this package so callers can decide between
// fallback and abort.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Page, error)
}
