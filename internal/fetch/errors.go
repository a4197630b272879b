package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned when the input cannot be parsed as an
	// absolute http or https URL. It is fatal; no fallback applies.
	ErrInvalidURL = errors.New("fetch: invalid url")

	// ErrNonTextResponse is returned when the response content type is
	// not textual markup.
	ErrNonTextResponse = errors.New("fetch: non-text response")

	// ErrEmptyContent is returned when the response body, or the
	// rendered document text, is below the minimum usable length.
	ErrEmptyContent = errors.New("fetch: empty content")

	// ErrRenderTimeout is returned when rendered navigation did not
	// settle within its timeout.
	ErrRenderTimeout = errors.New("fetch: render timeout")
)

// NetworkError wraps a transport-level failure: DNS, connection,
// TLS, or a broken body read.
type NetworkError struct {
	// URL is the URL being fetched when the failure happened.
	URL string
	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch: network error for %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-success HTTP status code.
type StatusError struct {
	// URL is the URL that returned the status.
	URL string
	// Code is the HTTP status code.
	Code int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: unexpected status %d for %s", e.Code, e.URL)
}

// IsFatal reports whether err rules out any further fetch attempt for
// the same URL. Only invalid input is fatal; every other failure is a
// candidate for the rendered fallback.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidURL)
}
