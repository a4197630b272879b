// Package fetch retrieves web pages. It provides a lightweight HTTP
// fetcher, a rendered fetcher backed by a headless browser, and a
// strategy that tries the lightweight path first and falls back to
// rendering when the response is unusable.
package fetch
