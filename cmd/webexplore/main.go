// Package main provides the entry point for the webexplore CLI.
//
// webexplore fetches a web page and its same-domain neighborhood to a
// bounded depth, extracts the main content of every page, and reports
// the result as text, JSON, or Markdown.
//
// Usage:
//
//	webexplore explore <url>
//	webexplore explore --depth 3 --json <url>
//	webexplore history --limit 10
//
// See --help for all available options.
package main

// main is the entry point for webexplore.
func main() {
	Execute()
}
