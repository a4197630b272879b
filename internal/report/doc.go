// Package report renders exploration results. JSON serves tool
// integration, Markdown serves documentation and sharing, and the
// plain-text writer serves terminal summaries.
package report
