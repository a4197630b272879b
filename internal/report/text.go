package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/webexplore/webexplore/internal/model"
)

// TextWriter outputs a compact plain-text summary for terminals.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the result as indented plain text.
func (w *TextWriter) Write(result *model.ExplorationResult) (int, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Exploration of %s\n", result.RootURL)
	fmt.Fprintf(&b, "  depth:    %d\n", result.ExplorationDepth)
	fmt.Fprintf(&b, "  pages:    %d\n", result.PagesExplored)
	fmt.Fprintf(&b, "  links:    %d\n", result.TotalLinks())
	fmt.Fprintf(&b, "  duration: %s\n", result.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "  status:   %s\n", result.Status)
	if result.Error != "" {
		fmt.Fprintf(&b, "  error:    %s\n", result.Error)
	}

	for _, page := range result.Content {
		title := page.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&b, "\n  %s\n    %s\n    %d chars, %d links\n",
			title, page.URL, len(page.Content), len(page.Links))
	}

	return io.WriteString(w.output, b.String())
}
