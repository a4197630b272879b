package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/webexplore/webexplore/internal/model"
)

// contentPreviewLen bounds the per-page content excerpt shown in the
// Markdown report. Full content stays in the JSON output.
const contentPreviewLen = 600

// MarkdownWriter outputs results as Markdown for documentation and
// sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the result as a Markdown document.
func (w *MarkdownWriter) Write(result *model.ExplorationResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	for i := range result.Content {
		w.writePage(md, &result.Content[i])
	}

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the run summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.ExplorationResult) {
	md.H1("Exploration Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Root URL", "`" + result.RootURL + "`"},
			{"Depth", strconv.Itoa(result.ExplorationDepth)},
			{"Pages Explored", strconv.Itoa(result.PagesExplored)},
			{"Links Recorded", strconv.Itoa(result.TotalLinks())},
			{"Duration", result.Duration.Round(time.Millisecond).String()},
			{"Status", statusText(result)},
		},
	})
	md.PlainText("")
}

// writePage writes one explored page: heading, content excerpt, and
// its link table.
func (w *MarkdownWriter) writePage(md *markdown.Markdown, page *model.PageResult) {
	heading := page.Title
	if heading == "" {
		heading = page.URL
	}
	md.H2(heading)
	md.PlainText("`" + page.URL + "`")
	md.PlainText("")

	if page.Content != "" {
		md.PlainText(preview(page.Content))
		md.PlainText("")
	}

	if len(page.Links) > 0 {
		rows := make([][]string, 0, len(page.Links))
		for _, link := range page.Links {
			rows = append(rows, []string{link.Text, "`" + link.URL + "`"})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Link", "Target"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// statusText renders the run status for the summary table.
func statusText(result *model.ExplorationResult) string {
	switch result.Status {
	case model.StatusTimedOut:
		return fmt.Sprintf("timed out (partial results) - %s", result.Error)
	case model.StatusFailed:
		return fmt.Sprintf("failed - %s", result.Error)
	default:
		return "completed"
	}
}

// preview bounds content for inline display.
func preview(content string) string {
	return model.TruncateContent(content, contentPreviewLen)
}
