package report

import (
	"io"

	"github.com/webexplore/webexplore/internal/model"
)

// Writer outputs one exploration result to its configured destination.
// Implementations exist for JSON, Markdown, and plain text.
type Writer interface {
	// Write outputs the result. It returns the number of bytes written
	// and any error encountered.
	Write(result *model.ExplorationResult) (int, error)
}

// MultiWriter writes one result to several Writers, such as the
// terminal and a file. It stops at the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to every configured Writer and returns the
// total bytes written.
func (m *MultiWriter) Write(result *model.ExplorationResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter carries the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
