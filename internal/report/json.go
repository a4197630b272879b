package report

import (
	"encoding/json"
	"io"

	"github.com/webexplore/webexplore/internal/model"
)

// JSONWriter outputs results as JSON for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool
	// indentPrefix is prepended to each line of indented output.
	indentPrefix string
	// indentString is the per-level indentation string.
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON with the given prefix and
// per-level indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indents.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the result as one JSON document followed by a newline.
func (w *JSONWriter) Write(result *model.ExplorationResult) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(result, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
