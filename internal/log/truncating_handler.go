package log

import (
	"context"
	"io"
	"log/slog"
)

// MaxAttrValueLen bounds logged string attribute values. Longer values
// are cut and suffixed with the truncation note.
const MaxAttrValueLen = 512

// truncationNote marks attribute values that were cut.
const truncationNote = "...(truncated)"

// TruncatingHandler wraps another slog.Handler and bounds every string
// attribute value, including those inside groups.
type TruncatingHandler struct {
	inner  slog.Handler
	maxLen int
}

// NewTruncatingHandler wraps inner with the default value bound.
func NewTruncatingHandler(inner slog.Handler) *TruncatingHandler {
	return &TruncatingHandler{inner: inner, maxLen: MaxAttrValueLen}
}

// Enabled implements slog.Handler.
func (h *TruncatingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler. Record attributes are rewritten with
// bounded values before delegation.
func (h *TruncatingHandler) Handle(ctx context.Context, record slog.Record) error {
	bounded := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		bounded.AddAttrs(h.truncateAttr(attr))
		return true
	})
	return h.inner.Handle(ctx, bounded)
}

// WithAttrs implements slog.Handler.
func (h *TruncatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bounded := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		bounded = append(bounded, h.truncateAttr(attr))
	}
	return &TruncatingHandler{inner: h.inner.WithAttrs(bounded), maxLen: h.maxLen}
}

// WithGroup implements slog.Handler.
func (h *TruncatingHandler) WithGroup(name string) slog.Handler {
	return &TruncatingHandler{inner: h.inner.WithGroup(name), maxLen: h.maxLen}
}

// truncateAttr bounds one attribute, recursing into groups.
func (h *TruncatingHandler) truncateAttr(attr slog.Attr) slog.Attr {
	switch attr.Value.Kind() {
	case slog.KindString:
		s := attr.Value.String()
		if len(s) > h.maxLen {
			attr.Value = slog.StringValue(s[:h.maxLen] + truncationNote)
		}
	case slog.KindGroup:
		group := attr.Value.Group()
		bounded := make([]slog.Attr, 0, len(group))
		for _, member := range group {
			bounded = append(bounded, h.truncateAttr(member))
		}
		attr.Value = slog.GroupValue(bounded...)
	}
	return attr
}

// NewLogger returns a text logger writing to w. Verbose lowers the
// level from warn to debug.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewTruncatingHandler(
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)})))
}

// NewJSONLogger returns a JSON logger writing to w.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewTruncatingHandler(
		slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)})))
}

func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
