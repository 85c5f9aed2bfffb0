package log

import (
	"context"
	"io"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxAttrLen is the default length limit for string attribute
// values, in runes. Long enough to keep a whole suggestion or heading
// readable, short enough that a pasted slide body cannot flood a line.
const DefaultMaxAttrLen = 256

// Ellipsis marks truncated attribute values.
const Ellipsis = "..."

// TruncateHandler wraps an slog.Handler and truncates oversized string
// attribute values before they reach the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites keep logging full values; the cap lives in one place
type TruncateHandler struct {
	// handler is the underlying slog handler that receives truncated records.
	handler slog.Handler

	// maxLen is the rune limit for string attribute values.
	maxLen int
}

// NewTruncateHandler creates a new TruncateHandler wrapping the given
// handler. String attribute values longer than maxLen runes are cut and
// suffixed with an ellipsis. If handler is nil, the returned handler
// wraps slog.Default().Handler(). A non-positive maxLen falls back to
// DefaultMaxAttrLen.
func NewTruncateHandler(handler slog.Handler, maxLen int) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxAttrLen
	}
	return &TruncateHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle truncates the record's attributes and passes it to the underlying handler.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	truncated := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		truncated.AddAttrs(h.truncateAttr(a))
		return true
	})

	return h.handler.Handle(ctx, truncated)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are truncated before being added.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	truncatedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		truncatedAttrs[i] = h.truncateAttr(a)
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(truncatedAttrs), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// truncateAttr truncates a single attribute, recursively handling groups.
func (h *TruncateHandler) truncateAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		truncatedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			truncatedAttrs[i] = h.truncateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(truncatedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		val := a.Value.String()
		if utf8.RuneCountInString(val) > h.maxLen {
			return slog.String(a.Key, truncate(val, h.maxLen))
		}
	}

	return a
}

// truncate cuts s to maxLen runes and appends the ellipsis. Cutting at a
// rune boundary keeps multibyte document text valid.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	return string(runes[:maxLen]) + Ellipsis
}

// NewLogger creates a new slog.Logger with content truncation over a
// text handler.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewTruncateHandler(textHandler, DefaultMaxAttrLen))
}

// NewJSONLogger creates a new slog.Logger with content truncation that
// outputs JSON format. Useful for structured log aggregation.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger configured for JSON output with truncation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewTruncateHandler(jsonHandler, DefaultMaxAttrLen))
}
