// Package log provides the structured logging facade used by the container
// and the framework packages.
package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Logger is implemented by *slog.Logger and can be adapted from most other
// logging packages. The functions are not printf-style; keysAndValues are
// key-value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Level aliases slog.Level so callers don't need to import slog.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

const (
	KeyKey       = "key"
	KeyKind      = "kind"
	KeyType      = "type"
	KeyCount     = "count"
	KeyState     = "state"
	KeyError     = "error"
	KeyComponent = "component"
)

// Null discards everything.
var Null Logger = slog.New(Discard)

// Discard is a slog.Handler that drops every record.
var Discard slog.Handler = nopHandler{}

type nopHandler struct{}

func (h nopHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (h nopHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (h nopHandler) WithAttrs(_ []slog.Attr) slog.Handler          { return h }
func (h nopHandler) WithGroup(_ string) slog.Handler               { return h }

// New returns a logger writing to out at lvl. format is "json" or "text";
// anything else falls back to text.
func New(out io.Writer, lvl Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a Level.
// Unknown values yield LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ErrorAttr renders err under KeyError; nil renders as an empty string.
func ErrorAttr(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

type withAttrs struct {
	logger Logger
	attrs  []any
}

func (w *withAttrs) kv(kv []any) []any {
	out := make([]any, 0, len(w.attrs)+len(kv))
	out = append(out, w.attrs...)
	return append(out, kv...)
}

func (w *withAttrs) Debug(msg string, keysAndValues ...any) {
	w.logger.Debug(msg, w.kv(keysAndValues)...)
}

func (w *withAttrs) Info(msg string, keysAndValues ...any) {
	w.logger.Info(msg, w.kv(keysAndValues)...)
}

func (w *withAttrs) Warn(msg string, keysAndValues ...any) {
	w.logger.Warn(msg, w.kv(keysAndValues)...)
}

func (w *withAttrs) Error(msg string, keysAndValues ...any) {
	w.logger.Error(msg, w.kv(keysAndValues)...)
}

// WithAttrs returns a logger that prepends attrs to every call.
func WithAttrs(logger Logger, attrs ...any) Logger {
	if logger == nil {
		logger = Null
	}
	return &withAttrs{logger: logger, attrs: attrs}
}
