package log

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// DefaultContextProvider returns the context used by the logging functions
// that take none.
var DefaultContextProvider = context.TODO

var (
	defaultMu  sync.RWMutex
	defaultLog = Make(os.Stderr)
)

func std() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultLog
}

// Config reconfigures the default logger.
func Config(opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultLog = defaultLog.Wrap(opts...)
}

// Default returns the default logger.
func Default() Logger { return std() }

// Enabled reports whether the default logger writes messages at level.
// Use it to skip building attributes that are expensive to compute.
func Enabled(ctx context.Context, level Level) bool { return std().Enabled(ctx, level) }

// With returns the default logger with attrs added to every message.
func With(attrs ...slog.Attr) Logger { return std().With(attrs...) }

// The functions below log through the default logger. Each is a separate
// call frame of the same depth as the Logger methods, so caller
// information points at their caller.

func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	std().log(ctx, LevelTrace, msg, attrs)
}

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	std().log(ctx, LevelDebug, msg, attrs)
}

func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	std().log(ctx, LevelInfo, msg, attrs)
}

func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	std().log(ctx, LevelWarn, msg, attrs)
}

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	std().log(ctx, LevelError, msg, attrs)
}

func Debug(msg string, attrs ...slog.Attr) {
	std().log(DefaultContextProvider(), LevelDebug, msg, attrs)
}

func Info(msg string, attrs ...slog.Attr) {
	std().log(DefaultContextProvider(), LevelInfo, msg, attrs)
}

func Warn(msg string, attrs ...slog.Attr) {
	std().log(DefaultContextProvider(), LevelWarn, msg, attrs)
}

func Error(msg string, attrs ...slog.Attr) {
	std().log(DefaultContextProvider(), LevelError, msg, attrs)
}
