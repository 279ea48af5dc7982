package snapgo

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/snapgo/codec"
)

// Logger wraps slog.Logger with snapgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRuntime adds a runtime field to the logger.
func (l *Logger) WithRuntime(rt Runtime) *Logger {
	return &Logger{
		Logger: l.Logger.With("runtime", rt.Name),
	}
}

// WithFormat adds a format field to the logger.
func (l *Logger) WithFormat(f codec.Format) *Logger {
	return &Logger{
		Logger: l.Logger.With("format", string(f)),
	}
}

// LogPersist logs a persist operation.
func (l *Logger) LogPersist(ctx context.Context, f codec.Format, location string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "persist failed",
			"format", string(f),
			"location", location,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot persisted",
			"format", string(f),
			"location", location,
			"bytes", size,
		)
	}
}

// LogRestore logs a restore operation.
func (l *Logger) LogRestore(ctx context.Context, f codec.Format, location string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "restore failed",
			"format", string(f),
			"location", location,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot restored",
			"format", string(f),
			"location", location,
			"bytes", size,
		)
	}
}

// LogExport logs an in-memory export.
func (l *Logger) LogExport(ctx context.Context, f codec.Format, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "export failed",
			"format", string(f),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot exported",
			"format", string(f),
			"bytes", size,
		)
	}
}

// LogImport logs an in-memory import.
func (l *Logger) LogImport(ctx context.Context, f codec.Format, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "import failed",
			"format", string(f),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot imported",
			"format", string(f),
			"bytes", size,
		)
	}
}
