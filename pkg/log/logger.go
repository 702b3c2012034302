package log

import (
	"context"
	"io"
	"log/slog"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// NewSlogHandler builds the JSON handler used by the slog backend: level and
// message keys are renamed to "severity" and "message", and errors carry
// their stack trace.
func NewSlogHandler(w io.Writer, level Level) slog.Handler {
	ops := slog.HandlerOptions{
		AddSource: level <= LevelDebug,
		Level:     slog.Level(level),
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr.Key = "severity"
			case slog.MessageKey:
				attr.Key = "message"
			}
			return attr
		},
	}
	return WrapByErrFmtHandler(slog.NewJSONHandler(w, &ops))
}

// SlogLogger adapts *slog.Logger to Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger returns a Logger writing JSON lines to w.
func NewSlogLogger(w io.Writer, level Level) *SlogLogger {
	return &SlogLogger{logger: slog.New(NewSlogHandler(w, level))}
}

// Debug implements Logger.Debug.
func (l *SlogLogger) Debug(msg string, fields ...any) { l.logger.Debug(msg, fields...) }

// Info implements Logger.Info.
func (l *SlogLogger) Info(msg string, fields ...any) { l.logger.Info(msg, fields...) }

// Warn implements Logger.Warn.
func (l *SlogLogger) Warn(msg string, fields ...any) { l.logger.Warn(msg, fields...) }

// Error implements Logger.Error.
func (l *SlogLogger) Error(msg string, fields ...any) {
	l.logger.Error(msg, errorFirst(fields)...)
}

// With implements Logger.With.
func (l *SlogLogger) With(fields ...any) Logger {
	return &SlogLogger{logger: l.logger.With(fields...)}
}

// Enabled implements Logger.Enabled.
func (l *SlogLogger) Enabled(ctx context.Context, level Level) bool {
	return l.logger.Enabled(ctx, slog.Level(level))
}
