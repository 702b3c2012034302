// Package log provides a structured logging interface for cancerreg.
//
// The Logger interface is slog-compatible so that the pipeline does not depend
// on a concrete backend. Two backends are provided: a log/slog JSON logger whose
// handler extracts cockroachdb/errors stack traces, and an rs/zerolog logger
// that renders structured error types as nested objects.
//
// Example usage:
//
//	logger := log.NewZerologLogger(os.Stderr, log.LevelInfo).With(
//	    log.ModelNameKey, "Ridge",
//	    log.RunIDKey, runID,
//	)
//	logger.Info("repetition finished",
//	    log.RepetitionKey, 3,
//	    log.RMSEKey, 19.4,
//	)
package log

import (
	"context"
	"strings"

	"github.com/YuminosukeSato/cancerreg/pkg/errors"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key/value pairs. For Error, an error value passed as
// the first field is attached under the "error" key.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	//
	// Example:
	//   logger.Error("pipeline failed", err, log.RepetitionKey, 4)
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a configuration string into a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewConfigError("log_level", "must be one of debug, info, warn, error", level)
	}
}

// errorFirst moves a leading error value under ErrAttrKey so that
// Error(msg, err, k, v) and Error(msg, "error", err, k, v) log the same record.
func errorFirst(fields []any) []any {
	if len(fields) == 0 {
		return fields
	}
	if err, ok := fields[0].(error); ok {
		out := make([]any, 0, len(fields)+1)
		out = append(out, ErrAttrKey, err)
		return append(out, fields[1:]...)
	}
	return fields
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
func (n nopLogger) With(...any) Logger { return n }
func (nopLogger) Enabled(context.Context, Level) bool { return false }
