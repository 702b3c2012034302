package log

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	mlerrors "github.com/YuminosukeSato/cancerreg/pkg/errors"
)

// ZerologLogger adapts zerolog.Logger to Logger. Error values that implement
// zerolog.LogObjectMarshaler anywhere in their chain (every error type in
// pkg/errors does) are rendered as nested objects.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger returns a Logger writing JSON lines to w.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	zl := zerolog.New(w).With().Timestamp().Logger().Level(toZerologLevel(level))
	return &ZerologLogger{logger: zl}
}

// NewConsoleLogger returns a zerolog Logger with human-readable output.
func NewConsoleLogger(w io.Writer, level Level) *ZerologLogger {
	return NewZerologLogger(zerolog.ConsoleWriter{Out: w, NoColor: true}, level)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// Debug implements Logger.Debug.
func (l *ZerologLogger) Debug(msg string, fields ...any) {
	l.emit(l.logger.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (l *ZerologLogger) Info(msg string, fields ...any) {
	l.emit(l.logger.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (l *ZerologLogger) Warn(msg string, fields ...any) {
	l.emit(l.logger.Warn(), msg, fields)
}

// Error implements Logger.Error.
func (l *ZerologLogger) Error(msg string, fields ...any) {
	l.emit(l.logger.Error(), msg, errorFirst(fields))
}

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	ctx := l.logger.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case error:
			ctx = ctx.AnErr(key, v)
		default:
			ctx = ctx.Interface(key, v)
		}
	}
	return &ZerologLogger{logger: ctx.Logger()}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.logger.GetLevel()
}

// InstallWarnings routes pkg/errors warnings through this logger.
func (l *ZerologLogger) InstallWarnings() {
	mlerrors.SetZerologWarnFunc(func(w error) {
		l.emit(l.logger.Warn(), w.Error(), []any{"warning", w})
	})
}

func (l *ZerologLogger) emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case error:
			var m zerolog.LogObjectMarshaler
			if errors.As(v, &m) {
				e = e.Object(key, m).Str(key+".message", v.Error())
			} else {
				e = e.AnErr(key, v)
			}
		case zerolog.LogObjectMarshaler:
			e = e.Object(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	e.Msg(msg)
}
