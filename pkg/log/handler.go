package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	mlerrors "github.com/YuminosukeSato/cancerreg/pkg/errors"
)

// ErrFmtHandler decorates records that carry an error under ErrAttrKey with
// the cockroachdb/errors stack trace and the error category (ErrorTypeKey).
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps handler with ErrFmtHandler.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{handler: handler}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var recErr error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		recErr, _ = attr.Value.Any().(error)
		return false
	})
	if recErr == nil {
		return eh.handler.Handle(ctx, r)
	}

	if kind := errorType(recErr); kind != "" {
		r.AddAttrs(slog.String(ErrorTypeKey, kind))
	}
	if st := extractStacktrace(recErr); st != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, st))
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

// errorType returns the name of the first cancerreg error type found in the chain.
func errorType(err error) string {
	var (
		cfgErr   *mlerrors.ConfigError
		dataErr  *mlerrors.DataError
		numErr   *mlerrors.NumericalError
		nfErr    *mlerrors.NotFittedError
		dimErr   *mlerrors.DimensionError
		valErr   *mlerrors.ValueError
		panicErr *mlerrors.PanicError
	)
	switch {
	case errors.As(err, &cfgErr):
		return "ConfigError"
	case errors.As(err, &dataErr):
		return "DataError"
	case errors.As(err, &numErr):
		return "NumericalError"
	case errors.As(err, &nfErr):
		return "NotFittedError"
	case errors.As(err, &dimErr):
		return "DimensionError"
	case errors.As(err, &valErr):
		return "ValueError"
	case errors.As(err, &panicErr):
		return "PanicError"
	}
	return ""
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
