package debugctx

import (
	"context"

	"github.com/go-logr/logr"
)

// debugLevel is the logr verbosity used for request tracing.
const debugLevel = 1

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger logr.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return logr.NewContext(ctx, logger)
}

// Logger returns the logger carried by ctx, or a discarding logger.
func Logger(ctx context.Context) logr.Logger {
	if ctx == nil {
		return logr.Discard()
	}
	return logr.FromContextOrDiscard(ctx)
}

// Ensure attaches fallback to ctx unless ctx already carries a logger.
func Ensure(ctx context.Context, fallback logr.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := logr.FromContext(ctx); err == nil {
		return ctx
	}
	return logr.NewContext(ctx, fallback)
}

// Enabled reports whether debug lines would be emitted for ctx.
func Enabled(ctx context.Context) bool {
	return Logger(ctx).V(debugLevel).Enabled()
}

// Debug writes a structured debug line through the logger carried by ctx.
func Debug(ctx context.Context, message string, keysAndValues ...any) {
	logger := Logger(ctx).V(debugLevel)
	if !logger.Enabled() {
		return
	}
	logger.Info(message, keysAndValues...)
}
