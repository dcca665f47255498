package context

import (
	"context"
	"log/slog"
)

// KeyLogger is the key for storing request-scoped logger in context.
const KeyLogger ContextKey = "logger"

// Logger returns the request-scoped logger, which already carries request_id,
// or fallback when the call did not come through the HTTP stack.
func Logger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
