// Package context carries request-scoped values between the HTTP layer and the use cases.
package context

import "context"

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// KeyRequestID is the key for storing request ID in context.
const KeyRequestID ContextKey = "request_id"

// HeaderXRequestID is the HTTP header name for request ID.
const HeaderXRequestID = "X-Request-Id"

// RequestID returns the ID the RequestID middleware stored for this request, or "".
// Published account events carry it so they can be traced back to the HTTP call.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}
