package tracing

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDFromContext returns the request id set by ContextWithRequestID,
// or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ContextWithRequestID attaches a request id. Empty ids leave ctx unchanged.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}
