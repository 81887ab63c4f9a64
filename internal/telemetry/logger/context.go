// Package logger provides structured logging for TraceMesh.
package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = "tracemesh.logger"
	// traceIDKey is the context key for the active trace ID.
	traceIDKey contextKey = "tracemesh.trace_id"
	// spanIDKey is the context key for the active span ID.
	spanIDKey contextKey = "tracemesh.span_id"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext extracts the trace ID from context.
func TraceIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey).(string); ok {
		return id
	}
	return ""
}

// WithSpanID adds a span ID to the context.
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, spanIDKey, spanID)
}

// SpanIDFromContext extracts the span ID from context.
func SpanIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(spanIDKey).(string); ok {
		return id
	}
	return ""
}

// L is a shorthand for FromContext that also enriches the logger with
// the trace and span IDs carried by the context.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)

	if traceID := TraceIDFromContext(ctx); traceID != "" {
		l = l.With("trace_id", traceID)
	}
	if spanID := SpanIDFromContext(ctx); spanID != "" {
		l = l.With("span_id", spanID)
	}

	return l
}
