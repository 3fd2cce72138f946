package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSessionID identifies one CLI invocation or server process.
	FieldSessionID = "session_id"
	// FieldConversionID is the history identifier of a conversion.
	FieldConversionID = "conversion_id"
	// FieldRequestID is the standardized structured logging key for HTTP request identifiers.
	FieldRequestID = "request_id"
	// FieldAdapter names the entry point that started a conversion (cli or http).
	FieldAdapter = "adapter"
	// FieldSource is the transcript name a conversion read from.
	FieldSource = "source"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to an operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey string

const (
	conversionIDKey contextKey = "conversion_id"
	requestIDKey    contextKey = "request_id"
	adapterKey      contextKey = "adapter"
)

// WithConversionID annotates context with a conversion identifier.
func WithConversionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, conversionIDKey, id)
}

// ConversionIDFromContext returns the conversion identifier if present.
func ConversionIDFromContext(ctx context.Context) (string, bool) {
	return stringFromContext(ctx, conversionIDKey)
}

// WithRequestID annotates context with an HTTP request identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFromContext(ctx, requestIDKey)
}

// WithAdapter annotates context with the adapter name.
func WithAdapter(ctx context.Context, adapter string) context.Context {
	if adapter == "" {
		return ctx
	}
	return context.WithValue(ctx, adapterKey, adapter)
}

// AdapterFromContext returns the adapter name if present.
func AdapterFromContext(ctx context.Context) (string, bool) {
	return stringFromContext(ctx, adapterKey)
}

func stringFromContext(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if adapter, ok := AdapterFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldAdapter, adapter))
	}
	if id, ok := ConversionIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldConversionID, id))
	}
	if rid, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRequestID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
