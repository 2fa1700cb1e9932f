package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Attribute keys shared by log records and metric tags.
const (
	CorrelationIDKey = "correlation_id"
	OperationKey     = "operation"
	DurationKey      = "duration_ms"
	ErrorKey         = "error"
	TaskIDKey        = "task_id"
	DayKey           = "day"
)

type ctxKey int

const (
	correlationCtxKey ctxKey = iota
	operationCtxKey
)

// WithCorrelationID tags ctx with id, generating one when id is empty. The
// id follows a command into reminder events and log records.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, correlationCtxKey, id)
}

func CorrelationIDFromContext(ctx context.Context) string {
	return stringValue(ctx, correlationCtxKey)
}

// WithOperation names the store mutation running under ctx.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationCtxKey, operation)
}

func OperationFromContext(ctx context.Context) string {
	return stringValue(ctx, operationCtxKey)
}

// contextAttrs returns the log attributes carried by ctx.
func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	if id := CorrelationIDFromContext(ctx); id != "" {
		attrs = append(attrs, slog.String(CorrelationIDKey, id))
	}
	if op := OperationFromContext(ctx); op != "" {
		attrs = append(attrs, slog.String(OperationKey, op))
	}
	return attrs
}

func stringValue(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}
