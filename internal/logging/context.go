package logging

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type traceIDKey struct{}

// ContextWithTraceID returns a copy of ctx carrying traceID.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace ID stored in ctx, if any.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(traceIDKey{}).(string)
	return id, ok && id != ""
}

// GetOrGenerateTraceID returns the trace ID in ctx or a fresh ULID.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id, ok := TraceIDFromContext(ctx); ok {
		return id
	}
	return GenerateTraceID()
}

// GenerateTraceID returns a new, lexically sortable trace ID.
func GenerateTraceID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// FromContext returns the logger attached to ctx. When none is attached it
// returns zerolog's disabled logger, so callers never need a nil check.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return zerolog.Ctx(context.Background())
	}
	return zerolog.Ctx(ctx)
}

// traceHook stamps the trace ID carried by an event's context onto the event.
type traceHook struct{}

func (traceHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	if id, ok := TraceIDFromContext(e.GetCtx()); ok {
		e.Str("trace_id", id)
	}
}
