package cornlog

import (
	"context"
	"sync"

	"github.com/hyp3rd/cornlog/internal/constants"
)

// ContextExtractor pulls request-scoped values out of a context.Context so they can be
// attached to a structured payload, typically by the HTTP and gRPC middleware.
type ContextExtractor func(ctx context.Context) []Field

type contextExtractorRegistry struct {
	mu         sync.RWMutex
	extractors []ContextExtractor
}

//nolint:gochecknoglobals // package-wide registry shared by every middleware.
var contextExtractorRegistryOnce = sync.OnceValue(func() *contextExtractorRegistry {
	return &contextExtractorRegistry{}
})

// RegisterContextExtractor adds a global context extractor that runs for every request.
func RegisterContextExtractor(extractor ContextExtractor) {
	contextExtractorRegistryOnce().register(extractor)
}

// ClearContextExtractors removes all global context extractors.
func ClearContextExtractors() {
	contextExtractorRegistryOnce().reset()
}

// GlobalContextExtractors returns the currently registered global extractors.
func GlobalContextExtractors() []ContextExtractor {
	return contextExtractorRegistryOnce().snapshot()
}

// ApplyContextExtractors runs extractors against ctx and appends their fields to obj.
// Keys already present in obj are overwritten in place.
func ApplyContextExtractors(ctx context.Context, obj Object, extractors ...ContextExtractor) Object {
	if ctx == nil {
		return obj
	}

	for _, extractor := range extractors {
		if extractor == nil {
			continue
		}

		for _, field := range extractor(ctx) {
			obj = obj.Set(field.Key, field.Value)
		}
	}

	return obj
}

func (r *contextExtractorRegistry) register(extractor ContextExtractor) {
	if extractor == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.extractors = append(r.extractors, extractor)
}

func (r *contextExtractorRegistry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.extractors = nil
}

func (r *contextExtractorRegistry) snapshot() []ContextExtractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.extractors) == 0 {
		return nil
	}

	cloned := make([]ContextExtractor, len(r.extractors))
	copy(cloned, r.extractors)

	return cloned
}

// ContextWithTraceID returns a copy of ctx carrying the trace id. Empty ids are not stored.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}

	return context.WithValue(ctx, constants.TraceIDKey, traceID)
}

// ContextWithRequestID returns a copy of ctx carrying the request id. Empty ids are not stored.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}

	return context.WithValue(ctx, constants.RequestIDKey, requestID)
}

// TraceIDFromContext returns the trace id stored by ContextWithTraceID.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	id, ok := ctx.Value(constants.TraceIDKey).(string)

	return id, ok
}

// RequestIDFromContext returns the request id stored by ContextWithRequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	id, ok := ctx.Value(constants.RequestIDKey).(string)

	return id, ok
}

// IDExtractor reports the trace and request ids found in ctx as trace_id and request_id.
func IDExtractor(ctx context.Context) []Field {
	fields := make([]Field, 0, 2)

	if id, ok := TraceIDFromContext(ctx); ok {
		fields = append(fields, Str("trace_id", id))
	}

	if id, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, Str("request_id", id))
	}

	return fields
}
