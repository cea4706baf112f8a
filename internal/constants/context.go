package constants

// Context key types to avoid collisions when using context.WithValue.
type (
	traceIDKeyType   struct{}
	requestIDKeyType struct{}
)

// Context keys for values that may be stored in a context.Context by the
// middleware and extracted into the logged payload.
var (
	// TraceIDKey is the context key for the trace ID.
	//
	//nolint:gochecknoglobals
	TraceIDKey = traceIDKeyType{}
	// RequestIDKey is the context key for the request ID.
	//
	//nolint:gochecknoglobals
	RequestIDKey = requestIDKeyType{}
)
