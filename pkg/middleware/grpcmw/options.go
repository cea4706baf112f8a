package grpcmw

import (
	"time"

	"github.com/hyp3rd/cornlog"
	"github.com/hyp3rd/cornlog/internal/constants"
)

const defaultContext = "GRPC"

// Option defines a configuration option for the gRPC middleware.
type Option func(*options)

type options struct {
	traceKey    string
	requestKey  string
	contextName string
	extractors  []cornlog.ContextExtractor
	clock       func() time.Time
}

// WithTraceKey customizes the metadata key used to populate the trace identifier.
func WithTraceKey(name string) Option {
	return func(o *options) {
		if o == nil || name == "" {
			return
		}

		o.traceKey = name
	}
}

// WithRequestKey customizes the metadata key used to populate the request identifier.
func WithRequestKey(name string) Option {
	return func(o *options) {
		if o == nil || name == "" {
			return
		}

		o.requestKey = name
	}
}

// WithContextName sets the log context of RPC lines.
func WithContextName(name string) Option {
	return func(o *options) {
		if o == nil || name == "" {
			return
		}

		o.contextName = name
	}
}

// WithExtractors adds context extractors whose fields are appended to every RPC line.
func WithExtractors(extractors ...cornlog.ContextExtractor) Option {
	return func(o *options) {
		if o == nil {
			return
		}

		o.extractors = append(o.extractors, extractors...)
	}
}

// WithClock replaces the clock used to measure RPC durations.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if o == nil || clock == nil {
			return
		}

		o.clock = clock
	}
}

func actualOptions(opts ...Option) options {
	cfg := options{
		traceKey:    constants.TraceMetadataKey,
		requestKey:  constants.RequestMetadataKey,
		contextName: defaultContext,
		clock:       time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
