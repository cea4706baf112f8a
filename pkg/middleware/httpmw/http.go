// Package httpmw provides net/http middleware for cornlog.
//
// ContextMiddleware stores the trace and request ids of a request in its context.
// Middleware does the same and logs one line per request under the "HTTP" context:
// 5xx responses are logged at ERROR, 4xx at WARN and everything else at INFO.
package httpmw

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/hyp3rd/cornlog"
	"github.com/hyp3rd/cornlog/internal/constants"
)

const (
	randomIDLength = 16
	defaultContext = "HTTP"
)

// Option configures the behaviour of the middleware.
type Option func(*options)

type options struct {
	traceHeader    string
	requestHeader  string
	idGenerator    func() string
	generateIfMiss bool
	contextName    string
	extractors     []cornlog.ContextExtractor
	clock          func() time.Time
}

// WithTraceHeader configures the header used to populate the trace id.
func WithTraceHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.traceHeader = name
		}
	}
}

// WithRequestHeader configures the header used to populate the request id.
func WithRequestHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.requestHeader = name
		}
	}
}

// WithIDGenerator provides a custom generator used when headers are missing.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.idGenerator = fn
		}
	}
}

// WithGenerateMissingIDs instructs the middleware to create ids when headers are absent.
func WithGenerateMissingIDs(enable bool) Option {
	return func(o *options) {
		o.generateIfMiss = enable
	}
}

// WithContextName sets the log context of request lines.
func WithContextName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.contextName = name
		}
	}
}

// WithExtractors adds context extractors whose fields are appended to every request line.
func WithExtractors(extractors ...cornlog.ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// WithClock replaces the clock used to measure request durations.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func buildOptions(opts []Option) options {
	cfg := options{
		traceHeader:    constants.TraceHeader,
		requestHeader:  constants.RequestHeader,
		idGenerator:    randomID,
		generateIfMiss: true,
		contextName:    defaultContext,
		clock:          time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// ContextMiddleware enriches the request context with the trace and request ids.
func ContextMiddleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := buildOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(cfg.withIDs(r)))
		})
	}
}

// Middleware enriches the request context like ContextMiddleware and logs every
// request once it has been served. A nil logger only propagates the ids.
func Middleware(logger cornlog.Logger, opts ...Option) func(http.Handler) http.Handler {
	cfg := buildOptions(opts)

	if logger == nil {
		logger = cornlog.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(cfg.withIDs(r))

			recorder := &statusRecorder{ResponseWriter: w}
			start := cfg.clock()

			next.ServeHTTP(recorder, r)

			status := recorder.Status()
			payload := cornlog.Obj(
				cornlog.Str("method", r.Method),
				cornlog.Str("path", r.URL.Path),
				cornlog.Int("status", status),
				cornlog.Int64("duration_ms", cfg.clock().Sub(start).Milliseconds()),
			)

			extractors := append([]cornlog.ContextExtractor{cornlog.IDExtractor}, cornlog.GlobalContextExtractors()...)
			extractors = append(extractors, cfg.extractors...)
			payload = cornlog.ApplyContextExtractors(r.Context(), payload, extractors...)

			sub := cornlog.WithSubContext(r.Method + " " + r.URL.Path)

			switch LevelForStatus(status) {
			case cornlog.ErrorLevel:
				logger.Error(cfg.contextName, payload, sub)
			case cornlog.WarnLevel:
				logger.Warn(cfg.contextName, payload, sub)
			default:
				logger.Info(cfg.contextName, payload, sub)
			}
		})
	}
}

// LevelForStatus maps an HTTP status code to the level of its request line.
func LevelForStatus(status int) cornlog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return cornlog.ErrorLevel
	case status >= http.StatusBadRequest:
		return cornlog.WarnLevel
	default:
		return cornlog.InfoLevel
	}
}

func (o options) withIDs(r *http.Request) context.Context {
	ctx := r.Context()

	if traceID := r.Header.Get(o.traceHeader); traceID != "" {
		ctx = cornlog.ContextWithTraceID(ctx, traceID)
	} else if o.generateIfMiss {
		ctx = cornlog.ContextWithTraceID(ctx, o.idGenerator())
	}

	if reqID := r.Header.Get(o.requestHeader); reqID != "" {
		ctx = cornlog.ContextWithRequestID(ctx, reqID)
	} else if o.generateIfMiss {
		ctx = cornlog.ContextWithRequestID(ctx, o.idGenerator())
	}

	return ctx
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter

	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}

	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}

	return s.ResponseWriter.Write(p)
}

// Status returns the written status, 200 when the handler wrote nothing.
func (s *statusRecorder) Status() int {
	if s.status == 0 {
		return http.StatusOK
	}

	return s.status
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

func randomID() string {
	bytes := make([]byte, randomIDLength)

	_, err := rand.Read(bytes)
	if err != nil {
		return ""
	}

	return hex.EncodeToString(bytes)
}
