// Package grpcmw provides gRPC server interceptors for cornlog.
//
// The interceptors copy the trace and request ids found in the incoming metadata
// into the context and log one line per RPC under the "GRPC" context, with the full
// method name as sub-context. OK is logged at INFO, codes caused by the client at
// WARN and every other code at ERROR.
package grpcmw

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/hyp3rd/cornlog"
)

// UnaryServerInterceptor enriches the context with metadata ids and logs each unary RPC.
// A nil logger only propagates the ids.
func UnaryServerInterceptor(logger cornlog.Logger, opts ...Option) grpc.UnaryServerInterceptor {
	cfg := actualOptions(opts...)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = cfg.withIDs(ctx)
		start := cfg.clock()

		resp, err := handler(ctx, req)

		cfg.logRPC(ctx, logger, info.FullMethod, start, err)

		return resp, err
	}
}

// StreamServerInterceptor enriches the stream context with metadata ids and logs each
// stream once it ends. A nil logger only propagates the ids.
func StreamServerInterceptor(logger cornlog.Logger, opts ...Option) grpc.StreamServerInterceptor {
	cfg := actualOptions(opts...)

	return func(srv any, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := cfg.withIDs(stream.Context())
		start := cfg.clock()

		err := handler(srv, &contextStream{ServerStream: stream, ctx: ctx})

		cfg.logRPC(ctx, logger, info.FullMethod, start, err)

		return err
	}
}

// LevelForCode maps a gRPC status code to the level of its RPC line.
func LevelForCode(code codes.Code) cornlog.Level {
	//nolint:exhaustive // every other code is a server side failure.
	switch code {
	case codes.OK:
		return cornlog.InfoLevel
	case codes.Canceled,
		codes.InvalidArgument,
		codes.NotFound,
		codes.AlreadyExists,
		codes.PermissionDenied,
		codes.Unauthenticated,
		codes.ResourceExhausted,
		codes.FailedPrecondition,
		codes.Aborted,
		codes.OutOfRange:
		return cornlog.WarnLevel
	default:
		return cornlog.ErrorLevel
	}
}

func (o options) withIDs(ctx context.Context) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ctx
	}

	if values := md.Get(o.traceKey); len(values) > 0 {
		ctx = cornlog.ContextWithTraceID(ctx, values[0])
	}

	if values := md.Get(o.requestKey); len(values) > 0 {
		ctx = cornlog.ContextWithRequestID(ctx, values[0])
	}

	return ctx
}

func (o options) logRPC(ctx context.Context, logger cornlog.Logger, method string, start time.Time, err error) {
	if logger == nil {
		return
	}

	code := status.Code(err)

	payload := cornlog.Obj(
		cornlog.Str("method", method),
		cornlog.Str("code", code.String()),
		cornlog.Int64("duration_ms", o.clock().Sub(start).Milliseconds()),
	)

	if err != nil {
		payload = payload.Set("error", status.Convert(err).Message())
	}

	extractors := append([]cornlog.ContextExtractor{cornlog.IDExtractor}, cornlog.GlobalContextExtractors()...)
	extractors = append(extractors, o.extractors...)
	payload = cornlog.ApplyContextExtractors(ctx, payload, extractors...)

	sub := cornlog.WithSubContext(method)

	switch LevelForCode(code) {
	case cornlog.ErrorLevel:
		logger.Error(o.contextName, payload, sub)
	case cornlog.WarnLevel:
		logger.Warn(o.contextName, payload, sub)
	default:
		logger.Info(o.contextName, payload, sub)
	}
}

// contextStream overrides the context of a server stream.
type contextStream struct {
	grpc.ServerStream

	ctx context.Context //nolint:containedctx // the stream API exposes its context through a method.
}

func (s *contextStream) Context() context.Context {
	return s.ctx
}
