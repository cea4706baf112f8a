package caller

import (
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/hyp3rd/cornlog"
)

const maxFrames = 64

// StackResolver resolves the caller from the runtime frames of the current goroutine.
type StackResolver struct {
	exclusions []string
}

// Ensure StackResolver implements cornlog.CallerResolver.
var _ cornlog.CallerResolver = (*StackResolver)(nil)

// NewStackResolver creates a resolver skipping DefaultExclusions plus the given
// function name fragments, typically the wrappers an application puts around the logger.
func NewStackResolver(extra ...string) *StackResolver {
	return &StackResolver{exclusions: append(DefaultExclusions(), extra...)}
}

// Resolve implements cornlog.CallerResolver.
func (r *StackResolver) Resolve() cornlog.CallerInfo {
	pcs := make([]uintptr, maxFrames)
	// Skip runtime.Callers and Resolve itself.
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return cornlog.DefaultCallerInfo()
	}

	iter := runtime.CallersFrames(pcs[:n])
	frames := make([]Frame, 0, n)

	for {
		frame, more := iter.Next()
		frames = append(frames, Frame{
			Function:  ShortName(frame.Function),
			Qualified: frame.Function,
			File:      frame.File,
			Line:      frame.Line,
		})

		if !more {
			break
		}
	}

	return Select(frames, r.exclusions)
}

// TraceResolver resolves the caller by parsing a textual stack trace.
type TraceResolver struct {
	exclusions []string
	capture    func() string
}

// Ensure TraceResolver implements cornlog.CallerResolver.
var _ cornlog.CallerResolver = (*TraceResolver)(nil)

// NewTraceResolver creates a resolver parsing the trace returned by capture.
// A nil capture uses runtime/debug.Stack.
func NewTraceResolver(capture func() string, extra ...string) *TraceResolver {
	if capture == nil {
		capture = func() string { return string(debug.Stack()) }
	}

	return &TraceResolver{
		exclusions: append(DefaultExclusions(), extra...),
		capture:    capture,
	}
}

// Resolve implements cornlog.CallerResolver.
func (r *TraceResolver) Resolve() cornlog.CallerInfo {
	return Select(ParseTrace(r.capture()), r.exclusions)
}

// FunctionName returns the name of the function calling into the logger, without
// the trailing parentheses. Anonymous callers yield "file@line", unresolvable ones
// "anonymous". extra lists further function name fragments to skip.
func FunctionName(extra ...string) string {
	return strings.TrimSuffix(NewStackResolver(extra...).Resolve().Function, "()")
}
