// Package caller infers the call site of a logging call.
//
// Two resolvers implement cornlog.CallerResolver. StackResolver walks the runtime
// frames of the current goroutine and is the default. TraceResolver captures the
// textual stack trace and parses it with ParseTrace, which also understands
// `at fn (file:line:col)` traces. Both hand their frames to Select, which skips
// the logging entry points and prefers named functions over anonymous frames.
//
// Go frames carry no column: resolved CallerInfo values report column 0.
package caller

import (
	"strings"

	"github.com/hyp3rd/cornlog"
)

const (
	modulePath = "github.com/hyp3rd/cornlog"
	anonymous  = "anonymous"
	unknown    = "unknown"
)

// Frame is one entry of a stack trace.
type Frame struct {
	// Function is the display name: Go names are trimmed to their last path element.
	Function string
	// Qualified is the full Go function name, when known. Exclusions match it too.
	Qualified string
	// File is the source path as reported by the trace.
	File string
	Line int
	// Column is 0 when the trace carries none.
	Column int
}

// DefaultExclusions lists the function name fragments that belong to the logging
// machinery. Frames matching any of them are never reported as the caller.
// Frames of the Go runtime packages are always skipped, see isRuntimeFrame.
func DefaultExclusions() []string {
	return []string{
		modulePath + "/pkg/adapter.(*Adapter).",
		modulePath + "/pkg/caller.(*StackResolver).",
		modulePath + "/pkg/caller.(*TraceResolver).",
		modulePath + "/pkg/caller.NewTraceResolver.",
		modulePath + "/pkg/caller.FunctionName",
		modulePath + "/pkg/log.Error",
		modulePath + "/pkg/log.Warn",
		modulePath + "/pkg/log.Info",
		modulePath + "/pkg/log.Debug",
	}
}

// Select returns the caller described by the first frame that is neither excluded
// nor anonymous, formatted as `name()`. When only anonymous frames remain, the
// first one with a known file is reported as `file@line`. Otherwise the default
// CallerInfo is returned.
func Select(frames []Frame, exclusions []string) cornlog.CallerInfo {
	var fallback *Frame

	for i := range frames {
		frame := &frames[i]
		if isExcluded(frame, exclusions) {
			continue
		}

		if !isAnonymous(frame) {
			return cornlog.CallerInfo{
				Function: frame.Function + "()",
				File:     baseName(frame.File),
				Line:     frame.Line,
				Column:   frame.Column,
			}
		}

		if fallback == nil && baseName(frame.File) != unknown {
			fallback = frame
		}
	}

	if fallback == nil {
		return cornlog.DefaultCallerInfo()
	}

	file := baseName(fallback.File)

	return cornlog.CallerInfo{
		Function: file + "@" + itoa(fallback.Line),
		File:     file,
		Line:     fallback.Line,
		Column:   fallback.Column,
	}
}

func isExcluded(frame *Frame, exclusions []string) bool {
	if isRuntimeFrame(frame) {
		return true
	}

	for _, keyword := range exclusions {
		if keyword == "" {
			continue
		}

		if strings.Contains(frame.Function, keyword) ||
			(frame.Qualified != "" && strings.Contains(frame.Qualified, keyword)) {
			return true
		}
	}

	return false
}

// isRuntimeFrame matches the standard runtime packages by the prefix of the
// qualified name; a third-party package named runtime is a regular caller.
func isRuntimeFrame(frame *Frame) bool {
	return strings.HasPrefix(frame.Qualified, "runtime.") ||
		strings.HasPrefix(frame.Qualified, "runtime/")
}

func isAnonymous(frame *Frame) bool {
	name := frame.Function

	return name == "" ||
		strings.ContainsAny(name, `/\`) ||
		name == frame.File ||
		name == anonymous
}

// ShortName trims a Go function name to its last path element, so
// "github.com/acme/app/store.(*DB).Save" becomes "store.(*DB).Save".
func ShortName(name string) string {
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:]
	}

	return name
}

func baseName(path string) string {
	if path == "" {
		return unknown
	}

	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		path = path[idx+1:]
	}

	if path == "" {
		return unknown
	}

	return path
}
