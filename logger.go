// Package cornlog defines a small, colorful console logger with optional daily file persistence.
//
// The package provides:
// - Four log levels (Error, Warn, Info, Debug), each with a fixed label and style
// - A context/sub-context header on every line ("[DB] ERROR > connect() at line:12 col: 0:")
// - Pretty-printing of structured payloads (maps, structs, slices, ordered Objects)
// - Errors rendered as message plus a gray stack-trace block
// - Best-effort caller inference when no sub-context is given
// - Optional persistence of an ANSI-stripped copy to <dir>/<YYYY-MM-DD>.log
//
// The root package holds the shared types and configuration. The concrete emitter
// lives in pkg/adapter, the pretty-printer in pkg/pretty and the caller resolvers in
// pkg/caller.
//
// Basic usage:
//
//	log, err := adapter.NewAdapter(cornlog.DefaultConfig())
//	if err != nil {
//		panic(err)
//	}
//
//	log.Info("SYSTEM", "Avvio completato")
//	log.Error("DB", err, cornlog.WithSubContext("DBConnect"))
//	log.Debug("API", cornlog.Obj(cornlog.Str("path", "/users"), cornlog.Int("status", 200)))
package cornlog

import (
	"strings"

	"github.com/hyp3rd/ewrap"
)

// Level represents the severity of a log message.
type Level uint8

const (
	// DebugLevel represents debugging information.
	DebugLevel Level = iota
	// InfoLevel represents general operational information.
	InfoLevel
	// WarnLevel represents warning messages.
	WarnLevel
	// ErrorLevel represents error messages.
	ErrorLevel
)

// ErrInvalidLevel is returned by ParseLevel for unrecognized level names.
var ErrInvalidLevel = ewrap.New("invalid log level")

// String returns the display label of a log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true if the given Level is a valid log level, and false otherwise.
func (l Level) IsValid() bool {
	return l <= ErrorLevel
}

// AllLevels returns every supported level, most severe first.
func AllLevels() []Level {
	return []Level{ErrorLevel, WarnLevel, InfoLevel, DebugLevel}
}

// ParseLevel parses a level name case-insensitively.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return DebugLevel, ewrap.Wrap(ErrInvalidLevel, "parsing level").WithMetadata("level", level)
	}
}

// CallerInfo describes the call site that emitted a log line.
type CallerInfo struct {
	Function string
	File     string
	Line     int
	Column   int
}

// DefaultCallerInfo is returned when no call site can be resolved.
func DefaultCallerInfo() CallerInfo {
	return CallerInfo{
		Function: "anonymous",
		File:     "unknown",
		Line:     -1,
		Column:   -1,
	}
}

// CallerResolver infers the call site of a logging call.
// Implementations are best-effort and must fall back to DefaultCallerInfo.
type CallerResolver interface {
	Resolve() CallerInfo
}

// CallOptions carries the optional arguments of a single logging call.
type CallOptions struct {
	// SubContext qualifies the context; resolved from the caller when empty.
	SubContext string
	// Style overrides the message style.
	Style Style
}

// Option configures a single logging call.
type Option func(*CallOptions)

// WithSubContext sets an explicit sub-context, disabling caller resolution.
func WithSubContext(sub string) Option {
	return func(o *CallOptions) {
		o.SubContext = sub
	}
}

// WithStyle overrides the style applied to the message body.
func WithStyle(style Style) Option {
	return func(o *CallOptions) {
		o.Style = style
	}
}

// ApplyOptions folds the given options into a CallOptions value.
func ApplyOptions(opts ...Option) CallOptions {
	var out CallOptions

	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}

	return out
}

// Logger defines the interface for logging operations.
type Logger interface {
	// Error logs a message or error at the Error level.
	Error(context string, message any, opts ...Option)
	// Warn logs a message at the Warn level.
	Warn(context string, message any, opts ...Option)
	// Info logs a message at the Info level.
	Info(context string, message any, opts ...Option)
	// Debug logs a message at the Debug level.
	Debug(context string, message any, opts ...Option)

	// DebugData dumps data to the console when verbosity reaches required.
	DebugData(label, context, user string, data any, verbosity, required int, opts ...Option)

	Methods
}

// Methods defines the non-logging methods of a Logger.
type Methods interface {
	// GetLevel returns the current minimum level
	GetLevel() Level
	// SetLevel sets the minimum level
	SetLevel(level Level)
	// GetConfig returns the current logger configuration
	GetConfig() *Config
}
