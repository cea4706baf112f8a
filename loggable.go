package cornlog

import (
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"
	"time"
)

// Kind is the shape of a normalized log payload.
type Kind uint8

const (
	// KindString is a plain text message.
	KindString Kind = iota
	// KindObject is a structured payload rendered by the pretty-printer.
	KindObject
	// KindError is an error rendered as message plus stack trace.
	KindError
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Loggable is the normalized form of a log payload.
type Loggable struct {
	Kind Kind
	// Text holds the message for KindString and KindError.
	Text string
	// Value holds the structured payload for KindObject.
	Value any
	// Err holds the original error for KindError.
	Err error
	// Stack holds the stack trace text for KindError.
	Stack string
}

type stackTracer interface {
	Stack() string
}

// Normalize converts any value into a Loggable: errors pass through as errors,
// strings and structured values pass through unchanged and anything else is stringified.
func Normalize(value any) Loggable {
	switch typed := value.(type) {
	case nil:
		return Loggable{Kind: KindString, Text: "null"}
	case error:
		return Loggable{
			Kind:  KindError,
			Text:  typed.Error(),
			Err:   typed,
			Stack: StackOf(typed),
		}
	case string:
		return Loggable{Kind: KindString, Text: typed}
	case []byte:
		return Loggable{Kind: KindString, Text: string(typed)}
	case Object, time.Time, *time.Time:
		return Loggable{Kind: KindObject, Value: typed}
	}

	if isStructured(reflect.ValueOf(value)) {
		return Loggable{Kind: KindObject, Value: value}
	}

	return Loggable{Kind: KindString, Text: fmt.Sprint(value)}
}

// StackOf returns the stack trace carried by err, or the current goroutine's stack
// when no error in the chain records one.
func StackOf(err error) string {
	var tracer stackTracer
	if errors.As(err, &tracer) {
		if stack := tracer.Stack(); stack != "" {
			return stack
		}
	}

	return string(debug.Stack())
}

func isStructured(v reflect.Value) bool {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}

		v = v.Elem()
	}

	//nolint:exhaustive // scalars fall through to stringification.
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	default:
		return false
	}
}
