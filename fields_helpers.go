package cornlog

import (
	"time"
)

// Field is a key-value pair of an ordered Object.
type Field struct {
	Key   string
	Value any
}

// Object is a mapping that keeps its keys in insertion order.
// The pretty-printer renders Objects in the order their fields were added.
type Object []Field

// Obj builds an Object from fields.
func Obj(fields ...Field) Object {
	return Object(fields)
}

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, field := range o {
		if field.Key == key {
			return field.Value, true
		}
	}

	return nil, false
}

// Set replaces the value of key, appending the field when the key is new.
func (o Object) Set(key string, value any) Object {
	for i := range o {
		if o[i].Key == key {
			o[i].Value = value

			return o
		}
	}

	return append(o, Field{Key: key, Value: value})
}

// Keys returns the keys in insertion order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, field := range o {
		keys = append(keys, field.Key)
	}

	return keys
}

// Str creates a Field with a string value.
func Str(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a Field with a boolean value.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Int creates a Field with an int value.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates a Field with an int64 value.
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Float64 creates a Field with a float64 value.
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a Field holding the duration in milliseconds.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: float64(value.Microseconds()) / float64(time.Millisecond/time.Microsecond)}
}

// Time creates a Field with a time.Time value.
func Time(key string, value time.Time) Field {
	return Field{Key: key, Value: value}
}

// Error creates a Field from an error's message. Nil errors produce a null value.
func Error(key string, err error) Field {
	var val any
	if err != nil {
		val = err.Error()
	}

	return Field{Key: key, Value: val}
}

// Nested creates a Field holding an ordered sub-object.
func Nested(key string, fields ...Field) Field {
	return Field{Key: key, Value: Obj(fields...)}
}

// Any creates a Field with an arbitrary value.
func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}
