package cornlog

import (
	"testing"
	"time"

	"github.com/hyp3rd/ewrap"
	"github.com/stretchr/testify/assert"
)

type tracedError struct{}

func (tracedError) Error() string { return "traced" }
func (tracedError) Stack() string { return "at traced (traced.go:1:1)" }

type point struct {
	X, Y int
}

func TestNormalize(t *testing.T) {
	var nilMap map[string]int

	now := time.Now()

	tests := []struct {
		name     string
		input    any
		wantKind Kind
		wantText string
	}{
		{"string", "hello", KindString, "hello"},
		{"bytes", []byte("raw"), KindString, "raw"},
		{"nil", nil, KindString, "null"},
		{"int", 42, KindString, "42"},
		{"float", 1.5, KindString, "1.5"},
		{"bool", true, KindString, "true"},
		{"nil map pointer", &nilMap, KindObject, ""},
		{"map", map[string]int{"a": 1}, KindObject, ""},
		{"slice", []int{1, 2}, KindObject, ""},
		{"struct", point{1, 2}, KindObject, ""},
		{"struct pointer", &point{1, 2}, KindObject, ""},
		{"object", Obj(Str("k", "v")), KindObject, ""},
		{"time", now, KindObject, ""},
		{"error", ewrap.New("boom"), KindError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)

			assert.Equal(t, tt.wantKind, got.Kind)

			if tt.wantKind != KindObject {
				assert.Equal(t, tt.wantText, got.Text)
			} else {
				assert.Equal(t, tt.input, got.Value)
			}
		})
	}
}

func TestNormalizeNilPointer(t *testing.T) {
	var p *point

	got := Normalize(p)
	assert.Equal(t, KindString, got.Kind)
	assert.Equal(t, "<nil>", got.Text)
}

func TestNormalizeErrorStack(t *testing.T) {
	traced := Normalize(tracedError{})
	assert.Equal(t, KindError, traced.Kind)
	assert.Equal(t, "at traced (traced.go:1:1)", traced.Stack)

	wrapped := Normalize(ewrap.Wrap(tracedError{}, "outer"))
	assert.Equal(t, KindError, wrapped.Kind)
	assert.NotEmpty(t, wrapped.Stack)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "error", KindError.String())
	assert.Equal(t, "unknown", Kind(7).String())
}
