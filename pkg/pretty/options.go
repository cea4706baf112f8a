package pretty

import (
	"time"

	"github.com/hyp3rd/cornlog"
)

const (
	// DefaultIndent is the indentation of the first nesting level.
	DefaultIndent = 2
)

// Options configures the rendering of structured values.
type Options struct {
	// KeyStyle colors object keys. Default: magenta.
	KeyStyle cornlog.Style
	// ValueStyle colors values without a dedicated style. Default: green.
	ValueStyle cornlog.Style
	// KeyBackground is applied around the colored key. Default: none.
	KeyBackground cornlog.Style
	// KeyDecoration is applied last around the key, e.g. bold. Default: none.
	KeyDecoration cornlog.Style
	// Indent is the number of spaces of the first nesting level.
	Indent int
	// MaxDepth bounds the rendered nesting.
	MaxDepth int
	// Location is the zone dates are rendered in.
	Location *time.Location
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		KeyStyle:   cornlog.StyleMagenta,
		ValueStyle: cornlog.StyleGreen,
		Indent:     DefaultIndent,
		MaxDepth:   cornlog.DefaultMaxDepth,
		Location:   cornlog.DefaultLocation(),
	}
}

// WithKeyStyle sets the key color. A nil style keeps the default.
func WithKeyStyle(style cornlog.Style) Option {
	return func(o *Options) {
		if style != nil {
			o.KeyStyle = style
		}
	}
}

// WithValueStyle sets the fallback value color. A nil style keeps the default.
func WithValueStyle(style cornlog.Style) Option {
	return func(o *Options) {
		if style != nil {
			o.ValueStyle = style
		}
	}
}

// WithKeyBackground sets the key background.
func WithKeyBackground(style cornlog.Style) Option {
	return func(o *Options) {
		o.KeyBackground = style
	}
}

// WithKeyDecoration sets the key decoration.
func WithKeyDecoration(style cornlog.Style) Option {
	return func(o *Options) {
		o.KeyDecoration = style
	}
}

// WithIndent sets the indentation of the first nesting level.
func WithIndent(indent int) Option {
	return func(o *Options) {
		if indent >= 0 {
			o.Indent = indent
		}
	}
}

// WithMaxDepth bounds the rendered nesting. Non-positive values keep the default.
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		if depth > 0 {
			o.MaxDepth = depth
		}
	}
}

// WithLocation sets the zone dates are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(o *Options) {
		if loc != nil {
			o.Location = loc
		}
	}
}

func buildOptions(opts []Option) Options {
	options := DefaultOptions()

	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	return options
}
