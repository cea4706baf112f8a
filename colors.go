package cornlog

//nolint:revive // Pointless to comment the colors.
const (
	// ANSI color codes for terminal output.

	// Regular colors.

	Black   = "\x1b[30m"
	Red     = "\x1b[31m"
	Green   = "\x1b[32m"
	Yellow  = "\x1b[33m"
	Blue    = "\x1b[34m"
	Magenta = "\x1b[35m"
	Cyan    = "\x1b[36m"
	White   = "\x1b[37m"
	Gray    = "\x1b[90m"

	// Background colors.

	BgRed     = "\x1b[41m"
	BgGreen   = "\x1b[42m"
	BgYellow  = "\x1b[43m"
	BgBlue    = "\x1b[44m"
	BgMagenta = "\x1b[45m"
	BgCyan    = "\x1b[46m"
	BgWhite   = "\x1b[47m"

	// Decorations.

	Bold   = "\x1b[1m"
	Dim    = "\x1b[2m"
	Italic = "\x1b[3m"

	// Reset resets the terminal's color settings.
	Reset = "\x1b[0m"

	closeForeground = "\x1b[39m"
	closeBackground = "\x1b[49m"
	closeIntensity  = "\x1b[22m"
	closeItalic     = "\x1b[23m"
)

// Style wraps text in terminal styling. A nil Style is the identity.
type Style func(text string) string

// NewStyle returns a Style that opens with the given sequence and closes with the
// matching reset sequence, so styles can be nested.
func NewStyle(open, closing string) Style {
	return func(text string) string {
		return open + text + closing
	}
}

// Apply applies the style to text; a nil style returns text unchanged.
func (s Style) Apply(text string) string {
	if s == nil {
		return text
	}

	return s(text)
}

// Then returns a Style applying s first and next around the result.
func (s Style) Then(next Style) Style {
	if next == nil {
		return s
	}

	if s == nil {
		return next
	}

	return func(text string) string {
		return next(s(text))
	}
}

// Chain composes styles left to right: the first one wraps the text, each following one wraps the result.
func Chain(styles ...Style) Style {
	var out Style

	for _, style := range styles {
		out = out.Then(style)
	}

	return out
}

// Identity returns the text unchanged.
func Identity() Style {
	return nil
}

// Predefined styles.
//
//nolint:gochecknoglobals,revive
var (
	StyleBlack   = NewStyle(Black, closeForeground)
	StyleRed     = NewStyle(Red, closeForeground)
	StyleGreen   = NewStyle(Green, closeForeground)
	StyleYellow  = NewStyle(Yellow, closeForeground)
	StyleBlue    = NewStyle(Blue, closeForeground)
	StyleMagenta = NewStyle(Magenta, closeForeground)
	StyleCyan    = NewStyle(Cyan, closeForeground)
	StyleWhite   = NewStyle(White, closeForeground)
	StyleGray    = NewStyle(Gray, closeForeground)

	StyleBgRed     = NewStyle(BgRed, closeBackground)
	StyleBgGreen   = NewStyle(BgGreen, closeBackground)
	StyleBgYellow  = NewStyle(BgYellow, closeBackground)
	StyleBgBlue    = NewStyle(BgBlue, closeBackground)
	StyleBgMagenta = NewStyle(BgMagenta, closeBackground)
	StyleBgCyan    = NewStyle(BgCyan, closeBackground)
	StyleBgWhite   = NewStyle(BgWhite, closeBackground)

	StyleBold   = NewStyle(Bold, closeIntensity)
	StyleDim    = NewStyle(Dim, closeIntensity)
	StyleItalic = NewStyle(Italic, closeItalic)
)

// DefaultLevelStyles returns the header style of each level.
func DefaultLevelStyles() map[Level]Style {
	return map[Level]Style{
		ErrorLevel: StyleWhite.Then(StyleBgRed),
		WarnLevel:  StyleBlack.Then(StyleBgYellow),
		InfoLevel:  StyleBlack.Then(StyleBgGreen),
		DebugLevel: StyleWhite.Then(StyleBgBlue),
	}
}

// ColorConfig holds color-related configuration for the logger.
type ColorConfig struct {
	// Enable enables colored output
	Enable bool
	// ForceTTY forces colored output even when the console is not a terminal
	ForceTTY bool
	// LevelStyles maps log levels to their header style
	LevelStyles map[Level]Style
}

// DefaultColorConfig returns the default color configuration for the logger.
// Colors are enabled and only emitted when the console is a terminal.
func DefaultColorConfig() ColorConfig {
	return ColorConfig{
		Enable:      true,
		ForceTTY:    false,
		LevelStyles: DefaultLevelStyles(),
	}
}

// LevelStyle returns the configured header style for level, falling back to
// the default palette and finally to white.
func (c ColorConfig) LevelStyle(level Level) Style {
	if style, ok := c.LevelStyles[level]; ok && style != nil {
		return style
	}

	if style, ok := DefaultLevelStyles()[level]; ok {
		return style
	}

	return StyleWhite
}
