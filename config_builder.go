package cornlog

import (
	"io"
	"os"
	"time"
)

// ConfigBuilder provides a fluent API for constructing logger configurations.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new builder seeded with DefaultConfig.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: DefaultConfig(),
	}
}

// WithOutput sets the console destination.
// Example: builder.WithOutput(os.Stderr).
func (b *ConfigBuilder) WithOutput(output io.Writer) *ConfigBuilder {
	b.config.Output = output

	return b
}

// WithConsoleOutput is a convenience method for WithOutput(os.Stdout).
func (b *ConfigBuilder) WithConsoleOutput() *ConfigBuilder {
	b.config.Output = os.Stdout

	return b
}

// WithErrorOutput sets where storage and hook warnings are written.
func (b *ConfigBuilder) WithErrorOutput(output io.Writer) *ConfigBuilder {
	b.config.ErrorOutput = output

	return b
}

// WithLevel sets the minimum logging level.
func (b *ConfigBuilder) WithLevel(level Level) *ConfigBuilder {
	b.config.Level = level

	return b
}

// WithStore enables or disables the daily log file.
// Example: builder.WithStore(true).
func (b *ConfigBuilder) WithStore(enable bool) *ConfigBuilder {
	b.config.Store = enable

	return b
}

// WithDir sets the directory of the daily log files.
// Example: builder.WithDir("/var/log/my_app").
func (b *ConfigBuilder) WithDir(dir string) *ConfigBuilder {
	b.config.Dir = dir

	return b
}

// WithFileOutput enables storage into dir.
func (b *ConfigBuilder) WithFileOutput(dir string) *ConfigBuilder {
	return b.WithDir(dir).WithStore(true)
}

// WithColors enables or disables color output.
func (b *ConfigBuilder) WithColors(enable bool) *ConfigBuilder {
	b.config.Color.Enable = enable

	return b
}

// WithForceColors forces color output even when not writing to a terminal.
func (b *ConfigBuilder) WithForceColors(force bool) *ConfigBuilder {
	b.config.Color.ForceTTY = force

	return b
}

// WithLevelStyle overrides the header style of a level.
func (b *ConfigBuilder) WithLevelStyle(level Level, style Style) *ConfigBuilder {
	if b.config.Color.LevelStyles == nil {
		b.config.Color.LevelStyles = DefaultLevelStyles()
	}

	b.config.Color.LevelStyles[level] = style

	return b
}

// WithLocation sets the zone used to render payload dates.
func (b *ConfigBuilder) WithLocation(loc *time.Location) *ConfigBuilder {
	b.config.Location = loc

	return b
}

// WithClock replaces the time source, mostly useful in tests.
func (b *ConfigBuilder) WithClock(clock func() time.Time) *ConfigBuilder {
	b.config.Clock = clock

	return b
}

// WithMaxDepth bounds the nesting rendered for structured payloads.
func (b *ConfigBuilder) WithMaxDepth(depth int) *ConfigBuilder {
	b.config.MaxDepth = depth

	return b
}

// WithResolver sets the caller resolver.
// Example: builder.WithResolver(cornlog.NoopResolver{}).
func (b *ConfigBuilder) WithResolver(resolver CallerResolver) *ConfigBuilder {
	b.config.Resolver = resolver

	return b
}

// WithHook adds a hook to be called after each emitted line.
func (b *ConfigBuilder) WithHook(name string, hook Hook) *ConfigBuilder {
	b.config.Hooks = append(b.config.Hooks, HookConfig{
		Name: name,
		Hook: hook,
	})

	return b
}

// WithDevelopmentDefaults forces colors and keeps every level.
func (b *ConfigBuilder) WithDevelopmentDefaults() *ConfigBuilder {
	return b.
		WithLevel(DebugLevel).
		WithColors(true).
		WithForceColors(true)
}

// WithProductionDefaults logs Info and above, without colors, persisted to the default directory.
func (b *ConfigBuilder) WithProductionDefaults() *ConfigBuilder {
	return b.
		WithLevel(InfoLevel).
		WithColors(false).
		WithFileOutput(DefaultDir)
}

// Build creates a Config object from the builder.
func (b *ConfigBuilder) Build() *Config {
	config := b.config

	if b.config.Color.LevelStyles != nil {
		config.Color.LevelStyles = make(map[Level]Style, len(b.config.Color.LevelStyles))
		for level, style := range b.config.Color.LevelStyles {
			config.Color.LevelStyles[level] = style
		}
	}

	config.Hooks = append([]HookConfig(nil), b.config.Hooks...)

	return &config
}
