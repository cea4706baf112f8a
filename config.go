package cornlog

import (
	"io"
	"os"
	"time"

	// Embedded zone database so Europe/Rome resolves on hosts without tzdata.
	_ "time/tzdata"

	"github.com/hyp3rd/ewrap"
)

const (
	// DefaultLevel is the default minimum level: every call is emitted.
	DefaultLevel = DebugLevel
	// DefaultDir is the directory log files are stored in, relative to the working directory.
	DefaultDir = "logs"
	// DefaultTimezone is the zone used to render dates in structured payloads.
	DefaultTimezone = "Europe/Rome"
	// DefaultMaxDepth bounds the nesting rendered by the pretty-printer.
	DefaultMaxDepth = 32
	// LogFilePermissions are the default file permissions for log files.
	LogFilePermissions = 0o644
	// LogDirPermissions are the default permissions for the log directory.
	LogDirPermissions = 0o755
)

// HookConfig defines a hook to be called after a line is emitted.
type HookConfig struct {
	// Name is the name of the hook.
	Name string
	// Hook is the hook to call.
	Hook Hook
}

// Config holds configuration for the logger. It is built once at startup and
// injected into the emitter.
type Config struct {
	// Level is the minimum level to log.
	Level Level
	// Output is the console destination.
	Output io.Writer
	// ErrorOutput receives warnings about storage and hook failures.
	ErrorOutput io.Writer
	// Store enables appending an ANSI-stripped copy of each line to a daily file.
	Store bool
	// Dir is the directory holding the daily files.
	Dir string
	// Color configuration.
	Color ColorConfig
	// Location is the zone used to render dates inside payloads.
	Location *time.Location
	// Clock returns the current time; used for file names and timestamps.
	Clock func() time.Time
	// MaxDepth bounds pretty-printer recursion.
	MaxDepth int
	// Resolver infers the call site when no sub-context is given.
	// When nil the emitter installs the runtime stack resolver.
	Resolver CallerResolver
	// Hooks are fired after each emitted line.
	Hooks []HookConfig
}

// DefaultConfig returns the default logger configuration: console only, colors on
// terminals, caller inference through the default resolver.
func DefaultConfig() Config {
	return Config{
		Level:       DefaultLevel,
		Output:      os.Stdout,
		ErrorOutput: os.Stderr,
		Store:       false,
		Dir:         DefaultDir,
		Color:       DefaultColorConfig(),
		Location:    DefaultLocation(),
		Clock:       time.Now,
		MaxDepth:    DefaultMaxDepth,
		Resolver:    nil,
		Hooks:       make([]HookConfig, 0),
	}
}

// DefaultLocation returns the Europe/Rome zone, or time.Local if it cannot be loaded.
func DefaultLocation() *time.Location {
	loc, err := LoadLocation(DefaultTimezone)
	if err != nil {
		return time.Local
	}

	return loc
}

// LoadLocation resolves a zone name, accepting "Local" and "UTC".
func LoadLocation(name string) (*time.Location, error) {
	switch name {
	case "", "Local", "local":
		return time.Local, nil
	case "UTC", "utc":
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, ewrap.Wrap(err, "loading time zone").WithMetadata("timezone", name)
	}

	return loc, nil
}

// Now returns the configured clock's current time.
func (c *Config) Now() time.Time {
	if c == nil || c.Clock == nil {
		return time.Now()
	}

	return c.Clock()
}

// Validate checks the configuration and fills in defaults for missing values.
func (c *Config) Validate() error {
	if c == nil {
		return ewrap.New("logger config cannot be nil")
	}

	if !c.Level.IsValid() {
		return ewrap.Wrap(ErrInvalidLevel, "validating config").WithMetadata("level", c.Level)
	}

	if c.Output == nil {
		return ewrap.New("output writer is required")
	}

	if c.ErrorOutput == nil {
		c.ErrorOutput = os.Stderr
	}

	if c.Dir == "" {
		c.Dir = DefaultDir
	}

	if c.Location == nil {
		c.Location = DefaultLocation()
	}

	if c.Clock == nil {
		c.Clock = time.Now
	}

	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}

	if c.Color.LevelStyles == nil {
		c.Color.LevelStyles = DefaultLevelStyles()
	}

	return nil
}
