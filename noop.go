package cornlog

// NoopLogger is a logger that does nothing.
type NoopLogger struct {
	level Level
}

// NewNoop creates a new NoopLogger.
func NewNoop() Logger {
	return &NoopLogger{
		level: DefaultLevel,
	}
}

// Ensure NoopLogger implements Logger interface.
var _ Logger = (*NoopLogger)(nil)

// Error discards the message.
func (*NoopLogger) Error(_ string, _ any, _ ...Option) {}

// Warn discards the message.
func (*NoopLogger) Warn(_ string, _ any, _ ...Option) {}

// Info discards the message.
func (*NoopLogger) Info(_ string, _ any, _ ...Option) {}

// Debug discards the message.
func (*NoopLogger) Debug(_ string, _ any, _ ...Option) {}

// DebugData discards the data.
func (*NoopLogger) DebugData(_, _, _ string, _ any, _, _ int, _ ...Option) {}

// GetLevel returns the current log level.
func (l *NoopLogger) GetLevel() Level { return l.level }

// SetLevel sets the log level.
func (l *NoopLogger) SetLevel(level Level) { l.level = level }

// GetConfig returns a default config.
func (l *NoopLogger) GetConfig() *Config {
	return &Config{
		Level: l.level,
	}
}

// NoopResolver never inspects the call stack and always reports DefaultCallerInfo.
// Use it on platforms or in tests where caller inference is unwanted.
type NoopResolver struct{}

// Ensure NoopResolver implements CallerResolver interface.
var _ CallerResolver = NoopResolver{}

// Resolve returns DefaultCallerInfo.
func (NoopResolver) Resolve() CallerInfo {
	return DefaultCallerInfo()
}

// StaticResolver always reports the same call site.
type StaticResolver CallerInfo

// Resolve returns the fixed caller information.
func (s StaticResolver) Resolve() CallerInfo {
	return CallerInfo(s)
}
