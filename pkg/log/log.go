// Package log provides the process-wide default logger and package-level helpers.
//
// The default logger is built lazily, once, from the environment (see
// pkg/configloader): LOG_STORE, LOG_DIR and the CORNLOG_* variables. Applications
// that build their own configuration install it with SetDefault.
//
// Usage:
//
//	log.Info("SYSTEM", "Avvio completato")
//	log.Error("DB", err, cornlog.WithSubContext("DBConnect"))
//	log.DebugData("Payload", "API", "mario", body, verbosity, 2)
package log

import (
	"fmt"
	"os"
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/cornlog"
	"github.com/hyp3rd/cornlog/internal/constants"
	"github.com/hyp3rd/cornlog/pkg/adapter"
	"github.com/hyp3rd/cornlog/pkg/configloader"
)

//nolint:gochecknoglobals
var (
	defaultOnce   sync.Once
	defaultMu     sync.RWMutex
	defaultLogger cornlog.Logger
)

// New creates a logger from cfg.
func New(cfg *cornlog.Config) (cornlog.Logger, error) {
	if cfg == nil {
		return nil, ewrap.New("logger configuration is nil")
	}

	log, err := adapter.NewAdapter(*cfg)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to create logger")
	}

	return log, nil
}

// NewFromEnv creates a logger configured from the environment.
func NewFromEnv() (cornlog.Logger, error) {
	cfg, err := configloader.FromEnv(constants.DefaultEnvPrefix)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to load configuration from environment")
	}

	return New(cfg)
}

// NewWithDefaults creates a logger for the given environment.
// The production environment logs from INFO up, without colors, to the console and
// to the daily files under the default directory. Any other environment logs
// everything with forced colors and no storage.
func NewWithDefaults(environment string) (cornlog.Logger, error) {
	builder := cornlog.NewConfigBuilder()

	if environment == constants.ProductionEnvironment {
		builder.WithProductionDefaults()
	} else {
		builder.WithDevelopmentDefaults()
	}

	return New(builder.Build())
}

// Default returns the process-wide logger, creating it from the environment on
// first use. An invalid environment is reported on stderr and the built-in
// defaults are used instead.
func Default() cornlog.Logger {
	defaultOnce.Do(func() {
		log, err := NewFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", constants.WarningPrefix, err)

			cfg := cornlog.DefaultConfig()

			log, err = New(&cfg)
			if err != nil {
				log = cornlog.NewNoop()
			}
		}

		defaultMu.Lock()
		if defaultLogger == nil {
			defaultLogger = log
		}
		defaultMu.Unlock()
	})

	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultLogger
}

// SetDefault replaces the process-wide logger. A nil logger discards everything.
func SetDefault(log cornlog.Logger) {
	if log == nil {
		log = cornlog.NewNoop()
	}

	defaultOnce.Do(func() {})

	defaultMu.Lock()
	defaultLogger = log
	defaultMu.Unlock()
}

// Error logs message at error level on the default logger.
func Error(context string, message any, opts ...cornlog.Option) {
	Default().Error(context, message, opts...)
}

// Warn logs message at warn level on the default logger.
func Warn(context string, message any, opts ...cornlog.Option) {
	Default().Warn(context, message, opts...)
}

// Info logs message at info level on the default logger.
func Info(context string, message any, opts ...cornlog.Option) {
	Default().Info(context, message, opts...)
}

// Debug logs message at debug level on the default logger.
func Debug(context string, message any, opts ...cornlog.Option) {
	Default().Debug(context, message, opts...)
}

// DebugData dumps data on the default logger when verbosity reaches required.
func DebugData(label, context, user string, data any, verbosity, required int, opts ...cornlog.Option) {
	Default().DebugData(label, context, user, data, verbosity, required, opts...)
}
