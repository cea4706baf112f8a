// Package adapter provides the concrete implementation of the logger interface.
//
// The adapter bridges the abstract Logger interface with the output destinations:
// it normalizes the payload, infers the call site when no sub-context is given,
// renders the colorized console line and, when storage is enabled, appends an
// ANSI-stripped copy of the same content to the daily log file. Writes are
// synchronous and serialized by a mutex.
package adapter

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/cornlog"
	"github.com/hyp3rd/cornlog/internal/constants"
	"github.com/hyp3rd/cornlog/internal/output"
	"github.com/hyp3rd/cornlog/internal/utils"
	"github.com/hyp3rd/cornlog/pkg/caller"
	"github.com/hyp3rd/cornlog/pkg/pretty"
)

const (
	// Initial capacity of pooled line buffers.
	defaultBufferSize = 1024
	// Buffers grown beyond this size are not returned to the pool.
	maxPooledBufferSize = 64 * 1024
)

// Adapter implements the cornlog.Logger interface.
type Adapter struct {
	config       *cornlog.Config
	hookRegistry *cornlog.HookRegistry
	level        *atomic.Uint32
	resolver     cornlog.CallerResolver
	console      *output.ConsoleWriter
	errOutput    output.Writer
	file         *output.DailyFileWriter

	mu         sync.Mutex
	bufferPool sync.Pool
}

// Ensure Adapter implements cornlog.Logger.
var _ cornlog.Logger = (*Adapter)(nil)

// NewAdapter creates a new logger adapter with the given configuration.
// The caller resolver defaults to caller.NewStackResolver.
func NewAdapter(config cornlog.Config) (cornlog.Logger, error) {
	err := config.Validate()
	if err != nil {
		return nil, ewrap.Wrap(err, "invalid logger configuration")
	}

	if config.Resolver == nil {
		config.Resolver = caller.NewStackResolver()
	}

	adapter := &Adapter{
		config:       &config,
		hookRegistry: cornlog.NewHookRegistry(),
		level:        new(atomic.Uint32),
		resolver:     config.Resolver,
		console:      output.NewConsoleWriter(config.Output, output.NewColorMode(config.Color.Enable, config.Color.ForceTTY)),
		errOutput:    output.NewWriterAdapter(config.ErrorOutput),
		bufferPool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
			},
		},
	}

	adapter.level.Store(uint32(config.Level))

	if config.Store {
		file, fileErr := output.NewDailyFileWriter(output.FileConfig{
			Dir:      config.Dir,
			Clock:    config.Clock,
			FileMode: cornlog.LogFilePermissions,
			DirMode:  cornlog.LogDirPermissions,
		})
		if fileErr != nil {
			adapter.warn("log storage disabled: %v", fileErr)
		} else {
			adapter.file = file
		}
	}

	// Register hooks from config
	for _, hookConfig := range config.Hooks {
		err := adapter.hookRegistry.AddHook(hookConfig.Name, hookConfig.Hook)
		if err != nil {
			return nil, ewrap.Wrapf(err, "failed to register hook '%s'", hookConfig.Name)
		}
	}

	return adapter, nil
}

// Error logs message at error level.
func (a *Adapter) Error(context string, message any, opts ...cornlog.Option) {
	a.log(cornlog.ErrorLevel, context, message, opts)
}

// Warn logs message at warn level.
func (a *Adapter) Warn(context string, message any, opts ...cornlog.Option) {
	a.log(cornlog.WarnLevel, context, message, opts)
}

// Info logs message at info level.
func (a *Adapter) Info(context string, message any, opts ...cornlog.Option) {
	a.log(cornlog.InfoLevel, context, message, opts)
}

// Debug logs message at debug level.
func (a *Adapter) Debug(context string, message any, opts ...cornlog.Option) {
	a.log(cornlog.DebugLevel, context, message, opts)
}

// DebugData dumps data to the console when verbosity reaches required. The dump is
// never stored. It is subject to the minimum level like Debug.
func (a *Adapter) DebugData(label, context, user string, data any, verbosity, required int, opts ...cornlog.Option) {
	if verbosity < required || cornlog.DebugLevel < a.GetLevel() {
		return
	}

	options := cornlog.ApplyOptions(opts...)

	buf := a.getBuffer()
	defer a.returnBuffer(buf)

	buf.WriteString(cornlog.StyleBgMagenta.Apply("[" + context + "] > DEBUG:"))
	buf.WriteString(" User ")
	buf.WriteString(user)
	buf.WriteByte('\n')
	buf.WriteString(cornlog.StyleGreen.Then(cornlog.StyleBold).Apply(label + ":"))
	buf.WriteByte('\n')
	buf.WriteString(pretty.ColorizeKeysIndent(data,
		pretty.WithKeyStyle(keyStyle(options)),
		pretty.WithValueStyle(cornlog.StyleGreen),
		pretty.WithMaxDepth(a.config.MaxDepth),
		pretty.WithLocation(a.config.Location),
	))
	buf.WriteByte('\n')

	a.mu.Lock()
	defer a.mu.Unlock()

	_, err := a.console.Write(buf.Bytes())
	if err != nil {
		a.warn("failed to write debug data: %v", err)
	}
}

// Sync flushes the console and error outputs.
func (a *Adapter) Sync() error {
	err := a.console.Sync()
	if err != nil {
		return err
	}

	return a.errOutput.Sync()
}

// Close releases the daily file writer. Later calls keep logging to the console
// and report the storage failure.
func (a *Adapter) Close() error {
	if a.file == nil {
		return nil
	}

	return a.file.Close()
}

// GetLevel returns the current logging level.
func (a *Adapter) GetLevel() cornlog.Level {
	//nolint:gosec // levels are validated before being stored.
	return cornlog.Level(a.level.Load())
}

// SetLevel sets the logging level. Invalid levels are ignored.
func (a *Adapter) SetLevel(level cornlog.Level) {
	if level.IsValid() {
		a.level.Store(uint32(level))
	}
}

// GetConfig returns the current logger configuration.
func (a *Adapter) GetConfig() *cornlog.Config {
	return a.config
}

// log handles the common logging logic for all log levels.
func (a *Adapter) log(level cornlog.Level, context string, message any, opts []cornlog.Option) {
	if level < a.GetLevel() {
		return // Skip logging if the level is below our configured level
	}

	options := cornlog.ApplyOptions(opts...)
	loggable := cornlog.Normalize(message)

	subContext := options.SubContext

	var resolved *cornlog.CallerInfo

	if subContext == "" || context == "" {
		info := a.resolver.Resolve()
		resolved = &info

		if subContext == "" {
			subContext = info.Function + " at line:" + strconv.Itoa(info.Line) + " col: " + strconv.Itoa(info.Column)
		}

		if context == "" {
			context = info.File
		}
	}

	header := "[" + context + "] " + level.String() + " > " + subContext + ":"
	body := a.formatBody(loggable, options)

	var stack string
	if loggable.Kind == cornlog.KindError {
		stack = cornlog.StyleGray.Apply(loggable.Stack)
	}

	now := a.config.Now()

	a.write(level, header, body, stack, now)

	if a.hookRegistry != nil {
		a.processHooks(&cornlog.Entry{
			Time:       now,
			Level:      level,
			Context:    context,
			SubContext: subContext,
			Kind:       loggable.Kind,
			Message:    stripansi.Strip(body),
			Stack:      loggable.Stack,
			Caller:     resolved,
		})
	}
}

func (a *Adapter) formatBody(loggable cornlog.Loggable, options cornlog.CallOptions) string {
	switch loggable.Kind {
	case cornlog.KindObject:
		return pretty.ColorizeKeysIndent(loggable.Value,
			pretty.WithKeyStyle(keyStyle(options)),
			pretty.WithValueStyle(cornlog.StyleGreen),
			pretty.WithKeyDecoration(cornlog.StyleBold),
			pretty.WithMaxDepth(a.config.MaxDepth),
			pretty.WithLocation(a.config.Location),
		)
	case cornlog.KindError, cornlog.KindString:
		return options.Style.Apply(loggable.Text)
	default:
		return loggable.Text
	}
}

// write emits the console line and, when storage is enabled, the file entry.
// Storage failures are reported and swallowed.
func (a *Adapter) write(level cornlog.Level, header, body, stack string, now time.Time) {
	consoleBuf := a.getBuffer()
	defer a.returnBuffer(consoleBuf)

	consoleBuf.WriteString(a.config.Color.LevelStyle(level).Apply(header))
	consoleBuf.WriteByte('\n')
	consoleBuf.WriteString(body)
	consoleBuf.WriteByte('\n')
	consoleBuf.WriteString(stack)
	consoleBuf.WriteByte('\n')

	a.mu.Lock()
	defer a.mu.Unlock()

	_, err := a.console.Write(consoleBuf.Bytes())
	if err != nil {
		a.warn("failed to write console output: %v", err)
	}

	if a.file == nil {
		return
	}

	fileBuf := a.getBuffer()
	defer a.returnBuffer(fileBuf)

	fileBuf.WriteString("[" + utils.LogTimestamp(now) + "] ")
	fileBuf.WriteString(header)
	fileBuf.WriteByte('\n')
	fileBuf.WriteString(body)
	fileBuf.WriteByte('\n')
	fileBuf.WriteString(stack)
	fileBuf.WriteString("\n\n")

	_, err = a.file.Write(fileBuf.Bytes())
	if err != nil {
		a.warn("failed to write log file: %v", err)
	}
}

func keyStyle(options cornlog.CallOptions) cornlog.Style {
	if options.Style != nil {
		return options.Style
	}

	return cornlog.StyleCyan
}

// processHooks executes registered hooks and reports any errors they produce.
func (a *Adapter) processHooks(entry *cornlog.Entry) {
	for _, err := range a.hookRegistry.FireHooks(entry) {
		if err != nil {
			a.warn("hook execution error: %v", err)
		}
	}
}

// warn reports a failure of the logger itself on the error output.
func (a *Adapter) warn(format string, args ...any) {
	fmt.Fprintf(a.errOutput, constants.WarningPrefix+" "+format+"\n", args...)
}

func (a *Adapter) getBuffer() *bytes.Buffer {
	buf, ok := a.bufferPool.Get().(*bytes.Buffer)
	if !ok {
		return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
	}

	buf.Reset()

	return buf
}

func (a *Adapter) returnBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledBufferSize {
		return
	}

	a.bufferPool.Put(buf)
}
