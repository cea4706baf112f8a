package cornlog

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/hyp3rd/ewrap"
)

// Entry is the plain (unstyled) view of an emitted line passed to hooks.
type Entry struct {
	// Time is when the line was emitted.
	Time time.Time
	// Level is the log level for this entry.
	Level Level
	// Context is the subsystem label.
	Context string
	// SubContext is the explicit or resolved qualifier.
	SubContext string
	// Kind is the payload shape.
	Kind Kind
	// Message is the rendered body with ANSI sequences stripped.
	Message string
	// Stack is the stack trace of error payloads.
	Stack string
	// Caller is set when the sub-context was resolved from the call stack.
	Caller *CallerInfo
}

// Hook is called after a line has been written to the console and the log file.
type Hook interface {
	// OnLog is called when a log entry has been emitted.
	OnLog(entry *Entry) error

	// Levels returns the log levels this hook should be triggered for.
	Levels() []Level
}

// HookRegistry manages a collection of hooks and provides thread-safe access
// to them.
type HookRegistry struct {
	mu sync.RWMutex

	Hooks map[string]Hook
}

// NewHookRegistry creates a new hook registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		Hooks: make(map[string]Hook),
	}
}

// AddHook adds a named hook to the registry.
func (r *HookRegistry) AddHook(name string, hook Hook) error {
	if hook == nil {
		return ewrap.New("hook cannot be nil").WithMetadata("name", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.Hooks[name]; exists {
		return ewrap.New("hook already exists").WithMetadata("name", name)
	}

	r.Hooks[name] = hook

	return nil
}

// RemoveHook removes a hook by name.
func (r *HookRegistry) RemoveHook(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.Hooks[name]; !exists {
		return false
	}

	delete(r.Hooks, name)

	return true
}

// GetHook retrieves a hook by name.
func (r *HookRegistry) GetHook(name string) (Hook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hook, exists := r.Hooks[name]

	return hook, exists
}

// GetHooksForLevel returns the hooks that trigger for level, ordered by name.
func (r *HookRegistry) GetHooksForLevel(level Level) []Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.Hooks))
	for name, hook := range r.Hooks {
		if slices.Contains(hook.Levels(), level) {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	result := make([]Hook, 0, len(names))
	for _, name := range names {
		result = append(result, r.Hooks[name])
	}

	return result
}

// FireHooks triggers all hooks for a given log entry.
// It returns any errors encountered during hook execution.
func (r *HookRegistry) FireHooks(entry *Entry) []error {
	hooks := r.GetHooksForLevel(entry.Level)

	if len(hooks) == 0 {
		return nil
	}

	var errs []error

	for _, hook := range hooks {
		err := hook.OnLog(entry)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// StandardHook provides a simpler way to implement the Hook interface.
type StandardHook struct {
	// LevelList contains the levels this hook should trigger for
	LevelList []Level
	// LogHandler is called when a log entry is processed
	LogHandler func(entry *Entry) error
}

// NewStandardHook creates a new StandardHook with the given levels and handler.
// An empty level list triggers for every level.
func NewStandardHook(levels []Level, handler func(entry *Entry) error) *StandardHook {
	if len(levels) == 0 {
		levels = AllLevels()
	}

	return &StandardHook{
		LevelList:  levels,
		LogHandler: handler,
	}
}

// OnLog implements Hook.OnLog.
func (h *StandardHook) OnLog(entry *Entry) error {
	if h.LogHandler != nil {
		return h.LogHandler(entry)
	}

	return nil
}

// Levels implements Hook.Levels.
func (h *StandardHook) Levels() []Level {
	return h.LevelList
}
