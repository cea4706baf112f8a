package adapter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hyp3rd/ewrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyp3rd/cornlog"
)

type tracedError struct{}

func (tracedError) Error() string { return "boom" }
func (tracedError) Stack() string { return "at main (main.go:1:1)" }

// safeBuffer is a bytes.Buffer safe for concurrent use.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

//nolint:gochecknoglobals
var (
	fixedTime  = time.Date(2025, 8, 5, 9, 30, 15, 0, time.UTC)
	staticSite = cornlog.StaticResolver{Function: "handleLogin()", File: "auth.go", Line: 42, Column: 0}
)

func newTestLogger(t *testing.T, mutate func(*cornlog.ConfigBuilder)) (*Adapter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var out, errOut bytes.Buffer

	builder := cornlog.NewConfigBuilder().
		WithOutput(&out).
		WithErrorOutput(&errOut).
		WithClock(func() time.Time { return fixedTime }).
		WithLocation(time.UTC).
		WithResolver(staticSite)

	if mutate != nil {
		mutate(builder)
	}

	logger, err := NewAdapter(*builder.Build())
	require.NoError(t, err)

	adapter, ok := logger.(*Adapter)
	require.True(t, ok)

	return adapter, &out, &errOut
}

func TestNewAdapter_ConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		config      cornlog.Config
		wantErr     bool
		errContains string
	}{
		{
			name:        "nil output",
			config:      cornlog.Config{},
			wantErr:     true,
			errContains: "output writer is required",
		},
		{
			name:    "invalid level",
			config:  cornlog.Config{Output: &bytes.Buffer{}, Level: cornlog.Level(9)},
			wantErr: true,
		},
		{
			name: "duplicate hooks",
			config: cornlog.Config{
				Output: &bytes.Buffer{},
				Hooks: []cornlog.HookConfig{
					{Name: "h", Hook: cornlog.NewStandardHook(nil, nil)},
					{Name: "h", Hook: cornlog.NewStandardHook(nil, nil)},
				},
			},
			wantErr:     true,
			errContains: "failed to register hook 'h'",
		},
		{
			name:   "defaults are filled",
			config: cornlog.Config{Output: &bytes.Buffer{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewAdapter(tt.config)
			if tt.wantErr {
				require.Error(t, err)

				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, logger)

			config := logger.GetConfig()
			assert.NotNil(t, config.Resolver, "the stack resolver is installed by default")
			assert.Equal(t, cornlog.DefaultDir, config.Dir)
		})
	}
}

func TestAdapter_ConsoleLines(t *testing.T) {
	tests := []struct {
		name string
		log  func(cornlog.Logger)
		want string
	}{
		{
			name: "string with sub-context",
			log: func(l cornlog.Logger) {
				l.Info("Auth", "user logged in", cornlog.WithSubContext("login"))
			},
			want: "[Auth] INFO > login:\nuser logged in\n\n",
		},
		{
			name: "resolved sub-context and context",
			log: func(l cornlog.Logger) {
				l.Warn("", "slow query")
			},
			want: "[auth.go] WARN > handleLogin() at line:42 col: 0:\nslow query\n\n",
		},
		{
			name: "object payload",
			log: func(l cornlog.Logger) {
				l.Debug("Users", cornlog.Obj(cornlog.Str("user", "mario"), cornlog.Int("age", 30)), cornlog.WithSubContext("create"))
			},
			want: "[Users] DEBUG > create:\n{\n  user: \"mario\",\n  age: 30\n}\n\n",
		},
		{
			name: "error payload carries its stack",
			log: func(l cornlog.Logger) {
				l.Error("DB", tracedError{}, cornlog.WithSubContext("connect"))
			},
			want: "[DB] ERROR > connect:\nboom\nat main (main.go:1:1)\n",
		},
		{
			name: "scalar payload is stringified",
			log: func(l cornlog.Logger) {
				l.Info("Stats", 42, cornlog.WithSubContext("count"))
			},
			want: "[Stats] INFO > count:\n42\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, out, errOut := newTestLogger(t, nil)

			tt.log(logger)

			assert.Equal(t, tt.want, out.String())
			assert.Empty(t, errOut.String())
		})
	}
}

func TestAdapter_ForcedColors(t *testing.T) {
	logger, out, _ := newTestLogger(t, func(b *cornlog.ConfigBuilder) {
		b.WithForceColors(true)
	})

	logger.Info("Auth", "ok", cornlog.WithSubContext("login"), cornlog.WithStyle(cornlog.StyleYellow))

	want := "\x1b[42m\x1b[30m[Auth] INFO > login:\x1b[39m\x1b[49m\n" +
		"\x1b[33mok\x1b[39m\n\n"
	assert.Equal(t, want, out.String())

	out.Reset()
	logger.Error("DB", ewrap.New("down"), cornlog.WithSubContext("ping"))

	assert.True(t, strings.HasPrefix(out.String(), "\x1b[41m\x1b[37m[DB] ERROR > ping:\x1b[39m\x1b[49m\ndown\n\x1b[90m"))
}

func TestAdapter_ColorsDisabled(t *testing.T) {
	logger, out, _ := newTestLogger(t, func(b *cornlog.ConfigBuilder) {
		b.WithColors(false).WithForceColors(true)
	})

	logger.Info("Auth", "ok", cornlog.WithSubContext("login"), cornlog.WithStyle(cornlog.StyleYellow))

	assert.Equal(t, "[Auth] INFO > login:\nok\n\n", out.String())
}

func TestAdapter_DefaultResolver(t *testing.T) {
	var out bytes.Buffer

	logger, err := NewAdapter(cornlog.Config{Output: &out})
	require.NoError(t, err)

	logger.Info("Auth", "hello")

	assert.Contains(t, out.String(), "[Auth] INFO > adapter.TestAdapter_DefaultResolver() at line:")
	assert.Contains(t, out.String(), " col: 0:\nhello\n")
}

func TestAdapter_LevelFilter(t *testing.T) {
	logger, out, _ := newTestLogger(t, nil)

	assert.Equal(t, cornlog.DebugLevel, logger.GetLevel())

	logger.SetLevel(cornlog.WarnLevel)
	logger.SetLevel(cornlog.Level(42))
	assert.Equal(t, cornlog.WarnLevel, logger.GetLevel())

	logger.Debug("A", "dropped")
	logger.Info("A", "dropped")
	logger.DebugData("label", "A", "user", cornlog.Obj(), 5, 1)
	assert.Empty(t, out.String())

	logger.Warn("A", "kept", cornlog.WithSubContext("s"))
	logger.Error("A", "kept", cornlog.WithSubContext("s"))
	assert.Equal(t, 2, strings.Count(out.String(), "kept"))
}

func TestAdapter_StoreSameDay(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, out, errOut := newTestLogger(t, func(b *cornlog.ConfigBuilder) {
		b.WithFileOutput(dir).WithForceColors(true)
	})

	logger.Info("Auth", "first", cornlog.WithSubContext("login"))
	logger.Info("Auth", "second", cornlog.WithSubContext("login"))

	require.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "\x1b[", "the console keeps its colors")

	content, err := os.ReadFile(filepath.Join(dir, "2025-08-05.log"))
	require.NoError(t, err)

	want := "[05/08/2025 09:30:15] [Auth] INFO > login:\nfirst\n\n\n" +
		"[05/08/2025 09:30:15] [Auth] INFO > login:\nsecond\n\n\n"
	assert.Equal(t, want, string(content))
}

func TestAdapter_StoreDistinctDates(t *testing.T) {
	dir := t.TempDir()
	now := fixedTime

	logger, _, _ := newTestLogger(t, func(b *cornlog.ConfigBuilder) {
		b.WithFileOutput(dir).WithClock(func() time.Time { return now })
	})

	logger.Warn("Jobs", "before midnight", cornlog.WithSubContext("run"))

	now = now.Add(24 * time.Hour)
	logger.Warn("Jobs", "after midnight", cornlog.WithSubContext("run"))

	first, err := os.ReadFile(filepath.Join(dir, "2025-08-05.log"))
	require.NoError(t, err)
	assert.Contains(t, string(first), "before midnight")
	assert.NotContains(t, string(first), "after midnight")

	second, err := os.ReadFile(filepath.Join(dir, "2025-08-06.log"))
	require.NoError(t, err)
	assert.Equal(t, "[06/08/2025 09:30:15] [Jobs] WARN > run:\nafter midnight\n\n\n", string(second))
}

func TestAdapter_StoreObjectAndError(t *testing.T) {
	dir := t.TempDir()

	logger, _, _ := newTestLogger(t, func(b *cornlog.ConfigBuilder) {
		b.WithFileOutput(dir)
	})

	logger.Info("Users", cornlog.Obj(cornlog.Bool("active", true)), cornlog.WithSubContext("get"))
	logger.Error("DB", tracedError{}, cornlog.WithSubContext("connect"))

	content, err := os.ReadFile(filepath.Join(dir, "2025-08-05.log"))
	require.NoError(t, err)

	want := "[05/08/2025 09:30:15] [Users] INFO > get:\n{\n  active: true\n}\n\n\n" +
		"[05/08/2025 09:30:15] [DB] ERROR > connect:\nboom\nat main (main.go:1:1)\n\n"
	assert.Equal(t, want, string(content))
}

func TestAdapter_StoreDisabled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, out, _ := newTestLogger(t, func(b *cornlog.ConfigBuilder) {
		b.WithDir(dir).WithStore(false)
	})

	logger.Info("Auth", "console only", cornlog.WithSubContext("login"))

	assert.Contains(t, out.String(), "console only")

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestAdapter_StoreFailureIsReported(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	logger, out, errOut := newTestLogger(t, func(b *cornlog.ConfigBuilder) {
		b.WithFileOutput(filepath.Join(blocker, "logs"))
	})

	logger.Error("Auth", "still printed", cornlog.WithSubContext("login"))

	assert.Contains(t, out.String(), "still printed")
	assert.True(t, strings.HasPrefix(errOut.String(), "[cornlog] failed to write log file:"))
}

func TestAdapter_Close(t *testing.T) {
	dir := t.TempDir()

	logger, out, errOut := newTestLogger(t, func(b *cornlog.ConfigBuilder) {
		b.WithFileOutput(dir)
	})

	require.NoError(t, logger.Sync())
	require.NoError(t, logger.Close())

	logger.Info("Auth", "after close", cornlog.WithSubContext("x"))

	assert.Contains(t, out.String(), "after close")
	assert.Contains(t, errOut.String(), "[cornlog] failed to write log file")
}

func TestAdapter_Hooks(t *testing.T) {
	var entries []*cornlog.Entry

	recorder := cornlog.NewStandardHook([]cornlog.Level{cornlog.ErrorLevel, cornlog.InfoLevel}, func(entry *cornlog.Entry) error {
		entries = append(entries, entry)

		return nil
	})
	failing := cornlog.NewStandardHook([]cornlog.Level{cornlog.ErrorLevel}, func(*cornlog.Entry) error {
		return ewrap.New("hook exploded")
	})

	logger, _, errOut := newTestLogger(t, func(b *cornlog.ConfigBuilder) {
		b.WithForceColors(true).WithHook("recorder", recorder).WithHook("failing", failing)
	})

	logger.Info("Auth", "plain", cornlog.WithStyle(cornlog.StyleRed))
	logger.Error("DB", tracedError{}, cornlog.WithSubContext("connect"))
	logger.Debug("Auth", "not hooked")

	require.Len(t, entries, 2)

	info := entries[0]
	assert.Equal(t, cornlog.InfoLevel, info.Level)
	assert.Equal(t, "Auth", info.Context)
	assert.Equal(t, "handleLogin() at line:42 col: 0", info.SubContext)
	assert.Equal(t, "plain", info.Message, "hook messages carry no ANSI sequences")
	assert.Equal(t, fixedTime, info.Time)
	require.NotNil(t, info.Caller)
	assert.Equal(t, "auth.go", info.Caller.File)

	failure := entries[1]
	assert.Equal(t, cornlog.KindError, failure.Kind)
	assert.Equal(t, "at main (main.go:1:1)", failure.Stack)
	assert.Nil(t, failure.Caller)

	assert.Contains(t, errOut.String(), "[cornlog] hook execution error: hook exploded")
}

func TestAdapter_DebugData(t *testing.T) {
	dir := t.TempDir()

	logger, out, _ := newTestLogger(t, func(b *cornlog.ConfigBuilder) {
		b.WithFileOutput(dir)
	})

	logger.DebugData("Matched Servers", "auth", "mario", cornlog.Obj(cornlog.Int("count", 2)), 0, 1)
	assert.Empty(t, out.String())

	logger.DebugData("Matched Servers", "auth", "mario", cornlog.Obj(cornlog.Int("count", 2)), 1, 1)

	assert.Equal(t, "[auth] > DEBUG: User mario\nMatched Servers:\n{\n  count: 2\n}\n", out.String())

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, files, "debug dumps are never stored")
}

func TestAdapter_ConcurrentLines(t *testing.T) {
	out := &safeBuffer{}

	logger, err := NewAdapter(*cornlog.NewConfigBuilder().
		WithOutput(out).
		WithResolver(staticSite).
		Build())
	require.NoError(t, err)

	const goroutines, calls = 8, 25

	var wg sync.WaitGroup

	for range goroutines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range calls {
				logger.Info("Worker", "tick", cornlog.WithSubContext("loop"))
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, goroutines*calls, strings.Count(out.String(), "[Worker] INFO > loop:\ntick\n\n"))
}
