package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyp3rd/cornlog"
	"github.com/hyp3rd/cornlog/internal/constants"
)

func newBufferLogger(t *testing.T) (cornlog.Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer

	cfg := cornlog.NewConfigBuilder().
		WithOutput(&buf).
		WithErrorOutput(&buf).
		WithColors(false).
		Build()

	log, err := New(cfg)
	require.NoError(t, err)

	return log, &buf
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	log, buf := newBufferLogger(t)
	log.Info("SYSTEM", "ready", cornlog.WithSubContext("boot"))

	assert.Equal(t, "[SYSTEM] INFO > boot:\nready\n\n", buf.String())
}

func TestNewWithDefaults(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantLevel   cornlog.Level
		wantStore   bool
		wantColors  bool
	}{
		{
			name:        "development",
			environment: "development",
			wantLevel:   cornlog.DebugLevel,
			wantStore:   false,
			wantColors:  true,
		},
		{
			name:        "production",
			environment: constants.ProductionEnvironment,
			wantLevel:   cornlog.InfoLevel,
			wantStore:   true,
			wantColors:  false,
		},
		{
			name:        "empty environment",
			environment: "",
			wantLevel:   cornlog.DebugLevel,
			wantStore:   false,
			wantColors:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())

			log, err := NewWithDefaults(tt.environment)
			require.NoError(t, err)

			cfg := log.GetConfig()
			assert.Equal(t, tt.wantLevel, log.GetLevel())
			assert.Equal(t, tt.wantStore, cfg.Store)
			assert.Equal(t, tt.wantColors, cfg.Color.Enable)
		})
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("CORNLOG_LEVEL", "warn")

	log, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, cornlog.WarnLevel, log.GetLevel())

	t.Setenv("CORNLOG_LEVEL", "loud")

	_, err = NewFromEnv()
	require.Error(t, err)
}

func TestPackageLevelHelpers(t *testing.T) {
	log, buf := newBufferLogger(t)

	SetDefault(log)
	t.Cleanup(func() { SetDefault(nil) })

	assert.Same(t, log, Default())

	Error("DB", errors.New("connection refused"), cornlog.WithSubContext("DBConnect"))
	Warn("API", "slow", cornlog.WithSubContext("handler"))
	Info("SYSTEM", "ready", cornlog.WithSubContext("boot"))
	Debug("API", cornlog.Obj(cornlog.Int("status", 200)), cornlog.WithSubContext("dump"))
	DebugData("Payload", "API", "mario", cornlog.Obj(cornlog.Str("id", "42")), 2, 1)

	out := buf.String()
	assert.Contains(t, out, "[DB] ERROR > DBConnect:\nconnection refused\n")
	assert.Contains(t, out, "[API] WARN > handler:\nslow\n\n")
	assert.Contains(t, out, "[SYSTEM] INFO > boot:\nready\n\n")
	assert.Contains(t, out, "[API] DEBUG > dump:\n{\n  status: 200\n}\n\n")
	assert.Contains(t, out, "[API] > DEBUG: User mario\nPayload:\n{\n  id: \"42\"\n}\n")
}

func TestPackageLevelCallerSkipsHelpers(t *testing.T) {
	log, buf := newBufferLogger(t)

	SetDefault(log)
	t.Cleanup(func() { SetDefault(nil) })

	Warn("API", "no sub-context")

	header, _, found := strings.Cut(buf.String(), "\n")
	require.True(t, found)
	assert.True(t, strings.HasPrefix(header, "[API] WARN > log.TestPackageLevelCallerSkipsHelpers() at line:"), header)
	assert.True(t, strings.HasSuffix(header, " col: 0:"), header)
}

func TestSetDefaultNilDiscards(t *testing.T) {
	SetDefault(nil)

	_, ok := Default().(*cornlog.NoopLogger)
	assert.True(t, ok)

	Info("SYSTEM", "dropped")
}
