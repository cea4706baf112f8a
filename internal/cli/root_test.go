package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LOG_STORE", "false")
	t.Setenv("LOG_DIR", filepath.Join(dir, "logs"))
	t.Setenv("CORNLOG_LEVEL", "debug")

	return dir
}

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer

	code := Execute(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestExecuteLevels(t *testing.T) {
	setup(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "info",
			args: []string{"-c", "SYSTEM", "-l", "info", "-m", "Avvio completato", "-s", "boot"},
			want: "[SYSTEM] INFO > boot:\nAvvio completato\n\n",
		},
		{
			name: "warn upper case",
			args: []string{"--context", "API", "--level", "WARN", "--message", "lento", "--sub", "handler"},
			want: "[API] WARN > handler:\nlento\n\n",
		},
		{
			name: "debug",
			args: []string{"-c", "API", "-l", "debug", "-m", "x", "-s", "dump"},
			want: "[API] DEBUG > dump:\nx\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := execute(tt.args...)

			assert.Equal(t, 0, code)
			assert.Equal(t, tt.want, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestExecuteErrorLevel(t *testing.T) {
	setup(t)

	code, stdout, _ := execute("-c", "DB", "-l", "error", "-m", "Connessione rifiutata", "-s", "DBConnect")

	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "[DB] ERROR > DBConnect:\nConnessione rifiutata\n"), stdout)
	// The error carries a stack trace block.
	assert.Greater(t, strings.Count(stdout, "\n"), 3)
}

func TestExecuteInvalidLevel(t *testing.T) {
	setup(t)

	code, stdout, stderr := execute("-c", "SYSTEM", "-l", "Verbose", "-m", "x")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "❌ Livello non valido: verbose\n", stderr)
}

func TestExecuteMissingRequiredFlags(t *testing.T) {
	setup(t)

	code, stdout, stderr := execute("-c", "SYSTEM", "-l", "info")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "message")
}

func TestExecuteInferredSubContext(t *testing.T) {
	setup(t)

	code, stdout, _ := execute("-c", "SYSTEM", "-l", "info", "-m", "ciao")

	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "[SYSTEM] INFO > cli.run() at line:"), stdout)
}

func TestExecuteStructuredMessage(t *testing.T) {
	setup(t)

	code, stdout, _ := execute("-c", "API", "-l", "info", "-s", "req", "-f", "json", "-m", `{"path": "/users", "status": 200}`)

	assert.Equal(t, 0, code)
	assert.Equal(t, "[API] INFO > req:\n{\n  path: \"/users\",\n  status: 200\n}\n\n", stdout)

	code, _, stderr := execute("-c", "API", "-l", "info", "-f", "xml", "-m", "<a/>")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown payload format")

	code, _, stderr = execute("-c", "API", "-l", "info", "-f", "json", "-m", "{oops")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid JSON message")
}

func TestExecuteStoresToFile(t *testing.T) {
	dir := setup(t)
	t.Setenv("LOG_STORE", "true")

	code, _, _ := execute("-c", "SYSTEM", "-l", "info", "-m", "salvato", "-s", "boot")
	require.Equal(t, 0, code)

	name := time.Now().Format("2006-01-02") + ".log"

	data, err := os.ReadFile(filepath.Join(dir, "logs", name))
	require.NoError(t, err)
	assert.Contains(t, string(data), "] [SYSTEM] INFO > boot:\nsalvato\n\n\n")
}

func TestExecuteConfigFile(t *testing.T) {
	dir := setup(t)

	path := filepath.Join(dir, "cornlog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 1\n"), 0o600))

	code, stdout, _ := execute("--config", path, "-c", "API", "-l", "info", "-s", "req", "-f", "yaml", "-m", "a:\n  b: 1\n")

	assert.Equal(t, 0, code)
	assert.Equal(t, "[API] INFO > req:\n{\n  a: [max depth]\n}\n\n", stdout)
}
