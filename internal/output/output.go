// Package output provides the output destinations of the logger.
//
// ConsoleWriter writes styled lines to the console:
// - ANSI sequences are kept on terminals, or always when colors are forced
// - ANSI sequences are stripped when colors are disabled or the output is redirected
//
// DailyFileWriter appends plain-text entries to <dir>/<YYYY-MM-DD>.log:
// - The directory is created on first use
// - The file is opened, appended and closed on every write
// - The date is taken from an injectable clock, so entries written on the same
//   calendar day share one file and are never rotated
//
// Both implement the Writer interface, which extends io.Writer with methods
// for synchronization and cleanup:
//
//	type Writer interface {
//	    io.Writer
//	    Sync() error  // Ensures all data is written
//	    Close() error // Releases resources
//	}
package output

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/hyp3rd/ewrap"
	"github.com/mattn/go-isatty"

	"github.com/hyp3rd/cornlog/internal/constants"
	"github.com/hyp3rd/cornlog/internal/utils"
)

const (
	defaultFileMode = 0o644
	defaultDirMode  = 0o755
)

// ConsoleWriter is a writer that writes to the console and decides whether ANSI
// sequences survive.
type ConsoleWriter struct {
	out        io.Writer
	mode       ColorMode
	isTerminal bool
	mu         sync.Mutex
}

// NewConsoleWriter creates a new ConsoleWriter.
// If the provided io.Writer is nil, it defaults to os.Stdout.
func NewConsoleWriter(out io.Writer, mode ColorMode) *ConsoleWriter {
	if out == nil {
		out = os.Stdout
	}

	return &ConsoleWriter{
		out:        out,
		mode:       mode,
		isTerminal: IsTerminal(out),
	}
}

// Write implements io.Writer. When colors are not in use the payload is written
// with every ANSI sequence removed. The returned count always refers to the
// caller's payload.
func (w *ConsoleWriter) Write(payload []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	data := payload
	if !w.ColorsEnabled() {
		data = []byte(stripansi.Strip(string(payload)))
	}

	_, err := w.out.Write(data)
	if err != nil {
		return 0, ewrap.Wrap(err, "failed writing to console output")
	}

	return len(payload), nil
}

// ColorsEnabled reports whether ANSI sequences are written through.
//
//nolint:exhaustive // ColorModeAuto is handled as default.
func (w *ConsoleWriter) ColorsEnabled() bool {
	switch w.mode {
	case ColorModeAlways:
		return true
	case ColorModeNever:
		return false
	default: // ColorModeAuto
		return w.isTerminal
	}
}

// Sync synchronizes the underlying io.Writer if it implements the Sync() error interface.
// If the underlying writer does not implement Sync(), this method returns nil.
func (w *ConsoleWriter) Sync() error {
	// For stdout/stderr, we can safely return nil
	if f, ok := w.out.(*os.File); ok {
		if isStandardStream(f) {
			return nil
		}
	}

	if syncer, ok := w.out.(interface{ Sync() error }); ok {
		return syncer.Sync()
	}

	return nil
}

// Close closes the underlying io.Writer if it implements the io.Closer interface.
// Standard streams are never closed.
func (w *ConsoleWriter) Close() error {
	if f, ok := w.out.(*os.File); ok && isStandardStream(f) {
		return nil
	}

	if closer, ok := w.out.(io.Closer); ok {
		err := closer.Close()
		if err != nil {
			return ewrap.Wrap(err, "closing console writer")
		}
	}

	return nil
}

// FileConfig holds configuration for the daily file output.
type FileConfig struct {
	// Dir is the directory holding the daily files. Relative paths are resolved
	// against the working directory.
	Dir string
	// Clock returns the current time; the file name is derived from its calendar date.
	Clock func() time.Time
	// FileMode sets the permissions for new log files.
	FileMode os.FileMode
	// DirMode sets the permissions for the log directory.
	DirMode os.FileMode
}

// DailyFileWriter appends ANSI-stripped entries to one file per calendar day.
type DailyFileWriter struct {
	mu       sync.Mutex
	dir      string
	clock    func() time.Time
	fileMode os.FileMode
	dirMode  os.FileMode
	dirReady bool
	closed   bool
}

// NewDailyFileWriter creates a new DailyFileWriter. The directory is not created
// until the first write.
func NewDailyFileWriter(config FileConfig) (*DailyFileWriter, error) {
	if config.Dir == "" {
		return nil, ErrDirRequired
	}

	dir, err := utils.ResolveDir(config.Dir)
	if err != nil {
		return nil, ewrap.Wrap(err, "invalid log directory")
	}

	if config.Clock == nil {
		config.Clock = time.Now
	}

	if config.FileMode == 0 {
		config.FileMode = defaultFileMode
	}

	if config.DirMode == 0 {
		config.DirMode = defaultDirMode
	}

	return &DailyFileWriter{
		dir:      dir,
		clock:    config.Clock,
		fileMode: config.FileMode,
		dirMode:  config.DirMode,
	}, nil
}

// Dir returns the absolute directory of the daily files.
func (w *DailyFileWriter) Dir() string {
	return w.dir
}

// PathFor returns the file that receives entries written at t.
func (w *DailyFileWriter) PathFor(t time.Time) string {
	return filepath.Join(w.dir, utils.LogDate(t)+constants.LogFileExtension)
}

// Write implements io.Writer. Each call opens today's file in append mode, writes
// the payload with ANSI sequences removed and closes the file again.
func (w *DailyFileWriter) Write(payload []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, ErrWriterClosed
	}

	if !w.dirReady {
		err := utils.EnsureDir(w.dir, w.dirMode)
		if err != nil {
			return 0, err
		}

		w.dirReady = true
	}

	path := w.PathFor(w.clock())

	//nolint:gosec // the path is derived from the configured directory and the date.
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, w.fileMode)
	if err != nil {
		// The directory may have been removed since it was created.
		w.dirReady = false

		return 0, ewrap.Wrapf(err, "opening log file").
			WithMetadata("path", path)
	}

	_, err = file.WriteString(stripansi.Strip(string(payload)))
	if err != nil {
		closeErr := file.Close()
		if closeErr != nil {
			return 0, ewrap.Wrapf(closeErr, "closing log file").
				WithMetadata("path", path).
				WithMetadata("err", err)
		}

		return 0, ewrap.Wrap(err, "failed writing to log file").
			WithMetadata("path", path)
	}

	err = file.Close()
	if err != nil {
		return 0, ewrap.Wrapf(err, "closing log file").
			WithMetadata("path", path)
	}

	return len(payload), nil
}

// Sync is a no-op: every write closes its file.
func (*DailyFileWriter) Sync() error {
	return nil
}

// Close marks the writer closed. Later writes fail with ErrWriterClosed.
func (w *DailyFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true

	return nil
}

func isStandardStream(f *os.File) bool {
	return f == os.Stdout || f == os.Stderr
}

// IsTerminal checks if the given writer is a terminal. It returns true if the writer is
// connected to a terminal, and false otherwise. This function is used to determine
// whether to keep color sequences in console output.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		if f.Fd() == uintptr(syscall.Stdout) || f.Fd() == uintptr(syscall.Stderr) {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}

	return false
}
