package output

import (
	"github.com/hyp3rd/ewrap"
)

// Common errors for the output package.
var (
	// ErrWriterClosed is returned when attempting to write to a closed writer.
	ErrWriterClosed = ewrap.New("writer is closed")

	// ErrDirRequired is returned when a daily file writer has no directory.
	ErrDirRequired = ewrap.New("log directory is required")
)
