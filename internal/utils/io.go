// Package utils provides internal utility functions used throughout the logger package.
//
// It resolves the log directory and renders the fixed it-IT date formats used by
// log file names, file timestamps and structured payload dates. These utilities are
// for internal use and are not part of the public API.
package utils

import (
	"os"
	"path/filepath"

	"github.com/hyp3rd/ewrap"
)

// ResolveDir returns dir as an absolute, cleaned path. Relative paths are resolved
// against the current working directory.
func ResolveDir(dir string) (string, error) {
	if dir == "" {
		return "", ewrap.New("directory cannot be empty")
	}

	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", ewrap.Wrap(err, "resolving working directory").WithMetadata("dir", dir)
	}

	return filepath.Join(wd, dir), nil
}

// EnsureDir creates dir and its parents when missing.
func EnsureDir(dir string, perm os.FileMode) error {
	err := os.MkdirAll(dir, perm)
	if err != nil {
		return ewrap.Wrap(err, "creating log directory").WithMetadata("dir", dir)
	}

	return nil
}
