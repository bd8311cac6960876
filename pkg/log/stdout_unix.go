//go:build !windows

// Package log holds platform specific helpers for the daemon's log output.
package log

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// RedirectStdio points stdout and stderr at f, so panics and stray prints end up in the logfile.
func RedirectStdio(f *os.File) error {
	if err := unix.Dup2(int(f.Fd()), 1); err != nil {
		return fmt.Errorf("re-assign stdout to logfile: %w", err)
	}
	if err := unix.Dup2(int(f.Fd()), 2); err != nil {
		return fmt.Errorf("re-assign stderr to logfile: %w", err)
	}
	return nil
}
