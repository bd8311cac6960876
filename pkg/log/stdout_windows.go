//go:build windows

// Package log holds platform specific helpers for the daemon's log output.
package log

import (
	"fmt"
	"os"
)

// RedirectStdio replaces stdout and stderr with f, Windows lacks the Dup2 syscall.
//
// Warning: panic output is lost once the original stderr is closed.
func RedirectStdio(f *os.File) error {
	if err := os.Stderr.Close(); err != nil {
		return fmt.Errorf("close stderr: %w", err)
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
