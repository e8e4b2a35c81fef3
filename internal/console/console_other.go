//go:build !windows

// Package console installs a Ctrl+C handler that keeps working while SDL
// holds a locked OS thread.
package console

import "go.uber.org/zap"

// SetupConsoleHandler returns a no-op on non-Windows platforms, where
// os/signal already delivers os.Interrupt.
func SetupConsoleHandler(shutdownChan chan struct{}, log *zap.Logger) func() {
	return func() {}
}
