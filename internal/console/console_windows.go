//go:build windows

// Package console installs a Ctrl+C handler that keeps working while SDL
// holds a locked OS thread.
package console

import (
	"sync"
	"syscall"

	"go.uber.org/zap"
)

var procSetConsoleCtrlHandler = syscall.NewLazyDLL("kernel32.dll").NewProc("SetConsoleCtrlHandler")

const (
	ctrlCEvent     = 0
	ctrlBreakEvent = 1
)

var (
	handlerOnce sync.Once
	handlerFn   uintptr
	shutdown    chan struct{}
	closeOnce   sync.Once
)

// SetupConsoleHandler closes shutdownChan on Ctrl+C or Ctrl+Break. SDL
// replaces console handlers during init, so the returned function must be
// called again once SDL is up.
func SetupConsoleHandler(shutdownChan chan struct{}, log *zap.Logger) func() {
	handlerOnce.Do(func() {
		shutdown = shutdownChan
		handlerFn = syscall.NewCallback(func(ctrlType uint32) uintptr {
			if ctrlType != ctrlCEvent && ctrlType != ctrlBreakEvent {
				return 0
			}
			closeOnce.Do(func() { close(shutdown) })
			return 1
		})
	})

	register := func() {
		if ret, _, _ := procSetConsoleCtrlHandler.Call(handlerFn, 1); ret == 0 {
			log.Warn("failed to set console control handler")
		}
	}
	register()
	return register
}
