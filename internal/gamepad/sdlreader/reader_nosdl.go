//go:build nosdl

// Package sdlreader reads gamepads through SDL3. This build has no SDL: the
// reader never becomes supported and reports no devices.
package sdlreader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/soar/gamepadcam/internal/gamepad"
)

type Reader struct {
	log *zap.Logger
}

func NewReader(log *zap.Logger) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reader{log: log}
}

// Open always fails with gamepad.ErrUnsupported.
func (r *Reader) Open() error {
	return fmt.Errorf("%w: built without SDL", gamepad.ErrUnsupported)
}

func (r *Reader) Close() {}

func (r *Reader) Supported() bool {
	return false
}

func (r *Reader) Subscribe(gamepad.Listener) func() {
	return func() {}
}

func (r *Reader) PumpEvents() {}

func (r *Reader) Gamepads() []*gamepad.Snapshot {
	return nil
}
