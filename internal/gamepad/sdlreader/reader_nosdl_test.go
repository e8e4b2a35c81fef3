//go:build nosdl

package sdlreader

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/soar/gamepadcam/internal/controller"
	"github.com/soar/gamepadcam/internal/frame"
	"github.com/soar/gamepadcam/internal/gamepad"
	"github.com/soar/gamepadcam/internal/scene"
)

func TestOpenWithoutSDLIsUnsupported(t *testing.T) {
	r := NewReader(nil)
	err := r.Open()
	require.ErrorIs(t, err, gamepad.ErrUnsupported)
	assert.False(t, r.Supported())
	assert.Nil(t, r.Gamepads())
	r.PumpEvents()
	r.Subscribe(nil)()
	r.Close()
}

func TestControllerOnReaderWithoutSDLStaysInert(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewReader(nil)
	require.Error(t, r.Open())

	cam := scene.NewCamera(r3.Vector{Y: 1})
	sched := frame.NewScheduler()
	looked := 0
	ctl := controller.New(cam, scene.NewNode("root", nil), r, sched, controller.Callbacks{
		LookAt: func(*scene.Intersection) error { looked++; return nil },
	}, controller.WithLogger(zap.New(core)))
	defer ctl.Close()

	ctl.Activate()
	sched.Step()
	assert.False(t, ctl.Active())
	assert.Zero(t, sched.Pending())
	assert.Zero(t, looked)
	assert.Equal(t, r3.Vector{Y: 1}, cam.Position())
	assert.Equal(t, 1, logs.FilterMessage("gamepad API not supported, controller disabled").Len())

	assert.ErrorIs(t, ctl.Update(), gamepad.ErrUnsupported)
}
