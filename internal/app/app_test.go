package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/soar/gamepadcam/internal/controller"
	"github.com/soar/gamepadcam/internal/frame"
	"github.com/soar/gamepadcam/internal/gamepad"
	"github.com/soar/gamepadcam/internal/hub"
	"github.com/soar/gamepadcam/internal/scene"
)

func TestDemoSceneLooksThroughGhost(t *testing.T) {
	world := DemoScene()
	cam := scene.NewCamera(world.CameraPosition)
	hits := world.Root.Intersect(scene.RayFromCamera(cam.Position(), cam.Rotation()))
	require.NotEmpty(t, hits)
	assert.Equal(t, "ghost", hits[0].Object.Name)

	closest := scene.ClosestVisible(hits)
	require.NotNil(t, closest)
	assert.Equal(t, "painting", closest.Object.Name)
}

func TestRotationSyncRunsOnFrame(t *testing.T) {
	sched := frame.NewScheduler()
	src := gamepad.NewVirtual()
	ctl := controller.New(scene.NewCamera(DemoScene().CameraPosition), DemoScene().Root, src, sched, controller.Callbacks{})
	defer ctl.Close()

	s := NewRotationSync(sched)
	s.SetRotation(3, 3)
	sched.Step()

	s.Attach(ctl)
	s.SetRotation(1.25, 0.5)

	h, v := ctl.Rotation()
	assert.Zero(t, h, "applied on the frame goroutine, not the caller's")
	assert.Zero(t, v)

	sched.Step()
	h, v = ctl.Rotation()
	assert.Equal(t, 1.25, h)
	assert.Equal(t, 0.5, v)
}

func TestCallbacksFeedViewers(t *testing.T) {
	b := &eventLog{}

	world := DemoScene()
	cam := scene.NewCamera(world.CameraPosition)
	src := gamepad.NewVirtual()
	sched := frame.NewScheduler()
	var ctl *controller.Controller
	ctl = controller.New(cam, world.Root, src, sched,
		Callbacks(b, cam, func() *controller.Controller { return ctl }, zap.NewNop()))
	defer ctl.Close()

	pad := src.Connect("pad")
	pad.Press(gamepad.ShoulderLeft)
	require.NoError(t, ctl.Update())

	require.Len(t, b.events, 2)
	frameEvent := b.events[0]
	assert.Equal(t, hub.TypeFrame, frameEvent.Type)
	assert.Equal(t, "painting", frameEvent.Target.Name)
	assert.InDelta(t, 1.6, frameEvent.Pose.Position[1], 1e-9)
	assert.InDelta(t, -1, frameEvent.Pose.Forward[2], 1e-9)
	assert.Equal(t, hub.TypeSelect, b.events[1].Type)
	assert.Equal(t, "painting", b.events[1].Target.Name)

	src.Disconnect(pad.ID)
	notifier := DeviceNotifier{Publisher: b}
	notifier.GamepadConnected(gamepad.Device{ID: 7, Name: "x"})
	assert.Equal(t, hub.TypeConnected, b.events[2].Type)
	assert.Equal(t, uint32(7), b.events[2].Device.ID)
	notifier.GamepadDisconnected(gamepad.Device{ID: 7, Name: "x"})
	assert.Equal(t, hub.TypeDisconnected, b.events[3].Type)
}

func TestStatusURL(t *testing.T) {
	for listen, want := range map[string]string{
		":8080":          "http://localhost:8080/healthz",
		"0.0.0.0:9000":   "http://localhost:9000/healthz",
		"example.lan:81": "http://localhost:81/healthz",
		"[::]:7000":      "http://localhost:7000/healthz",
	} {
		got, err := StatusURL(listen)
		require.NoError(t, err, listen)
		assert.Equal(t, want, got, listen)
	}

	_, err := StatusURL("8080")
	assert.Error(t, err)
}

type eventLog struct {
	events []hub.Event
}

func (l *eventLog) Publish(e hub.Event) bool {
	l.events = append(l.events, e)
	return true
}
