// Package app connects the controller to the viewer hub.
package app

import (
	"fmt"
	"net"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.uber.org/zap"

	"github.com/soar/gamepadcam/internal/controller"
	"github.com/soar/gamepadcam/internal/frame"
	"github.com/soar/gamepadcam/internal/gamepad"
	"github.com/soar/gamepadcam/internal/hub"
	"github.com/soar/gamepadcam/internal/scene"
)

// LoadScene reads the scene file at path, or returns the demo scene when path
// is empty.
func LoadScene(path string) (*scene.Loaded, error) {
	if path != "" {
		return scene.LoadFile(path)
	}
	return DemoScene(), nil
}

// DemoScene is a small room used when no scene file is given.
func DemoScene() *scene.Loaded {
	floor := scene.NewNode("floor", scene.Box{
		Min: r3.Vector{X: -10, Y: -0.1, Z: -10},
		Max: r3.Vector{X: 10, Y: 0, Z: 10},
	})
	table := scene.NewNode("table", scene.Box{
		Min: r3.Vector{X: -1, Y: 0, Z: -4},
		Max: r3.Vector{X: 1, Y: 0.8, Z: -3},
	})
	globe := scene.NewNode("globe", scene.Sphere{Center: r3.Vector{Y: 1.1, Z: -3.5}, Radius: 0.3})
	painting := scene.NewNode("painting", scene.Box{
		Min: r3.Vector{X: -1, Y: 1, Z: -6.1},
		Max: r3.Vector{X: 1, Y: 2.2, Z: -6},
	})
	ghost := scene.NewNode("ghost", scene.Sphere{Center: r3.Vector{Y: 1.6, Z: -2}, Radius: 0.4})
	ghost.Visible = false
	table.Add(globe)

	root := scene.NewNode("scene", nil).Add(floor, table, painting, ghost)
	return &scene.Loaded{Root: root, CameraPosition: r3.Vector{Y: 1.6, Z: 2}}
}

// StatusURL is the local address of the server's health endpoint for a
// listen address such as ":8080" or "0.0.0.0:8080".
func StatusURL(listen string) (string, error) {
	_, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "", fmt.Errorf("listen address %q: %w", listen, err)
	}
	return "http://" + net.JoinHostPort("localhost", port) + "/healthz", nil
}

// RotationSync forwards viewer rotation requests onto the frame goroutine.
type RotationSync struct {
	sched *frame.Scheduler
	ctl   atomic.Pointer[controller.Controller]
}

func NewRotationSync(sched *frame.Scheduler) *RotationSync {
	return &RotationSync{sched: sched}
}

// Attach sets the controller that later requests are applied to.
func (s *RotationSync) Attach(ctl *controller.Controller) {
	s.ctl.Store(ctl)
}

func (s *RotationSync) SetRotation(horizontal, vertical float64) {
	s.sched.RequestFrame(func() {
		if ctl := s.ctl.Load(); ctl != nil {
			ctl.SetRotation(horizontal, vertical)
		}
	})
}

func toArray(v r3.Vector) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func toTarget(hit scene.Intersection) *hub.Target {
	return &hub.Target{
		ID:       hit.Object.ID,
		Name:     hit.Object.Name,
		Distance: hit.Distance,
		Point:    toArray(hit.Point),
	}
}

// Publisher accepts viewer events without blocking.
type Publisher interface {
	Publish(e hub.Event) bool
}

// Callbacks reports every frame and interaction to the viewers. ctl is read
// lazily because the controller is built from the returned callbacks.
func Callbacks(p Publisher, cam *scene.Camera, ctl func() *controller.Controller, log *zap.Logger) controller.Callbacks {
	return controller.Callbacks{
		LookAt: func(hit *scene.Intersection) error {
			yaw, pitch := ctl().Rotation()
			e := hub.Event{
				Type: hub.TypeFrame,
				Pose: &hub.Pose{
					Position: toArray(cam.Position()),
					Yaw:      yaw,
					Pitch:    pitch,
					Forward:  toArray(cam.Forward()),
				},
			}
			if hit != nil {
				e.Target = toTarget(*hit)
			}
			p.Publish(e)
			return nil
		},
		Select: func(hit scene.Intersection) error {
			log.Info("select", zap.String("object", hit.Object.Name), zap.Float64("distance", hit.Distance))
			p.Publish(hub.Event{Type: hub.TypeSelect, Target: toTarget(hit)})
			return nil
		},
		Interact: func(hit scene.Intersection) error {
			log.Info("interact", zap.String("object", hit.Object.Name), zap.Float64("distance", hit.Distance))
			p.Publish(hub.Event{Type: hub.TypeInteract, Target: toTarget(hit)})
			return nil
		},
		Inspect: func(hit scene.Intersection, at mgl64.Vec2) error {
			log.Info("inspect", zap.String("object", hit.Object.Name), zap.Float64("distance", hit.Distance))
			anchor := [2]float64{at.X(), at.Y()}
			p.Publish(hub.Event{Type: hub.TypeInspect, Target: toTarget(hit), Anchor: &anchor})
			return nil
		},
	}
}

// DeviceNotifier tells viewers about gamepads coming and going.
type DeviceNotifier struct {
	Publisher Publisher
}

func (n DeviceNotifier) GamepadConnected(d gamepad.Device) {
	n.Publisher.Publish(hub.Event{Type: hub.TypeConnected, Device: deviceInfo(d)})
}

func (n DeviceNotifier) GamepadDisconnected(d gamepad.Device) {
	n.Publisher.Publish(hub.Event{Type: hub.TypeDisconnected, Device: deviceInfo(d)})
}

func deviceInfo(d gamepad.Device) *hub.DeviceInfo {
	return &hub.DeviceInfo{ID: uint32(d.ID), Slot: d.Slot, Name: d.Name}
}
