// Package controller turns gamepad input into camera motion and interaction
// callbacks for a 3D view.
package controller

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.uber.org/zap"

	"github.com/soar/gamepadcam/internal/frame"
	"github.com/soar/gamepadcam/internal/gamepad"
	"github.com/soar/gamepadcam/internal/scene"
)

// ErrNoDevice is returned by Update when the primary slot is empty.
var ErrNoDevice = errors.New("no gamepad in primary slot")

// Camera is the view the controller steers.
type Camera interface {
	Position() r3.Vector
	Translate(v r3.Vector)
	Rotation() mgl64.Mat3
	SetRotationFromMatrix(m mgl64.Mat3)
}

// Scene answers ray queries with hits ordered by distance.
type Scene interface {
	Intersect(r scene.Ray) []scene.Intersection
}

// Source reports the state of every connected gamepad, indexed by slot, and
// notifies listeners when devices come and go.
type Source interface {
	Supported() bool
	Gamepads() []*gamepad.Snapshot
	Subscribe(l gamepad.Listener) (unsubscribe func())
}

// Callbacks receive interaction events. Any of them may be nil. LookAt fires
// every tick with the hovered hit, or nil when nothing visible is hit. The
// others fire once per press while something is hovered.
type Callbacks struct {
	LookAt   func(hit *scene.Intersection) error
	Select   func(hit scene.Intersection) error
	Interact func(hit scene.Intersection) error
	Inspect  func(hit scene.Intersection, at mgl64.Vec2) error
}

const (
	primarySlot = 0

	ascendButton   = gamepad.FaceDown
	descendButton  = gamepad.FaceRight
	selectButton   = gamepad.ShoulderLeft
	interactButton = gamepad.ShoulderRight
	inspectButton  = gamepad.TriggerLeft
)

// state is everything the controller carries from one tick to the next.
type state struct {
	horizontal float64
	vertical   float64
	rotation   mgl64.Mat3
	movement   r3.Vector
	buttons    *gamepad.ButtonTracker
}

// Controller polls the primary gamepad once per frame while any device is
// connected. It is not safe for concurrent use; every method must run on the
// goroutine that steps the frame scheduler.
type Controller struct {
	log       *zap.Logger
	camera    Camera
	scene     Scene
	source    Source
	callbacks Callbacks
	settings  Settings

	supported   bool
	loop        *frame.Loop
	unsubscribe func()
	devices     map[gamepad.ID]gamepad.Device
	state       state
}

// New builds a controller. When src reports no gamepad support the
// controller is inert: it never activates and never touches the camera.
func New(cam Camera, sc Scene, src Source, sched *frame.Scheduler, cb Callbacks, opts ...Option) *Controller {
	c := &Controller{
		log:       zap.NewNop(),
		camera:    cam,
		scene:     sc,
		source:    src,
		callbacks: cb,
		settings:  DefaultSettings(),
		devices:   make(map[gamepad.ID]gamepad.Device),
		state: state{
			rotation: mgl64.Ident3(),
			buttons:  gamepad.NewButtonTracker(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.loop = frame.NewLoop(sched, c.tick)

	if !src.Supported() {
		c.log.Warn("gamepad API not supported, controller disabled")
		return c
	}
	c.supported = true
	c.unsubscribe = src.Subscribe(c)
	return c
}

// Activate starts polling. It does nothing if already active or unsupported.
func (c *Controller) Activate() {
	if !c.supported || c.loop.Active() {
		return
	}
	c.log.Debug("gamepad polling started")
	c.loop.Start()
}

// Deactivate stops polling after the frame already scheduled, if any.
func (c *Controller) Deactivate() {
	if c.loop.Active() {
		c.log.Debug("gamepad polling stopped", zap.Uint64("ticks", c.loop.Ticks()))
	}
	c.loop.Stop()
}

// Active reports whether the polling loop is running.
func (c *Controller) Active() bool {
	return c.loop.Active()
}

// Close unsubscribes from the source and stops polling. Unlike Deactivate it
// also drops the frame already scheduled.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.loop.Cancel()
}

// SetRotation overwrites the stored angles. The vertical angle is clamped on
// the next tick, not here.
func (c *Controller) SetRotation(horizontal, vertical float64) {
	c.state.horizontal = horizontal
	c.state.vertical = vertical
}

// Rotation returns the stored horizontal and vertical angles in radians.
func (c *Controller) Rotation() (horizontal, vertical float64) {
	return c.state.horizontal, c.state.vertical
}

// Movement returns the displacement applied on the last processed tick.
func (c *Controller) Movement() r3.Vector {
	return c.state.movement
}

// Devices returns the number of connected devices.
func (c *Controller) Devices() int {
	return len(c.devices)
}

// GamepadConnected records d and starts polling.
func (c *Controller) GamepadConnected(d gamepad.Device) {
	c.devices[d.ID] = d
	c.log.Info("gamepad connected",
		zap.Uint32("id", uint32(d.ID)), zap.Int("slot", d.Slot), zap.String("name", d.Name))
	c.Activate()
}

// GamepadDisconnected forgets d and stops polling once no device remains.
func (c *Controller) GamepadDisconnected(d gamepad.Device) {
	delete(c.devices, d.ID)
	c.log.Info("gamepad disconnected",
		zap.Uint32("id", uint32(d.ID)), zap.Int("slot", d.Slot), zap.Int("remaining", len(c.devices)))
	if len(c.devices) == 0 {
		c.Deactivate()
	}
}

func (c *Controller) tick() {
	err := c.Update()
	if err != nil && !errors.Is(err, ErrNoDevice) && !errors.Is(err, gamepad.ErrUnsupported) {
		c.log.Error("gamepad tick failed", zap.Error(err))
	}
}

// Update processes one frame of input: rotate and move the camera, then
// raycast through the view center and dispatch callbacks. It returns
// gamepad.ErrUnsupported or ErrNoDevice when the frame was skipped, and the
// first callback error otherwise.
func (c *Controller) Update() error {
	if !c.source.Supported() {
		c.log.Debug("gamepad API unavailable, skipping frame")
		return gamepad.ErrUnsupported
	}
	pads := c.source.Gamepads()
	if len(pads) <= primarySlot || pads[primarySlot] == nil {
		c.log.Debug("no gamepad in primary slot, skipping frame")
		return ErrNoDevice
	}
	pad := pads[primarySlot]

	dz := c.settings.Deadzone
	rightH := gamepad.ApplyDeadzone(pad.Axis(gamepad.StickRightH), dz)
	rightV := gamepad.ApplyDeadzone(pad.Axis(gamepad.StickRightV), dz)
	leftH := gamepad.ApplyDeadzone(pad.Axis(gamepad.StickLeftH), dz)
	leftV := gamepad.ApplyDeadzone(pad.Axis(gamepad.StickLeftV), dz)

	buttons := c.state.buttons
	buttons.Update(pad)

	c.rotate(rightH, rightV)
	c.state.movement = c.lateral(leftH, leftV).Add(c.vertical())
	c.camera.Translate(c.state.movement)

	ray := scene.RayFromCamera(c.camera.Position(), c.camera.Rotation())
	closest := scene.ClosestVisible(c.scene.Intersect(ray))
	return c.dispatch(closest)
}

func (c *Controller) rotate(h, v float64) {
	s := &c.state
	s.horizontal += c.settings.RotateStep * h
	s.vertical -= c.settings.RotateStep * v
	s.vertical = mgl64.Clamp(s.vertical, -c.settings.PitchLimit, c.settings.PitchLimit)

	s.rotation = mgl64.Rotate3DY(s.horizontal).Mul3(mgl64.Rotate3DX(s.vertical))
	c.camera.SetRotationFromMatrix(s.rotation)
}

// lateral maps the left stick onto the ground plane relative to where the
// camera faces. Speed scales with stick deflection.
func (c *Controller) lateral(h, v float64) r3.Vector {
	dir := scene.Rotate(c.camera.Rotation(), r3.Vector{X: h, Z: v})
	dir.Y = 0
	return dir.Normalize().Mul(math.Hypot(h, v) * c.settings.HorizontalSpeed)
}

// vertical reads held state, not presses, so holding a button keeps climbing.
func (c *Controller) vertical() r3.Vector {
	var up, down float64
	if c.state.buttons.Pressed(ascendButton) {
		up = 1
	}
	if c.state.buttons.Pressed(descendButton) {
		down = 1
	}
	return r3.Vector{Y: (up - down) * c.settings.VerticalSpeed}
}

func (c *Controller) dispatch(hit *scene.Intersection) error {
	cb := c.callbacks
	if cb.LookAt != nil {
		if err := cb.LookAt(hit); err != nil {
			return fmt.Errorf("look at: %w", err)
		}
	}
	if hit == nil {
		return nil
	}

	buttons := c.state.buttons
	if cb.Select != nil && buttons.JustPressed(selectButton) {
		c.logPress(selectButton, hit)
		if err := cb.Select(*hit); err != nil {
			return fmt.Errorf("select: %w", err)
		}
	}
	if cb.Interact != nil && buttons.JustPressed(interactButton) {
		c.logPress(interactButton, hit)
		if err := cb.Interact(*hit); err != nil {
			return fmt.Errorf("interact: %w", err)
		}
	}
	if cb.Inspect != nil && buttons.JustPressed(inspectButton) {
		c.logPress(inspectButton, hit)
		if err := cb.Inspect(*hit, InspectAnchor); err != nil {
			return fmt.Errorf("inspect: %w", err)
		}
	}
	return nil
}

func (c *Controller) logPress(b gamepad.Button, hit *scene.Intersection) {
	c.log.Debug("button pressed on target",
		zap.Stringer("button", b), zap.String("object", hit.Object.Name), zap.Float64("distance", hit.Distance))
}
