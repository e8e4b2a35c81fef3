//go:build !nosdl

// Package sdlreader reads gamepads through SDL3. Linking it loads the SDL3
// shared library at program start and panics when it is missing; build with
// the nosdl tag for hosts without SDL.
package sdlreader

import (
	"fmt"

	"github.com/jupiterrider/purego-sdl3/sdl"
	"go.uber.org/zap"

	"github.com/soar/gamepadcam/internal/gamepad"
)

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *gamepad.DeviceMapping
	name     string
	id       sdl.JoystickID
	slot     int
}

func (j *joystickInfo) device() gamepad.Device {
	return gamepad.Device{ID: gamepad.ID(j.id), Slot: j.slot, Name: j.name, Mapping: j.mapping.Name}
}

// Reader polls gamepads through the SDL3 joystick API. All methods must be
// called from the goroutine that called Open, which has to be locked to its
// OS thread.
type Reader struct {
	log       *zap.Logger
	supported bool
	joysticks map[sdl.JoystickID]*joystickInfo
	slots     []*joystickInfo
	listeners map[int]gamepad.Listener
	nextSub   int
}

func NewReader(log *zap.Logger) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reader{
		log:       log,
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
		listeners: make(map[int]gamepad.Listener),
	}
}

// Open initializes the SDL joystick subsystem and opens every joystick that
// is already attached. On failure the reader stays unsupported.
func (r *Reader) Open() error {
	if !sdl.Init(sdl.InitJoystick) {
		return fmt.Errorf("%w: SDL init failed: %s", gamepad.ErrUnsupported, sdl.GetError())
	}
	r.supported = true
	r.log.Info("SDL3 joystick subsystem initialized")

	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(id)
	}
	return nil
}

// Close closes all joysticks and shuts SDL down.
func (r *Reader) Close() {
	if !r.supported {
		return
	}
	for id, info := range r.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(r.joysticks, id)
	}
	r.slots = nil
	r.supported = false
	sdl.Quit()
}

func (r *Reader) Supported() bool {
	return r.supported
}

// Subscribe registers l and replays every attached joystick to it.
func (r *Reader) Subscribe(l gamepad.Listener) func() {
	id := r.nextSub
	r.nextSub++
	r.listeners[id] = l
	for _, info := range r.slots {
		if info != nil {
			l.GamepadConnected(info.device())
		}
	}
	return func() {
		delete(r.listeners, id)
	}
}

// PumpEvents drains the SDL event queue, opening and closing joysticks as they
// are attached or detached.
func (r *Reader) PumpEvents() {
	if !r.supported {
		return
	}
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openJoystick(event.JDevice().Which)
		case sdl.EventJoystickRemoved:
			r.removeJoystick(event.JDevice().Which)
		}
	}
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		r.log.Warn("failed to open joystick",
			zap.Uint32("id", uint32(instanceID)), zap.String("error", sdl.GetError()))
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	info := &joystickInfo{
		joystick: js,
		mapping:  gamepad.GetMapping(vendorID, productID),
		name:     sdl.GetJoystickName(js),
		id:       jsID,
		slot:     r.freeSlot(),
	}
	r.joysticks[jsID] = info
	if info.slot == len(r.slots) {
		r.slots = append(r.slots, info)
	} else {
		r.slots[info.slot] = info
	}

	r.log.Info("joystick connected",
		zap.String("name", info.name),
		zap.String("vid", fmt.Sprintf("%04X", vendorID)),
		zap.String("pid", fmt.Sprintf("%04X", productID)),
		zap.String("mapping", info.mapping.Name),
		zap.Int("slot", info.slot),
		zap.Int32("axes", sdl.GetNumJoystickAxes(js)),
		zap.Int32("buttons", sdl.GetNumJoystickButtons(js)),
		zap.Int32("hats", sdl.GetNumJoystickHats(js)))

	d := info.device()
	for _, l := range r.listeners {
		l.GamepadConnected(d)
	}
}

func (r *Reader) freeSlot() int {
	for i, info := range r.slots {
		if info == nil {
			return i
		}
	}
	return len(r.slots)
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	r.log.Info("joystick disconnected", zap.String("name", info.name), zap.Int("slot", info.slot))
	sdl.CloseJoystick(info.joystick)
	delete(r.joysticks, instanceID)
	r.slots[info.slot] = nil

	d := info.device()
	for _, l := range r.listeners {
		l.GamepadDisconnected(d)
	}
}

// Gamepads reads the current state of every attached joystick. The result is
// indexed by slot; empty slots are nil.
func (r *Reader) Gamepads() []*gamepad.Snapshot {
	if !r.supported {
		return nil
	}
	out := make([]*gamepad.Snapshot, len(r.slots))
	for i, info := range r.slots {
		if info == nil || !sdl.JoystickConnected(info.joystick) {
			continue
		}
		out[i] = info.mapping.Read(info.device(), joystick{info.joystick})
	}
	return out
}

// joystick adapts an open SDL joystick to gamepad.Joystick.
type joystick struct {
	js *sdl.Joystick
}

func (j joystick) NumAxes() int32 { return sdl.GetNumJoystickAxes(j.js) }
func (j joystick) Axis(i int32) int16 { return sdl.GetJoystickAxis(j.js, i) }
func (j joystick) NumButtons() int32 { return sdl.GetNumJoystickButtons(j.js) }
func (j joystick) Button(i int32) bool { return sdl.GetJoystickButton(j.js, i) }
func (j joystick) NumHats() int32 { return sdl.GetNumJoystickHats(j.js) }
func (j joystick) Hat(i int32) uint8 { return sdl.GetJoystickHat(j.js, i) }
