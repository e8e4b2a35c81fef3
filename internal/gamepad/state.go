package gamepad

import "errors"

// ErrUnsupported is returned when the host has no usable gamepad subsystem.
var ErrUnsupported = errors.New("gamepad: not supported")

// ID identifies a connected device for as long as it stays attached.
type ID uint32

// Device is the handle carried by connect and disconnect notifications.
type Device struct {
	ID      ID
	Slot    int
	Name    string
	Mapping string
}

// Listener receives device attach and detach notifications.
type Listener interface {
	GamepadConnected(Device)
	GamepadDisconnected(Device)
}

// Snapshot is the state of one device at poll time. Axes are normalized to
// -1..1 and buttons to 0..1, both indexed by the standard layout.
type Snapshot struct {
	ID      ID
	Slot    int
	Name    string
	Axes    []float64
	Buttons []float64
}

// NewSnapshot returns a zeroed snapshot sized for the standard layout.
func NewSnapshot(d Device) *Snapshot {
	return &Snapshot{
		ID:      d.ID,
		Slot:    d.Slot,
		Name:    d.Name,
		Axes:    make([]float64, numAxes),
		Buttons: make([]float64, numButtons),
	}
}

// Axis returns the value of a, or 0 if the device does not report it.
func (s *Snapshot) Axis(a Axis) float64 {
	if int(a) < 0 || int(a) >= len(s.Axes) {
		return 0
	}
	return s.Axes[a]
}

// Button returns the value of b, or 0 if the device does not report it.
func (s *Snapshot) Button(b Button) float64 {
	if int(b) < 0 || int(b) >= len(s.Buttons) {
		return 0
	}
	return s.Buttons[b]
}

func (s *Snapshot) setButton(b Button, pressed bool) {
	if int(b) >= len(s.Buttons) {
		return
	}
	if pressed {
		s.Buttons[b] = 1
	} else {
		s.Buttons[b] = 0
	}
}

// ButtonTracker keeps the held and just-pressed state of every logical button.
type ButtonTracker struct {
	pressed     map[Button]bool
	justPressed map[Button]bool
}

func NewButtonTracker() *ButtonTracker {
	t := &ButtonTracker{
		pressed:     make(map[Button]bool, numButtons),
		justPressed: make(map[Button]bool, numButtons),
	}
	t.Reset()
	return t
}

// Reset clears every button to released.
func (t *ButtonTracker) Reset() {
	for _, b := range Buttons() {
		t.pressed[b] = false
		t.justPressed[b] = false
	}
}

// Update recomputes both maps from s. A button is just pressed when it was
// released after the previous Update and reads above zero now.
func (t *ButtonTracker) Update(s *Snapshot) {
	for _, b := range Buttons() {
		down := s.Button(b) > 0
		t.justPressed[b] = !t.pressed[b] && down
		t.pressed[b] = down
	}
}

func (t *ButtonTracker) Pressed(b Button) bool {
	return t.pressed[b]
}

func (t *ButtonTracker) JustPressed(b Button) bool {
	return t.justPressed[b]
}

// Len returns the number of tracked buttons.
func (t *ButtonTracker) Len() int {
	return len(t.pressed)
}
