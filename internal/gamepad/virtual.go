package gamepad

// Virtual is an in-memory gamepad source. Devices are attached and driven by
// hand, which makes it useful for tests and for running without hardware.
type Virtual struct {
	supported bool
	slots     []*Snapshot
	listeners map[int]Listener
	nextSub   int
	nextID    ID
}

// NewVirtual returns a supported source with no devices attached.
func NewVirtual() *Virtual {
	return &Virtual{
		supported: true,
		listeners: make(map[int]Listener),
		nextID:    1,
	}
}

// NewUnsupportedVirtual returns a source that reports no gamepad support.
func NewUnsupportedVirtual() *Virtual {
	v := NewVirtual()
	v.supported = false
	return v
}

func (v *Virtual) Supported() bool {
	return v.supported
}

// Gamepads returns the slot-indexed device list. Empty slots are nil.
func (v *Virtual) Gamepads() []*Snapshot {
	if !v.supported {
		return nil
	}
	out := make([]*Snapshot, len(v.slots))
	copy(out, v.slots)
	return out
}

// Subscribe registers l and replays every attached device to it.
func (v *Virtual) Subscribe(l Listener) func() {
	id := v.nextSub
	v.nextSub++
	v.listeners[id] = l
	for _, s := range v.slots {
		if s != nil {
			l.GamepadConnected(s.device())
		}
	}
	return func() {
		delete(v.listeners, id)
	}
}

// Connect attaches a new device in the lowest free slot and returns its snapshot,
// which the caller may mutate between frames.
func (v *Virtual) Connect(name string) *Snapshot {
	slot := len(v.slots)
	for i, s := range v.slots {
		if s == nil {
			slot = i
			break
		}
	}
	d := Device{ID: v.nextID, Slot: slot, Name: name, Mapping: "virtual"}
	v.nextID++
	s := NewSnapshot(d)
	if slot == len(v.slots) {
		v.slots = append(v.slots, s)
	} else {
		v.slots[slot] = s
	}
	for _, l := range v.listeners {
		l.GamepadConnected(d)
	}
	return s
}

// Disconnect detaches the device with the given id. Its slot becomes empty.
func (v *Virtual) Disconnect(id ID) {
	for i, s := range v.slots {
		if s != nil && s.ID == id {
			v.slots[i] = nil
			for _, l := range v.listeners {
				l.GamepadDisconnected(s.device())
			}
			return
		}
	}
}

func (s *Snapshot) device() Device {
	return Device{ID: s.ID, Slot: s.Slot, Name: s.Name, Mapping: "virtual"}
}

// Press sets b fully pressed.
func (s *Snapshot) Press(b Button) { s.setButton(b, true) }

// Release sets b released.
func (s *Snapshot) Release(b Button) { s.setButton(b, false) }

// SetAxis sets the raw value of a.
func (s *Snapshot) SetAxis(a Axis, val float64) {
	if int(a) < len(s.Axes) {
		s.Axes[a] = val
	}
}
