package gamepad

// TriggerDeadzone is the rest band of analog triggers. Worn triggers rarely
// return to exactly their raw minimum.
const TriggerDeadzone = 0.05

// Joystick is the raw, index-addressed view of one device.
type Joystick interface {
	NumAxes() int32
	Axis(i int32) int16
	NumButtons() int32
	Button(i int32) bool
	NumHats() int32
	Hat(i int32) uint8
}

// Read maps the raw state of js onto the standard layout. Indices the device
// does not have are skipped.
func (m *DeviceMapping) Read(d Device, js Joystick) *Snapshot {
	s := NewSnapshot(d)

	axes := js.NumAxes()
	for _, am := range m.Axes {
		if am.Index >= axes {
			continue
		}
		raw := js.Axis(am.Index)
		if am.IsTrigger {
			val := NormalizeTrigger(raw, am.RawMin, am.RawMax)
			s.Buttons[am.Trigger] = ApplyDeadzone(val, TriggerDeadzone)
			continue
		}
		val := NormalizeAxis(raw)
		if am.Invert {
			val = -val
		}
		s.Axes[am.Axis] = val
	}

	buttons := js.NumButtons()
	for _, bm := range m.Buttons {
		if bm.Index >= buttons {
			continue
		}
		s.setButton(bm.Target, js.Button(bm.Index))
	}

	if m.HasHat && js.NumHats() > 0 {
		ApplyHat(s, js.Hat(0))
	}
	return s
}
