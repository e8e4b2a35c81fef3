package gamepad

import "math"

// AxisMapping defines how a raw joystick axis index maps to the standard layout.
type AxisMapping struct {
	Index int32
	// Stick axes land in Snapshot.Axes, trigger axes in Snapshot.Buttons.
	Axis      Axis
	Trigger   Button
	IsTrigger bool
	Invert    bool
	// For triggers: raw range. Some devices use -32768..32767, others 0..32767.
	RawMin int16
	RawMax int16
}

// ButtonMapping defines how a raw joystick button index maps to a logical button.
type ButtonMapping struct {
	Index  int32
	Target Button
}

// DeviceMapping holds the complete mapping for a specific device type.
type DeviceMapping struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	HasHat  bool
}

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// NormalizeTrigger converts a raw trigger value to 0.0..1.0.
func NormalizeTrigger(raw int16, rawMin, rawMax int16) float64 {
	if rawMax == rawMin {
		return 0
	}
	v := (float64(raw) - float64(rawMin)) / (float64(rawMax) - float64(rawMin))
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// ApplyDeadzone returns 0 if the magnitude of v is at or below threshold and v
// unchanged otherwise.
func ApplyDeadzone(v float64, threshold float64) float64 {
	if math.Abs(v) <= threshold {
		return 0
	}
	return v
}

// Built-in mappings for common controllers. SDL reports stick Y negative when
// pushed up, which already matches the standard layout, so nothing is inverted.

var standardSticks = []AxisMapping{
	{Index: 0, Axis: StickLeftH},
	{Index: 1, Axis: StickLeftV},
	{Index: 2, Axis: StickRightH},
	{Index: 3, Axis: StickRightV},
}

var xboxMapping = &DeviceMapping{
	Name: "xbox",
	Axes: append(standardSticks[:4:4],
		AxisMapping{Index: 4, Trigger: TriggerLeft, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		AxisMapping{Index: 5, Trigger: TriggerRight, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	),
	Buttons: []ButtonMapping{
		{Index: 0, Target: FaceDown},
		{Index: 1, Target: FaceRight},
		{Index: 2, Target: FaceLeft},
		{Index: 3, Target: FaceUp},
		{Index: 4, Target: ShoulderLeft},
		{Index: 5, Target: ShoulderRight},
		{Index: 6, Target: Select},
		{Index: 7, Target: Start},
		{Index: 8, Target: StickLeftPress},
		{Index: 9, Target: StickRightPress},
		{Index: 10, Target: Home},
	},
	HasHat: true,
}

var playstationMapping = &DeviceMapping{
	Name: "playstation",
	Axes: append(standardSticks[:4:4],
		AxisMapping{Index: 4, Trigger: TriggerLeft, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		AxisMapping{Index: 5, Trigger: TriggerRight, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	),
	Buttons: []ButtonMapping{
		{Index: 0, Target: FaceDown},  // Cross (×)
		{Index: 1, Target: FaceRight}, // Circle (○)
		{Index: 2, Target: FaceLeft},  // Square (□)
		{Index: 3, Target: FaceUp},    // Triangle (△)
		{Index: 4, Target: Select},    // Share / Create
		{Index: 5, Target: Home},      // PS button
		{Index: 6, Target: Start},     // Options
		{Index: 7, Target: StickLeftPress},
		{Index: 8, Target: StickRightPress},
		{Index: 9, Target: ShoulderLeft},   // L1
		{Index: 10, Target: ShoulderRight}, // R1
	},
	HasHat: true,
}

// The Pro Controller reports ZL/ZR as digital buttons.
var switchProMapping = &DeviceMapping{
	Name: "switch_pro",
	Axes: standardSticks,
	Buttons: []ButtonMapping{
		{Index: 0, Target: FaceDown},
		{Index: 1, Target: FaceRight},
		{Index: 2, Target: FaceLeft},
		{Index: 3, Target: FaceUp},
		{Index: 4, Target: ShoulderLeft},
		{Index: 5, Target: ShoulderRight},
		{Index: 6, Target: Select},
		{Index: 7, Target: Start},
		{Index: 8, Target: StickLeftPress},
		{Index: 9, Target: StickRightPress},
		{Index: 10, Target: Home},
		{Index: 11, Target: TriggerLeft},
		{Index: 12, Target: TriggerRight},
	},
	HasHat: true,
}

var genericMapping = &DeviceMapping{
	Name: "generic",
	Axes: append(standardSticks[:4:4],
		AxisMapping{Index: 4, Trigger: TriggerLeft, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		AxisMapping{Index: 5, Trigger: TriggerRight, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	),
	Buttons: []ButtonMapping{
		{Index: 0, Target: FaceDown},
		{Index: 1, Target: FaceRight},
		{Index: 2, Target: FaceLeft},
		{Index: 3, Target: FaceUp},
		{Index: 4, Target: ShoulderLeft},
		{Index: 5, Target: ShoulderRight},
		{Index: 6, Target: Select},
		{Index: 7, Target: Start},
		{Index: 8, Target: StickLeftPress},
		{Index: 9, Target: StickRightPress},
		{Index: 10, Target: Home},
	},
	HasHat: true,
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*DeviceMapping{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxMapping, // Xbox 360
	{0x045E, 0x02FF}: xboxMapping, // Xbox One
	{0x045E, 0x0B12}: xboxMapping, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxMapping, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationMapping, // DualSense
	{0x054C, 0x09CC}: playstationMapping, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationMapping, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProMapping,
}

// GetMapping returns the appropriate mapping for a device identified by vendor/product ID.
// Falls back to generic mapping if no specific mapping is found.
func GetMapping(vendorID, productID uint16) *DeviceMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericMapping
}

const (
	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

// ApplyHat sets the D-pad buttons of s from an SDL hat bitmask.
func ApplyHat(s *Snapshot, hat uint8) {
	s.setButton(DpadUp, hat&hatUp != 0)
	s.setButton(DpadRight, hat&hatRight != 0)
	s.setButton(DpadDown, hat&hatDown != 0)
	s.setButton(DpadLeft, hat&hatLeft != 0)
}
