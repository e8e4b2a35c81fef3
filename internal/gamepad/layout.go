package gamepad

// Button is a logical button in the standard gamepad layout. The value is the
// raw index of the button in a Snapshot.
type Button int

const (
	FaceDown Button = iota // A / Cross
	FaceRight              // B / Circle
	FaceLeft               // X / Square
	FaceUp                 // Y / Triangle
	ShoulderLeft
	ShoulderRight
	TriggerLeft
	TriggerRight
	Select
	Start
	StickLeftPress
	StickRightPress
	DpadUp
	DpadDown
	DpadLeft
	DpadRight
	Home

	numButtons
)

// Axis is a logical analog axis in the standard gamepad layout.
type Axis int

const (
	StickLeftH Axis = iota
	StickLeftV // negative when pushed forward
	StickRightH
	StickRightV // negative when pushed forward

	numAxes
)

var buttonNames = [numButtons]string{
	"face_down", "face_right", "face_left", "face_up",
	"shoulder_left", "shoulder_right", "trigger_left", "trigger_right",
	"select", "start", "stick_left", "stick_right",
	"dpad_up", "dpad_down", "dpad_left", "dpad_right", "home",
}

func (b Button) String() string {
	if b < 0 || b >= numButtons {
		return "unknown"
	}
	return buttonNames[b]
}

// Buttons returns every logical button in index order.
func Buttons() []Button {
	bs := make([]Button, numButtons)
	for i := range bs {
		bs[i] = Button(i)
	}
	return bs
}
