package hub

import (
	"time"
)

// Message types sent to viewers.
const (
	TypeFrame        = "frame"
	TypeSelect       = "select"
	TypeInteract     = "interact"
	TypeInspect      = "inspect"
	TypeConnected    = "connected"
	TypeDisconnected = "disconnected"
)

// Pose is the camera transform after a frame.
type Pose struct {
	Position [3]float64 `json:"position"`
	Yaw      float64    `json:"yaw"`   // radians
	Pitch    float64    `json:"pitch"` // radians
	Forward  [3]float64 `json:"forward"`
}

// Target describes the scene object under the view center.
type Target struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Distance float64    `json:"distance"`
	Point    [3]float64 `json:"point"`
}

// DeviceInfo describes an attached or detached gamepad.
type DeviceInfo struct {
	ID   uint32 `json:"id"`
	Slot int    `json:"slot"`
	Name string `json:"name"`
}

// Event is what the controller side publishes.
type Event struct {
	Type   string
	Pose   *Pose
	Target *Target
	Anchor *[2]float64
	Device *DeviceInfo
}

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string      `json:"type"`
	Seq       int64       `json:"seq"`       // Sequence number for ordering
	Timestamp int64       `json:"timestamp"` // Unix timestamp in milliseconds
	Pose      *Pose       `json:"pose,omitempty"`
	Target    *Target     `json:"target,omitempty"`
	Anchor    *[2]float64 `json:"anchor,omitempty"`
	Device    *DeviceInfo `json:"device,omitempty"`
}

// NewMessage wraps e for the wire.
func NewMessage(seq int64, e Event) *WSMessage {
	return &WSMessage{
		Type:      e.Type,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Pose:      e.Pose,
		Target:    e.Target,
		Anchor:    e.Anchor,
		Device:    e.Device,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type  string  `json:"type"`
	Yaw   float64 `json:"yaw,omitempty"`
	Pitch float64 `json:"pitch,omitempty"`
}
