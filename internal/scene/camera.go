package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Camera is a perspective viewpoint. Only its transform matters here.
type Camera struct {
	position r3.Vector
	rotation mgl64.Mat3
}

func NewCamera(position r3.Vector) *Camera {
	return &Camera{position: position, rotation: mgl64.Ident3()}
}

func (c *Camera) Position() r3.Vector { return c.position }

func (c *Camera) SetPosition(p r3.Vector) { c.position = p }

// Translate moves the camera by v in world space.
func (c *Camera) Translate(v r3.Vector) {
	c.position = c.position.Add(v)
}

func (c *Camera) Rotation() mgl64.Mat3 { return c.rotation }

// SetRotationFromMatrix replaces the orientation with m.
func (c *Camera) SetRotationFromMatrix(m mgl64.Mat3) {
	c.rotation = m
}

// Forward returns the unit view direction.
func (c *Camera) Forward() r3.Vector {
	return Rotate(c.rotation, r3.Vector{Z: -1}).Normalize()
}
