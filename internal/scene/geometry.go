// Package scene holds the scene graph the camera looks into and the ray
// queries run against it.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Ray is a half-line. Direction is expected to be unit length.
type Ray struct {
	Origin    r3.Vector
	Direction r3.Vector
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) r3.Vector {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Shape is anything a ray can hit.
type Shape interface {
	Intersect(r Ray) (float64, bool)
}

// Sphere is a ball around Center.
type Sphere struct {
	Center r3.Vector
	Radius float64
}

// Intersect returns the distance to the first surface point in front of the
// ray origin. A ray starting inside the sphere hits the far side.
func (s Sphere) Intersect(r Ray) (float64, bool) {
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Box is an axis-aligned box.
type Box struct {
	Min r3.Vector
	Max r3.Vector
}

// Intersect uses the slab method.
func (b Box) Intersect(r Ray) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	o := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < 1e-12 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}
	if tmax < math.Max(tmin, 0) {
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}

// Rotate applies m to v.
func Rotate(m mgl64.Mat3, v r3.Vector) r3.Vector {
	out := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}
}

// RayFromCamera returns the ray through the view center of a camera at
// position with the given orientation. Cameras look down their local -Z.
func RayFromCamera(position r3.Vector, rotation mgl64.Mat3) Ray {
	return Ray{
		Origin:    position,
		Direction: Rotate(rotation, r3.Vector{Z: -1}).Normalize(),
	}
}
