package geom

import "math"

// Vec3 is a float32 3-component vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// LengthSq returns the squared length of v.
func (v Vec3) LengthSq() float32 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

// Box is an axis-aligned box given by its corners.
type Box struct {
	Min, Max Vec3
}

// Size returns Max - Min.
func (b Box) Size() Vec3 { return b.Max.Sub(b.Min) }

// Center returns the box center.
func (b Box) Center() Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// Extent returns the half size of the box.
func (b Box) Extent() Vec3 { return b.Size().Scale(0.5) }

// BoxSphere is the combined box and bounding sphere representation used by
// scene components. Origin is shared by the box and the sphere.
type BoxSphere struct {
	Origin Vec3
	Extent Vec3
	Radius float32
}

// NewBoxSphere builds bounds from a box, deriving the sphere radius from the
// box extent.
func NewBoxSphere(b Box) BoxSphere {
	e := b.Extent()
	return BoxSphere{
		Origin: b.Center(),
		Extent: e,
		Radius: float32(math.Sqrt(float64(e.LengthSq()))),
	}
}

// Box returns the axis-aligned box of the bounds.
func (b BoxSphere) Box() Box {
	return Box{Min: b.Origin.Sub(b.Extent), Max: b.Origin.Add(b.Extent)}
}

// IsZero reports whether the bounds are entirely unset.
func (b BoxSphere) IsZero() bool {
	return b == BoxSphere{}
}

// IsCoherent reports whether the sphere radius is numerically consistent with
// the box extent. Bounds read while another goroutine is writing them can mix
// old and new fields; such a mix usually fails this test.
func (b BoxSphere) IsCoherent() bool {
	rSq := b.Radius * b.Radius
	xSq := b.Extent.X * b.Extent.X
	ySq := b.Extent.Y * b.Extent.Y
	zSq := b.Extent.Z * b.Extent.Z
	return 0.5*min(xSq, ySq, zSq) <= rSq && rSq <= 2*(xSq+ySq+zSq)
}
