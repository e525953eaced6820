// Package geom provides the small amount of 3D vector math needed to reason
// about doorway orientation.
package geom

import (
	"fmt"
	"math"
)

// approxEqualSqrEpsilon is the squared-distance tolerance used by ApproxEqual.
const approxEqualSqrEpsilon = 1e-10

// Vec3 is a 3D vector. The zero value is the zero vector.
type Vec3 struct {
	X, Y, Z float64
}

// Common axes.
var (
	Zero    = Vec3{}
	Up      = Vec3{0, 1, 0}
	Down    = Vec3{0, -1, 0}
	Forward = Vec3{0, 0, 1}
	Back    = Vec3{0, 0, -1}
	Right   = Vec3{1, 0, 0}
	Left    = Vec3{-1, 0, 0}
)

// V is shorthand for Vec3{x, y, z}.
func V(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// FromSlice builds a Vec3 from a 3-element slice.
//
// Postcondition: returns an error unless len(s) == 3.
func FromSlice(s []float64) (Vec3, error) {
	if len(s) != 3 {
		return Vec3{}, fmt.Errorf("vector must have 3 components, got %d", len(s))
	}
	return Vec3{s[0], s[1], s[2]}, nil
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// SqrLen returns the squared length of v.
func (v Vec3) SqrLen() float64 { return v.Dot(v) }

// Len returns the length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.SqrLen()) }

// Normalized returns v scaled to unit length, or the zero vector if v is
// (nearly) zero.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Zero
	}
	return v.Scale(1 / l)
}

// IsZero reports whether v is (nearly) the zero vector.
func (v Vec3) IsZero() bool { return v.SqrLen() < approxEqualSqrEpsilon }

// Angle returns the unsigned angle between v and o in degrees, in [0, 180].
// The angle involving a zero vector is 0.
func (v Vec3) Angle(o Vec3) float64 {
	denom := math.Sqrt(v.SqrLen() * o.SqrLen())
	if denom < 1e-15 {
		return 0
	}
	cos := v.Dot(o) / denom
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// ApproxEqual reports whether v and o differ by less than a tiny tolerance.
// Vectors that went through rotation compare equal under it.
func (v Vec3) ApproxEqual(o Vec3) bool {
	return v.Sub(o).SqrLen() < approxEqualSqrEpsilon
}

// RotateAbout rotates v by degrees around axis (right-handed, Rodrigues).
//
// Precondition: axis must be non-zero.
func (v Vec3) RotateAbout(axis Vec3, degrees float64) Vec3 {
	k := axis.Normalized()
	rad := degrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	// v*cos + (k×v)*sin + k*(k·v)*(1-cos)
	return v.Scale(cos).
		Add(k.Cross(v).Scale(sin)).
		Add(k.Scale(k.Dot(v) * (1 - cos)))
}

// String returns "(x, y, z)".
func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
