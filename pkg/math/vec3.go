// Package math provides math types and functions for the viewport engine.
package math

import "math"

// Vec3 is a double-precision 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector. A near-zero vector normalizes to the
// zero vector, never NaN.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l <= epsilon {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

const epsilon = 2.220446049250313e-16 // IEEE 754 double machine epsilon

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

// Min returns the component-wise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{math.Min(v.X, other.X), math.Min(v.Y, other.Y), math.Min(v.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{math.Max(v.X, other.X), math.Max(v.Y, other.Y), math.Max(v.Z, other.Z)}
}

// MaxComponent returns the largest absolute component value.
func (v Vec3) MaxComponent() float64 {
	return math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
}

// Component returns the component selected by axis (0 = X, 1 = Y, 2 = Z).
func (v Vec3) Component(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// RotateAround rotates point about an axis through origin by angle radians
// (Rodrigues rotation). The axis does not need to be normalized.
func RotateAround(point, origin, axis Vec3, angle float64) Vec3 {
	n := axis.Normalize()
	rel := point.Sub(origin)
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	rotated := rel.Scale(cos).
		Add(n.Cross(rel).Scale(sin)).
		Add(n.Scale(n.Dot(rel) * (1.0 - cos)))
	return origin.Add(rotated)
}
