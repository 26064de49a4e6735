// Package picking provides ray casting and intersection primitives shared
// by the scene mesh index and the viewport.
package picking

import (
	gomath "math"

	"github.com/Munormae/cryxtal-castor/pkg/math"
)

// Epsilon below which determinants and denominators are treated as
// degenerate ("no intersection").
const Epsilon = 1.0e-9

// Ray is a ray in world space.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // normalized
}

// IntersectTriangle tests the ray against a triangle (Möller–Trumbore).
// Returns the hit distance along the ray, or false for a miss or a
// near-parallel/degenerate configuration.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (float64, bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	pvec := r.Direction.Cross(edge2)
	det := edge1.Dot(pvec)
	if gomath.Abs(det) < Epsilon {
		return 0, false
	}
	invDet := 1.0 / det
	tvec := r.Origin.Sub(a)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	qvec := tvec.Cross(edge1)
	v := r.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := edge2.Dot(qvec) * invDet
	if t <= Epsilon {
		return 0, false
	}
	return t, true
}

// IntersectPlane intersects the ray with the plane through planePoint with
// the given normal. Returns false when the ray is parallel to the plane or
// the hit lies behind the origin.
func (r Ray) IntersectPlane(planePoint, planeNormal math.Vec3) (math.Vec3, bool) {
	denom := r.Direction.Dot(planeNormal)
	if gomath.Abs(denom) <= Epsilon {
		return math.Vec3{}, false
	}
	t := planePoint.Sub(r.Origin).Dot(planeNormal) / denom
	if t <= 0 {
		return math.Vec3{}, false
	}
	return r.Origin.Add(r.Direction.Scale(t)), true
}

// IntersectAABBInterval intersects the ray with an axis-aligned box using
// the slab method. maxT caps the interval so callers can prune boxes that
// cannot beat an already-found hit. Returns the entry/exit distances.
func (r Ray) IntersectAABBInterval(min, max math.Vec3, maxT float64) (float64, float64, bool) {
	tmin := 0.0
	tmax := maxT

	axis := func(origin, dir, lo, hi float64) bool {
		if gomath.Abs(dir) <= Epsilon {
			return origin >= lo && origin <= hi
		}
		inv := 1.0 / dir
		t1 := (lo - origin) * inv
		t2 := (hi - origin) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		return tmax >= tmin
	}

	if !axis(r.Origin.X, r.Direction.X, min.X, max.X) {
		return 0, 0, false
	}
	if !axis(r.Origin.Y, r.Direction.Y, min.Y, max.Y) {
		return 0, 0, false
	}
	if !axis(r.Origin.Z, r.Direction.Z, min.Z, max.Z) {
		return 0, 0, false
	}
	if tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// PointInTriangle reports whether a 2D point lies inside (or on the border
// of) the triangle a, b, c, regardless of winding.
func PointInTriangle(p, a, b, c math.Vec2) bool {
	d1 := cross2(b.Sub(a), p.Sub(a))
	d2 := cross2(c.Sub(b), p.Sub(b))
	d3 := cross2(a.Sub(c), p.Sub(c))

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// PointToSegmentDistance returns the distance from p to the 2D segment ab.
func PointToSegmentDistance(p, a, b math.Vec2) float32 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	denom := ab.Dot(ab)
	if denom < 1.0e-6 {
		denom = 1.0e-6
	}
	t := ap.Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := a.Add(ab.Scale(t))
	return p.Distance(proj)
}

func cross2(a, b math.Vec2) float32 {
	return a.X*b.Y - a.Y*b.X
}
