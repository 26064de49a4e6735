// Package overlay defines the 2D immediate-mode drawing contract the
// viewport core emits its frame output through, plus the screen-space
// geometry and style types that contract uses. A recording implementation
// allows overlay assertions in tests without a rendering backend.
package overlay

import "github.com/Munormae/cryxtal-castor/pkg/math"

// Rect is a screen-space axis-aligned rectangle.
type Rect struct {
	Min math.Vec2
	Max math.Vec2
}

// RectFromMinSize builds a rectangle from its top-left corner and size.
func RectFromMinSize(min, size math.Vec2) Rect {
	return Rect{Min: min, Max: min.Add(size)}
}

// RectFromCenterSize builds a rectangle centered on a point.
func RectFromCenterSize(center, size math.Vec2) Rect {
	half := size.Scale(0.5)
	return Rect{Min: center.Sub(half), Max: center.Add(half)}
}

// RectFromPoints builds the rectangle enclosing two arbitrary corners.
func RectFromPoints(a, b math.Vec2) Rect {
	return Rect{
		Min: math.Vec2{X: min32(a.X, b.X), Y: min32(a.Y, b.Y)},
		Max: math.Vec2{X: max32(a.X, b.X), Y: max32(a.Y, b.Y)},
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint.
func (r Rect) Center() math.Vec2 {
	return math.Vec2{X: (r.Min.X + r.Max.X) * 0.5, Y: (r.Min.Y + r.Max.Y) * 0.5}
}

// Contains reports whether the point lies inside the rectangle (borders
// inclusive).
func (r Rect) Contains(p math.Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether the rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.Min.X <= other.Max.X && r.Max.X >= other.Min.X &&
		r.Min.Y <= other.Max.Y && r.Max.Y >= other.Min.Y
}

// Expand grows the rectangle by pad on every side.
func (r Rect) Expand(pad float32) Rect {
	return Rect{
		Min: math.Vec2{X: r.Min.X - pad, Y: r.Min.Y - pad},
		Max: math.Vec2{X: r.Max.X + pad, Y: r.Max.Y + pad},
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
