package overlay

import "github.com/Munormae/cryxtal-castor/pkg/math"

// Painter is the drawing capability set the viewport core emits through.
// Implementations translate these calls into an actual rendering backend;
// the core has no other rendering dependency.
type Painter interface {
	RectFilled(rect Rect, radius float32, fill Color)
	RectStroke(rect Rect, radius float32, stroke Stroke)
	LineSegment(start, end math.Vec2, stroke Stroke)
	CircleFilled(center math.Vec2, radius float32, fill Color)
	CircleStroke(center math.Vec2, radius float32, stroke Stroke)
	Polygon(points []math.Vec2, fill Color, stroke Stroke)
	Text(pos math.Vec2, align Align, text string, size float32, color Color)
}

// ShapeKind discriminates recorded shapes.
type ShapeKind int

// Recorded shape kinds.
const (
	ShapeRect ShapeKind = iota
	ShapeLine
	ShapeCircle
	ShapePolygon
	ShapeText
)

// Shape is one recorded drawing command.
type Shape struct {
	Kind   ShapeKind
	Rect   Rect
	Start  math.Vec2
	End    math.Vec2
	Center math.Vec2
	Points []math.Vec2
	Radius float32
	Filled bool
	Fill   Color
	Stroke Stroke
	Align  Align
	Text   string
	Size   float32
}

// Recorder is a Painter that captures shapes instead of rendering them,
// for tests and headless use.
type Recorder struct {
	Shapes []Shape
}

// Reset drops all recorded shapes.
func (r *Recorder) Reset() {
	r.Shapes = r.Shapes[:0]
}

// Count returns the number of recorded shapes of the given kind.
func (r *Recorder) Count(kind ShapeKind) int {
	n := 0
	for _, s := range r.Shapes {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// RectFilled records a filled rectangle.
func (r *Recorder) RectFilled(rect Rect, radius float32, fill Color) {
	r.Shapes = append(r.Shapes, Shape{Kind: ShapeRect, Rect: rect, Radius: radius, Filled: true, Fill: fill})
}

// RectStroke records a stroked rectangle.
func (r *Recorder) RectStroke(rect Rect, radius float32, stroke Stroke) {
	r.Shapes = append(r.Shapes, Shape{Kind: ShapeRect, Rect: rect, Radius: radius, Stroke: stroke})
}

// LineSegment records a line.
func (r *Recorder) LineSegment(start, end math.Vec2, stroke Stroke) {
	r.Shapes = append(r.Shapes, Shape{Kind: ShapeLine, Start: start, End: end, Stroke: stroke})
}

// CircleFilled records a filled circle.
func (r *Recorder) CircleFilled(center math.Vec2, radius float32, fill Color) {
	r.Shapes = append(r.Shapes, Shape{Kind: ShapeCircle, Center: center, Radius: radius, Filled: true, Fill: fill})
}

// CircleStroke records a stroked circle.
func (r *Recorder) CircleStroke(center math.Vec2, radius float32, stroke Stroke) {
	r.Shapes = append(r.Shapes, Shape{Kind: ShapeCircle, Center: center, Radius: radius, Stroke: stroke})
}

// Polygon records a polygon.
func (r *Recorder) Polygon(points []math.Vec2, fill Color, stroke Stroke) {
	copied := make([]math.Vec2, len(points))
	copy(copied, points)
	r.Shapes = append(r.Shapes, Shape{Kind: ShapePolygon, Points: copied, Filled: true, Fill: fill, Stroke: stroke})
}

// Text records a text command.
func (r *Recorder) Text(pos math.Vec2, align Align, text string, size float32, color Color) {
	r.Shapes = append(r.Shapes, Shape{Kind: ShapeText, Start: pos, Align: align, Text: text, Size: size, Fill: color})
}
