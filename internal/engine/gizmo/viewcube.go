// Package gizmo implements the on-screen orientation widgets: a view-cube
// with pickable faces, edges, and corners, and an axis triad. Both project
// themselves through the current camera basis into a fixed square anchored
// to the viewport's top-right corner and report snap-to-view directions.
package gizmo

import (
	"sort"

	"github.com/Munormae/cryxtal-castor/internal/engine/overlay"
	"github.com/Munormae/cryxtal-castor/internal/engine/picking"
	"github.com/Munormae/cryxtal-castor/pkg/math"
)

// Mode selects the active widget.
type Mode int

// Widget modes.
const (
	ModeCube Mode = iota
	ModeAxis
)

// Face identifies one of the six cube faces.
type Face int

// Cube faces.
const (
	FaceTop Face = iota
	FaceBottom
	FaceLeft
	FaceRight
	FaceFront
	FaceBack
)

// TargetKind discriminates view-cube sub-parts.
type TargetKind int

// View-cube target kinds. The zero value means "no target".
const (
	TargetNone TargetKind = iota
	TargetFace
	TargetEdge
	TargetCorner
)

// ViewTarget identifies a view-cube sub-part independent of mesh topology,
// giving stable hover and pick identity. Face is valid for TargetFace,
// Index for TargetEdge (0..11) and TargetCorner (0..7).
type ViewTarget struct {
	Kind  TargetKind
	Face  Face
	Index int
}

// ViewPick is a resolved cube pick: the sub-part and its outward normal.
type ViewPick struct {
	Target ViewTarget
	Normal math.Vec3
}

// ViewBasis is the camera frame the widgets project through.
type ViewBasis struct {
	Right   math.Vec3
	Up      math.Vec3
	Forward math.Vec3
}

// Projection scale constants calibrated to this module's rendered cube
// proportions; face, edge, and corner picking use slightly different cube
// scales because the drawn cube reads as bevelled.
const (
	cubePickInset  = 0.85
	cubePickRadius = 0.6706
	faceScale      = 0.7945
	edgeScale      = 0.8757
	cornerScale    = 0.7011
)

// tieBreak is the screen-distance window inside which depth decides a pick.
const tieBreak = 0.1

// WidgetRect returns the square the active widget occupies: 22% of the
// smaller viewport dimension, clamped to [70, 120] px, 12 px padding from
// the top-right corner.
func WidgetRect(viewport overlay.Rect) overlay.Rect {
	size := minDim(viewport) * 0.22
	if size < 70 {
		size = 70
	} else if size > 120 {
		size = 120
	}
	const padding = 12
	return overlay.RectFromMinSize(
		math.Vec2{X: viewport.Max.X - padding - size, Y: viewport.Min.Y + padding},
		math.Vec2{X: size, Y: size},
	)
}

// cube geometry: 8 corners of a unit cube, 12 edges as corner index pairs.

func cubeVertices(scale float64) [8]math.Vec3 {
	h := 0.5 * scale
	return [8]math.Vec3{
		{X: -h, Y: -h, Z: -h},
		{X: h, Y: -h, Z: -h},
		{X: h, Y: h, Z: -h},
		{X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h},
		{X: h, Y: -h, Z: h},
		{X: h, Y: h, Z: h},
		{X: -h, Y: h, Z: h},
	}
}

var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

type faceDef struct {
	face    Face
	label   string
	normal  math.Vec3
	indices [4]int
	base    overlay.Color
}

var faceDefs = [6]faceDef{
	{FaceFront, "Front", math.Vec3{Y: -1}, [4]int{0, 1, 5, 4}, overlay.RGB(226, 227, 222)},
	{FaceBack, "Back", math.Vec3{Y: 1}, [4]int{3, 2, 6, 7}, overlay.RGB(226, 227, 222)},
	{FaceRight, "Right", math.Vec3{X: 1}, [4]int{1, 2, 6, 5}, overlay.RGB(226, 227, 222)},
	{FaceLeft, "Left", math.Vec3{X: -1}, [4]int{0, 3, 7, 4}, overlay.RGB(226, 227, 222)},
	{FaceTop, "Top", math.Vec3{Z: 1}, [4]int{4, 5, 6, 7}, overlay.RGB(236, 238, 234)},
	{FaceBottom, "Bottom", math.Vec3{Z: -1}, [4]int{0, 1, 2, 3}, overlay.RGB(212, 214, 209)},
}

// FaceNormal returns a face's outward normal.
func FaceNormal(face Face) math.Vec3 {
	for _, def := range faceDefs {
		if def.face == face {
			return def.normal
		}
	}
	return math.Vec3{}
}

// ViewDirection converts a picked part's outward normal into the camera
// forward direction that looks at the part.
func ViewDirection(normal math.Vec3) math.Vec3 {
	return normal.Neg()
}

type projectedCube struct {
	view   [8]math.Vec3 // camera-space coordinates
	points [8]math.Vec2 // screen positions
}

func cubePickScale(rect overlay.Rect) float64 {
	return float64(minDim(rect)) * 0.5 * cubePickInset / cubePickRadius
}

func projectCube(rect overlay.Rect, basis ViewBasis, cubeScale float64) projectedCube {
	vertices := cubeVertices(cubeScale)
	center := rect.Center()
	scale := cubePickScale(rect)
	var out projectedCube
	for i, v := range vertices {
		view := math.Vec3{X: v.Dot(basis.Right), Y: v.Dot(basis.Up), Z: v.Dot(basis.Forward)}
		out.view[i] = view
		out.points[i] = math.Vec2{
			X: center.X + float32(view.X*scale),
			Y: center.Y - float32(view.Y*scale),
		}
	}
	return out
}

type projectedFace struct {
	face   Face
	label  string
	points [4]math.Vec2
	center math.Vec2
	depth  float64
	color  overlay.Color
}

// visibleFaces projects the camera-facing faces, shaded by facing ratio and
// sorted back to front by projected depth.
func visibleFaces(projected projectedCube, basis ViewBasis) []projectedFace {
	var faces []projectedFace
	for _, def := range faceDefs {
		facing := -def.normal.Dot(basis.Forward)
		if facing <= 0 {
			continue
		}
		var points [4]math.Vec2
		depth := 0.0
		var cx, cy float32
		for i, idx := range def.indices {
			depth += projected.view[idx].Z
			points[i] = projected.points[idx]
			cx += points[i].X
			cy += points[i].Y
		}
		faces = append(faces, projectedFace{
			face:   def.face,
			label:  def.label,
			points: points,
			center: math.Vec2{X: cx / 4, Y: cy / 4},
			depth:  -(depth / 4),
			color:  def.base.Shade(0.4 + 0.6*clamp01(facing)),
		})
	}
	sort.Slice(faces, func(i, j int) bool { return faces[i].depth < faces[j].depth })
	return faces
}

// DrawCube paints the view-cube widget with the given hover highlight.
func DrawCube(p overlay.Painter, viewport overlay.Rect, basis ViewBasis, hover ViewTarget) {
	rect := WidgetRect(viewport)
	p.RectFilled(rect, 6, overlay.RGBA(20, 22, 28, 200))
	p.RectStroke(rect, 6, overlay.NewStroke(1, overlay.Gray(70)))

	projected := projectCube(rect, basis, faceScale)
	for _, face := range visibleFaces(projected, basis) {
		fill := face.color
		stroke := overlay.NewStroke(1, overlay.Gray(30))
		if hover.Kind == TargetFace && hover.Face == face.face {
			fill = face.color.Mix(faceHoverTint(face.face), 0.65)
			stroke = overlay.NewStroke(1.5, faceHoverTint(face.face))
		}
		p.Polygon(face.points[:], fill, stroke)
		p.Text(face.center, overlay.AlignCenter, face.label, 10, overlay.Gray(20))
	}

	if hover.Kind == TargetEdge && hover.Index >= 0 && hover.Index < len(cubeEdges) {
		edge := cubeEdges[hover.Index]
		a := projected.points[edge[0]]
		b := projected.points[edge[1]]
		p.LineSegment(a, b, overlay.NewStroke(4, overlay.RGB(255, 225, 150)))
		p.LineSegment(a, b, overlay.NewStroke(2, overlay.RGB(255, 170, 90)))
	}

	if hover.Kind == TargetCorner && hover.Index >= 0 && hover.Index < 8 {
		pos := projected.points[hover.Index]
		p.CircleFilled(pos, 4.8, overlay.RGB(255, 225, 150))
		p.CircleStroke(pos, 4.8, overlay.NewStroke(1.2, overlay.RGB(255, 170, 90)))
	}
}

// PickCube hit-tests a cursor position against the cube's sub-parts.
// Precedence: corner, then edge, then face; within a class, distance wins
// unless inside the tie window, where the more camera-facing part wins.
func PickCube(pos math.Vec2, viewport overlay.Rect, basis ViewBasis) (ViewPick, bool) {
	rect := WidgetRect(viewport)
	if !rect.Contains(pos) {
		return ViewPick{}, false
	}
	cube := cubeVertices(1.0)

	if corner, ok := pickCorner(pos, rect, basis); ok {
		return ViewPick{
			Target: ViewTarget{Kind: TargetCorner, Index: corner},
			Normal: cube[corner].Normalize(),
		}, true
	}

	if edge, ok := pickEdge(pos, rect, basis); ok {
		def := cubeEdges[edge]
		normal := cube[def[0]].Add(cube[def[1]]).Scale(0.5)
		return ViewPick{
			Target: ViewTarget{Kind: TargetEdge, Index: edge},
			Normal: normal.Normalize(),
		}, true
	}

	projected := projectCube(rect, basis, faceScale)
	if face, ok := pickFace(pos, visibleFaces(projected, basis)); ok {
		return ViewPick{
			Target: ViewTarget{Kind: TargetFace, Face: face},
			Normal: FaceNormal(face),
		}, true
	}

	return ViewPick{}, false
}

func pickCorner(pos math.Vec2, rect overlay.Rect, basis ViewBasis) (int, bool) {
	projected := projectCube(rect, basis, cornerScale)
	radius := clamp32(minDim(rect)*0.1, 7, 12)

	best := -1
	var bestDist float32
	var bestDepth float64
	for idx, point := range projected.points {
		dist := pos.Distance(point)
		if dist > radius {
			continue
		}
		depth := -projected.view[idx].Z
		if depth <= 0 {
			continue // corner faces away from the camera
		}
		if best < 0 || dist < bestDist-tieBreak ||
			(abs32(dist-bestDist) <= tieBreak && depth > bestDepth) {
			best, bestDist, bestDepth = idx, dist, depth
		}
	}
	return best, best >= 0
}

func pickEdge(pos math.Vec2, rect overlay.Rect, basis ViewBasis) (int, bool) {
	projected := projectCube(rect, basis, edgeScale)
	threshold := clamp32(minDim(rect)*0.06, 6, 9)

	best := -1
	var bestDist float32
	var bestDepth float64
	for idx, def := range cubeEdges {
		a := projected.points[def[0]]
		b := projected.points[def[1]]
		dist := picking.PointToSegmentDistance(pos, a, b)
		if dist > threshold {
			continue
		}
		depth := -(projected.view[def[0]].Z + projected.view[def[1]].Z) * 0.5
		if depth <= 0 {
			continue
		}
		if best < 0 || dist < bestDist-tieBreak ||
			(abs32(dist-bestDist) <= tieBreak && depth > bestDepth) {
			best, bestDist, bestDepth = idx, dist, depth
		}
	}
	return best, best >= 0
}

// pickFace tests the point against each visible face quad (two-triangle
// decomposition); the nearest unoccluded face wins.
func pickFace(pos math.Vec2, faces []projectedFace) (Face, bool) {
	best := -1
	var bestDepth float64
	for i, face := range faces {
		inside := picking.PointInTriangle(pos, face.points[0], face.points[1], face.points[2]) ||
			picking.PointInTriangle(pos, face.points[0], face.points[2], face.points[3])
		if !inside {
			continue
		}
		if best < 0 || face.depth > bestDepth {
			best, bestDepth = i, face.depth
		}
	}
	if best < 0 {
		return 0, false
	}
	return faces[best].face, true
}

func faceHoverTint(face Face) overlay.Color {
	switch face {
	case FaceFront, FaceBack:
		return overlay.RGB(102, 137, 239)
	case FaceRight, FaceLeft:
		return overlay.RGB(17, 235, 107)
	default:
		return overlay.RGB(250, 102, 104)
	}
}

func minDim(rect overlay.Rect) float32 {
	w, h := rect.Width(), rect.Height()
	if w < h {
		return w
	}
	return h
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
