package gizmo

import (
	"sort"

	"github.com/Munormae/cryxtal-castor/internal/engine/overlay"
	"github.com/Munormae/cryxtal-castor/pkg/math"
)

// AxisTarget identifies one of the six signed principal directions. The
// zero value means "no target".
type AxisTarget int

// Axis targets.
const (
	AxisNone AxisTarget = iota
	AxisPosX
	AxisNegX
	AxisPosY
	AxisNegY
	AxisPosZ
	AxisNegZ
)

// AxisPick is a resolved triad pick: the axis and the camera forward
// direction that looks back along it.
type AxisPick struct {
	Target  AxisTarget
	Forward math.Vec3
}

const axisLength = 0.9

var axisTargets = [6]AxisTarget{AxisPosX, AxisNegX, AxisPosY, AxisNegY, AxisPosZ, AxisNegZ}

var (
	axisColorX   = overlay.RGB(250, 102, 104)
	axisColorY   = overlay.RGB(17, 235, 107)
	axisColorZ   = overlay.RGB(102, 137, 239)
	axisColorNeg = overlay.RGBA(198, 199, 194, 210)
)

// AxisDirection returns the world direction of an axis target.
func AxisDirection(target AxisTarget) math.Vec3 {
	switch target {
	case AxisPosX:
		return math.Vec3{X: 1}
	case AxisNegX:
		return math.Vec3{X: -1}
	case AxisPosY:
		return math.Vec3{Y: 1}
	case AxisNegY:
		return math.Vec3{Y: -1}
	case AxisPosZ:
		return math.Vec3{Z: 1}
	case AxisNegZ:
		return math.Vec3{Z: -1}
	default:
		return math.Vec3{}
	}
}

func axisColor(target AxisTarget) overlay.Color {
	switch target {
	case AxisPosX:
		return axisColorX
	case AxisPosY:
		return axisColorY
	case AxisPosZ:
		return axisColorZ
	default:
		return axisColorNeg // negative axes render muted
	}
}

type projectedAxis struct {
	target AxisTarget
	pos    math.Vec2
	depth  float64
	color  overlay.Color
}

func projectAxis(dir math.Vec3, basis ViewBasis, center math.Vec2, scale float64) (math.Vec2, float64) {
	view := math.Vec3{
		X: dir.Dot(basis.Right),
		Y: dir.Dot(basis.Up),
		Z: dir.Dot(basis.Forward),
	}.Scale(axisLength)
	pos := math.Vec2{
		X: center.X + float32(view.X*scale),
		Y: center.Y - float32(view.Y*scale),
	}
	return pos, -view.Z
}

// DrawAxes paints the axis-triad widget: a line from center plus an end
// bulb per signed axis, depth sorted so near axes draw over far ones.
func DrawAxes(p overlay.Painter, viewport overlay.Rect, basis ViewBasis, hover AxisTarget) {
	rect := WidgetRect(viewport)
	size := minDim(rect)
	center := rect.Center()
	radius := size * 0.5

	p.CircleFilled(center, radius, overlay.RGBA(20, 22, 28, 200))
	p.CircleStroke(center, radius, overlay.NewStroke(1, overlay.RGBA(90, 95, 100, 220)))

	axisScale := float64(size) * 0.35
	headRadius := clamp32(size*0.07, 4.5, 8.5)
	lineWidth := clamp32(size*0.03, 1.6, 3.2)

	axes := make([]projectedAxis, 0, len(axisTargets))
	for _, target := range axisTargets {
		pos, depth := projectAxis(AxisDirection(target), basis, center, axisScale)
		axes = append(axes, projectedAxis{target: target, pos: pos, depth: depth, color: axisColor(target)})
	}
	sort.Slice(axes, func(i, j int) bool { return axes[i].depth < axes[j].depth })

	for _, axis := range axes {
		stroke := overlay.NewStroke(lineWidth, axis.color)
		if hover == axis.target {
			stroke = overlay.NewStroke(lineWidth*1.35, axis.color.Mix(overlay.RGB(255, 255, 255), 0.25))
		}
		p.LineSegment(center, axis.pos, stroke)
	}

	for _, axis := range axes {
		color := axis.color
		bulb := headRadius
		if hover == axis.target {
			color = color.Mix(overlay.RGB(255, 255, 255), 0.3)
			bulb = headRadius * 1.4
		}
		p.CircleFilled(axis.pos, bulb, color)
		p.CircleStroke(axis.pos, bulb, overlay.NewStroke(1, overlay.RGBA(10, 10, 10, 180)))
	}
}

// PickAxis hit-tests a cursor position against the triad bulbs. Depth ties
// are broken by whichever bulb is closer to the cursor.
func PickAxis(pos math.Vec2, viewport overlay.Rect, basis ViewBasis) (AxisPick, bool) {
	rect := WidgetRect(viewport)
	if !rect.Contains(pos) {
		return AxisPick{}, false
	}

	size := minDim(rect)
	center := rect.Center()
	if center.Distance(pos) > size*0.5 {
		return AxisPick{}, false
	}

	axisScale := float64(size) * 0.35
	headRadius := clamp32(size*0.07, 4.5, 8.5)
	pickRadius := headRadius * 1.35

	best := AxisNone
	var bestDepth float64
	var bestDist float32
	for _, target := range axisTargets {
		axisPos, depth := projectAxis(AxisDirection(target), basis, center, axisScale)
		dist := pos.Distance(axisPos)
		if dist > pickRadius {
			continue
		}
		if best == AxisNone || depth > bestDepth+1e-6 ||
			(absf64(depth-bestDepth) <= 1e-6 && dist < bestDist) {
			best, bestDepth, bestDist = target, depth, dist
		}
	}
	if best == AxisNone {
		return AxisPick{}, false
	}
	return AxisPick{Target: best, Forward: ViewDirection(AxisDirection(best))}, true
}

func absf64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
