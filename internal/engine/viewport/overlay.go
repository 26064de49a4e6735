package viewport

import (
	"github.com/Munormae/cryxtal-castor/internal/engine/gizmo"
	"github.com/Munormae/cryxtal-castor/internal/engine/mesh"
	"github.com/Munormae/cryxtal-castor/internal/engine/overlay"
	"github.com/Munormae/cryxtal-castor/pkg/math"
)

// ViewMode names the shading mode the renderer is in. The viewport only
// shows it in the hint line; the renderer owns the actual shading.
type ViewMode int

const (
	ModeSkeleton ViewMode = iota
	ModeLayerOpaque
	ModeLayerTransparent
	ModeMaterial
)

// Label returns the user-facing name of the mode.
func (m ViewMode) Label() string {
	switch m {
	case ModeSkeleton:
		return "Skeleton"
	case ModeLayerOpaque:
		return "Layer Opaque"
	case ModeLayerTransparent:
		return "Layer Transparent"
	case ModeMaterial:
		return "Material"
	default:
		return "Unknown"
	}
}

// OverlayParams bundles the per-frame inputs of PaintOverlay.
type OverlayParams struct {
	Rect   overlay.Rect
	Meshes []*mesh.Mesh

	// Selected is an index into Meshes, -1 for no selection.
	Selected int

	Mode       ViewMode
	SnapActive bool

	PointerPos math.Vec2
	HasPointer bool

	DrawGizmo bool
	ShowHint  bool
}

// PaintOverlay draws everything that sits on top of the 3D view: the
// viewport border, selection handles, the pivot marker, the orientation
// widget, the snap indicator and crosshair, and the key-binding hint line.
func (s *State) PaintOverlay(p overlay.Painter, params OverlayParams) {
	rect := params.Rect
	p.RectStroke(rect, 0, overlay.NewStroke(1, overlay.Gray(60)))

	basis := s.cameraBasis()
	scale := s.viewScale(rect)

	if params.Selected >= 0 && params.Selected < len(params.Meshes) {
		if m := params.Meshes[params.Selected]; m != nil {
			s.drawSelectionHandles(p, rect, basis, scale, m)
		}
	}

	s.pivot.Draw(p, func(point math.Vec3) (math.Vec2, float64, bool) {
		return s.project(point, rect, basis, scale)
	})

	gb := gizmoBasis(basis)
	if params.DrawGizmo {
		switch s.gizmoMode {
		case gizmo.ModeCube:
			hover := gizmo.ViewTarget{}
			if params.HasPointer {
				if pick, ok := gizmo.PickCube(params.PointerPos, rect, gb); ok {
					hover = pick.Target
				}
			}
			gizmo.DrawCube(p, rect, gb, hover)
		case gizmo.ModeAxis:
			hover := gizmo.AxisNone
			if params.HasPointer {
				if pick, ok := gizmo.PickAxis(params.PointerPos, rect, gb); ok {
					hover = pick.Target
				}
			}
			gizmo.DrawAxes(p, rect, gb, hover)
		}
	}

	gizmoRect := s.GizmoRect(rect)
	if params.HasPointer && rect.Contains(params.PointerPos) {
		var hit snapHit
		snapped := false
		if params.SnapActive && !gizmoRect.Contains(params.PointerPos) {
			hit, snapped = s.cachedSnap(params.PointerPos, rect, basis, scale, params.Meshes)
		}
		if snapped {
			drawSnapIndicator(p, hit)
		}
		drawCursor(p, params.PointerPos, snapped)
		if snapped {
			drawSnapLabel(p, hit)
		}
	}

	if !params.ShowHint {
		return
	}
	hint := "Left click/drag: select | Ctrl+middle-drag: rotate | Middle-drag/Right-drag: pan | Wheel: zoom | V: pick pivot | Ctrl+1..4: " +
		params.Mode.Label()
	if params.Mode == ModeMaterial {
		hint += " (n/a)"
	}
	hint += " | Esc: cancel tool"
	p.Text(
		math.Vec2{X: rect.Min.X + 8, Y: rect.Min.Y + 8},
		overlay.AlignLeftTop,
		hint,
		12,
		overlay.Gray(120),
	)
}

// drawSelectionHandles marks the selected mesh: a handle on every vertex
// that carries an edge, or on the bounds corners when the mesh has no
// edge set.
func (s *State) drawSelectionHandles(p overlay.Painter, rect overlay.Rect, basis cameraBasis, scale float64, m *mesh.Mesh) {
	const size = 6.0
	fill := overlay.RGBA(255, 230, 140, 40)
	stroke := overlay.NewStroke(1.4, overlay.RGB(255, 210, 90))

	if len(m.Edges) > 0 {
		used := make([]bool, len(m.Positions))
		for _, edge := range m.Edges {
			if edge[0] >= 0 && edge[0] < len(used) {
				used[edge[0]] = true
			}
			if edge[1] >= 0 && edge[1] < len(used) {
				used[edge[1]] = true
			}
		}
		for idx, point := range m.Positions {
			if !used[idx] {
				continue
			}
			pos, _, ok := s.project(point, rect, basis, scale)
			if !ok {
				continue
			}
			handle := overlay.RectFromCenterSize(pos, math.Vec2{X: size, Y: size})
			p.RectFilled(handle, 1, fill)
			p.RectStroke(handle, 1, stroke)
		}
		return
	}

	if m.Bounds == nil {
		return
	}
	for _, corner := range m.Bounds.Corners() {
		pos, _, ok := s.project(corner, rect, basis, scale)
		if !ok {
			continue
		}
		handle := overlay.RectFromCenterSize(pos, math.Vec2{X: size, Y: size})
		p.RectFilled(handle, 1, fill)
		p.RectStroke(handle, 1, stroke)
	}
}

// drawSnapIndicator paints the glyph for the snap kind at its screen
// position: a square for a vertex, a diamond for an edge midpoint, a
// triangle for a face center. Each glyph is drawn twice, a dark halo under
// the amber outline, so it reads on any background.
func drawSnapIndicator(p overlay.Painter, hit snapHit) {
	center := hit.screen
	const size = 22.0
	fill := overlay.RGBA(255, 210, 90, 90)
	stroke := overlay.NewStroke(2.2, overlay.RGB(255, 200, 90))
	halo := overlay.NewStroke(4.2, overlay.RGBA(15, 12, 8, 140))

	switch hit.kind {
	case snapVertex:
		rect := overlay.RectFromCenterSize(center, math.Vec2{X: size, Y: size})
		p.RectStroke(rect, 1, halo)
		p.RectFilled(rect, 1, fill)
		p.RectStroke(rect, 1, stroke)
	case snapEdgeMidpoint:
		r := float32(size * 0.6)
		points := []math.Vec2{
			center.Add(math.Vec2{Y: -r}),
			center.Add(math.Vec2{X: r}),
			center.Add(math.Vec2{Y: r}),
			center.Add(math.Vec2{X: -r}),
		}
		p.Polygon(points, overlay.RGBA(0, 0, 0, 0), halo)
		p.Polygon(points, fill, stroke)
	case snapFaceCenter:
		r := float32(size * 0.7)
		points := []math.Vec2{
			center.Add(math.Vec2{Y: -r}),
			center.Add(math.Vec2{X: r * 0.866, Y: r * 0.5}),
			center.Add(math.Vec2{X: -r * 0.866, Y: r * 0.5}),
		}
		p.Polygon(points, overlay.RGBA(0, 0, 0, 0), halo)
		p.Polygon(points, fill, stroke)
	}
}

// drawCursor paints the crosshair. It grows and turns amber when snapped.
func drawCursor(p overlay.Painter, center math.Vec2, snapped bool) {
	length := float32(27.0)
	boxSize := float32(6.75)
	shadow := overlay.RGBA(0, 0, 0, 140)
	main := overlay.Gray(220)
	if snapped {
		length = 39
		boxSize = 9
		shadow = overlay.RGBA(35, 24, 12, 160)
		main = overlay.RGB(255, 200, 90)
	}
	halfBox := boxSize * 0.5
	shadowStroke := overlay.NewStroke(2.2, shadow)
	stroke := overlay.NewStroke(1, main)

	segments := [4][2]math.Vec2{
		{center.Add(math.Vec2{X: -length}), center.Add(math.Vec2{X: -halfBox})},
		{center.Add(math.Vec2{X: halfBox}), center.Add(math.Vec2{X: length})},
		{center.Add(math.Vec2{Y: -length}), center.Add(math.Vec2{Y: -halfBox})},
		{center.Add(math.Vec2{Y: halfBox}), center.Add(math.Vec2{Y: length})},
	}
	for _, seg := range segments {
		p.LineSegment(seg[0], seg[1], shadowStroke)
	}
	for _, seg := range segments {
		p.LineSegment(seg[0], seg[1], stroke)
	}

	box := overlay.RectFromCenterSize(center, math.Vec2{X: boxSize, Y: boxSize})
	p.RectStroke(box, 0.6, overlay.NewStroke(1.6, overlay.RGBA(10, 8, 6, 170)))
	p.RectStroke(box, 0.6, overlay.NewStroke(0.9, main))
}

func drawSnapLabel(p overlay.Painter, hit snapHit) {
	pos := hit.screen.Add(math.Vec2{X: 12, Y: -12})
	p.Text(pos, overlay.AlignLeftTop, snapLabel(hit.kind), 12, overlay.RGB(255, 220, 170))
}
