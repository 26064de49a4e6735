package viewport

import (
	stdmath "math"
	"testing"

	"github.com/Munormae/cryxtal-castor/internal/engine/mesh"
	"github.com/Munormae/cryxtal-castor/internal/engine/overlay"
	gmath "github.com/Munormae/cryxtal-castor/pkg/math"
)

func triangle(a, b, c gmath.Vec3) *mesh.Mesh {
	return mesh.New([]gmath.Vec3{a, b, c}, [][]int{{0, 1, 2}})
}

func topDown() *State {
	s := New()
	s.setView(gmath.Vec3{Z: -1})
	return s
}

func TestPickElementDefaultPose(t *testing.T) {
	s := New()
	rect := viewRect()
	m := box(gmath.Vec3{X: -50, Y: -100, Z: -150}, gmath.Vec3{X: 50, Y: 100, Z: 150})

	idx, point, ok := s.PickElement(rect.Center(), rect, []*mesh.Mesh{m})
	if !ok {
		t.Fatal("ray through the box center missed")
	}
	if idx != 0 {
		t.Fatalf("picked mesh %d, want 0", idx)
	}

	const eps = 1e-6
	if stdmath.Abs(point.X) > 50+eps || stdmath.Abs(point.Y) > 100+eps || stdmath.Abs(point.Z) > 150+eps {
		t.Fatalf("hit point outside the box: %+v", point)
	}
	onFace := stdmath.Abs(stdmath.Abs(point.X)-50) <= eps ||
		stdmath.Abs(stdmath.Abs(point.Y)-100) <= eps ||
		stdmath.Abs(stdmath.Abs(point.Z)-150) <= eps
	if !onFace {
		t.Fatalf("hit point not on the box surface: %+v", point)
	}
	if d := point.Sub(s.CameraPosition()).Length(); d >= 500 {
		t.Fatalf("hit the far side: distance %v", d)
	}
}

func TestPickElementNearestWins(t *testing.T) {
	s := topDown()
	rect := viewRect()
	lower := box(gmath.Vec3{X: -10, Y: -10, Z: 0}, gmath.Vec3{X: 10, Y: 10, Z: 10})
	upper := box(gmath.Vec3{X: -10, Y: -10, Z: 20}, gmath.Vec3{X: 10, Y: 10, Z: 30})

	idx, point, ok := s.PickElement(rect.Center(), rect, []*mesh.Mesh{lower, upper})
	if !ok {
		t.Fatal("stacked boxes not hit")
	}
	if idx != 1 {
		t.Fatalf("picked mesh %d, want the upper box (1)", idx)
	}
	if stdmath.Abs(point.Z-30) > 1e-9 {
		t.Fatalf("hit z = %v, want the upper box top at 30", point.Z)
	}
}

func TestPickElementRect(t *testing.T) {
	s := topDown()
	rect := viewRect()
	shallow := box(gmath.Vec3{}, gmath.Vec3{X: 20, Y: 20, Z: 10})
	tall := box(gmath.Vec3{X: 100}, gmath.Vec3{X: 120, Y: 20, Z: 50})
	meshes := []*mesh.Mesh{shallow, tall}

	onlyShallow := overlay.RectFromPoints(gmath.Vec2{X: 395, Y: 275}, gmath.Vec2{X: 425, Y: 305})
	if idx, ok := s.PickElementRect(rect, onlyShallow, meshes); !ok || idx != 0 {
		t.Fatalf("selection over first box: idx %d ok %v, want 0 true", idx, ok)
	}

	both := overlay.RectFromPoints(gmath.Vec2{X: 395, Y: 270}, gmath.Vec2{X: 530, Y: 305})
	if idx, ok := s.PickElementRect(rect, both, meshes); !ok || idx != 1 {
		t.Fatalf("selection over both boxes: idx %d ok %v, want the taller (nearer) box 1", idx, ok)
	}

	degenerate := overlay.RectFromMinSize(gmath.Vec2{X: 390, Y: 270}, gmath.Vec2{Y: 50})
	if _, ok := s.PickElementRect(rect, degenerate, meshes); ok {
		t.Fatal("zero-width selection picked something")
	}
}

func TestPickPointPlaneFallback(t *testing.T) {
	s := topDown()
	rect := viewRect()
	pos := rect.Center().Add(gmath.Vec2{X: 10})

	point, ok := s.PickPoint(pos, rect, nil, true)
	if !ok {
		t.Fatal("plane fallback failed")
	}
	scale := s.viewScale(rect)
	want := gmath.Vec3{X: 10 / scale}
	if !vec3Near(point, want, 1e-9) {
		t.Fatalf("plane point = %+v, want %+v", point, want)
	}
}

func TestPickPointSnapsToVertex(t *testing.T) {
	s := topDown()
	rect := viewRect()
	m := triangle(gmath.Vec3{}, gmath.Vec3{X: 30}, gmath.Vec3{Y: 30})

	screen, ok := s.ProjectPoint(gmath.Vec3{}, rect)
	if !ok {
		t.Fatal("vertex did not project")
	}
	pos := screen.Add(gmath.Vec2{X: 3})

	point, ok := s.PickPoint(pos, rect, []*mesh.Mesh{m}, true)
	if !ok {
		t.Fatal("snap pick failed")
	}
	if point != (gmath.Vec3{}) {
		t.Fatalf("snapped point = %+v, want the exact vertex", point)
	}
}

func TestSnapKindBeatsDistanceTie(t *testing.T) {
	s := topDown()
	rect := viewRect()
	// First mesh contributes a face center at (10,10,0), second a vertex at
	// the same world point. Equal screen distance, so the vertex must win.
	faceMesh := triangle(gmath.Vec3{}, gmath.Vec3{X: 30}, gmath.Vec3{Y: 30})
	vertMesh := triangle(gmath.Vec3{X: 10, Y: 10}, gmath.Vec3{X: 110, Y: 10}, gmath.Vec3{X: 10, Y: 110})

	pos, ok := s.ProjectPoint(gmath.Vec3{X: 10, Y: 10}, rect)
	if !ok {
		t.Fatal("snap target did not project")
	}

	hit, ok := s.pickSnap(pos, rect, s.cameraBasis(), s.viewScale(rect), []*mesh.Mesh{faceMesh, vertMesh})
	if !ok {
		t.Fatal("no snap hit")
	}
	if hit.kind != snapVertex {
		t.Fatalf("snap kind = %v, want vertex over face center", hit.kind)
	}
	if hit.world != (gmath.Vec3{X: 10, Y: 10}) {
		t.Fatalf("snap world = %+v, want (10,10,0)", hit.world)
	}
}

func TestSnapDepthBreaksFullTie(t *testing.T) {
	s := topDown()
	rect := viewRect()
	low := triangle(gmath.Vec3{}, gmath.Vec3{X: 100}, gmath.Vec3{Y: 100})
	high := triangle(gmath.Vec3{Z: 10}, gmath.Vec3{X: 100, Z: 10}, gmath.Vec3{Y: 100, Z: 10})

	pos, ok := s.ProjectPoint(gmath.Vec3{}, rect)
	if !ok {
		t.Fatal("snap target did not project")
	}

	hit, ok := s.pickSnap(pos, rect, s.cameraBasis(), s.viewScale(rect), []*mesh.Mesh{low, high})
	if !ok {
		t.Fatal("no snap hit")
	}
	if hit.world != (gmath.Vec3{Z: 10}) {
		t.Fatalf("snap world = %+v, want the camera-nearer vertex at z=10", hit.world)
	}
}

func TestSnapCacheInvalidation(t *testing.T) {
	s := topDown()
	rect := viewRect()
	m := triangle(gmath.Vec3{}, gmath.Vec3{X: 30}, gmath.Vec3{Y: 30})
	basis := s.cameraBasis()
	scale := s.viewScale(rect)
	pos, _ := s.ProjectPoint(gmath.Vec3{}, rect)

	if _, ok := s.cachedSnap(pos, rect, basis, scale, []*mesh.Mesh{m}); !ok {
		t.Fatal("initial snap missed")
	}
	// Same pointer and camera: the memoized hit is served even though the
	// mesh list changed underneath.
	if _, ok := s.cachedSnap(pos, rect, basis, scale, nil); !ok {
		t.Fatal("cache did not serve the memoized hit")
	}
	s.InvalidateSnapCache()
	if _, ok := s.cachedSnap(pos, rect, basis, scale, nil); ok {
		t.Fatal("stale hit survived invalidation")
	}
}

func TestPaintOverlayShapes(t *testing.T) {
	s := New()
	rect := viewRect()
	m := box(gmath.Vec3{X: -50, Y: -50, Z: -50}, gmath.Vec3{X: 50, Y: 50, Z: 50})

	var rec overlay.Recorder
	s.PaintOverlay(&rec, OverlayParams{
		Rect:       rect,
		Meshes:     []*mesh.Mesh{m},
		Selected:   0,
		Mode:       ModeLayerOpaque,
		PointerPos: rect.Center(),
		HasPointer: true,
		DrawGizmo:  true,
		ShowHint:   true,
	})

	if n := rec.Count(overlay.ShapeLine); n < 10 {
		t.Fatalf("lines = %d, want crosshair and pivot cross (>= 10)", n)
	}
	if n := rec.Count(overlay.ShapeCircle); n < 1 {
		t.Fatalf("circles = %d, want at least the pivot ring", n)
	}
	if n := rec.Count(overlay.ShapePolygon); n < 1 {
		t.Fatalf("polygons = %d, want at least one cube face", n)
	}
	if n := rec.Count(overlay.ShapeRect); n < 9 {
		t.Fatalf("rects = %d, want border plus eight selection handles", n)
	}
	hintFound := false
	for _, shape := range rec.Shapes {
		if shape.Kind == overlay.ShapeText && len(shape.Text) > 20 {
			hintFound = true
		}
	}
	if !hintFound {
		t.Fatal("hint line missing")
	}
}

func TestPaintOverlaySnapIndicator(t *testing.T) {
	s := topDown()
	rect := viewRect()
	m := triangle(gmath.Vec3{}, gmath.Vec3{X: 30}, gmath.Vec3{Y: 30})
	pos, _ := s.ProjectPoint(gmath.Vec3{}, rect)

	var rec overlay.Recorder
	s.PaintOverlay(&rec, OverlayParams{
		Rect:       rect,
		Meshes:     []*mesh.Mesh{m},
		Selected:   -1,
		Mode:       ModeSkeleton,
		SnapActive: true,
		PointerPos: pos,
		HasPointer: true,
	})

	labelFound := false
	for _, shape := range rec.Shapes {
		if shape.Kind == overlay.ShapeText && shape.Text == "Vertex" {
			labelFound = true
		}
	}
	if !labelFound {
		t.Fatal(`snap label "Vertex" missing`)
	}
}
