package viewport

import (
	stdmath "math"
	"math/rand"
	"testing"

	"github.com/Munormae/cryxtal-castor/internal/engine/gizmo"
	"github.com/Munormae/cryxtal-castor/internal/engine/mesh"
	"github.com/Munormae/cryxtal-castor/internal/engine/overlay"
	gmath "github.com/Munormae/cryxtal-castor/pkg/math"
)

func viewRect() overlay.Rect {
	return overlay.RectFromMinSize(gmath.Vec2{}, gmath.Vec2{X: 800, Y: 600})
}

func box(min, max gmath.Vec3) *mesh.Mesh {
	positions := []gmath.Vec3{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}
	faces := [][]int{
		{0, 1, 2, 3}, {4, 5, 6, 7},
		{0, 1, 5, 4}, {2, 3, 7, 6},
		{1, 2, 6, 5}, {0, 3, 7, 4},
	}
	return mesh.New(positions, faces)
}

func vec3Near(a, b gmath.Vec3, tol float64) bool {
	return a.Sub(b).Length() <= tol
}

func TestDefaultPose(t *testing.T) {
	s := New()
	if d := s.Distance(); stdmath.Abs(d-500) > 1e-9 {
		t.Fatalf("default distance = %v, want 500", d)
	}
	if s.CameraTarget() != (gmath.Vec3{}) {
		t.Fatalf("default target = %+v, want origin", s.CameraTarget())
	}
	forward := s.CameraTarget().Sub(s.CameraPosition()).Normalize()
	if forward.Z <= 0 {
		t.Fatalf("default view looks downward from below: forward %+v", forward)
	}
	up := s.CameraUp()
	if stdmath.Abs(up.Length()-1) > 1e-9 {
		t.Fatalf("default up not unit: %v", up.Length())
	}
	if dot := up.Dot(forward); stdmath.Abs(dot) > 1e-9 {
		t.Fatalf("default up not orthogonal to forward: dot %v", dot)
	}
	if s.FovDegrees() != 60 {
		t.Fatalf("default fov = %v, want 60", s.FovDegrees())
	}
}

func TestFitBounds(t *testing.T) {
	s := New()
	forwardBefore := s.CameraTarget().Sub(s.CameraPosition()).Normalize()
	s.FitBounds(mesh.Bounds{Max: gmath.Vec3{X: 100, Y: 200, Z: 300}})

	center := gmath.Vec3{X: 50, Y: 100, Z: 150}
	if !vec3Near(s.CameraTarget(), center, 1e-9) {
		t.Fatalf("target = %+v, want %+v", s.CameraTarget(), center)
	}
	if !vec3Near(s.PivotPosition(), center, 1e-9) {
		t.Fatalf("pivot = %+v, want %+v", s.PivotPosition(), center)
	}
	if d := s.Distance(); stdmath.Abs(d-450) > 1e-6 {
		t.Fatalf("distance = %v, want 450 (3x the 150 half-extent)", d)
	}
	forwardAfter := s.CameraTarget().Sub(s.CameraPosition()).Normalize()
	if !vec3Near(forwardBefore, forwardAfter, 1e-9) {
		t.Fatalf("fit changed view direction: %+v -> %+v", forwardBefore, forwardAfter)
	}
}

func TestPanMovesTargetAndCamera(t *testing.T) {
	s := New()
	basis := s.cameraBasis()
	targetBefore := s.CameraTarget()
	posBefore := s.CameraPosition()

	consumed := s.HandleInput(Input{
		Rect:          viewRect(),
		SecondaryDown: true,
		PointerDelta:  gmath.Vec2{X: 10, Y: -5},
	}, nil)
	if consumed {
		t.Fatal("pan reported the pointer as consumed")
	}

	scale := 500 * 0.002
	want := basis.right.Scale(-10 * scale).Add(basis.up.Scale(-5 * scale))
	if !vec3Near(s.CameraTarget().Sub(targetBefore), want, 1e-9) {
		t.Fatalf("target shift = %+v, want %+v", s.CameraTarget().Sub(targetBefore), want)
	}
	if !vec3Near(s.CameraPosition().Sub(posBefore), want, 1e-9) {
		t.Fatalf("camera shift = %+v, want %+v", s.CameraPosition().Sub(posBefore), want)
	}
	if d := s.Distance(); stdmath.Abs(d-500) > 1e-9 {
		t.Fatalf("pan changed distance: %v", d)
	}
}

func TestOrbitKeepsFrameOrthonormal(t *testing.T) {
	s := New()
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		yaw := (rng.Float64() - 0.5) * 0.4
		pitch := (rng.Float64() - 0.5) * 0.4
		s.orbitPivot(yaw, pitch)

		forward := s.CameraTarget().Sub(s.CameraPosition()).Normalize()
		up := s.CameraUp()
		if stdmath.Abs(up.Length()-1) > 1e-9 {
			t.Fatalf("step %d: up not unit: %v", i, up.Length())
		}
		if dot := up.Dot(forward); stdmath.Abs(dot) > 1e-6 {
			t.Fatalf("step %d: up.forward = %v", i, dot)
		}
		pivotDist := s.CameraPosition().Sub(s.PivotPosition()).Length()
		if stdmath.Abs(pivotDist-500) > 1e-6 {
			t.Fatalf("step %d: camera-to-pivot distance drifted to %v", i, pivotDist)
		}
	}
}

func TestZoomScalesDistance(t *testing.T) {
	s := New()
	rect := viewRect()
	targetBefore := s.CameraTarget()

	s.HandleInput(Input{
		Rect:        rect,
		Hovered:     true,
		HasPointer:  true,
		PointerPos:  rect.Center(),
		ScrollDelta: -5,
	}, nil)

	want := 500 * stdmath.Exp(0.05)
	if d := s.Distance(); stdmath.Abs(d-want) > 1e-6 {
		t.Fatalf("distance after scroll -5 = %v, want %v", d, want)
	}
	if !vec3Near(s.CameraTarget(), targetBefore, 1e-9) {
		t.Fatalf("zoom at center moved target: %+v", s.CameraTarget())
	}
}

func TestZoomClampsDistance(t *testing.T) {
	s := New()
	s.HandleInput(Input{Rect: viewRect(), Hovered: true, ScrollDelta: 1e6}, nil)
	if d := s.Distance(); stdmath.Abs(d-1) > 1e-9 {
		t.Fatalf("distance after huge zoom-in = %v, want clamp at 1", d)
	}
	s.HandleInput(Input{Rect: viewRect(), Hovered: true, ScrollDelta: -1e6}, nil)
	if d := s.Distance(); stdmath.Abs(d-1e7) > 1e-3 {
		t.Fatalf("distance after huge zoom-out = %v, want clamp at 1e7", d)
	}
}

func TestZoomKeepsCursorPoint(t *testing.T) {
	s := New()
	rect := viewRect()
	pos := gmath.Vec2{X: 520, Y: 180}

	before, ok := screenPointOnPlane(pos, rect, s.cameraBasis(), s.viewScale(rect), s.CameraPosition(), s.CameraTarget(), s.CameraTarget().Sub(s.CameraPosition()).Normalize())
	if !ok {
		t.Fatal("no plane point under cursor before zoom")
	}

	s.HandleInput(Input{Rect: rect, Hovered: true, HasPointer: true, PointerPos: pos, ScrollDelta: 7}, nil)

	after, ok := screenPointOnPlane(pos, rect, s.cameraBasis(), s.viewScale(rect), s.CameraPosition(), s.CameraTarget(), s.CameraTarget().Sub(s.CameraPosition()).Normalize())
	if !ok {
		t.Fatal("no plane point under cursor after zoom")
	}
	// The plane under the cursor passes through the target, and zoom slides
	// the camera along the view axis, so the anchored point must not move.
	if !vec3Near(before, after, 1e-6*500) {
		t.Fatalf("cursor anchor moved: %+v -> %+v", before, after)
	}
}

func TestViewTransitionToTop(t *testing.T) {
	s := New()
	s.beginTransition(gizmo.ViewDirection(gizmo.FaceNormal(gizmo.FaceTop)))
	if s.transition == nil {
		t.Fatal("transition did not start")
	}

	steps := 0
	for s.Update(0.02) {
		steps++
		if steps > 100 {
			t.Fatal("transition never finished")
		}
	}
	if float64(steps)*0.02 < 0.35-0.02 {
		t.Fatalf("transition finished after only %d steps", steps)
	}

	forward := s.CameraTarget().Sub(s.CameraPosition()).Normalize()
	if forward != (gmath.Vec3{Z: -1}) {
		t.Fatalf("final forward = %+v, want (0,0,-1)", forward)
	}
	if s.CameraUp() != (gmath.Vec3{Y: 1}) {
		t.Fatalf("final up = %+v, want (0,1,0)", s.CameraUp())
	}
	if d := s.Distance(); stdmath.Abs(d-500) > 1e-9 {
		t.Fatalf("transition changed distance: %v", d)
	}
}

func TestTransitionSnapsWhenAligned(t *testing.T) {
	s := New()
	s.setView(gmath.Vec3{Z: -1})
	s.beginTransition(gmath.Vec3{Z: -1})
	if s.transition != nil {
		t.Fatal("near-identical direction should snap, not animate")
	}
}

func TestTransitionCanceledByOrbit(t *testing.T) {
	s := New()
	s.beginTransition(gizmo.ViewDirection(gizmo.FaceNormal(gizmo.FaceTop)))
	s.HandleInput(Input{
		Rect:         viewRect(),
		MiddleDown:   true,
		PointerDelta: gmath.Vec2{X: 4, Y: 2},
		Modifiers:    Modifiers{Ctrl: true},
	}, nil)
	if s.transition != nil {
		t.Fatal("orbit did not cancel the view transition")
	}
}

func TestGizmoClickConsumesInput(t *testing.T) {
	s := New()
	s.setView(gmath.Vec3{Y: 1})
	rect := viewRect()
	widgetCenter := s.GizmoRect(rect).Center()

	press := Input{Rect: rect, PrimaryDown: true, HasPointer: true, PointerPos: widgetCenter}
	if !s.HandleInput(press, nil) {
		t.Fatal("press on gizmo not consumed")
	}
	release := Input{Rect: rect, HasPointer: true, PointerPos: widgetCenter}
	if !s.HandleInput(release, nil) {
		t.Fatal("release on gizmo not consumed")
	}

	// Looking straight at the front face, clicking it snaps in place.
	if s.transition != nil {
		t.Fatal("click on the already-facing view started an animation")
	}
	forward := s.CameraTarget().Sub(s.CameraPosition()).Normalize()
	if forward != (gmath.Vec3{Y: 1}) {
		t.Fatalf("forward after self-click = %+v, want (0,1,0)", forward)
	}
}

func TestGizmoDragOrbits(t *testing.T) {
	s := New()
	rect := viewRect()
	start := s.GizmoRect(rect).Center()
	forwardBefore := s.CameraTarget().Sub(s.CameraPosition()).Normalize()

	s.HandleInput(Input{Rect: rect, PrimaryDown: true, HasPointer: true, PointerPos: start}, nil)
	dragged := start.Add(gmath.Vec2{X: 25, Y: 10})
	if !s.HandleInput(Input{Rect: rect, PrimaryDown: true, HasPointer: true, PointerPos: dragged}, nil) {
		t.Fatal("drag frame not consumed")
	}
	s.HandleInput(Input{Rect: rect, HasPointer: true, PointerPos: dragged}, nil)

	forwardAfter := s.CameraTarget().Sub(s.CameraPosition()).Normalize()
	if vec3Near(forwardBefore, forwardAfter, 1e-6) {
		t.Fatal("gizmo drag did not orbit the camera")
	}
	if s.transition != nil {
		t.Fatal("a real drag must not trigger a view transition on release")
	}
}

func TestPivotPickFlow(t *testing.T) {
	s := New()
	s.setView(gmath.Vec3{Z: -1})
	rect := viewRect()

	s.HandleInput(Input{Rect: rect, PivotKeyPressed: true}, nil)
	if !s.IsPivotPickActive(false) {
		t.Fatal("pivot pick not armed after key press")
	}

	pos := rect.Center().Add(gmath.Vec2{X: 10})
	consumed := s.HandleInput(Input{
		Rect:           rect,
		PrimaryClicked: true,
		HasPointer:     true,
		PointerPos:     pos,
	}, nil)
	if !consumed {
		t.Fatal("pivot pick click not consumed")
	}
	if s.IsPivotPickActive(false) {
		t.Fatal("pivot pick still armed after picking")
	}

	scale := s.viewScale(rect)
	want := gmath.Vec3{X: 10 / scale}
	if !vec3Near(s.PivotPosition(), want, 1e-9) {
		t.Fatalf("pivot = %+v, want %+v", s.PivotPosition(), want)
	}
}

func TestUpdateClampsDt(t *testing.T) {
	s := New()
	s.beginTransition(gizmo.ViewDirection(gizmo.FaceNormal(gizmo.FaceTop)))

	if !s.Update(-5) {
		t.Fatal("negative dt finished the transition")
	}
	if !s.Update(10) {
		t.Fatal("one clamped step finished a 0.35s transition")
	}
	s.Update(10)
	s.Update(10)
	if s.Update(10) {
		t.Fatal("transition still running after 0.4s of clamped steps")
	}
}

func TestCancelInteraction(t *testing.T) {
	s := New()
	s.beginTransition(gizmo.ViewDirection(gizmo.FaceNormal(gizmo.FaceTop)))
	s.HandleInput(Input{Rect: viewRect(), PivotKeyPressed: true}, nil)

	s.CancelInteraction()
	if s.transition != nil {
		t.Fatal("cancel left the transition running")
	}
	if s.IsPivotPickActive(false) {
		t.Fatal("cancel left the pivot pick armed")
	}
}

func TestResetViewKeepsGizmoMode(t *testing.T) {
	s := New()
	s.SetGizmoMode(gizmo.ModeAxis)
	s.orbitPivot(0.7, -0.3)
	s.ResetView()
	if s.GizmoMode() != gizmo.ModeAxis {
		t.Fatalf("gizmo mode after reset = %v, want axis", s.GizmoMode())
	}
	if d := s.Distance(); stdmath.Abs(d-500) > 1e-9 {
		t.Fatalf("distance after reset = %v, want 500", d)
	}
	if s.CameraTarget() != (gmath.Vec3{}) {
		t.Fatalf("target after reset = %+v, want origin", s.CameraTarget())
	}
}
