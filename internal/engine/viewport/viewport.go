// Package viewport implements the interactive camera of the viewer: orbit
// about a pivot, pan, zoom anchored to the cursor, animated transitions to
// canonical views, pivot picking, element and point picking with snapping,
// and the screen-space overlay. The world is Z-up; the camera is described
// by a position, a look-at target, and an up vector.
package viewport

import (
	stdmath "math"

	"github.com/Munormae/cryxtal-castor/internal/engine/gizmo"
	"github.com/Munormae/cryxtal-castor/internal/engine/mesh"
	"github.com/Munormae/cryxtal-castor/internal/engine/overlay"
	"github.com/Munormae/cryxtal-castor/pkg/math"
)

const (
	// A gizmo press only counts as a drag once the pointer moves this far.
	gizmoDragThreshold = 2.0
	gizmoDragSpeed     = 0.015

	// nearPlane is the camera-space depth below which points are culled
	// from projection.
	nearPlane = 1.0e-4
)

// cameraBasis is the orthonormal camera frame derived from the camera
// position, target, and up vector.
type cameraBasis struct {
	pos     math.Vec3
	right   math.Vec3
	up      math.Vec3
	forward math.Vec3
}

// viewTransition animates the camera from one orientation to another while
// keeping target and distance fixed.
type viewTransition struct {
	fromForward math.Vec3
	fromUp      math.Vec3
	toForward   math.Vec3
	toUp        math.Vec3
	elapsed     float64
	duration    float64
}

// State is the full interactive camera state of one viewport.
type State struct {
	target    math.Vec3
	cameraPos math.Vec3
	cameraUp  math.Vec3
	pivot     PivotState
	fovDeg    float64

	transition *viewTransition
	snapCache  *snapCache

	gizmoMode       gizmo.Mode
	gizmoDragActive bool
	gizmoDragPos    math.Vec2
	gizmoDragValid  bool
	gizmoDragged    bool
}

// New returns a viewport in the default pose: an isometric-ish view of the
// origin from 500 units away.
func New() *State {
	s := &State{}
	s.resetPose()
	return s
}

func (s *State) resetPose() {
	const (
		yaw      = 0.6
		pitch    = 0.35
		distance = 500.0
	)
	forward := math.Vec3{
		X: stdmath.Cos(yaw) * stdmath.Cos(pitch),
		Y: stdmath.Sin(yaw) * stdmath.Cos(pitch),
		Z: stdmath.Sin(pitch),
	}.Normalize()
	s.target = math.Vec3{}
	s.cameraPos = s.target.Sub(forward.Scale(distance))
	s.cameraUp = defaultUp(forward)
	s.pivot = PivotState{}
	s.fovDeg = 60
	s.transition = nil
	s.snapCache = nil
	s.gizmoDragActive = false
	s.gizmoDragValid = false
	s.gizmoDragged = false
}

// ResetView restores the default pose while keeping the gizmo mode.
func (s *State) ResetView() {
	mode := s.gizmoMode
	s.resetPose()
	s.gizmoMode = mode
}

// GizmoMode returns the active orientation widget.
func (s *State) GizmoMode() gizmo.Mode {
	return s.gizmoMode
}

// SetGizmoMode switches the orientation widget and drops any drag that was
// in flight on the old one.
func (s *State) SetGizmoMode(mode gizmo.Mode) {
	if s.gizmoMode == mode {
		return
	}
	s.gizmoMode = mode
	s.gizmoDragActive = false
	s.gizmoDragValid = false
	s.gizmoDragged = false
}

// FitBounds recenters the camera on the given bounds, keeping the current
// view direction and backing off far enough to see all of it.
func (s *State) FitBounds(bounds mesh.Bounds) {
	center := bounds.Center()
	radius := stdmath.Max(bounds.Size().MaxComponent(), 1.0) * 0.5
	s.target = center
	s.pivot.SetPosition(center)
	forward := s.forward()
	back := stdmath.Max(radius*3.0, 10.0)
	s.cameraPos = s.target.Sub(forward.Scale(back))
	s.cameraUp = defaultUp(forward)
}

// Update advances the view transition. dt is clamped to (0, 0.1] so a
// stalled frame cannot jump the animation. It reports whether a transition
// is still running (the caller should keep repainting while true).
func (s *State) Update(dt float64) bool {
	if dt < 0 {
		dt = 0
	} else if dt > 0.1 {
		dt = 0.1
	}
	s.updateTransition(dt)
	return s.transition != nil
}

// InvalidateSnapCache drops the memoized snap result. Call it whenever the
// scene geometry changes.
func (s *State) InvalidateSnapCache() {
	s.snapCache = nil
}

// CancelInteraction aborts the running view transition and disarms a
// pending pivot pick. Bound to Esc.
func (s *State) CancelInteraction() {
	s.transition = nil
	s.pivot.DisarmPick()
}

// HandleInput applies one frame of input. It reports whether the viewport
// consumed the pointer, in which case the caller must not run selection on
// the same events. Priority: an active gizmo drag, then a gizmo press, then
// orbit, pan, zoom, and finally pivot picking.
func (s *State) HandleInput(input Input, meshes []*mesh.Mesh) bool {
	basis := s.cameraBasis()
	ctrl := input.Modifiers.Ctrl

	gizmoRect := s.GizmoRect(input.Rect)

	if s.gizmoDragActive {
		if !input.PrimaryDown {
			// Released. A press that never turned into a drag is a
			// click on the widget.
			if !s.gizmoDragged && input.HasPointer && gizmoRect.Contains(input.PointerPos) {
				gb := gizmoBasis(basis)
				switch s.gizmoMode {
				case gizmo.ModeCube:
					if pick, ok := gizmo.PickCube(input.PointerPos, input.Rect, gb); ok {
						s.beginTransition(gizmo.ViewDirection(pick.Normal))
					}
				case gizmo.ModeAxis:
					if pick, ok := gizmo.PickAxis(input.PointerPos, input.Rect, gb); ok {
						s.beginTransition(pick.Forward)
					}
				}
			}
			s.gizmoDragActive = false
			s.gizmoDragValid = false
			s.gizmoDragged = false
			return true
		}

		if input.HasPointer {
			if s.gizmoDragValid {
				delta := input.PointerPos.Sub(s.gizmoDragPos)
				if delta.Length() > 0 {
					if delta.Length() > gizmoDragThreshold {
						s.gizmoDragged = true
					}
					yawDelta := -float64(delta.X) * gizmoDragSpeed
					pitchDelta := -float64(delta.Y) * gizmoDragSpeed
					s.orbitPivot(yawDelta, pitchDelta)
				}
			}
			s.gizmoDragPos = input.PointerPos
			s.gizmoDragValid = true
		}
		return true
	}

	if input.PrimaryDown && input.HasPointer && gizmoRect.Contains(input.PointerPos) {
		s.gizmoDragActive = true
		s.gizmoDragPos = input.PointerPos
		s.gizmoDragValid = true
		s.gizmoDragged = false
		return true
	}

	delta := input.PointerDelta
	dragging := delta.X != 0 || delta.Y != 0

	if input.MiddleDown && ctrl && dragging {
		s.transition = nil
		yawDelta := -float64(delta.X) * 0.01
		pitchDelta := -float64(delta.Y) * 0.01
		s.orbitPivot(yawDelta, pitchDelta)
	} else if (input.MiddleDown && dragging) || input.SecondaryDown {
		if dragging {
			s.transition = nil
			scale := s.distance() * 0.002
			deltaWorld := basis.right.Scale(-float64(delta.X) * scale).
				Add(basis.up.Scale(float64(delta.Y) * scale))
			s.target = s.target.Add(deltaWorld)
			s.cameraPos = s.cameraPos.Add(deltaWorld)
		}
	}

	if input.Hovered && input.ScrollDelta != 0 {
		s.zoom(input)
	}

	if input.PivotKeyPressed {
		s.pivot.ArmPick()
	}
	pivotActive := s.pivot.IsPickActive(input.PivotKeyDown)
	if pivotActive && input.PrimaryClicked && input.HasPointer && input.Rect.Contains(input.PointerPos) {
		if point, ok := s.PickPoint(input.PointerPos, input.Rect, meshes, pivotActive); ok {
			s.pivot.SetPosition(point)
			s.pivot.DisarmPick()
		}
		return true
	}
	return false
}

// zoom scales the camera distance exponentially with the wheel and slides
// target and camera so the world point under the cursor stays under it.
func (s *State) zoom(input Input) {
	s.transition = nil
	factor := stdmath.Exp(-float64(input.ScrollDelta) * 0.01)
	distance := clampf(s.distance(), 1.0, 1.0e7)
	forward := s.forward()
	basis := s.cameraBasis()
	scale := s.viewScale(input.Rect)

	var before math.Vec3
	haveBefore := false
	if input.HasPointer {
		before, haveBefore = screenPointOnPlane(
			input.PointerPos, input.Rect, basis, scale, s.cameraPos, s.target, forward)
	}

	newDistance := clampf(distance*factor, 1.0, 1.0e7)
	s.cameraPos = s.target.Sub(forward.Scale(newDistance))

	if haveBefore {
		after, ok := screenPointOnPlane(
			input.PointerPos, input.Rect, basis, scale, s.cameraPos, s.target, forward)
		if ok {
			shift := before.Sub(after)
			s.target = s.target.Add(shift)
			s.cameraPos = s.cameraPos.Add(shift)
		}
	}
}

// orbitPivot rotates camera, target, and up about the pivot: yaw about the
// world Z axis, then pitch about the camera right axis, then
// re-orthogonalizes up against the new forward.
func (s *State) orbitPivot(yawDelta, pitchDelta float64) {
	pivot := s.pivot.Position()
	worldUp := math.Vec3{Z: 1}

	if yawDelta != 0 {
		s.cameraPos = math.RotateAround(s.cameraPos, pivot, worldUp, yawDelta)
		s.target = math.RotateAround(s.target, pivot, worldUp, yawDelta)
		s.cameraUp = math.RotateAround(s.cameraUp, math.Vec3{}, worldUp, yawDelta).Normalize()
	}

	if pitchDelta != 0 {
		basis := s.cameraBasis()
		s.cameraPos = math.RotateAround(s.cameraPos, pivot, basis.right, pitchDelta)
		s.target = math.RotateAround(s.target, pivot, basis.right, pitchDelta)
		s.cameraUp = math.RotateAround(s.cameraUp, math.Vec3{}, basis.right, pitchDelta).Normalize()
	}

	forward := s.forward()
	up := s.cameraUp.Sub(forward.Scale(s.cameraUp.Dot(forward)))
	if up.Length() <= 1.0e-6 {
		up = defaultUp(forward)
	}
	s.cameraUp = up.Normalize()
}

// beginTransition starts an animated move to the given view direction. A
// near-identical direction snaps immediately instead of animating.
func (s *State) beginTransition(forward math.Vec3) {
	toForward := forward.Normalize()
	if toForward.Length() <= 1.0e-6 {
		return
	}
	fromForward := s.forward()
	if fromForward.Sub(toForward).Length() <= 1.0e-3 {
		s.setView(toForward)
		s.transition = nil
		return
	}
	s.transition = &viewTransition{
		fromForward: fromForward,
		fromUp:      s.cameraUp.Normalize(),
		toForward:   toForward,
		toUp:        defaultUp(toForward),
		elapsed:     0,
		duration:    0.35,
	}
}

func (s *State) updateTransition(dt float64) {
	tr := s.transition
	if tr == nil {
		return
	}
	tr.elapsed += dt
	t := clampf(tr.elapsed/tr.duration, 0, 1)
	smooth := t * t * (3 - 2*t)
	forward := tr.fromForward.Scale(1 - smooth).Add(tr.toForward.Scale(smooth)).Normalize()
	up := tr.fromUp.Scale(1 - smooth).Add(tr.toUp.Scale(smooth)).Normalize()
	up = up.Sub(forward.Scale(up.Dot(forward))).Normalize()
	distance := stdmath.Max(s.distance(), 1.0e-6)
	s.cameraPos = s.target.Sub(forward.Scale(distance))
	s.cameraUp = up
	if t >= 1 {
		s.setView(tr.toForward)
		s.transition = nil
	}
}

// setView snaps the camera to look along forward with the canonical up.
func (s *State) setView(forward math.Vec3) {
	direction := forward.Normalize()
	distance := stdmath.Max(s.distance(), 1.0)
	s.cameraPos = s.target.Sub(direction.Scale(distance))
	s.cameraUp = defaultUp(direction)
}

// GizmoRect returns the screen rectangle the active orientation widget
// occupies inside the viewport.
func (s *State) GizmoRect(rect overlay.Rect) overlay.Rect {
	return gizmo.WidgetRect(rect)
}

// ProjectPoint maps a world point to screen coordinates, reporting false
// for points behind the camera.
func (s *State) ProjectPoint(point math.Vec3, rect overlay.Rect) (math.Vec2, bool) {
	basis := s.cameraBasis()
	scale := s.viewScale(rect)
	pos, _, ok := s.project(point, rect, basis, scale)
	return pos, ok
}

// CameraPosition returns the camera position.
func (s *State) CameraPosition() math.Vec3 {
	return s.cameraPos
}

// CameraTarget returns the look-at point.
func (s *State) CameraTarget() math.Vec3 {
	return s.target
}

// CameraUp returns the camera up vector.
func (s *State) CameraUp() math.Vec3 {
	return s.cameraUp
}

// Distance returns the camera-to-target distance.
func (s *State) Distance() float64 {
	return s.distance()
}

// PivotPosition returns the orbit pivot.
func (s *State) PivotPosition() math.Vec3 {
	return s.pivot.Position()
}

// SetPivotPosition moves the orbit pivot.
func (s *State) SetPivotPosition(position math.Vec3) {
	s.pivot.SetPosition(position)
}

// IsPivotPickActive reports whether a click would currently re-pick the
// pivot, given the live state of the pivot key.
func (s *State) IsPivotPickActive(keyDown bool) bool {
	return s.pivot.IsPickActive(keyDown)
}

// FovDegrees returns the vertical field of view in degrees.
func (s *State) FovDegrees() float64 {
	return s.fovDeg
}

func (s *State) cameraBasis() cameraBasis {
	forward := s.forward()
	right := forward.Cross(s.cameraUp)
	if right.Length() <= 1.0e-6 {
		right = forward.Cross(defaultUp(forward))
	}
	right = right.Normalize()
	up := right.Cross(forward).Normalize()
	return cameraBasis{
		pos:     s.cameraPos,
		right:   right,
		up:      up,
		forward: forward,
	}
}

func (s *State) project(point math.Vec3, rect overlay.Rect, basis cameraBasis, scale float64) (math.Vec2, float64, bool) {
	rel := point.Sub(basis.pos)
	camera := math.Vec3{
		X: rel.Dot(basis.right),
		Y: rel.Dot(basis.up),
		Z: rel.Dot(basis.forward),
	}
	if camera.Z <= nearPlane {
		return math.Vec2{}, 0, false
	}
	center := rect.Center()
	screen := math.Vec2{
		X: center.X + float32(camera.X*scale),
		Y: center.Y - float32(camera.Y*scale),
	}
	return screen, camera.Z, true
}

// viewScale converts world units on the target plane to pixels.
func (s *State) viewScale(rect overlay.Rect) float64 {
	viewSize := float64(min32(rect.Width(), rect.Height()))
	fov := s.fovDeg * stdmath.Pi / 180
	persp := viewSize / (2 * stdmath.Tan(fov*0.5))
	return stdmath.Max(persp/stdmath.Max(s.distance(), 1.0), 1.0e-6)
}

func (s *State) forward() math.Vec3 {
	dir := s.target.Sub(s.cameraPos)
	if dir.Length() <= 2.220446049250313e-16 {
		return math.Vec3{Z: 1}
	}
	return dir.Normalize()
}

func (s *State) distance() float64 {
	return s.target.Sub(s.cameraPos).Length()
}

func gizmoBasis(basis cameraBasis) gizmo.ViewBasis {
	return gizmo.ViewBasis{Right: basis.right, Up: basis.up, Forward: basis.forward}
}

// defaultUp is world Z projected out of forward, falling back to world Y
// when looking straight along Z.
func defaultUp(forward math.Vec3) math.Vec3 {
	up := math.Vec3{Z: 1}
	right := forward.Cross(up)
	if right.Length() <= 1.0e-6 {
		up = math.Vec3{Y: 1}
		right = forward.Cross(up)
	}
	return right.Normalize().Cross(forward).Normalize()
}

// screenPointOnPlane intersects the ray under a screen position with the
// plane through planePoint with planeNormal.
func screenPointOnPlane(pos math.Vec2, rect overlay.Rect, basis cameraBasis, scale float64, cameraPos, planePoint, planeNormal math.Vec3) (math.Vec3, bool) {
	if !rect.Contains(pos) {
		return math.Vec3{}, false
	}
	center := rect.Center()
	dx := float64(pos.X-center.X) / scale
	dy := float64(center.Y-pos.Y) / scale
	origin := cameraPos.Add(basis.right.Scale(dx)).Add(basis.up.Scale(dy))
	dir := basis.forward
	denom := dir.Dot(planeNormal)
	if stdmath.Abs(denom) <= 1.0e-9 {
		return math.Vec3{}, false
	}
	t := planePoint.Sub(origin).Dot(planeNormal) / denom
	if t <= 0 {
		return math.Vec3{}, false
	}
	return origin.Add(dir.Scale(t)), true
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
