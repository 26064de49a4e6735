package viewport

import (
	stdmath "math"

	"github.com/Munormae/cryxtal-castor/internal/engine/mesh"
	"github.com/Munormae/cryxtal-castor/internal/engine/overlay"
	"github.com/Munormae/cryxtal-castor/internal/engine/picking"
	"github.com/Munormae/cryxtal-castor/pkg/math"
)

// PickElement returns the index of the frontmost mesh under the screen
// position and the world-space hit point.
func (s *State) PickElement(pos math.Vec2, rect overlay.Rect, meshes []*mesh.Mesh) (int, math.Vec3, bool) {
	idx, _, point, ok := s.pickMeshPoint(pos, rect, meshes)
	return idx, point, ok
}

// PickElementRect returns the index of the mesh whose projected bounds
// intersect the selection rectangle and sit closest to the camera. Degenerate
// selections pick nothing.
func (s *State) PickElementRect(rect, selection overlay.Rect, meshes []*mesh.Mesh) (int, bool) {
	if selection.Width() <= 0 || selection.Height() <= 0 {
		return 0, false
	}

	basis := s.cameraBasis()
	scale := s.viewScale(rect)

	bestIdx := -1
	bestDepth := stdmath.Inf(1)
	for idx, m := range meshes {
		if m == nil || m.Bounds == nil {
			continue
		}
		screenRect, depth, ok := s.boundsScreenRect(rect, basis, scale, *m.Bounds)
		if !ok {
			continue
		}
		if selection.Intersects(screenRect) && depth < bestDepth {
			bestIdx = idx
			bestDepth = depth
		}
	}
	if bestIdx < 0 {
		return 0, false
	}
	return bestIdx, true
}

// PickPoint resolves a screen position to a world point: a snap hit when
// snapping is active, otherwise the nearest mesh surface, otherwise the
// horizontal plane through the pivot.
func (s *State) PickPoint(pos math.Vec2, rect overlay.Rect, meshes []*mesh.Mesh, snapActive bool) (math.Vec3, bool) {
	basis := s.cameraBasis()
	scale := s.viewScale(rect)

	if snapActive {
		if hit, ok := s.pickSnap(pos, rect, basis, scale, meshes); ok {
			return hit.world, true
		}
	}

	if _, _, point, ok := s.pickMeshPoint(pos, rect, meshes); ok {
		return point, true
	}

	return s.pickOnPlane(pos, rect, basis, scale, s.pivot.Position().Z)
}

func (s *State) pickMeshPoint(pos math.Vec2, rect overlay.Rect, meshes []*mesh.Mesh) (int, float64, math.Vec3, bool) {
	basis := s.cameraBasis()
	scale := s.viewScale(rect)
	ray, ok := s.screenRay(pos, rect, basis, scale)
	if !ok {
		return 0, 0, math.Vec3{}, false
	}

	bestIdx := -1
	bestT := stdmath.Inf(1)
	var bestPoint math.Vec3
	for idx, m := range meshes {
		if m == nil {
			continue
		}
		if t, point, hit := m.RayPick(ray); hit && t < bestT {
			bestIdx = idx
			bestT = t
			bestPoint = point
		}
	}
	if bestIdx < 0 {
		return 0, 0, math.Vec3{}, false
	}
	return bestIdx, bestT, bestPoint, true
}

// pickOnPlane intersects the screen ray with the horizontal plane z = planeZ.
func (s *State) pickOnPlane(pos math.Vec2, rect overlay.Rect, basis cameraBasis, scale float64, planeZ float64) (math.Vec3, bool) {
	center := rect.Center()
	dx := float64(pos.X-center.X) / scale
	dy := float64(center.Y-pos.Y) / scale
	origin := basis.pos.Add(basis.right.Scale(dx)).Add(basis.up.Scale(dy))
	dir := basis.forward
	if stdmath.Abs(dir.Z) <= 1.0e-6 {
		return math.Vec3{}, false
	}
	t := (planeZ - origin.Z) / dir.Z
	if t <= 0 {
		return math.Vec3{}, false
	}
	return origin.Add(dir.Scale(t)), true
}

// screenRay builds the world-space pick ray under a screen position. The
// origin is offset on the camera plane so the ray matches the projection
// used for drawing.
func (s *State) screenRay(pos math.Vec2, rect overlay.Rect, basis cameraBasis, scale float64) (picking.Ray, bool) {
	if !rect.Contains(pos) {
		return picking.Ray{}, false
	}
	center := rect.Center()
	dx := float64(pos.X-center.X) / scale
	dy := float64(center.Y-pos.Y) / scale
	origin := basis.pos.Add(basis.right.Scale(dx)).Add(basis.up.Scale(dy))
	return picking.Ray{Origin: origin, Direction: basis.forward.Normalize()}, true
}

// boundsScreenRect projects the eight corners of bounds and returns their
// screen-space bounding rectangle plus the least corner depth. False when
// every corner is behind the camera.
func (s *State) boundsScreenRect(rect overlay.Rect, basis cameraBasis, scale float64, bounds mesh.Bounds) (overlay.Rect, float64, bool) {
	any := false
	minScreen := math.Vec2{X: float32(stdmath.Inf(1)), Y: float32(stdmath.Inf(1))}
	maxScreen := math.Vec2{X: float32(stdmath.Inf(-1)), Y: float32(stdmath.Inf(-1))}
	minDepth := stdmath.Inf(1)

	for _, corner := range bounds.Corners() {
		pos, depth, ok := s.project(corner, rect, basis, scale)
		if !ok {
			continue
		}
		any = true
		minScreen = math.Vec2{X: min32(minScreen.X, pos.X), Y: min32(minScreen.Y, pos.Y)}
		maxScreen = math.Vec2{X: max32(maxScreen.X, pos.X), Y: max32(maxScreen.Y, pos.Y)}
		if depth < minDepth {
			minDepth = depth
		}
	}

	if !any {
		return overlay.Rect{}, 0, false
	}
	return overlay.Rect{Min: minScreen, Max: maxScreen}, minDepth, true
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
