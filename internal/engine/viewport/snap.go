package viewport

import (
	"github.com/Munormae/cryxtal-castor/internal/engine/mesh"
	"github.com/Munormae/cryxtal-castor/internal/engine/overlay"
	"github.com/Munormae/cryxtal-castor/pkg/math"
)

type snapKind int

const (
	snapVertex snapKind = iota
	snapEdgeMidpoint
	snapFaceCenter
)

// snapHit is one resolved snap candidate.
type snapHit struct {
	kind     snapKind
	world    math.Vec3
	screen   math.Vec2
	distance float32
	depth    float64
}

// snapCache memoizes the snap result for one (pointer, rect, camera) tuple.
// Scanning every vertex, edge midpoint, and face center is too expensive to
// repeat when nothing moved between frames.
type snapCache struct {
	pos       math.Vec2
	rect      overlay.Rect
	cameraPos math.Vec3
	target    math.Vec3
	cameraUp  math.Vec3
	hit       snapHit
	hasHit    bool
}

// snapTieWindow is the screen-distance window inside which kind priority
// and depth break ties instead of raw distance.
const snapTieWindow = 0.1

func snapRadius(kind snapKind) float32 {
	switch kind {
	case snapVertex, snapEdgeMidpoint:
		return 7
	default:
		return 9
	}
}

func snapPriority(kind snapKind) int {
	switch kind {
	case snapVertex:
		return 0
	case snapEdgeMidpoint:
		return 1
	default:
		return 2
	}
}

func snapLabel(kind snapKind) string {
	switch kind {
	case snapVertex:
		return "Vertex"
	case snapEdgeMidpoint:
		return "Edge midpoint"
	default:
		return "Face center"
	}
}

// pickSnap scans all meshes for the best snap target around the pointer.
// Candidates compete on screen distance; within the tie window a vertex
// beats an edge midpoint beats a face center, then the shallower depth wins.
func (s *State) pickSnap(pos math.Vec2, rect overlay.Rect, basis cameraBasis, scale float64, meshes []*mesh.Mesh) (snapHit, bool) {
	if !rect.Contains(pos) {
		return snapHit{}, false
	}

	var best snapHit
	haveBest := false
	consider := func(kind snapKind, world math.Vec3, screen math.Vec2, depth float64) {
		distance := pos.Distance(screen)
		if distance > snapRadius(kind) {
			return
		}
		candidate := snapHit{
			kind:     kind,
			world:    world,
			screen:   screen,
			distance: distance,
			depth:    depth,
		}
		if !haveBest {
			best = candidate
			haveBest = true
			return
		}
		if candidate.distance < best.distance-snapTieWindow {
			best = candidate
			return
		}
		if abs32(candidate.distance-best.distance) <= snapTieWindow {
			cp, bp := snapPriority(candidate.kind), snapPriority(best.kind)
			if cp < bp || (cp == bp && candidate.depth < best.depth) {
				best = candidate
			}
		}
	}

	const pad = 10
	for _, m := range meshes {
		if m == nil {
			continue
		}
		if m.Bounds != nil {
			if screenRect, _, ok := s.boundsScreenRect(rect, basis, scale, *m.Bounds); ok {
				if !screenRect.Expand(pad).Contains(pos) {
					continue
				}
			}
		}

		for _, point := range m.Positions {
			if screen, depth, ok := s.project(point, rect, basis, scale); ok {
				consider(snapVertex, point, screen, depth)
			}
		}

		for _, edge := range m.Edges {
			a := m.Positions[edge[0]]
			b := m.Positions[edge[1]]
			mid := a.Add(b).Scale(0.5)
			if screen, depth, ok := s.project(mid, rect, basis, scale); ok {
				consider(snapEdgeMidpoint, mid, screen, depth)
			}
		}

		for _, tri := range m.Triangles {
			p0 := m.Positions[tri[0]]
			p1 := m.Positions[tri[1]]
			p2 := m.Positions[tri[2]]
			center := p0.Add(p1).Add(p2).Scale(1.0 / 3.0)
			if screen, depth, ok := s.project(center, rect, basis, scale); ok {
				consider(snapFaceCenter, center, screen, depth)
			}
		}
	}

	return best, haveBest
}

// cachedSnap returns the memoized snap for the current pointer and camera,
// recomputing only when either moved.
func (s *State) cachedSnap(pos math.Vec2, rect overlay.Rect, basis cameraBasis, scale float64, meshes []*mesh.Mesh) (snapHit, bool) {
	if c := s.snapCache; c != nil &&
		c.pos == pos && c.rect == rect &&
		c.cameraPos == s.cameraPos && c.target == s.target && c.cameraUp == s.cameraUp {
		return c.hit, c.hasHit
	}

	hit, ok := s.pickSnap(pos, rect, basis, scale, meshes)
	s.snapCache = &snapCache{
		pos:       pos,
		rect:      rect,
		cameraPos: s.cameraPos,
		target:    s.target,
		cameraUp:  s.cameraUp,
		hit:       hit,
		hasHit:    ok,
	}
	return hit, ok
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
