// Package mesh holds per-element viewer geometry: triangulated faces,
// feature edges for wireframe display, bounds, and a BVH for ray picking.
// A Mesh is immutable after construction and rebuilt wholesale whenever the
// owning element's geometry changes.
package mesh

import (
	"github.com/Munormae/cryxtal-castor/internal/engine/picking"
	"github.com/Munormae/cryxtal-castor/pkg/math"
)

// DefaultFeatureAngleDeg is the dihedral angle above which an edge between
// two faces is kept for wireframe display.
const DefaultFeatureAngleDeg = 8.0

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the box midpoint.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Union returns the box enclosing both boxes.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Corners returns the eight box corners.
func (b Bounds) Corners() [8]math.Vec3 {
	min, max := b.Min, b.Max
	return [8]math.Vec3{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}
}

// Mesh is one element's tessellated viewer geometry.
type Mesh struct {
	Positions []math.Vec3
	Triangles [][3]int
	Edges     [][2]int
	EdgeInfo  []EdgeInfo

	// Bounds is nil for a mesh with no positions.
	Bounds *Bounds

	bvhNodes   []bvhNode
	bvhIndices []int
}

// New builds a Mesh from positions and faces of any arity. Quads and n-gons
// are fan-triangulated, triangle winding is oriented away from the point
// average, feature edges and the BVH are built.
func New(positions []math.Vec3, faces [][]int) *Mesh {
	m := &Mesh{
		Positions: positions,
		Bounds:    computeBounds(positions),
	}

	for _, face := range faces {
		if len(face) < 3 {
			continue
		}
		for i := 1; i < len(face)-1; i++ {
			m.Triangles = append(m.Triangles, [3]int{face[0], face[i], face[i+1]})
		}
	}

	orientTrianglesOutward(positions, m.Triangles)
	m.Edges, m.EdgeInfo = buildFeatureEdges(positions, m.Triangles)
	m.bvhNodes, m.bvhIndices = buildBVH(positions, m.Triangles)
	return m
}

// Merge concatenates several meshes with index offsetting, for whole-scene
// bounds and edge aggregation. The result carries no BVH and must not be
// ray-picked directly; RayPick on it degrades to a linear scan.
func Merge(meshes []*Mesh) *Mesh {
	merged := &Mesh{}

	for _, src := range meshes {
		if src == nil || src.IsEmpty() {
			continue
		}
		offset := len(merged.Positions)
		merged.Positions = append(merged.Positions, src.Positions...)
		for _, tri := range src.Triangles {
			merged.Triangles = append(merged.Triangles, [3]int{tri[0] + offset, tri[1] + offset, tri[2] + offset})
		}
		for _, edge := range src.Edges {
			merged.Edges = append(merged.Edges, [2]int{edge[0] + offset, edge[1] + offset})
		}
		for _, info := range src.EdgeInfo {
			shifted := info
			shifted.A += offset
			shifted.B += offset
			merged.EdgeInfo = append(merged.EdgeInfo, shifted)
		}
		if src.Bounds != nil {
			if merged.Bounds == nil {
				b := *src.Bounds
				merged.Bounds = &b
			} else {
				b := merged.Bounds.Union(*src.Bounds)
				merged.Bounds = &b
			}
		}
	}

	if len(merged.Positions) == 0 || len(merged.Triangles) == 0 {
		return nil
	}
	return merged
}

// IsEmpty reports whether the mesh has no drawable geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Positions) == 0 || len(m.Triangles) == 0
}

// EdgesWithAngleThreshold re-derives the wireframe edge set with a caller
// chosen dihedral threshold, e.g. a coarse 30 degrees for thin cylindrical
// rebar geometry so only silhouette-like edges show.
func (m *Mesh) EdgesWithAngleThreshold(angleDeg float64) [][2]int {
	cosThreshold := cosDeg(angleDeg)
	var edges [][2]int
	for _, info := range m.EdgeInfo {
		feature := info.Count == 1 || info.Count > 2 ||
			info.Normal0.Dot(info.Normal1) < cosThreshold
		if feature {
			edges = append(edges, [2]int{info.A, info.B})
		}
	}
	return edges
}

// RayPick returns the nearest intersection of the ray with the mesh, as
// (distance, world point). Traverses the BVH when present; a merged mesh
// without one falls back to scanning every triangle.
func (m *Mesh) RayPick(ray picking.Ray) (float64, math.Vec3, bool) {
	if len(m.Triangles) == 0 {
		return 0, math.Vec3{}, false
	}
	if len(m.bvhNodes) == 0 {
		return m.rayPickLinear(ray)
	}
	return m.rayPickBVH(ray)
}

func (m *Mesh) rayPickLinear(ray picking.Ray) (float64, math.Vec3, bool) {
	bestT := -1.0
	for _, tri := range m.Triangles {
		t, ok := ray.IntersectTriangle(m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]])
		if ok && (bestT < 0 || t < bestT) {
			bestT = t
		}
	}
	if bestT < 0 {
		return 0, math.Vec3{}, false
	}
	return bestT, ray.Origin.Add(ray.Direction.Scale(bestT)), true
}

func computeBounds(points []math.Vec3) *Bounds {
	if len(points) == 0 {
		return nil
	}
	b := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return &b
}

func averagePoint(points []math.Vec3) math.Vec3 {
	if len(points) == 0 {
		return math.Vec3{}
	}
	var sum math.Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1.0 / float64(len(points)))
}

// orientTrianglesOutward flips winding so every triangle normal points away
// from the mesh point average, giving consistent shading and selection.
func orientTrianglesOutward(positions []math.Vec3, triangles [][3]int) {
	if len(positions) == 0 {
		return
	}
	center := averagePoint(positions)
	for i, tri := range triangles {
		p0 := positions[tri[0]]
		p1 := positions[tri[1]]
		p2 := positions[tri[2]]
		normal := p1.Sub(p0).Cross(p2.Sub(p0))
		triCenter := p0.Add(p1).Add(p2).Scale(1.0 / 3.0)
		if normal.Dot(triCenter.Sub(center)) < 0 {
			triangles[i][1], triangles[i][2] = tri[2], tri[1]
		}
	}
}
