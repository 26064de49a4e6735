package mesh

import (
	gomath "math"
	"sort"

	"github.com/Munormae/cryxtal-castor/internal/engine/picking"
	"github.com/Munormae/cryxtal-castor/pkg/math"
)

// bvhLeafSize caps the number of triangles held by one leaf.
const bvhLeafSize = 8

// bvhNode lives in a flat arena; children are arena indices (-1 for none)
// and leaf triangle membership is a contiguous range into a shared index
// buffer. Interior nodes have count == 0.
type bvhNode struct {
	bounds Bounds
	left   int
	right  int
	start  int
	count  int
}

type bvhBuilder struct {
	triBounds []Bounds
	centroids []math.Vec3
	nodes     []bvhNode
	indices   []int
}

// buildBVH median-splits triangles on the axis of greatest centroid extent.
// The structure is static: a changed mesh rebuilds from scratch.
func buildBVH(positions []math.Vec3, triangles [][3]int) ([]bvhNode, []int) {
	if len(triangles) == 0 || len(positions) == 0 {
		return nil, nil
	}

	b := &bvhBuilder{
		triBounds: make([]Bounds, len(triangles)),
		centroids: make([]math.Vec3, len(triangles)),
		indices:   make([]int, 0, len(triangles)),
	}
	for i, tri := range triangles {
		p0 := positions[tri[0]]
		p1 := positions[tri[1]]
		p2 := positions[tri[2]]
		b.triBounds[i] = Bounds{Min: p0.Min(p1).Min(p2), Max: p0.Max(p1).Max(p2)}
		b.centroids[i] = p0.Add(p1).Add(p2).Scale(1.0 / 3.0)
	}

	order := make([]int, len(triangles))
	for i := range order {
		order[i] = i
	}
	b.build(order)
	return b.nodes, b.indices
}

func (b *bvhBuilder) build(order []int) int {
	nodeIndex := len(b.nodes)
	bounds := b.triBounds[order[0]]
	for _, idx := range order[1:] {
		bounds = bounds.Union(b.triBounds[idx])
	}
	b.nodes = append(b.nodes, bvhNode{bounds: bounds, left: -1, right: -1})

	if len(order) <= bvhLeafSize {
		start := len(b.indices)
		b.indices = append(b.indices, order...)
		b.nodes[nodeIndex].start = start
		b.nodes[nodeIndex].count = len(order)
		return nodeIndex
	}

	cmin := b.centroids[order[0]]
	cmax := cmin
	for _, idx := range order[1:] {
		cmin = cmin.Min(b.centroids[idx])
		cmax = cmax.Max(b.centroids[idx])
	}
	extent := cmax.Sub(cmin)
	axis := 2
	if extent.X >= extent.Y && extent.X >= extent.Z {
		axis = 0
	} else if extent.Y >= extent.Z {
		axis = 1
	}

	sort.Slice(order, func(i, j int) bool {
		return b.centroids[order[i]].Component(axis) < b.centroids[order[j]].Component(axis)
	})

	mid := len(order) / 2
	left := b.build(order[:mid])
	right := b.build(order[mid:])
	b.nodes[nodeIndex].left = left
	b.nodes[nodeIndex].right = right
	return nodeIndex
}

// rayPickBVH traverses the tree with an explicit stack, visiting the nearer
// child first and pruning subtrees whose slab interval cannot beat the
// current best hit.
func (m *Mesh) rayPickBVH(ray picking.Ray) (float64, math.Vec3, bool) {
	bestT := gomath.Inf(1)
	found := false

	stack := make([]int, 0, 64)
	stack = append(stack, 0)

	for len(stack) > 0 {
		nodeIdx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &m.bvhNodes[nodeIdx]

		if _, _, ok := ray.IntersectAABBInterval(node.bounds.Min, node.bounds.Max, bestT); !ok {
			continue
		}

		if node.count > 0 {
			for _, triIdx := range m.bvhIndices[node.start : node.start+node.count] {
				tri := m.Triangles[triIdx]
				t, ok := ray.IntersectTriangle(m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]])
				if ok && t < bestT {
					bestT = t
					found = true
				}
			}
			continue
		}

		leftT, leftHit := childEntry(m, ray, node.left, bestT)
		rightT, rightHit := childEntry(m, ray, node.right, bestT)
		switch {
		case leftHit && rightHit:
			if leftT <= rightT {
				stack = append(stack, node.right, node.left)
			} else {
				stack = append(stack, node.left, node.right)
			}
		case leftHit:
			stack = append(stack, node.left)
		case rightHit:
			stack = append(stack, node.right)
		}
	}

	if !found {
		return 0, math.Vec3{}, false
	}
	return bestT, ray.Origin.Add(ray.Direction.Scale(bestT)), true
}

func childEntry(m *Mesh, ray picking.Ray, child int, maxT float64) (float64, bool) {
	if child < 0 {
		return 0, false
	}
	node := &m.bvhNodes[child]
	tmin, _, ok := ray.IntersectAABBInterval(node.bounds.Min, node.bounds.Max, maxT)
	return tmin, ok
}
