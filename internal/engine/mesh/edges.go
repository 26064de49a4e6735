package mesh

import (
	gomath "math"
	"sort"

	"github.com/Munormae/cryxtal-castor/pkg/math"
)

// EdgeInfo records how many triangles share an undirected edge and the
// normals of the first two, for dihedral-angle feature classification.
type EdgeInfo struct {
	A, B    int
	Normal0 math.Vec3
	Normal1 math.Vec3
	Count   uint8
	Feature bool
}

type edgeKey struct {
	a, b int
}

// buildFeatureEdges accumulates incident triangle normals per undirected
// edge and classifies each edge. An edge is a feature when it is a boundary
// (one incident triangle), non-manifold (more than two), or the dihedral
// angle between its two incident normals exceeds the default threshold.
func buildFeatureEdges(positions []math.Vec3, triangles [][3]int) ([][2]int, []EdgeInfo) {
	cosThreshold := cosDeg(DefaultFeatureAngleDeg)
	center := averagePoint(positions)
	entries := make(map[edgeKey]*EdgeInfo)

	for _, tri := range triangles {
		p0 := positions[tri[0]]
		p1 := positions[tri[1]]
		p2 := positions[tri[2]]
		normal := p1.Sub(p0).Cross(p2.Sub(p0))
		length := normal.Length()
		if length <= 1.0e-8 {
			continue // degenerate triangle contributes nothing
		}
		triCenter := p0.Add(p1).Add(p2).Scale(1.0 / 3.0)
		if normal.Dot(triCenter.Sub(center)) < 0 {
			normal = normal.Neg()
		}
		normal = normal.Scale(1.0 / length)

		for _, pair := range [3][2]int{{tri[0], tri[1]}, {tri[1], tri[2]}, {tri[2], tri[0]}} {
			a, b := pair[0], pair[1]
			if a > b {
				a, b = b, a
			}
			key := edgeKey{a, b}
			entry, ok := entries[key]
			if !ok {
				entries[key] = &EdgeInfo{A: a, B: b, Normal0: normal, Count: 1}
				continue
			}
			if entry.Count < gomath.MaxUint8 {
				entry.Count++
			}
			if entry.Count == 2 {
				entry.Normal1 = normal
			}
		}
	}

	edgeInfo := make([]EdgeInfo, 0, len(entries))
	for _, entry := range entries {
		entry.Feature = entry.Count == 1 || entry.Count > 2 ||
			entry.Normal0.Dot(entry.Normal1) < cosThreshold
		edgeInfo = append(edgeInfo, *entry)
	}

	// Map iteration order is random; sort so extraction is deterministic.
	sort.Slice(edgeInfo, func(i, j int) bool {
		if edgeInfo[i].A != edgeInfo[j].A {
			return edgeInfo[i].A < edgeInfo[j].A
		}
		return edgeInfo[i].B < edgeInfo[j].B
	})

	var edges [][2]int
	for _, info := range edgeInfo {
		if info.Feature {
			edges = append(edges, [2]int{info.A, info.B})
		}
	}
	return edges, edgeInfo
}

func cosDeg(angleDeg float64) float64 {
	return gomath.Cos(angleDeg * gomath.Pi / 180.0)
}
