package viewer

import (
	stdmath "math"

	"github.com/Munormae/cryxtal-castor/internal/engine/mesh"
	gmath "github.com/Munormae/cryxtal-castor/pkg/math"
)

// rebarFeatureAngleDeg is the coarser edge threshold used for round bars so
// the facet seams of the tessellated cylinders stay out of the wireframe.
const rebarFeatureAngleDeg = 30.0

// demoScene builds the sample model shown at startup: a column, a plate
// with a rectangular opening, and four rebar cylinders through the column.
// The second return value carries per-mesh display edge overrides, nil for
// meshes that keep the default feature angle.
func demoScene(featureAngleDeg float64) ([]*mesh.Mesh, [][][2]int) {
	var meshes []*mesh.Mesh

	column := boxMesh(
		gmath.Vec3{X: -50, Y: -50, Z: 0},
		gmath.Vec3{X: 50, Y: 50, Z: 400},
	)
	meshes = append(meshes, column)

	// The plate opening is modeled as four slabs around a 100x100 hole;
	// fan triangulation has no hole support.
	const (
		plateZ   = 400.0
		plateTop = 420.0
	)
	meshes = append(meshes,
		boxMesh(gmath.Vec3{X: -200, Y: -150, Z: plateZ}, gmath.Vec3{X: -50, Y: 150, Z: plateTop}),
		boxMesh(gmath.Vec3{X: 50, Y: -150, Z: plateZ}, gmath.Vec3{X: 200, Y: 150, Z: plateTop}),
		boxMesh(gmath.Vec3{X: -50, Y: -150, Z: plateZ}, gmath.Vec3{X: 50, Y: -50, Z: plateTop}),
		boxMesh(gmath.Vec3{X: -50, Y: 50, Z: plateZ}, gmath.Vec3{X: 50, Y: 150, Z: plateTop}),
	)

	edges := make([][][2]int, len(meshes), len(meshes)+4)
	if featureAngleDeg != mesh.DefaultFeatureAngleDeg {
		for i, m := range meshes {
			edges[i] = m.EdgesWithAngleThreshold(featureAngleDeg)
		}
	}

	for _, offset := range []gmath.Vec2{
		{X: -30, Y: -30}, {X: 30, Y: -30}, {X: -30, Y: 30}, {X: 30, Y: 30},
	} {
		bar := cylinderMesh(gmath.Vec3{X: float64(offset.X), Y: float64(offset.Y), Z: -40}, 8, 480, 16)
		meshes = append(meshes, bar)
		edges = append(edges, bar.EdgesWithAngleThreshold(rebarFeatureAngleDeg))
	}

	return meshes, edges
}

// boxMesh builds an axis-aligned box between min and max.
func boxMesh(min, max gmath.Vec3) *mesh.Mesh {
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

// cylinderMesh builds a closed vertical cylinder with base center at base.
func cylinderMesh(base gmath.Vec3, radius, height float64, segments int) *mesh.Mesh {
	positions := make([]gmath.Vec3, 0, segments*2)
	for i := 0; i < segments; i++ {
		angle := 2 * stdmath.Pi * float64(i) / float64(segments)
		x := base.X + radius*stdmath.Cos(angle)
		y := base.Y + radius*stdmath.Sin(angle)
		positions = append(positions,
			gmath.Vec3{X: x, Y: y, Z: base.Z},
			gmath.Vec3{X: x, Y: y, Z: base.Z + height},
		)
	}

	var faces [][]int
	for i := 0; i < segments; i++ {
		next := (i + 1) % segments
		faces = append(faces, []int{i * 2, next * 2, next*2 + 1, i*2 + 1})
	}
	bottom := make([]int, segments)
	top := make([]int, segments)
	for i := 0; i < segments; i++ {
		bottom[i] = i * 2
		top[i] = (segments-1-i)*2 + 1
	}
	faces = append(faces, bottom, top)

	return mesh.New(positions, faces)
}
