package viewer

import (
	"testing"

	"github.com/Munormae/cryxtal-castor/internal/engine/mesh"
	gmath "github.com/Munormae/cryxtal-castor/pkg/math"
)

func TestDemoSceneShape(t *testing.T) {
	meshes, edges := demoScene(mesh.DefaultFeatureAngleDeg)

	// Column, four plate slabs, four rebar cylinders.
	if len(meshes) != 9 {
		t.Fatalf("demo meshes = %d, want 9", len(meshes))
	}
	if len(edges) != len(meshes) {
		t.Fatalf("edge overrides = %d, want %d", len(edges), len(meshes))
	}
	for i, m := range meshes {
		if m == nil || m.IsEmpty() {
			t.Fatalf("mesh %d is empty", i)
		}
		if m.Bounds == nil {
			t.Fatalf("mesh %d has no bounds", i)
		}
	}

	// Prismatic parts keep the default feature edges.
	for i := 0; i < 5; i++ {
		if edges[i] != nil {
			t.Errorf("mesh %d has an unexpected edge override", i)
		}
	}
	// Bars use the coarse threshold: side seams vanish, rim edges stay.
	for i := 5; i < 9; i++ {
		if edges[i] == nil {
			t.Fatalf("bar %d is missing its coarse edge override", i)
		}
		if fine := len(meshes[i].Edges); len(edges[i]) >= fine {
			t.Errorf("bar %d: coarse edges %d not fewer than fine %d", i, len(edges[i]), fine)
		}
	}
}

func TestCylinderMeshClosed(t *testing.T) {
	m := cylinderMesh(gmath.Vec3{}, 10, 100, 12)
	// Every edge of a closed mesh is shared by exactly two triangles.
	for _, info := range m.EdgeInfo {
		if info.Count != 2 {
			t.Fatalf("edge (%d,%d) has %d adjacent triangles, want 2", info.A, info.B, info.Count)
		}
	}
}
