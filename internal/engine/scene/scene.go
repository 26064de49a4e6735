// Package scene holds the ordered list of per-element viewer meshes fed in
// by the modeling layer, with a revision counter so rendering backends can
// detect that nothing changed.
package scene

import "github.com/Munormae/cryxtal-castor/internal/engine/mesh"

// Scene owns the current element meshes. It is rebuilt by the caller on
// every geometry change and read-only for the duration of a frame.
type Scene struct {
	meshes   []*mesh.Mesh
	revision uint64
}

// New creates an empty scene at revision zero.
func New() *Scene {
	return &Scene{}
}

// SetMeshes replaces the element list and bumps the revision.
func (s *Scene) SetMeshes(meshes []*mesh.Mesh) {
	s.meshes = meshes
	s.revision++
}

// Meshes returns the current element meshes, ordered as supplied.
func (s *Scene) Meshes() []*mesh.Mesh {
	return s.meshes
}

// Revision returns the current revision. It increases monotonically with
// every SetMeshes call.
func (s *Scene) Revision() uint64 {
	return s.revision
}

// Bounds returns the union of all element bounds.
func (s *Scene) Bounds() (mesh.Bounds, bool) {
	var bounds mesh.Bounds
	found := false
	for _, m := range s.meshes {
		if m == nil || m.Bounds == nil {
			continue
		}
		if !found {
			bounds = *m.Bounds
			found = true
		} else {
			bounds = bounds.Union(*m.Bounds)
		}
	}
	return bounds, found
}

// Merged returns a picking-inert aggregate of every element mesh, for
// whole-scene edge rendering. Nil when the scene is empty.
func (s *Scene) Merged() *mesh.Mesh {
	return mesh.Merge(s.meshes)
}
