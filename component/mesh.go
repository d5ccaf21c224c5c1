package component

import (
	"github.com/lixenwraith/kinetic/asset"
)

// MeshInstance attaches renderable mesh data to an entity
// The reference is opaque; the mesh collaborator owns the actual geometry
type MeshInstance struct {
	Mesh    asset.MeshRef
	Visible bool
}

// NewMeshInstance returns a visible instance of the given mesh
func NewMeshInstance(ref asset.MeshRef) MeshInstance {
	return MeshInstance{Mesh: ref, Visible: true}
}
