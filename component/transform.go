package component

import (
	"github.com/lixenwraith/kinetic/vmath"
)

// Transform holds an entity's local position, rotation and scale plus the
// world matrix derived during the scene-graph pass.
// The world matrix is stale between a local mutation and the next
// SceneGraph phase; readers that need fresh world data run after that phase.
type Transform struct {
	Position vmath.Vec3
	Rotation vmath.Quat
	Scale    vmath.Vec3

	// World is parent.World * local, rebuilt once per frame
	World vmath.Mat4
}

// NewTransform returns an identity transform at the origin
func NewTransform() Transform {
	return Transform{
		Rotation: vmath.QIdentity(),
		Scale:    vmath.V3One(),
		World:    vmath.M4Identity(),
	}
}

// NewTransformAt returns an identity transform at the given position
func NewTransformAt(pos vmath.Vec3) Transform {
	t := NewTransform()
	t.Position = pos
	t.World = vmath.M4FromTranslation(pos)
	return t
}

// LocalMatrix composes position/rotation/scale into the local matrix
func (t *Transform) LocalMatrix() vmath.Mat4 {
	return vmath.M4TRS(t.Position, t.Rotation, t.Scale)
}

// WorldPosition extracts the translation of the cached world matrix
func (t *Transform) WorldPosition() vmath.Vec3 {
	return vmath.M4Translation(t.World)
}
