package component

import (
	"github.com/lixenwraith/kinetic/vmath"
)

// ColliderShape identifies the collider primitive
type ColliderShape uint8

const (
	// ShapeCircle is the baseline primitive: a sphere tested in the XY plane
	ShapeCircle ColliderShape = iota
)

// Collider marks an entity as participating in collision detection
// Inactive colliders are skipped by the broad phase
type Collider struct {
	Shape  ColliderShape
	Offset vmath.Vec3 // Center offset from the owning transform
	Radius float64
	Active bool
}

// NewCircleCollider returns an active circle collider centered on its entity
func NewCircleCollider(radius float64) Collider {
	return Collider{
		Shape:  ShapeCircle,
		Radius: radius,
		Active: true,
	}
}
