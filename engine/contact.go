package engine

import (
	"github.com/lixenwraith/kinetic/vmath"
)

// Contact is one collider overlap reported by the Collision phase.
// Contacts are fresh each frame and never persisted; enter/exit
// classification is a future extension.
type Contact struct {
	A, B   Entity     // Ordered so A.Index < B.Index
	Point  vmath.Vec3 // Midpoint of the overlap along the connecting segment
	Normal vmath.Vec3 // Unit vector from A toward B
	Depth  float64    // Overlap distance
}
