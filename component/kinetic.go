package component

import (
	"github.com/lixenwraith/kinetic/vmath"
)

// Kinetic provides velocity integration for entities with sub-frame motion
// The built-in simulation step advances Position by Velocity*dt each frame
type Kinetic struct {
	Velocity vmath.Vec3
	Damping  float64 // Per-second velocity decay factor, 0 = none
}
