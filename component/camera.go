package component

import (
	"math"

	"github.com/lixenwraith/kinetic/vmath"
)

// Camera holds projection parameters for a viewpoint entity
// The view transform comes from the entity's Transform component
type Camera struct {
	FOV    float64 // Vertical field of view in radians
	Aspect float64
	Near   float64
	Far    float64
}

// NewCamera returns a camera with a 60 degree vertical FOV at 16:9
func NewCamera() Camera {
	return Camera{
		FOV:    math.Pi / 3,
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    1000,
	}
}

// Projection builds the perspective projection matrix
func (c *Camera) Projection() vmath.Mat4 {
	return vmath.M4Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}
