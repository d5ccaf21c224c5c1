package vmath

import (
	"math"
)

// Quat is a rotation quaternion (W scalar part, XYZ vector part)
type Quat struct {
	W, X, Y, Z float64
}

// QIdentity is the no-rotation quaternion
func QIdentity() Quat {
	return Quat{W: 1}
}

// QFromAxisAngle builds a quaternion rotating angle radians around axis
// The axis is normalized internally; a zero axis yields identity
func QFromAxisAngle(axis Vec3, angle float64) Quat {
	axis = V3Normalize(axis)
	if axis == (Vec3{}) {
		return QIdentity()
	}
	half := angle * 0.5
	s := math.Sin(half)
	return Quat{
		W: math.Cos(half),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

// QMul composes rotations: applying QMul(a, b) rotates by b, then a
func QMul(a, b Quat) Quat {
	return Quat{
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
	}
}

// QNormalize rescales to unit length, returning identity for degenerate input
func QNormalize(q Quat) Quat {
	mag := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if mag == 0 {
		return QIdentity()
	}
	inv := 1.0 / mag
	return Quat{q.W * inv, q.X * inv, q.Y * inv, q.Z * inv}
}

// QRotate applies the rotation to a vector
func QRotate(q Quat, v Vec3) Vec3 {
	// v' = v + 2*cross(q.xyz, cross(q.xyz, v) + w*v)
	u := Vec3{q.X, q.Y, q.Z}
	c := V3Cross(u, V3Add(V3Cross(u, v), V3Scale(v, q.W)))
	return V3Add(v, V3Scale(c, 2))
}
