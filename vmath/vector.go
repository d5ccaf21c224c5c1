package vmath

import (
	"math"
)

// Vec3 is a float64 3D vector used throughout the simulation core
type Vec3 struct {
	X, Y, Z float64
}

// V3 builds a vector from components
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// V3Zero is the origin / null vector
func V3Zero() Vec3 {
	return Vec3{}
}

// V3One is the unit scale vector (1,1,1)
func V3One() Vec3 {
	return Vec3{X: 1, Y: 1, Z: 1}
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// V3MulElem multiplies component-wise (used for scale composition)
func V3MulElem(a, b Vec3) Vec3 {
	return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

func V3Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float64 {
	return math.Sqrt(V3MagSq(v))
}

// V3Dist returns the distance between two points
func V3Dist(a, b Vec3) float64 {
	return V3Mag(V3Sub(b, a))
}

// V3Normalize returns the unit vector, or the zero vector for zero input
// Optimization: one division, three multiplies
func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3Lerp interpolates linearly between a and b by t in [0,1]
func V3Lerp(a, b Vec3, t float64) Vec3 {
	return V3Add(a, V3Scale(V3Sub(b, a), t))
}

// V3ClampMagnitude limits vector magnitude
func V3ClampMagnitude(v Vec3, maxMag float64) Vec3 {
	if V3MagSq(v) <= maxMag*maxMag {
		return v
	}
	return V3Scale(V3Normalize(v), maxMag)
}

// V3ApproxEq compares vectors with an absolute epsilon per component
func V3ApproxEq(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps &&
		math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.Z-b.Z) <= eps
}
