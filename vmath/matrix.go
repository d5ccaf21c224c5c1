package vmath

import (
	"math"
)

// Mat4 is a column-major 4x4 transformation matrix
// Element (row r, col c) lives at index c*4+r, matching GPU upload order
type Mat4 [16]float64

// M4Identity returns the identity matrix
func M4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// M4FromTranslation builds a translation matrix
func M4FromTranslation(t Vec3) Mat4 {
	m := M4Identity()
	m[12] = t.X
	m[13] = t.Y
	m[14] = t.Z
	return m
}

// M4FromScale builds a non-uniform scale matrix
func M4FromScale(s Vec3) Mat4 {
	m := M4Identity()
	m[0] = s.X
	m[5] = s.Y
	m[10] = s.Z
	return m
}

// M4FromQuat builds a rotation matrix from a unit quaternion
func M4FromQuat(q Quat) Mat4 {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// M4Mul multiplies a*b (b applied first when transforming points)
func M4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[k*4+r] * b[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// M4TRS composes translation * rotation * scale into one matrix
// This is the local matrix layout used by transform components
func M4TRS(t Vec3, r Quat, s Vec3) Mat4 {
	m := M4FromQuat(r)
	// Fold the scale into the rotation columns, then set translation
	for c := 0; c < 3; c++ {
		f := [3]float64{s.X, s.Y, s.Z}[c]
		m[c*4+0] *= f
		m[c*4+1] *= f
		m[c*4+2] *= f
	}
	m[12] = t.X
	m[13] = t.Y
	m[14] = t.Z
	return m
}

// M4TransformPoint applies the matrix to a point (w=1)
func M4TransformPoint(m Mat4, p Vec3) Vec3 {
	return Vec3{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// M4Translation extracts the translation column
func M4Translation(m Mat4) Vec3 {
	return Vec3{X: m[12], Y: m[13], Z: m[14]}
}

// M4Transpose returns the transposed matrix
func M4Transpose(m Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[r*4+c] = m[c*4+r]
		}
	}
	return out
}

// M4Perspective builds a right-handed perspective projection
// fovY in radians; near/far are positive clip distances
func M4Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovY*0.5)
	nf := 1.0 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}
