package model

import "github.com/go-gl/mathgl/mgl32"

// TransformPoint applies a 4x4 matrix to a point.
func TransformPoint(m mgl32.Mat4, p [3]float32) [3]float32 {
	return mgl32.TransformCoordinate(mgl32.Vec3(p), m)
}

// TransformNormal applies the inverse transpose of m's upper 3x3 to n.
func TransformNormal(m mgl32.Mat4, n [3]float32) [3]float32 {
	nm := m.Mat3().Inv().Transpose()
	return Normalize(nm.Mul3x1(mgl32.Vec3(n)))
}

// Normalize returns a unit vector in the same direction as v, or +Y for near-zero input.
func Normalize(v [3]float32) [3]float32 {
	vec := mgl32.Vec3(v)
	if vec.Len() < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return vec.Normalize()
}
