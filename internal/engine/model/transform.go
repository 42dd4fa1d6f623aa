package model

import "github.com/go-gl/mathgl/mgl32"

// Transform is the single placement shared by every loaded model.
// Rotation is Euler degrees applied X, then Y, then Z.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// NewTransform returns an identity placement with uniform scale.
func NewTransform(scale float32) Transform {
	return Transform{Scale: mgl32.Vec3{scale, scale, scale}}
}

// Matrix returns T(position) * Rx * Ry * Rz * S(scale).
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation[0])))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation[1])))
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation[2])))
	return m.Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// ResetRotation zeroes all three angles.
func (t *Transform) ResetRotation() {
	t.Rotation = mgl32.Vec3{}
}
