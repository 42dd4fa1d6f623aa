package lighting

import "github.com/go-gl/mathgl/mgl32"

// DirLight is a light at infinity. Direction need not be normalized.
type DirLight struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
}

// DefaultDirLight returns a soft white light slanting down and away from the viewer.
func DefaultDirLight() DirLight {
	return DirLight{
		Direction: mgl32.Vec3{-0.2, -1.0, -0.3},
		Ambient:   mgl32.Vec3{0.2, 0.2, 0.2},
		Diffuse:   mgl32.Vec3{0.5, 0.5, 0.5},
		Specular:  mgl32.Vec3{1.0, 1.0, 1.0},
	}
}

// AreaLight is a rectangular emitter. It is listed and editable but not shaded.
type AreaLight struct {
	Position  mgl32.Vec3
	Corners   [4]mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// NewAreaLight creates a unit quad facing +Z centered on position.
func NewAreaLight(position mgl32.Vec3) AreaLight {
	return AreaLight{
		Position: position,
		Corners: [4]mgl32.Vec3{
			position.Add(mgl32.Vec3{-0.5, -0.5, 0}),
			position.Add(mgl32.Vec3{0.5, -0.5, 0}),
			position.Add(mgl32.Vec3{0.5, 0.5, 0}),
			position.Add(mgl32.Vec3{-0.5, 0.5, 0}),
		},
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: 1,
	}
}
