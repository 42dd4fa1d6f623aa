// Package camera provides the free-flying perspective camera used by the viewer.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Orientation and lens limits, in degrees.
const (
	MaxPitch = 89.0
	MinZoom  = 1.0
	MaxZoom  = 45.0

	NearPlane = 0.1
	FarPlane  = 100.0
)

// Direction is a movement direction relative to the camera basis.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// FlyCamera is a yaw/pitch camera that moves freely through the scene.
type FlyCamera struct {
	// Position in world space. Safe to edit directly.
	Position mgl32.Vec3

	// Movement and look tuning
	Speed       float32 // World units per second
	Sensitivity float32 // Degrees per pixel of mouse delta

	// Zoom is the vertical field of view in degrees.
	// Call ClampZoom after editing it directly.
	Zoom float32

	worldUp mgl32.Vec3
	front   mgl32.Vec3
	right   mgl32.Vec3
	up      mgl32.Vec3

	yaw   float32
	pitch float32

	// View matrix cache, keyed on the inputs it was built from
	view      mgl32.Mat4
	viewPos   mgl32.Vec3
	viewFront mgl32.Vec3
	viewUp    mgl32.Vec3
	viewValid bool
}

// NewFlyCamera creates a camera at position looking down -Z with default tuning.
func NewFlyCamera(position mgl32.Vec3) *FlyCamera {
	c := &FlyCamera{
		Position:    position,
		Speed:       2.5,
		Sensitivity: 0.1,
		Zoom:        45.0,
		worldUp:     mgl32.Vec3{0, 1, 0},
		yaw:         -90.0,
		pitch:       0.0,
	}
	c.updateVectors()
	return c
}

// Yaw returns the horizontal angle in degrees.
func (c *FlyCamera) Yaw() float32 { return c.yaw }

// Pitch returns the vertical angle in degrees, always within [-89, 89].
func (c *FlyCamera) Pitch() float32 { return c.pitch }

// Front returns the unit view direction.
func (c *FlyCamera) Front() mgl32.Vec3 { return c.front }

// Right returns the unit right vector.
func (c *FlyCamera) Right() mgl32.Vec3 { return c.right }

// Up returns the unit camera up vector.
func (c *FlyCamera) Up() mgl32.Vec3 { return c.up }

// WorldUp returns the reference up vector the basis is derived from.
func (c *FlyCamera) WorldUp() mgl32.Vec3 { return c.worldUp }

// SetOrientation sets yaw and pitch in degrees and rebuilds the basis.
func (c *FlyCamera) SetOrientation(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = clamp(pitch, -MaxPitch, MaxPitch)
	c.updateVectors()
}

// ProcessLook applies a mouse delta. Positive yOffset looks up.
func (c *FlyCamera) ProcessLook(xOffset, yOffset float32) {
	c.yaw += xOffset * c.Sensitivity
	c.pitch = clamp(c.pitch+yOffset*c.Sensitivity, -MaxPitch, MaxPitch)
	c.updateVectors()
}

// ProcessMove translates the camera by Speed*deltaTime along direction.
// Up and Down follow the world up axis, not the camera's.
func (c *FlyCamera) ProcessMove(direction Direction, deltaTime float32) {
	velocity := c.Speed * deltaTime
	switch direction {
	case Forward:
		c.Position = c.Position.Add(c.front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.right.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(c.worldUp.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(c.worldUp.Mul(velocity))
	}
}

// ProcessZoom narrows the field of view for positive yOffset.
func (c *FlyCamera) ProcessZoom(yOffset float32) {
	c.Zoom -= yOffset
	c.ClampZoom()
}

// ClampZoom keeps Zoom within [MinZoom, MaxZoom].
func (c *FlyCamera) ClampZoom() {
	c.Zoom = clamp(c.Zoom, MinZoom, MaxZoom)
}

// ViewMatrix returns LookAt(position, position+front, up).
// The matrix is rebuilt only when position or orientation changed.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	if c.viewValid && c.viewPos == c.Position && c.viewFront == c.front && c.viewUp == c.up {
		return c.view
	}
	c.view = mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
	c.viewPos, c.viewFront, c.viewUp = c.Position, c.front, c.up
	c.viewValid = true
	return c.view
}

// Projection returns the perspective projection for the given aspect ratio.
func (c *FlyCamera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 || math.IsNaN(float64(aspect)) {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, NearPlane, FarPlane)
}

// updateVectors re-derives front, right and up from yaw and pitch.
func (c *FlyCamera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.front = front.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
	c.viewValid = false
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
