package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gman/internal/engine/model"
)

// Auto-framing places the model's bounding box in a 2-unit cube at the
// origin and parks the camera in front of it.
var (
	FramedCameraPosition = mgl32.Vec3{0, 0, 3}
	FramedYaw            = float32(-90)
	FramedPitch          = float32(0)
)

// framedSize is the edge length the largest box dimension is scaled to.
const framedSize = 2.0

// Framing is the transform and camera pose that frames a bounding box.
type Framing struct {
	Center    mgl32.Vec3
	MaxDim    float32
	Transform model.Transform
}

// ComputeFraming derives the framing for b. Boxes with no positive extent,
// or with non-finite coordinates, fail with ErrDegenerateBounds.
func ComputeFraming(b model.Bounds) (Framing, error) {
	center := b.Center()
	maxDim := b.MaxDim()

	if !finite(maxDim) || !finite(center[0]) || !finite(center[1]) || !finite(center[2]) || maxDim <= 0 {
		return Framing{}, fmt.Errorf("%w: min %v max %v", ErrDegenerateBounds, b.Min, b.Max)
	}

	return Framing{
		Center: center,
		MaxDim: maxDim,
		Transform: model.Transform{
			Position: center.Mul(-1),
			Rotation: mgl32.Vec3{},
			Scale:    mgl32.Vec3{1, 1, 1}.Mul(framedSize / maxDim),
		},
	}, nil
}

// applyFraming writes the framing to the shared transform and the camera.
func (c *Controller) applyFraming(f Framing) {
	c.Transform = f.Transform
	c.Camera.Position = FramedCameraPosition
	c.Camera.SetOrientation(FramedYaw, FramedPitch)
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
