// Package picking casts rays from the viewport into the scene.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gman/internal/engine/model"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// NDC converts pixel coordinates inside a viewport to normalized device
// coordinates in [-1, 1], Y up.
func NDC(screenX, screenY, viewportW, viewportH float32) (x, y float32) {
	return 2*screenX/viewportW - 1, 1 - 2*screenY/viewportH
}

// FromNDC unprojects a point on the near and far planes into a world-space
// ray. viewProj is projection·view; ok is false when it is not invertible.
func FromNDC(ndcX, ndcY float32, viewProj mgl32.Mat4) (r Ray, ok bool) {
	if viewProj.Det() == 0 {
		return Ray{}, false
	}
	inv := viewProj.Inv()

	near := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})
	if near[3] == 0 || far[3] == 0 {
		return Ray{}, false
	}

	origin := near.Vec3().Mul(1 / near[3])
	dir := far.Vec3().Mul(1 / far[3]).Sub(origin)
	if dir.Len() == 0 {
		return Ray{}, false
	}
	return Ray{Origin: origin, Direction: dir.Normalize()}, true
}

// IntersectBounds tests the ray against an axis-aligned box using the slab
// method. It returns the entry distance, or the exit distance when the
// origin is inside the box.
func (r Ray) IntersectBounds(b model.Bounds) (t float32, hit bool) {
	if b.IsEmpty() {
		return 0, false
	}
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < b.Min[axis] || r.Origin[axis] > b.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (b.Min[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (b.Max[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Closest returns the index of the nearest box the ray hits, or -1.
// Each box is moved to world space by modelMatrix first.
func (r Ray) Closest(boxes []model.Bounds, modelMatrix mgl32.Mat4) int {
	best := -1
	bestT := float32(math.MaxFloat32)
	for i, b := range boxes {
		if t, hit := r.IntersectBounds(b.Transform(modelMatrix)); hit && t < bestT {
			best, bestT = i, t
		}
	}
	return best
}
