package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gman/internal/engine/model"
	"github.com/Faultbox/gman/internal/engine/picking"
)

// PickModel returns the index of the nearest model under the given point in
// normalized device coordinates, or -1. Boxes are tested after the shared
// transform.
func (c *Controller) PickModel(ndcX, ndcY, aspect float32) int {
	if c.Models.Len() == 0 {
		return -1
	}
	viewProj := c.Camera.Projection(aspect).Mul4(c.Camera.ViewMatrix())
	ray, ok := picking.FromNDC(ndcX, ndcY, viewProj)
	if !ok {
		return -1
	}

	boxes := make([]model.Bounds, c.Models.Len())
	for i, m := range c.Models.All() {
		boxes[i] = m.Bounds
	}
	idx := ray.Closest(boxes, c.Transform.Matrix())
	c.log.Debug("pick", zap.Float32("x", ndcX), zap.Float32("y", ndcY), zap.Int("index", idx))
	return idx
}
