package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gman/internal/engine/lighting"
	"github.com/Faultbox/gman/internal/engine/model"
)

// LoadModel loads path, frames it and appends it to the registry. Used for
// dropped files and the startup model. On any failure the registry, the
// transform and the camera are left untouched.
func (c *Controller) LoadModel(path string) error {
	return c.load(path, true)
}

// LoadModelManual loads path and appends it without touching the transform
// or the camera. Used by the panel's Load button.
func (c *Controller) LoadModelManual(path string) error {
	return c.load(path, false)
}

// LoadFromPanel loads the model named in ModelPath without framing.
func (c *Controller) LoadFromPanel() error {
	return c.LoadModelManual(c.ModelPath.String())
}

func (c *Controller) load(path string, frame bool) error {
	if c.state == Disposed {
		return ErrDisposed
	}

	m, err := c.loader.Load(path)
	if err != nil {
		c.log.Error("model load failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}

	var framing Framing
	if frame {
		framing, err = ComputeFraming(m.Bounds)
		if err != nil {
			c.log.Error("model not framed", zap.String("path", path), zap.Error(err))
			return err
		}
	}

	if c.backend != nil {
		res, err := c.backend.Upload(m.Mesh)
		if err != nil {
			c.log.Error("model upload failed", zap.String("path", path), zap.Error(err))
			return fmt.Errorf("%w: %s: %w", ErrUpload, path, err)
		}
		m.Resource = res
	}

	if frame {
		c.applyFraming(framing)
	}
	idx := c.Models.Add(m)

	c.log.Info("model added",
		zap.String("path", path),
		zap.Int("index", idx),
		zap.Bool("framed", frame),
		zap.Float32("scale", c.Transform.Scale[0]))
	return nil
}

// FocusCamera frames m: the shared transform centers its box at the origin
// scaled to 2 units, rotation resets and the camera returns to (0, 0, 3)
// looking down -Z. Degenerate boxes leave everything untouched.
func (c *Controller) FocusCamera(m *model.Model) error {
	if m == nil {
		return ErrNoSuchModel
	}
	f, err := ComputeFraming(m.Bounds)
	if err != nil {
		c.log.Error("focus failed", zap.String("path", m.Path), zap.Error(err))
		return err
	}
	c.applyFraming(f)
	return nil
}

// FocusModel frames the registry entry at index.
func (c *Controller) FocusModel(index int) error {
	m := c.Models.At(index)
	if m == nil {
		return fmt.Errorf("%w: index %d of %d", ErrNoSuchModel, index, c.Models.Len())
	}
	return c.FocusCamera(m)
}

// ClearModels empties the registry. Camera, lights, transform and material are kept.
func (c *Controller) ClearModels() {
	n := c.Models.Len()
	c.Models.Clear()
	c.log.Info("models cleared", zap.Int("count", n))
}

// AddPointLightInFront appends a default point light two units ahead of the
// camera and returns its index.
func (c *Controller) AddPointLightInFront() (int, error) {
	pos := c.Camera.Position.Add(c.Camera.Front().Mul(spawnDistance))
	idx, err := c.Lights.AddPoint(lighting.NewPointLight(pos))
	if err != nil {
		c.log.Warn("point light not added", zap.Error(err))
		return -1, err
	}
	c.log.Debug("point light added", zap.Int("index", idx), zap.Float32s("position", pos[:]))
	return idx, nil
}

// AddAreaLightInFront appends an area light two units ahead of the camera.
// Area lights are listed in the panel but not shaded.
func (c *Controller) AddAreaLightInFront() int {
	pos := c.Camera.Position.Add(c.Camera.Front().Mul(spawnDistance))
	return c.Lights.AddArea(lighting.NewAreaLight(pos))
}

// FixZUp rotates -90 degrees about X so Z-up assets stand upright.
// Only the X angle changes.
func (c *Controller) FixZUp() {
	c.Transform.Rotation[0] = -90
}

// ResetRotation zeroes the shared rotation.
func (c *Controller) ResetRotation() {
	c.Transform.ResetRotation()
}

// ClampMaterial keeps shininess within the panel range.
func (c *Controller) ClampMaterial() {
	c.Material.Shininess = min(max(c.Material.Shininess, MinShininess), MaxShininess)
}
