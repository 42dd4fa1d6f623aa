// Package scene owns the viewer's scene state: camera, lights, loaded models,
// the shared model transform and the material override. It composes the
// per-frame uniforms and hands them to a render backend.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gman/internal/engine/camera"
	"github.com/Faultbox/gman/internal/engine/lighting"
	"github.com/Faultbox/gman/internal/engine/model"
)

// State is the controller lifecycle stage.
type State int

const (
	Uninitialized State = iota
	Ready
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Disposed:
		return "disposed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Material shininess range accepted by the panel.
const (
	MinShininess = 1
	MaxShininess = 256
)

// Material is the global surface override applied to every model.
type Material struct {
	Color     mgl32.Vec3
	Shininess float32
}

// DefaultMaterial returns white with shininess 32.
func DefaultMaterial() Material {
	return Material{Color: mgl32.Vec3{1, 1, 1}, Shininess: 32}
}

// Config contains controller construction options.
type Config struct {
	CameraPosition    mgl32.Vec3
	CameraSpeed       float32
	CameraSensitivity float32
	CameraFOV         float32

	// ModelScale is the shared transform's uniform scale before any framing.
	ModelScale float32
	// ModelPath pre-fills the panel path field.
	ModelPath string
	// MaxPointLights limits the light set until a backend reports its own.
	MaxPointLights int
	ShowBounds     bool

	Logger *zap.Logger
}

// DefaultConfig returns the stock viewer settings.
func DefaultConfig() Config {
	return Config{
		CameraPosition:    mgl32.Vec3{0, 1, 5},
		CameraSpeed:       2.5,
		CameraSensitivity: 0.1,
		CameraFOV:         45,
		ModelScale:        0.01,
		ModelPath:         "assets/models/g-man-blacksuit/extracted/scene.gltf",
		MaxPointLights:    lighting.MaxPointLights,
	}
}

// DefaultPointLightPosition is where Init places the first point light.
var DefaultPointLightPosition = mgl32.Vec3{0.7, 0.2, 2.0}

// spawnDistance is how far in front of the camera new point lights appear.
const spawnDistance = 2.0

// Stats is per-frame bookkeeping shown in the panel.
type Stats struct {
	Frames      uint64
	Elapsed     float64 // Seconds of Update time
	Models      int
	Triangles   int
	PointLights int
}

// Controller is the authoritative scene state. It is not safe for
// concurrent use; all calls come from the frame thread.
type Controller struct {
	Camera    *camera.FlyCamera
	Lights    *lighting.Set
	Models    *model.Registry
	Transform model.Transform
	Material  Material
	ModelPath PathBuffer

	// CameraMouseActive gates look, zoom and movement input.
	CameraMouseActive bool
	ShowBounds        bool

	loader  AssetLoader
	backend Backend
	state   State
	log     *zap.Logger

	frames  uint64
	elapsed float64
}

// New creates an uninitialized controller. Models can be loaded before Init;
// they are uploaded once a backend is bound.
func New(cfg Config, loader AssetLoader) *Controller {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	cam := camera.NewFlyCamera(cfg.CameraPosition)
	if cfg.CameraSpeed > 0 {
		cam.Speed = cfg.CameraSpeed
	}
	if cfg.CameraSensitivity > 0 {
		cam.Sensitivity = cfg.CameraSensitivity
	}
	if cfg.CameraFOV > 0 {
		cam.Zoom = cfg.CameraFOV
		cam.ClampZoom()
	}

	scale := cfg.ModelScale
	if scale <= 0 {
		scale = 1
	}

	return &Controller{
		Camera:     cam,
		Lights:     lighting.NewSet(cfg.MaxPointLights),
		Models:     model.NewRegistry(),
		Transform:  model.NewTransform(scale),
		Material:   DefaultMaterial(),
		ModelPath:  NewPathBuffer(cfg.ModelPath),
		ShowBounds: cfg.ShowBounds,
		loader:     loader,
		state:      Uninitialized,
		log:        log,
	}
}

// State returns the lifecycle stage.
func (c *Controller) State() State { return c.state }

// Backend returns the bound backend, or nil when running headless.
func (c *Controller) Backend() Backend { return c.backend }

// Init binds the backend and seeds the default lights. A nil backend runs
// the scene headless: everything works except drawing.
func (c *Controller) Init(backend Backend) error {
	switch c.state {
	case Ready:
		return ErrAlreadyInitialized
	case Disposed:
		return ErrDisposed
	}

	c.backend = backend
	if backend != nil {
		c.Lights.SetCapacity(backend.MaxPointLights())
		// Models loaded before Init still need GPU resources
		for _, m := range c.Models.All() {
			if m.Resource != nil {
				continue
			}
			res, err := backend.Upload(m.Mesh)
			if err != nil {
				c.log.Error("deferred model upload failed", zap.String("path", m.Path), zap.Error(err))
				continue
			}
			m.Resource = res
		}
	}

	c.Lights.Dir = lighting.DefaultDirLight()
	if _, err := c.Lights.AddPoint(lighting.NewPointLight(DefaultPointLightPosition)); err != nil {
		c.log.Warn("default point light not added", zap.Error(err))
	}

	c.state = Ready
	c.log.Info("scene initialized",
		zap.Bool("headless", backend == nil),
		zap.Int("maxPointLights", c.Lights.Capacity()),
		zap.Int("models", c.Models.Len()))
	return nil
}

// Update advances per-frame bookkeeping.
func (c *Controller) Update(deltaTime float32) {
	if c.state != Ready {
		return
	}
	c.frames++
	c.elapsed += float64(deltaTime)
}

// Stats returns frame bookkeeping and scene sizes.
func (c *Controller) Stats() Stats {
	s := Stats{
		Frames:      c.frames,
		Elapsed:     c.elapsed,
		Models:      c.Models.Len(),
		PointLights: c.Lights.PointCount(),
	}
	for _, m := range c.Models.All() {
		if m.Mesh != nil {
			s.Triangles += m.Mesh.TriangleCount()
		}
	}
	return s
}

// Render uploads the frame's uniforms and draws every model. It does nothing
// without a bound backend. When more point lights exist than the backend
// holds, the extra lights are skipped, the frame is still drawn and
// ErrCapacityExceeded is returned.
func (c *Controller) Render(aspectRatio float32) error {
	if c.state != Ready || c.backend == nil {
		return nil
	}

	f := c.ComposeUniforms(aspectRatio)

	c.backend.Use()
	apply(c.backend, f)
	for _, m := range c.Models.All() {
		c.backend.Draw(m)
	}

	if c.ShowBounds {
		if bd, ok := c.backend.(BoundsDrawer); ok {
			mvp := f.Projection.Mul4(f.View).Mul4(f.Model)
			for _, m := range c.Models.All() {
				bd.DrawBounds(m.Bounds, mvp)
			}
		}
	}

	if f.Dropped > 0 {
		err := fmt.Errorf("%w: %d of %d point lights not uploaded (capacity %d)",
			ErrCapacityExceeded, f.Dropped, f.Dropped+f.PointLights, c.pointCapacity())
		c.log.Error("point light upload truncated", zap.Error(err))
		return err
	}
	return nil
}

// pointCapacity is the backend's array size, or the light set's own limit headless.
func (c *Controller) pointCapacity() int {
	if c.backend != nil {
		return c.backend.MaxPointLights()
	}
	return c.Lights.Capacity()
}

// Dispose releases every model's GPU resources and closes the backend.
// Calling it again does nothing.
func (c *Controller) Dispose() {
	if c.state == Disposed {
		return
	}
	c.Models.Clear()
	if c.backend != nil {
		c.backend.Close()
		c.backend = nil
	}
	c.state = Disposed
	c.log.Info("scene disposed", zap.Uint64("frames", c.frames))
}
