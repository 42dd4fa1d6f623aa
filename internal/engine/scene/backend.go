package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gman/internal/engine/lighting"
	"github.com/Faultbox/gman/internal/engine/model"
)

// Controller errors.
var (
	ErrAlreadyInitialized = errors.New("scene already initialized")
	ErrDisposed           = errors.New("scene disposed")
	ErrAssetLoad          = errors.New("asset load failed")
	ErrUpload             = errors.New("model upload failed")
	ErrDegenerateBounds   = errors.New("degenerate bounding box")
	ErrNoSuchModel        = errors.New("no such model")

	// ErrCapacityExceeded is lighting.ErrCapacityExceeded, so errors.Is works with either.
	ErrCapacityExceeded = lighting.ErrCapacityExceeded
)

// AssetLoader turns a file path into a model with world-space bounds.
type AssetLoader interface {
	Load(path string) (*model.Model, error)
}

// Backend receives composed uniforms and draws models. The controller only
// lends it models for the duration of a call.
type Backend interface {
	// Use binds the scene shader program.
	Use()

	SetMat4(name string, m mgl32.Mat4)
	SetVec3(name string, v mgl32.Vec3)
	SetFloat(name string, v float32)
	SetInt(name string, v int32)

	// SetIndexedVec3 writes array[index].field.
	SetIndexedVec3(array string, index int, field string, v mgl32.Vec3)
	// SetIndexedFloat writes array[index].field.
	SetIndexedFloat(array string, index int, field string, v float32)

	// Upload creates GPU buffers and textures for mesh.
	Upload(mesh *model.Mesh) (model.Resource, error)
	// Draw issues the draw calls for an uploaded model. Models without a
	// resource are skipped.
	Draw(m *model.Model)

	// MaxPointLights is the point light array size of the bound program.
	MaxPointLights() int

	Close()
}

// BoundsDrawer is implemented by backends that can draw box wireframes.
type BoundsDrawer interface {
	DrawBounds(b model.Bounds, mvp mgl32.Mat4)
}
