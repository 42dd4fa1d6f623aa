// Package assets loads model files from disk into meshes with world-space bounds.
package assets

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/gman/internal/engine/model"
	"github.com/Faultbox/gman/internal/engine/texture"
)

// Load failure kinds. Errors returned by Loader.Load wrap exactly one of these.
var (
	ErrNotFound          = errors.New("model file not found")
	ErrUnsupportedFormat = errors.New("unsupported model format")
	ErrParse             = errors.New("model parse failed")
)

// SupportedExtensions lists the file extensions Load accepts, lower case.
var SupportedExtensions = []string{".gltf", ".glb", ".obj"}

// Loader reads model files. Decoded textures are cached by source so
// reloading a model does not decode its images again.
type Loader struct {
	log      *zap.Logger
	textures *Cache
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		log:      log,
		textures: NewCache(),
	}
}

// Load reads the model at path. The returned model has no GPU resource yet.
func (l *Loader) Load(path string) (*model.Model, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, path)
	}

	var mesh *model.Mesh
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
		mesh, err = l.loadGLTF(path)
	case ".obj":
		mesh, err = l.loadOBJ(path)
	default:
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, ext, path)
	}
	if err != nil {
		return nil, err
	}
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("%w: %s: no triangles", ErrParse, path)
	}

	l.log.Debug("model loaded",
		zap.String("path", path),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("textures", len(mesh.Textures)),
		zap.Float32s("min", mesh.Bounds.Min[:]),
		zap.Float32s("max", mesh.Bounds.Max[:]))

	return model.New(path, mesh), nil
}

// CacheStats returns texture cache hits and misses.
func (l *Loader) CacheStats() (hits, misses int) {
	return l.textures.Stats()
}

// loadTexture decodes an image through the cache. Failures are logged and
// return nil so the mesh falls back to the material color.
func (l *Loader) loadTexture(key, name string, read func() ([]byte, error)) image.Image {
	if img, ok := l.textures.Get(key); ok {
		return img
	}
	data, err := read()
	if err != nil {
		l.log.Warn("texture unavailable", zap.String("texture", key), zap.Error(err))
		return nil
	}
	img, err := texture.Decode(data, name)
	if err != nil {
		l.log.Warn("texture decode failed", zap.String("texture", key), zap.Error(err))
		return nil
	}
	rgba := texture.ImageToRGBA(img)
	l.textures.Set(key, rgba)
	return rgba
}

func parseErr(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrParse, path, err)
}
