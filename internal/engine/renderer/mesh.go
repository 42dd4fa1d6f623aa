package renderer

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gman/internal/engine/model"
	"github.com/Faultbox/gman/internal/engine/texture"
)

// ErrEmptyMesh is returned when uploading a mesh with no triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// gpuMesh is the GPU side of a model: buffers plus one texture per mesh texture.
type gpuMesh struct {
	r        *Renderer
	vao      uint32
	vbo      uint32
	ebo      uint32
	textures []uint32
	groups   []model.TextureGroup
}

// Upload creates the vertex, index and texture objects for mesh.
func (r *Renderer) Upload(mesh *model.Mesh) (model.Resource, error) {
	if mesh == nil || len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil, ErrEmptyMesh
	}
	if len(mesh.Indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3", len(mesh.Indices))
	}

	gm := &gpuMesh{r: r, groups: mesh.Groups}
	if len(gm.groups) == 0 {
		gm.groups = []model.TextureGroup{{TextureIdx: model.NoTexture, IndexCount: int32(len(mesh.Indices))}}
	}

	vertexSize := int(unsafe.Sizeof(model.Vertex{}))

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)
	r.resources++

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	gm.textures = make([]uint32, len(mesh.Textures))
	for i, img := range mesh.Textures {
		if img == nil {
			continue
		}
		gm.textures[i] = uploadTexture(img)
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		gm.Release()
		return nil, fmt.Errorf("GL error 0x%x during upload", code)
	}

	r.log.Debug("mesh uploaded",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("indices", len(mesh.Indices)),
		zap.Int("textures", len(mesh.Textures)))
	return gm, nil
}

// Release deletes the mesh's GL objects. Safe to call twice.
func (gm *gpuMesh) Release() {
	if gm.vao == 0 && gm.vbo == 0 && gm.ebo == 0 && len(gm.textures) == 0 {
		return
	}
	if gm.vao != 0 {
		gl.DeleteVertexArrays(1, &gm.vao)
		gm.vao = 0
	}
	if gm.vbo != 0 {
		gl.DeleteBuffers(1, &gm.vbo)
		gm.vbo = 0
	}
	if gm.ebo != 0 {
		gl.DeleteBuffers(1, &gm.ebo)
		gm.ebo = 0
	}
	for i := range gm.textures {
		if gm.textures[i] != 0 {
			gl.DeleteTextures(1, &gm.textures[i])
		}
	}
	gm.textures = nil
	gm.r.resources--
}

// uploadTexture creates a mipmapped, repeating RGBA texture.
func uploadTexture(src image.Image) uint32 {
	img := texture.ImageToRGBA(src)

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texID
}
