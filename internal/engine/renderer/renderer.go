// Package renderer is the OpenGL backend for the scene controller.
package renderer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gman/internal/engine/debug"
	"github.com/Faultbox/gman/internal/engine/model"
	"github.com/Faultbox/gman/internal/engine/renderer/shaders"
	"github.com/Faultbox/gman/internal/engine/scene"
	"github.com/Faultbox/gman/internal/engine/shader"
	"github.com/Faultbox/gman/internal/logger"
)

// ErrNoCapacity is returned when the model shader declares no point light array size.
var ErrNoCapacity = errors.New("shader declares no NR_POINT_LIGHTS")

// BoundsColor is the wireframe color for bounding boxes.
var BoundsColor = mgl32.Vec3{1, 0.8, 0.2}

var capacityPattern = regexp.MustCompile(`(?m)^\s*#define\s+NR_POINT_LIGHTS\s+(\d+)`)

// ParseMaxPointLights reads the point light array size from shader source.
func ParseMaxPointLights(src string) (int, error) {
	m := capacityPattern.FindStringSubmatch(src)
	if m == nil {
		return 0, ErrNoCapacity
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: bad value %q", ErrNoCapacity, m[1])
	}
	return n, nil
}

// IndexedName returns the GLSL name of an array element field.
func IndexedName(array string, index int, field string) string {
	return array + "[" + strconv.Itoa(index) + "]." + field
}

var (
	_ scene.Backend      = (*Renderer)(nil)
	_ scene.BoundsDrawer = (*Renderer)(nil)
)

// Renderer draws scene models with the lit model program.
// IMPORTANT: must be created AFTER the OpenGL context is current.
type Renderer struct {
	log *zap.Logger

	program   *shader.Program
	bbox      *shader.Program
	capacity  int
	whiteTex  uint32
	bboxVAO   uint32
	bboxVBO   uint32
	resources int
}

// New initializes OpenGL and compiles the scene programs.
func New(log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = logger.Named("renderer")
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	capacity, err := ParseMaxPointLights(shaders.ModelFragmentShader)
	if err != nil {
		return nil, err
	}

	r := &Renderer{log: log, capacity: capacity}

	r.program, err = shader.NewProgram(shaders.ModelVertexShader, shaders.ModelFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("model shader: %w", err)
	}
	r.bbox, err = shader.NewProgram(shaders.BboxVertexShader, shaders.BboxFragmentShader)
	if err != nil {
		r.program.Delete()
		return nil, fmt.Errorf("bbox shader: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r.whiteTex = createWhiteTexture()
	r.createBBoxBuffers()

	log.Debug("renderer ready", zap.Int("maxPointLights", capacity))
	return r, nil
}

// Use binds the model program.
func (r *Renderer) Use() { r.program.Use() }

func (r *Renderer) SetMat4(name string, m mgl32.Mat4) { r.program.SetMat4(name, m) }

func (r *Renderer) SetVec3(name string, v mgl32.Vec3) { r.program.SetVec3(name, v) }

func (r *Renderer) SetFloat(name string, v float32) { r.program.SetFloat(name, v) }

func (r *Renderer) SetInt(name string, v int32) { r.program.SetInt(name, v) }

func (r *Renderer) SetIndexedVec3(array string, index int, field string, v mgl32.Vec3) {
	r.program.SetVec3(IndexedName(array, index, field), v)
}

func (r *Renderer) SetIndexedFloat(array string, index int, field string, v float32) {
	r.program.SetFloat(IndexedName(array, index, field), v)
}

// MaxPointLights returns the shader's point light array size.
func (r *Renderer) MaxPointLights() int { return r.capacity }

// Draw binds the model's buffers and draws each texture group.
func (r *Renderer) Draw(m *model.Model) {
	gm, ok := m.Resource.(*gpuMesh)
	if !ok || gm.vao == 0 {
		return
	}

	gl.ActiveTexture(gl.TEXTURE0)
	r.program.SetInt("diffuseTexture", 0)
	gl.BindVertexArray(gm.vao)

	for _, group := range gm.groups {
		tex := r.whiteTex
		hasTexture := int32(0)
		if group.TextureIdx >= 0 && group.TextureIdx < len(gm.textures) && gm.textures[group.TextureIdx] != 0 {
			tex = gm.textures[group.TextureIdx]
			hasTexture = 1
		}
		r.program.SetInt("hasTexture", hasTexture)
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.DrawElementsWithOffset(gl.TRIANGLES, group.IndexCount, gl.UNSIGNED_INT, uintptr(group.StartIndex*4))
	}

	gl.BindVertexArray(0)
}

// DrawBounds draws b as a wireframe with the given MVP matrix.
func (r *Renderer) DrawBounds(b model.Bounds, mvp mgl32.Mat4) {
	verts := debug.BoundsWireframe(b)
	if verts == nil {
		return
	}

	r.bbox.Use()
	r.bbox.SetMat4("uMVP", mvp)
	r.bbox.SetVec3("uColor", BoundsColor)

	gl.BindVertexArray(r.bboxVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.bboxVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.DrawArrays(gl.LINES, 0, debug.BBoxWireframeVertexCount)
	gl.BindVertexArray(0)

	r.program.Use()
}

func (r *Renderer) createBBoxBuffers() {
	gl.GenVertexArrays(1, &r.bboxVAO)
	gl.BindVertexArray(r.bboxVAO)

	gl.GenBuffers(1, &r.bboxVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.bboxVBO)
	gl.BufferData(gl.ARRAY_BUFFER, debug.BBoxWireframeVertexCount*3*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
}

// Close releases the programs and shared buffers. Model resources are
// released by their owners.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("liveResources", r.resources))
	if r.bboxVAO != 0 {
		gl.DeleteVertexArrays(1, &r.bboxVAO)
		r.bboxVAO = 0
	}
	if r.bboxVBO != 0 {
		gl.DeleteBuffers(1, &r.bboxVBO)
		r.bboxVBO = 0
	}
	if r.whiteTex != 0 {
		gl.DeleteTextures(1, &r.whiteTex)
		r.whiteTex = 0
	}
	r.program.Delete()
	r.bbox.Delete()
}

// createWhiteTexture returns a 1x1 white texture for untextured groups.
func createWhiteTexture() uint32 {
	pixel := []byte{255, 255, 255, 255}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixel))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
