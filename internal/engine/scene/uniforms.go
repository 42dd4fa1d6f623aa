package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names shared with the viewer shader.
const (
	UniformProjection   = "projection"
	UniformView         = "view"
	UniformModel        = "model"
	UniformViewPos      = "viewPos"
	UniformPointCount   = "nrPointLights"
	UniformPointLights  = "pointLights"
	UniformMatColor     = "material.color"
	UniformMatShininess = "material.shininess"
	UniformDirDirection = "dirLight.direction"
	UniformDirAmbient   = "dirLight.ambient"
	UniformDirDiffuse   = "dirLight.diffuse"
	UniformDirSpecular  = "dirLight.specular"
)

// Kind is a uniform's GLSL type.
type Kind int

const (
	KindMat4 Kind = iota
	KindVec3
	KindFloat
	KindInt
)

// Uniform is one write to the scene program. Array and Index are set for
// elements of the point light array, in which case Name is the field.
type Uniform struct {
	Name  string
	Array string
	Index int
	Kind  Kind

	Mat4  mgl32.Mat4
	Vec3  mgl32.Vec3
	Float float32
	Int   int32
}

// FullName returns the GLSL name, e.g. "pointLights[2].linear".
func (u Uniform) FullName() string {
	if u.Array == "" {
		return u.Name
	}
	return fmt.Sprintf("%s[%d].%s", u.Array, u.Index, u.Name)
}

// Frame is the ordered uniform set for one frame.
type Frame struct {
	Uniforms   []Uniform
	Projection mgl32.Mat4
	View       mgl32.Mat4
	Model      mgl32.Mat4

	// PointLights is the number of point lights uploaded; Dropped the
	// number left out because they exceed the backend capacity.
	PointLights int
	Dropped     int
}

// Lookup returns the last uniform with the given full name.
func (f Frame) Lookup(fullName string) (Uniform, bool) {
	for i := len(f.Uniforms) - 1; i >= 0; i-- {
		if f.Uniforms[i].FullName() == fullName {
			return f.Uniforms[i], true
		}
	}
	return Uniform{}, false
}

func (f *Frame) mat4(name string, m mgl32.Mat4) {
	f.Uniforms = append(f.Uniforms, Uniform{Name: name, Kind: KindMat4, Mat4: m})
}

func (f *Frame) vec3(name string, v mgl32.Vec3) {
	f.Uniforms = append(f.Uniforms, Uniform{Name: name, Kind: KindVec3, Vec3: v})
}

func (f *Frame) float(name string, v float32) {
	f.Uniforms = append(f.Uniforms, Uniform{Name: name, Kind: KindFloat, Float: v})
}

func (f *Frame) integer(name string, v int32) {
	f.Uniforms = append(f.Uniforms, Uniform{Name: name, Kind: KindInt, Int: v})
}

func (f *Frame) indexedVec3(array string, index int, field string, v mgl32.Vec3) {
	f.Uniforms = append(f.Uniforms, Uniform{Name: field, Array: array, Index: index, Kind: KindVec3, Vec3: v})
}

func (f *Frame) indexedFloat(array string, index int, field string, v float32) {
	f.Uniforms = append(f.Uniforms, Uniform{Name: field, Array: array, Index: index, Kind: KindFloat, Float: v})
}

// ComposeUniforms builds the frame's uniforms in upload order: matrices,
// directional light, point lights, light count, eye position, material,
// then the shared model matrix. Point lights beyond the capacity are left
// out and counted in Dropped.
func (c *Controller) ComposeUniforms(aspect float32) Frame {
	f := Frame{
		Projection: c.Camera.Projection(aspect),
		View:       c.Camera.ViewMatrix(),
		Model:      c.Transform.Matrix(),
	}

	f.mat4(UniformProjection, f.Projection)
	f.mat4(UniformView, f.View)

	dir := c.Lights.Dir
	f.vec3(UniformDirDirection, dir.Direction)
	f.vec3(UniformDirAmbient, dir.Ambient)
	f.vec3(UniformDirDiffuse, dir.Diffuse)
	f.vec3(UniformDirSpecular, dir.Specular)

	points := c.Lights.Points()
	n := min(len(points), c.pointCapacity())
	for i, p := range points[:n] {
		att := p.Clamped()
		f.indexedVec3(UniformPointLights, i, "position", p.Position)
		f.indexedVec3(UniformPointLights, i, "ambient", p.Ambient)
		f.indexedVec3(UniformPointLights, i, "diffuse", p.Diffuse)
		f.indexedVec3(UniformPointLights, i, "specular", p.Specular)
		f.indexedFloat(UniformPointLights, i, "constant", att.Constant)
		f.indexedFloat(UniformPointLights, i, "linear", att.Linear)
		f.indexedFloat(UniformPointLights, i, "quadratic", att.Quadratic)
	}
	f.PointLights = n
	f.Dropped = len(points) - n
	f.integer(UniformPointCount, int32(n))

	f.vec3(UniformViewPos, c.Camera.Position)

	f.vec3(UniformMatColor, c.Material.Color)
	f.float(UniformMatShininess, c.Material.Shininess)

	f.mat4(UniformModel, f.Model)
	return f
}

// apply writes every uniform of f to b.
func apply(b Backend, f Frame) {
	for _, u := range f.Uniforms {
		if u.Array != "" {
			switch u.Kind {
			case KindVec3:
				b.SetIndexedVec3(u.Array, u.Index, u.Name, u.Vec3)
			case KindFloat:
				b.SetIndexedFloat(u.Array, u.Index, u.Name, u.Float)
			}
			continue
		}
		switch u.Kind {
		case KindMat4:
			b.SetMat4(u.Name, u.Mat4)
		case KindVec3:
			b.SetVec3(u.Name, u.Vec3)
		case KindFloat:
			b.SetFloat(u.Name, u.Float)
		case KindInt:
			b.SetInt(u.Name, u.Int)
		}
	}
}
