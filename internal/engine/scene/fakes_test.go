package scene

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gman/internal/engine/model"
)

// call records one backend method invocation.
type call struct {
	method string
	name   string
}

// fakeBackend records uniform writes and draws.
type fakeBackend struct {
	capacity  int
	uploadErr error

	calls    []call
	mat4s    map[string]mgl32.Mat4
	vec3s    map[string]mgl32.Vec3
	floats   map[string]float32
	ints     map[string]int32
	draws    []*model.Model
	bounds   []model.Bounds
	uploads  int
	released int
	closed   int
}

func newFakeBackend(capacity int) *fakeBackend {
	return &fakeBackend{
		capacity: capacity,
		mat4s:    make(map[string]mgl32.Mat4),
		vec3s:    make(map[string]mgl32.Vec3),
		floats:   make(map[string]float32),
		ints:     make(map[string]int32),
	}
}

func (b *fakeBackend) Use() { b.calls = append(b.calls, call{"Use", ""}) }

func (b *fakeBackend) SetMat4(name string, m mgl32.Mat4) {
	b.calls = append(b.calls, call{"SetMat4", name})
	b.mat4s[name] = m
}

func (b *fakeBackend) SetVec3(name string, v mgl32.Vec3) {
	b.calls = append(b.calls, call{"SetVec3", name})
	b.vec3s[name] = v
}

func (b *fakeBackend) SetFloat(name string, v float32) {
	b.calls = append(b.calls, call{"SetFloat", name})
	b.floats[name] = v
}

func (b *fakeBackend) SetInt(name string, v int32) {
	b.calls = append(b.calls, call{"SetInt", name})
	b.ints[name] = v
}

func (b *fakeBackend) SetIndexedVec3(array string, index int, field string, v mgl32.Vec3) {
	if index >= b.capacity {
		panic(fmt.Sprintf("out of bounds light write %d >= %d", index, b.capacity))
	}
	name := fmt.Sprintf("%s[%d].%s", array, index, field)
	b.calls = append(b.calls, call{"SetIndexedVec3", name})
	b.vec3s[name] = v
}

func (b *fakeBackend) SetIndexedFloat(array string, index int, field string, v float32) {
	if index >= b.capacity {
		panic(fmt.Sprintf("out of bounds light write %d >= %d", index, b.capacity))
	}
	name := fmt.Sprintf("%s[%d].%s", array, index, field)
	b.calls = append(b.calls, call{"SetIndexedFloat", name})
	b.floats[name] = v
}

type fakeResource struct{ b *fakeBackend }

func (r fakeResource) Release() { r.b.released++ }

func (b *fakeBackend) Upload(mesh *model.Mesh) (model.Resource, error) {
	if b.uploadErr != nil {
		return nil, b.uploadErr
	}
	b.uploads++
	return fakeResource{b}, nil
}

func (b *fakeBackend) Draw(m *model.Model) {
	b.calls = append(b.calls, call{"Draw", m.Path})
	b.draws = append(b.draws, m)
}

func (b *fakeBackend) DrawBounds(bounds model.Bounds, mvp mgl32.Mat4) {
	b.bounds = append(b.bounds, bounds)
}

func (b *fakeBackend) MaxPointLights() int { return b.capacity }

func (b *fakeBackend) Close() { b.closed++ }

// fakeLoader serves boxes by path.
type fakeLoader struct {
	boxes map[string]model.Bounds
	loads []string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{boxes: map[string]model.Bounds{
		"unit.obj": {Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}},
		"box.gltf": {Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{4, 2, 8}},
		"flat.obj": {Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{0, 0, 0}},
	}}
}

func (l *fakeLoader) Load(path string) (*model.Model, error) {
	l.loads = append(l.loads, path)
	b, ok := l.boxes[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}
	mesh := model.NewMesh()
	mesh.Bounds = b
	return model.New(path, mesh), nil
}
