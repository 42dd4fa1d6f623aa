package model

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type countingResource struct {
	released int
}

func (r *countingResource) Release() { r.released++ }

// Absolute tolerance: float32 cos(-90°) is about -4e-8, not 0.
func approxVec(a, b mgl32.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func approxMat(a, b mgl32.Mat4) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func TestBoundsExtend(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Fatal("expected empty bounds")
	}

	b.Extend(mgl32.Vec3{1, -2, 3})
	b.Extend(mgl32.Vec3{-1, 4, 0})

	if b.Min != (mgl32.Vec3{-1, -2, 0}) {
		t.Errorf("unexpected min %v", b.Min)
	}
	if b.Max != (mgl32.Vec3{1, 4, 3}) {
		t.Errorf("unexpected max %v", b.Max)
	}
	if b.IsEmpty() {
		t.Error("bounds should not be empty")
	}
}

func TestBoundsMetrics(t *testing.T) {
	tests := []struct {
		name       string
		b          Bounds
		wantCenter mgl32.Vec3
		wantMaxDim float32
	}{
		{"unit cube", Bounds{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}}, mgl32.Vec3{}, 2},
		{"offset box", Bounds{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 2, 8}}, mgl32.Vec3{2, 1, 4}, 8},
		{"flat", Bounds{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{3, 0, 1}}, mgl32.Vec3{1.5, 0, 0.5}, 3},
		{"point", Bounds{mgl32.Vec3{5, 5, 5}, mgl32.Vec3{5, 5, 5}}, mgl32.Vec3{5, 5, 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := tt.b.Center(); !approxVec(c, tt.wantCenter) {
				t.Errorf("center = %v, want %v", c, tt.wantCenter)
			}
			if d := tt.b.MaxDim(); d != tt.wantMaxDim {
				t.Errorf("maxDim = %f, want %f", d, tt.wantMaxDim)
			}
		})
	}
}

func TestBoundsTransform(t *testing.T) {
	b := Bounds{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}}
	got := b.Transform(mgl32.Translate3D(10, 0, 0).Mul4(mgl32.Scale3D(2, 1, 1)))
	if !approxVec(got.Min, mgl32.Vec3{8, -1, -1}) || !approxVec(got.Max, mgl32.Vec3{12, 1, 1}) {
		t.Errorf("unexpected transformed bounds %v", got)
	}

	// 45 degree yaw widens the box
	rot := b.Transform(mgl32.HomogRotate3DY(mgl32.DegToRad(45)))
	want := float32(math.Sqrt2)
	if math.Abs(float64(rot.Max[0]-want)) > 1e-5 {
		t.Errorf("expected max x %f, got %f", want, rot.Max[0])
	}
}

func TestTransformMatrixOrder(t *testing.T) {
	tr := Transform{
		Position: mgl32.Vec3{1, 2, 3},
		Rotation: mgl32.Vec3{90, 0, 0},
		Scale:    mgl32.Vec3{2, 2, 2},
	}

	// Scale first, then rotate +Y onto +Z, then translate
	got := mgl32.TransformCoordinate(mgl32.Vec3{0, 1, 0}, tr.Matrix())
	want := mgl32.Vec3{1, 2, 5}
	if !approxVec(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTransformMatrixXYZ(t *testing.T) {
	tr := Transform{Rotation: mgl32.Vec3{30, 45, 60}, Scale: mgl32.Vec3{1, 1, 1}}
	want := mgl32.HomogRotate3DX(mgl32.DegToRad(30)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(45))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(60)))
	if !approxMat(tr.Matrix(), want) {
		t.Errorf("rotation order mismatch:\n%v\nwant\n%v", tr.Matrix(), want)
	}
}

func TestNewTransform(t *testing.T) {
	tr := NewTransform(0.01)
	if tr.Scale != (mgl32.Vec3{0.01, 0.01, 0.01}) {
		t.Errorf("unexpected scale %v", tr.Scale)
	}
	tr.Rotation = mgl32.Vec3{1, 2, 3}
	tr.ResetRotation()
	if tr.Rotation != (mgl32.Vec3{}) {
		t.Errorf("expected zero rotation, got %v", tr.Rotation)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	res := []*countingResource{{}, {}}

	for i, rc := range res {
		m := New("m", NewMesh())
		m.Resource = rc
		if idx := r.Add(m); idx != i {
			t.Errorf("expected index %d, got %d", i, idx)
		}
	}
	r.Add(New("unuploaded", NewMesh()))

	if r.Len() != 3 {
		t.Fatalf("expected 3 models, got %d", r.Len())
	}
	if r.At(3) != nil {
		t.Error("expected nil for out of range index")
	}

	r.Clear()
	if r.Len() != 0 {
		t.Errorf("expected empty registry, got %d", r.Len())
	}
	for i, rc := range res {
		if rc.released != 1 {
			t.Errorf("resource %d released %d times", i, rc.released)
		}
	}

	// Clearing twice releases nothing more
	r.Clear()
	if res[0].released != 1 {
		t.Errorf("resource released again: %d", res[0].released)
	}
}

func TestRegistryBounds(t *testing.T) {
	r := NewRegistry()
	a := New("a", nil)
	a.Bounds = Bounds{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}}
	b := New("b", nil)
	b.Bounds = Bounds{mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{0, 3, 0}}
	r.Add(a)
	r.Add(b)

	got := r.Bounds()
	if got.Min != (mgl32.Vec3{-2, 0, 0}) || got.Max != (mgl32.Vec3{1, 3, 1}) {
		t.Errorf("unexpected union %v", got)
	}
}

func TestMeshAddGroup(t *testing.T) {
	quad := []Vertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{1, 1, 0}},
		{Position: [3]float32{0, 1, 0}},
	}
	idx := []uint32{0, 1, 2, 0, 2, 3}

	m := NewMesh()
	if err := m.AddGroup(quad, idx, NoTexture); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	if err := m.AddGroup(quad, idx, NoTexture); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}

	if len(m.Vertices) != 8 || len(m.Indices) != 12 {
		t.Fatalf("unexpected sizes: %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}
	if m.Indices[6] != 4 {
		t.Errorf("second group not rebased: %v", m.Indices[6:])
	}
	if len(m.Groups) != 1 || m.Groups[0].IndexCount != 12 {
		t.Errorf("expected one merged group, got %+v", m.Groups)
	}
	if m.Bounds.Max != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("unexpected bounds %v", m.Bounds)
	}
	if m.TriangleCount() != 4 {
		t.Errorf("expected 4 triangles, got %d", m.TriangleCount())
	}
}

func TestMeshAddGroupErrors(t *testing.T) {
	verts := []Vertex{{}, {}, {}}
	m := NewMesh()
	if err := m.AddGroup(verts, []uint32{0, 1}, NoTexture); err == nil {
		t.Error("expected error for partial triangle")
	}
	if err := m.AddGroup(verts, []uint32{0, 1, 3}, NoTexture); err == nil {
		t.Error("expected error for out of range index")
	}
	// Unknown texture falls back to untextured
	if err := m.AddGroup(verts, []uint32{0, 1, 2}, 7); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	if m.Groups[0].TextureIdx != NoTexture {
		t.Errorf("expected NoTexture, got %d", m.Groups[0].TextureIdx)
	}
}

func TestComputeFlatNormals(t *testing.T) {
	verts := []Vertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 1, 0}},
		{Position: [3]float32{2, 2, 2}}, // unused
	}
	ComputeFlatNormals(verts, []uint32{0, 1, 2})

	for i := 0; i < 3; i++ {
		if verts[i].Normal != [3]float32{0, 0, 1} {
			t.Errorf("vertex %d normal %v, want +Z", i, verts[i].Normal)
		}
	}
	if verts[3].Normal != [3]float32{0, 1, 0} {
		t.Errorf("unused vertex should default to +Y, got %v", verts[3].Normal)
	}
}

func TestSmoothNormals(t *testing.T) {
	verts := []Vertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{5, 0, 0}, Normal: [3]float32{0, 0, 1}},
	}
	SmoothNormals(verts)

	s := float32(1 / math.Sqrt2)
	want := mgl32.Vec3{s, s, 0}
	if !approxVec(mgl32.Vec3(verts[0].Normal), want) || !approxVec(mgl32.Vec3(verts[1].Normal), want) {
		t.Errorf("shared normals not averaged: %v %v", verts[0].Normal, verts[1].Normal)
	}
	if verts[2].Normal != [3]float32{0, 0, 1} {
		t.Errorf("lone vertex changed: %v", verts[2].Normal)
	}
}
