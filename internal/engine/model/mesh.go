package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// NewMesh creates an empty mesh with inverted bounds.
func NewMesh() *Mesh {
	return &Mesh{Bounds: EmptyBounds()}
}

// AddGroup appends a primitive. Indices are relative to vertices and are
// rebased onto the mesh's vertex buffer.
func (m *Mesh) AddGroup(vertices []Vertex, indices []uint32, textureIdx int) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			return fmt.Errorf("index %d out of range (%d vertices)", idx, len(vertices))
		}
	}
	if textureIdx != NoTexture && (textureIdx < 0 || textureIdx >= len(m.Textures)) {
		textureIdx = NoTexture
	}
	if len(indices) == 0 {
		return nil
	}

	base := uint32(len(m.Vertices))
	start := int32(len(m.Indices))

	for _, v := range vertices {
		m.Bounds.Extend(mgl32.Vec3(v.Position))
	}
	m.Vertices = append(m.Vertices, vertices...)
	for _, idx := range indices {
		m.Indices = append(m.Indices, base+idx)
	}

	// Consecutive primitives with the same texture share one draw call
	if n := len(m.Groups); n > 0 && m.Groups[n-1].TextureIdx == textureIdx {
		m.Groups[n-1].IndexCount += int32(len(indices))
		return nil
	}
	m.Groups = append(m.Groups, TextureGroup{
		TextureIdx: textureIdx,
		StartIndex: start,
		IndexCount: int32(len(indices)),
	})
	return nil
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// ComputeFlatNormals sets each vertex normal from the triangles that use it.
// Degenerate triangles contribute nothing.
func ComputeFlatNormals(vertices []Vertex, indices []uint32) {
	sums := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0 := mgl32.Vec3(vertices[i0].Position)
		v1 := mgl32.Vec3(vertices[i1].Position)
		v2 := mgl32.Vec3(vertices[i2].Position)

		n := v1.Sub(v0).Cross(v2.Sub(v0))
		if n.Len() < 1e-5 {
			continue
		}
		n = n.Normalize()
		sums[i0] = sums[i0].Add(n)
		sums[i1] = sums[i1].Add(n)
		sums[i2] = sums[i2].Add(n)
	}
	for i := range vertices {
		vertices[i].Normal = Normalize(sums[i])
	}
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces faceted appearance on meshes that split vertices per face.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum mgl32.Vec3
		for _, idx := range idxs {
			sum = sum.Add(mgl32.Vec3(vertices[idx].Normal))
		}

		avg := Normalize(sum)
		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}
