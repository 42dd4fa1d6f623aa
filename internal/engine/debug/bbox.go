// Package debug provides debug visualization and capture utilities.
package debug

import "github.com/Faultbox/gman/internal/engine/model"

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// BoundsWireframe returns line vertices for b, format [x, y, z] per vertex.
// Empty boxes yield nil.
func BoundsWireframe(b model.Bounds) []float32 {
	if b.IsEmpty() {
		return nil
	}
	return wireframe(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}

// PaddedBoundsWireframe grows b by padding on every side before building the lines.
func PaddedBoundsWireframe(b model.Bounds, padding float32) []float32 {
	if b.IsEmpty() {
		return nil
	}
	return wireframe(
		b.Min[0]-padding, b.Min[1]-padding, b.Min[2]-padding,
		b.Max[0]+padding, b.Max[1]+padding, b.Max[2]+padding,
	)
}

func wireframe(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}
