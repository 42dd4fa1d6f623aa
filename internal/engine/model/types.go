// Package model holds loaded geometry, the model registry and the shared transform.
package model

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// NoTexture marks a group drawn with the material color only.
const NoTexture = -1

// TextureGroup is a contiguous index range drawn with one texture.
type TextureGroup struct {
	TextureIdx int // Index into Mesh.Textures, or NoTexture
	StartIndex int32
	IndexCount int32
}

// Mesh holds the complete mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Groups   []TextureGroup
	Textures []image.Image
	Bounds   Bounds
}

// Bounds is an axis-aligned bounding box. Min <= Max on every axis once
// at least one point has been added.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBounds returns an inverted box that any Extend call will replace.
func EmptyBounds() Bounds {
	inf := float32(math.Inf(1))
	return Bounds{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union grows the box to contain o.
func (b *Bounds) Union(o Bounds) {
	if o.IsEmpty() {
		return
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// Center returns (Min+Max)/2.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns Max-Min.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// MaxDim returns the largest edge length.
func (b Bounds) MaxDim() float32 {
	s := b.Size()
	return max(s[0], s[1], s[2])
}

// Corners returns the eight box corners, bottom face first.
func (b Bounds) Corners() [8]mgl32.Vec3 {
	lo, hi := b.Min, b.Max
	return [8]mgl32.Vec3{
		{lo[0], lo[1], lo[2]},
		{hi[0], lo[1], lo[2]},
		{hi[0], lo[1], hi[2]},
		{lo[0], lo[1], hi[2]},
		{lo[0], hi[1], lo[2]},
		{hi[0], hi[1], lo[2]},
		{hi[0], hi[1], hi[2]},
		{lo[0], hi[1], hi[2]},
	}
}

// Transform returns the box enclosing b after applying m.
func (b Bounds) Transform(m mgl32.Mat4) Bounds {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBounds()
	for _, c := range b.Corners() {
		out.Extend(mgl32.TransformCoordinate(c, m))
	}
	return out
}
