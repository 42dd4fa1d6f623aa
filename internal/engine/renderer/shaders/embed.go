// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ModelVertexShader is the vertex shader for lit model rendering.
//
//go:embed model.vert
var ModelVertexShader string

// ModelFragmentShader is the Blinn-Phong fragment shader with one
// directional light and an array of point lights.
//
//go:embed model.frag
var ModelFragmentShader string

// BboxVertexShader is the vertex shader for bounding box rendering.
//
//go:embed bbox.vert
var BboxVertexShader string

// BboxFragmentShader is the fragment shader for bounding box rendering.
//
//go:embed bbox.frag
var BboxFragmentShader string
