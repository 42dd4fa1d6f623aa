package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/gman/internal/engine/model"
)

// gltfReader flattens one glTF document into a single world-space mesh.
type gltfReader struct {
	l    *Loader
	path string
	doc  *gltf.Document
	mesh *model.Mesh

	// glTF texture index -> Mesh.Textures index, or NoTexture once tried
	texIndex map[int]int
}

// loadGLTF reads .gltf (with external or embedded buffers) and .glb files.
// Node transforms are baked into vertex positions and normals.
func (l *Loader) loadGLTF(path string) (*model.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, parseErr(path, err)
	}

	r := &gltfReader{
		l:        l,
		path:     path,
		doc:      doc,
		mesh:     model.NewMesh(),
		texIndex: make(map[int]int),
	}

	visited := make(map[int]bool)
	for _, root := range r.roots() {
		if err := r.walk(root, mgl32.Ident4(), visited); err != nil {
			return nil, parseErr(path, err)
		}
	}
	return r.mesh, nil
}

// roots returns the default scene's nodes, or every parentless node.
func (r *gltfReader) roots() []int {
	doc := r.doc
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}

	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (r *gltfReader) walk(nodeIdx int, parent mgl32.Mat4, visited map[int]bool) error {
	if nodeIdx < 0 || nodeIdx >= len(r.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIdx)
	}
	// Prevent infinite recursion on malformed hierarchies
	if visited[nodeIdx] {
		return nil
	}
	visited[nodeIdx] = true

	node := r.doc.Nodes[nodeIdx]
	world := parent.Mul4(localMatrix(node))

	if node.Mesh != nil {
		if *node.Mesh >= len(r.doc.Meshes) {
			return fmt.Errorf("node %d: mesh index %d out of range", nodeIdx, *node.Mesh)
		}
		gm := r.doc.Meshes[*node.Mesh]
		for pi, prim := range gm.Primitives {
			if err := r.addPrimitive(prim, world); err != nil {
				return fmt.Errorf("mesh %q primitive %d: %w", gm.Name, pi, err)
			}
		}
	}

	for _, child := range node.Children {
		if err := r.walk(child, world, visited); err != nil {
			return err
		}
	}
	return nil
}

// localMatrix returns the node's matrix, or T*R*S when no matrix is set.
func localMatrix(n *gltf.Node) mgl32.Mat4 {
	if m := n.MatrixOrDefault(); m != gltf.DefaultMatrix {
		var out mgl32.Mat4
		for i, v := range m {
			out[i] = float32(v)
		}
		return out
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault() // x, y, z, w
	s := n.ScaleOrDefault()

	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func (r *gltfReader) addPrimitive(prim *gltf.Primitive, world mgl32.Mat4) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		r.l.log.Debug("skipping non-triangle primitive",
			zap.String("path", r.path), zap.Int("mode", int(prim.Mode)))
		return nil
	}

	doc := r.doc
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	if posIdx >= len(doc.Accessors) {
		return fmt.Errorf("POSITION accessor %d out of range", posIdx)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok && idx < len(doc.Accessors) {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok && idx < len(doc.Accessors) {
		uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return fmt.Errorf("texcoords: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if *prim.Indices >= len(doc.Accessors) {
			return fmt.Errorf("index accessor %d out of range", *prim.Indices)
		}
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions)-len(positions)%3)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	verts := make([]model.Vertex, len(positions))
	for i, p := range positions {
		verts[i].Position = model.TransformPoint(world, p)
		if i < len(uvs) {
			verts[i].TexCoord = uvs[i]
		}
	}
	if len(normals) == len(positions) {
		for i, n := range normals {
			verts[i].Normal = model.TransformNormal(world, n)
		}
	} else {
		model.ComputeFlatNormals(verts, indices)
	}

	texIdx := model.NoTexture
	if len(uvs) > 0 {
		texIdx = r.baseColorTexture(prim)
	}
	return r.mesh.AddGroup(verts, indices, texIdx)
}

// baseColorTexture returns the Mesh.Textures index for the primitive's
// base color map, decoding the image on first use.
func (r *gltfReader) baseColorTexture(prim *gltf.Primitive) int {
	doc := r.doc
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return model.NoTexture
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorTexture == nil {
		return model.NoTexture
	}
	gtIdx := pbr.BaseColorTexture.Index
	if idx, ok := r.texIndex[gtIdx]; ok {
		return idx
	}
	r.texIndex[gtIdx] = model.NoTexture

	if gtIdx >= len(doc.Textures) || doc.Textures[gtIdx].Source == nil {
		return model.NoTexture
	}
	imgIdx := *doc.Textures[gtIdx].Source
	if imgIdx >= len(doc.Images) {
		return model.NoTexture
	}
	gi := doc.Images[imgIdx]

	var (
		key  string
		name string
		read func() ([]byte, error)
	)
	switch {
	case gi.BufferView != nil:
		// Binary GLB: image data lives in a buffer view
		key = r.path + "#image" + strconv.Itoa(imgIdx)
		name = gi.Name
		read = func() ([]byte, error) {
			if *gi.BufferView >= len(doc.BufferViews) {
				return nil, fmt.Errorf("buffer view %d out of range", *gi.BufferView)
			}
			return modeler.ReadBufferView(doc, doc.BufferViews[*gi.BufferView])
		}
	case gi.IsEmbeddedResource():
		key = r.path + "#image" + strconv.Itoa(imgIdx)
		name = gi.Name
		read = gi.MarshalData
	case gi.URI != "":
		// External file referenced by relative URI
		file := filepath.Join(filepath.Dir(r.path), filepath.FromSlash(gi.URI))
		key, name = file, file
		read = func() ([]byte, error) { return os.ReadFile(file) }
	default:
		return model.NoTexture
	}

	img := r.l.loadTexture(key, name, read)
	if img == nil {
		return model.NoTexture
	}
	r.mesh.Textures = append(r.mesh.Textures, img)
	idx := len(r.mesh.Textures) - 1
	r.texIndex[gtIdx] = idx
	return idx
}
