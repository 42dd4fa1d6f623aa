package assets

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/gman/internal/engine/model"
)

// objCorner is one face corner: 0-based position / UV / normal indices (-1 = absent).
type objCorner struct {
	v, vt, vn int
}

// objGroup collects triangles that share a material.
type objGroup struct {
	material string
	corners  []objCorner // three per triangle
}

// objMaterial is the subset of an MTL entry the viewer uses.
type objMaterial struct {
	diffuseMap string
}

// loadOBJ parses a Wavefront .obj file and any "mtllib" it references.
// Polygons are fan-triangulated. V texture coordinates are flipped to the
// top-left origin used by glTF so both formats upload the same way.
func (l *Loader) loadOBJ(path string) (*model.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, parseErr(path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)

	var positions, normals [][3]float32
	var uvs [][2]float32
	materials := make(map[string]objMaterial)

	var groups []*objGroup
	cur := &objGroup{}
	groups = append(groups, cur)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		lineErr := func(format string, args ...any) error {
			return fmt.Errorf("%w: %s:%d: %s", ErrParse, path, lineNo, fmt.Sprintf(format, args...))
		}

		switch fields[0] {
		case "v", "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, lineErr("%s: %v", fields[0], err)
			}
			p := [3]float32{v[0], v[1], v[2]}
			if fields[0] == "v" {
				positions = append(positions, p)
			} else {
				normals = append(normals, p)
			}

		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, lineErr("vt: %v", err)
			}
			uvs = append(uvs, [2]float32{v[0], 1 - v[1]})

		case "usemtl":
			name := ""
			if len(fields) > 1 {
				name = fields[1]
			}
			if name != cur.material {
				cur = &objGroup{material: name}
				groups = append(groups, cur)
			}

		case "mtllib":
			for _, lib := range fields[1:] {
				loaded, err := parseMTL(filepath.Join(dir, lib))
				if err != nil {
					l.log.Warn("material library unavailable", zap.String("path", path), zap.Error(err))
					continue
				}
				for k, v := range loaded {
					materials[k] = v
				}
			}

		case "f":
			if len(fields) < 4 {
				return nil, lineErr("face needs at least 3 vertices, got %d", len(fields)-1)
			}
			corners := make([]objCorner, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				c, err := parseCorner(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, lineErr("face %q: %v", tok, err)
				}
				corners = append(corners, c)
			}
			// Fan triangulation: 0-1-2, 0-2-3, ...
			for i := 1; i+1 < len(corners); i++ {
				cur.corners = append(cur.corners, corners[0], corners[i], corners[i+1])
			}

		// Object/group names, smoothing groups and curves are ignored
		default:
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, parseErr(path, err)
	}

	mesh := model.NewMesh()
	texIndex := make(map[string]int)
	for _, g := range groups {
		if len(g.corners) == 0 {
			continue
		}
		verts, indices, hasNormals := buildOBJGroup(g, positions, uvs, normals)
		if !hasNormals {
			model.ComputeFlatNormals(verts, indices)
		}

		texIdx := model.NoTexture
		if mat, ok := materials[g.material]; ok && mat.diffuseMap != "" {
			idx, seen := texIndex[mat.diffuseMap]
			if !seen {
				idx = model.NoTexture
				file := mat.diffuseMap
				if img := l.loadTexture(file, file, func() ([]byte, error) { return os.ReadFile(file) }); img != nil {
					mesh.Textures = append(mesh.Textures, img)
					idx = len(mesh.Textures) - 1
				}
				texIndex[mat.diffuseMap] = idx
			}
			texIdx = idx
		}

		if err := mesh.AddGroup(verts, indices, texIdx); err != nil {
			return nil, parseErr(path, err)
		}
	}
	return mesh, nil
}

// buildOBJGroup de-duplicates corners into an indexed vertex list.
func buildOBJGroup(g *objGroup, positions [][3]float32, uvs [][2]float32, normals [][3]float32) ([]model.Vertex, []uint32, bool) {
	seen := make(map[objCorner]uint32)
	var verts []model.Vertex
	indices := make([]uint32, 0, len(g.corners))
	hasNormals := true

	for _, c := range g.corners {
		if idx, ok := seen[c]; ok {
			indices = append(indices, idx)
			continue
		}
		v := model.Vertex{Position: positions[c.v]}
		if c.vt >= 0 {
			v.TexCoord = uvs[c.vt]
		}
		if c.vn >= 0 {
			v.Normal = model.Normalize(normals[c.vn])
		} else {
			hasNormals = false
		}
		idx := uint32(len(verts))
		verts = append(verts, v)
		seen[c] = idx
		indices = append(indices, idx)
	}
	return verts, indices, hasNormals
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn". Negative indices
// count back from the most recent element.
func parseCorner(tok string, nv, nvt, nvn int) (objCorner, error) {
	c := objCorner{v: -1, vt: -1, vn: -1}
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return c, fmt.Errorf("too many components")
	}

	resolve := func(s string, n int, what string) (int, error) {
		i, err := strconv.Atoi(s)
		if err != nil {
			return -1, fmt.Errorf("%s index: %w", what, err)
		}
		switch {
		case i > 0 && i <= n:
			return i - 1, nil
		case i < 0 && -i <= n:
			return n + i, nil
		}
		return -1, fmt.Errorf("%s index %d out of range (%d defined)", what, i, n)
	}

	var err error
	if c.v, err = resolve(parts[0], nv, "vertex"); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolve(parts[1], nvt, "texcoord"); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolve(parts[2], nvn, "normal"); err != nil {
			return c, err
		}
	}
	return c, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// parseMTL reads diffuse texture maps from a material library.
// Texture paths are resolved against the library's directory.
func parseMTL(path string) (map[string]objMaterial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dir := filepath.Dir(path)
	out := make(map[string]objMaterial)
	var name string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "newmtl":
			name = fields[1]
			out[name] = objMaterial{}
		case "map_Kd":
			// Options like -s or -o precede the file name, which is last
			m := out[name]
			m.diffuseMap = filepath.Join(dir, filepath.FromSlash(fields[len(fields)-1]))
			out[name] = m
		}
	}
	return out, scanner.Err()
}
