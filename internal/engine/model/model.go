package model

// Resource is a backend-owned GPU allocation for one model.
type Resource interface {
	Release()
}

// Model is a loaded mesh with its world-space bounds.
type Model struct {
	Path     string
	Mesh     *Mesh
	Bounds   Bounds
	Resource Resource // nil until uploaded
}

// New wraps a mesh. Bounds are taken from the mesh.
func New(path string, mesh *Mesh) *Model {
	m := &Model{Path: path, Mesh: mesh}
	if mesh != nil {
		m.Bounds = mesh.Bounds
	}
	return m
}

// Release frees the GPU resource, if any.
func (m *Model) Release() {
	if m.Resource != nil {
		m.Resource.Release()
		m.Resource = nil
	}
}

// Registry holds loaded models in load order. It owns their GPU resources.
type Registry struct {
	models []*Model
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a model and returns its index.
func (r *Registry) Add(m *Model) int {
	r.models = append(r.models, m)
	return len(r.models) - 1
}

// Len returns the number of models.
func (r *Registry) Len() int { return len(r.models) }

// At returns the model at index i, or nil.
func (r *Registry) At(i int) *Model {
	if i < 0 || i >= len(r.models) {
		return nil
	}
	return r.models[i]
}

// All returns models in load order. The slice aliases the registry's storage.
func (r *Registry) All() []*Model { return r.models }

// Clear releases every model and empties the registry.
func (r *Registry) Clear() {
	for _, m := range r.models {
		m.Release()
	}
	r.models = nil
}

// Bounds returns the union of all model bounds.
func (r *Registry) Bounds() Bounds {
	b := EmptyBounds()
	for _, m := range r.models {
		b.Union(m.Bounds)
	}
	return b
}
