// Package lighting holds the scene's light sources.
package lighting

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointLights is the size of the point light array in the viewer shader.
const MaxPointLights = 32

// ErrCapacityExceeded is returned when a point light would not fit in the shader array.
var ErrCapacityExceeded = errors.New("point light capacity exceeded")

// Attenuation holds the distance falloff terms 1/(c + l*d + q*d*d).
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// MinConstant is the smallest constant term; the shader divides by the falloff sum.
const MinConstant float32 = 0.001

// Clamped returns a copy with the constant term at least MinConstant and
// no negative linear or quadratic terms.
func (a Attenuation) Clamped() Attenuation {
	return Attenuation{
		Constant:  max(a.Constant, MinConstant),
		Linear:    max(a.Linear, 0),
		Quadratic: max(a.Quadratic, 0),
	}
}

// DefaultAttenuation covers roughly 50 world units.
var DefaultAttenuation = Attenuation{Constant: 1.0, Linear: 0.09, Quadratic: 0.032}

// PointLight is an omnidirectional light with distance attenuation.
type PointLight struct {
	Position mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
	Attenuation
}

// NewPointLight creates a white point light at position with default falloff.
func NewPointLight(position mgl32.Vec3) PointLight {
	return PointLight{
		Position:    position,
		Ambient:     mgl32.Vec3{0.05, 0.05, 0.05},
		Diffuse:     mgl32.Vec3{0.8, 0.8, 0.8},
		Specular:    mgl32.Vec3{1.0, 1.0, 1.0},
		Attenuation: DefaultAttenuation,
	}
}

// Validate checks the attenuation terms.
func (p PointLight) Validate() error {
	if p.Constant <= 0 {
		return fmt.Errorf("point light: constant term %f must be positive", p.Constant)
	}
	if p.Linear < 0 || p.Quadratic < 0 {
		return fmt.Errorf("point light: negative attenuation (linear %f, quadratic %f)", p.Linear, p.Quadratic)
	}
	return nil
}

// Set holds the directional light, the ordered point lights and any area lights.
// Point lights are append-only; their order is their shader array index.
type Set struct {
	Dir DirLight

	points   []PointLight
	areas    []AreaLight
	capacity int
}

// NewSet creates an empty set. capacity <= 0 means MaxPointLights.
func NewSet(capacity int) *Set {
	if capacity <= 0 {
		capacity = MaxPointLights
	}
	return &Set{
		Dir:      DefaultDirLight(),
		points:   make([]PointLight, 0, capacity),
		capacity: capacity,
	}
}

// Capacity returns the maximum number of point lights.
func (s *Set) Capacity() int { return s.capacity }

// SetCapacity changes the point light limit. Existing lights beyond it are kept
// and reported by Overflow.
func (s *Set) SetCapacity(capacity int) {
	if capacity <= 0 {
		capacity = MaxPointLights
	}
	s.capacity = capacity
}

// Overflow returns how many point lights exceed the capacity.
func (s *Set) Overflow() int {
	if n := len(s.points) - s.capacity; n > 0 {
		return n
	}
	return 0
}

// AddPoint appends a point light and returns its index.
func (s *Set) AddPoint(light PointLight) (int, error) {
	if len(s.points) >= s.capacity {
		return -1, fmt.Errorf("adding point light %d: %w (capacity %d)", len(s.points), ErrCapacityExceeded, s.capacity)
	}
	if err := light.Validate(); err != nil {
		return -1, err
	}
	s.points = append(s.points, light)
	return len(s.points) - 1, nil
}

// PointCount returns the number of point lights.
func (s *Set) PointCount() int { return len(s.points) }

// Point returns a pointer for in-place edits, or nil if i is out of range.
func (s *Set) Point(i int) *PointLight {
	if i < 0 || i >= len(s.points) {
		return nil
	}
	return &s.points[i]
}

// Points returns the point lights in insertion order.
// The slice aliases the set's storage.
func (s *Set) Points() []PointLight { return s.points }

// AddArea appends an area light.
func (s *Set) AddArea(light AreaLight) int {
	s.areas = append(s.areas, light)
	return len(s.areas) - 1
}

// Areas returns the area lights in insertion order.
func (s *Set) Areas() []AreaLight { return s.areas }

// Area returns a pointer for in-place edits, or nil if i is out of range.
func (s *Set) Area(i int) *AreaLight {
	if i < 0 || i >= len(s.areas) {
		return nil
	}
	return &s.areas[i]
}
