package lighting

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewSetDefaults(t *testing.T) {
	s := NewSet(0)
	if s.Capacity() != MaxPointLights {
		t.Errorf("expected capacity %d, got %d", MaxPointLights, s.Capacity())
	}
	if s.PointCount() != 0 {
		t.Errorf("expected no point lights, got %d", s.PointCount())
	}
	if s.Dir.Direction != (mgl32.Vec3{-0.2, -1.0, -0.3}) {
		t.Errorf("unexpected default direction %v", s.Dir.Direction)
	}
}

func TestAddPointOrder(t *testing.T) {
	s := NewSet(4)
	for i := 0; i < 3; i++ {
		idx, err := s.AddPoint(NewPointLight(mgl32.Vec3{float32(i), 0, 0}))
		if err != nil {
			t.Fatalf("AddPoint %d: %v", i, err)
		}
		if idx != i {
			t.Errorf("expected index %d, got %d", i, idx)
		}
	}
	for i, p := range s.Points() {
		if p.Position[0] != float32(i) {
			t.Errorf("light %d out of order: %v", i, p.Position)
		}
	}
}

func TestAddPointCapacity(t *testing.T) {
	s := NewSet(2)
	for i := 0; i < 2; i++ {
		if _, err := s.AddPoint(NewPointLight(mgl32.Vec3{})); err != nil {
			t.Fatalf("AddPoint %d: %v", i, err)
		}
	}

	idx, err := s.AddPoint(NewPointLight(mgl32.Vec3{}))
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
	if idx != -1 {
		t.Errorf("expected index -1, got %d", idx)
	}
	if s.PointCount() != 2 {
		t.Errorf("expected count to stay 2, got %d", s.PointCount())
	}
}

func TestSetCapacityOverflow(t *testing.T) {
	s := NewSet(4)
	for i := 0; i < 4; i++ {
		s.AddPoint(NewPointLight(mgl32.Vec3{}))
	}
	s.SetCapacity(3)
	if s.Overflow() != 1 {
		t.Errorf("expected overflow 1, got %d", s.Overflow())
	}
	s.SetCapacity(8)
	if s.Overflow() != 0 {
		t.Errorf("expected no overflow, got %d", s.Overflow())
	}
}

func TestPointLightValidate(t *testing.T) {
	tests := []struct {
		name    string
		att     Attenuation
		wantErr bool
	}{
		{"default", DefaultAttenuation, false},
		{"constant only", Attenuation{Constant: 1}, false},
		{"zero constant", Attenuation{Constant: 0, Linear: 0.1}, true},
		{"negative linear", Attenuation{Constant: 1, Linear: -0.1}, true},
		{"negative quadratic", Attenuation{Constant: 1, Quadratic: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPointLight(mgl32.Vec3{})
			p.Attenuation = tt.att
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAttenuationClamped(t *testing.T) {
	tests := []struct {
		name string
		in   Attenuation
		want Attenuation
	}{
		{"default unchanged", DefaultAttenuation, DefaultAttenuation},
		{"zero constant", Attenuation{Constant: 0, Linear: 0.1}, Attenuation{Constant: MinConstant, Linear: 0.1}},
		{"negative terms", Attenuation{Constant: -2, Linear: -0.1, Quadratic: -1}, Attenuation{Constant: MinConstant}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamped()
			if got != tt.want {
				t.Errorf("Clamped() = %+v, want %+v", got, tt.want)
			}
			p := PointLight{Attenuation: got}
			if err := p.Validate(); err != nil {
				t.Errorf("clamped attenuation fails Validate: %v", err)
			}
		})
	}
}

func TestPointEditInPlace(t *testing.T) {
	s := NewSet(0)
	s.AddPoint(NewPointLight(mgl32.Vec3{}))

	s.Point(0).Diffuse = mgl32.Vec3{1, 0, 0}
	if s.Points()[0].Diffuse != (mgl32.Vec3{1, 0, 0}) {
		t.Error("edit through Point did not reach the set")
	}
	if s.Point(1) != nil || s.Point(-1) != nil {
		t.Error("expected nil for out of range index")
	}
}

func TestAreaLights(t *testing.T) {
	s := NewSet(0)
	idx := s.AddArea(NewAreaLight(mgl32.Vec3{0, 2, 0}))
	if idx != 0 || len(s.Areas()) != 1 {
		t.Fatalf("expected one area light at index 0, got %d/%d", idx, len(s.Areas()))
	}
	a := s.Area(0)
	if a.Corners[2] != (mgl32.Vec3{0.5, 2.5, 0}) {
		t.Errorf("unexpected corner %v", a.Corners[2])
	}
	// Area lights never count against the point light capacity
	if s.PointCount() != 0 {
		t.Errorf("expected no point lights, got %d", s.PointCount())
	}
}
