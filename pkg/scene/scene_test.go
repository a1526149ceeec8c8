package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	if s.Width != 1024 || s.Height != 1024 {
		t.Errorf("expected 1024x1024, got %dx%d", s.Width, s.Height)
	}
	if s.Background != core.Black {
		t.Errorf("expected black background, got %v", s.Background)
	}
	if s.Integrator == nil {
		t.Error("expected a default integrator")
	}
	if err := s.Preprocess(); err != nil {
		t.Errorf("empty default scene should preprocess, got %v", err)
	}
}

func TestPreprocess_Validation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(s *Scene)
		wantErr error
	}{
		{"zero width", func(s *Scene) { s.Width = 0 }, ErrInvalidDimensions},
		{"negative height", func(s *Scene) { s.Height = -5 }, ErrInvalidDimensions},
		{"no camera", func(s *Scene) { s.CameraConfig = geometry.CameraConfig{} }, ErrNoCamera},
		{"degenerate camera", func(s *Scene) { s.CameraConfig.LookAt = s.CameraConfig.Position }, geometry.ErrDegenerateView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.modify(s)
			err := s.Preprocess()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if s.IsPrepared() {
				t.Error("failed preprocessing should not freeze the scene")
			}
		})
	}

	s := New()
	s.Shapes = append(s.Shapes, nil)
	if err := s.Preprocess(); err == nil {
		t.Error("nil shape should be rejected")
	}

	s = New()
	s.Lights = append(s.Lights, nil)
	if err := s.Preprocess(); err == nil {
		t.Error("nil light should be rejected")
	}
}

func TestScene_FrozenAfterPreprocess(t *testing.T) {
	s := New()
	if err := s.AddShape(geometry.NewSphere(core.Vec3{}, 1, nil)); err != nil {
		t.Fatalf("unexpected error before freezing: %v", err)
	}
	if err := s.Preprocess(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mutators := map[string]func() error{
		"AddShape":      func() error { return s.AddShape(geometry.NewSphere(core.Vec3{}, 1, nil)) },
		"AddLight":      func() error { return s.AddLight(lights.NewPointLight(core.Vec3{}, core.Grey(1), 1)) },
		"SetCamera":     func() error { return s.SetCamera(geometry.DefaultCameraConfig()) },
		"SetSize":       func() error { return s.SetSize(10, 10) },
		"SetIntegrator": func() error { return s.SetIntegrator(nil) },
	}
	for name, mutate := range mutators {
		t.Run(name, func(t *testing.T) {
			if err := mutate(); !errors.Is(err, ErrSceneFrozen) {
				t.Errorf("expected ErrSceneFrozen, got %v", err)
			}
		})
	}

	if len(s.Shapes) != 1 {
		t.Errorf("frozen scene should keep 1 shape, got %d", len(s.Shapes))
	}
	if err := s.Preprocess(); err != nil {
		t.Errorf("second Preprocess should be a no-op, got %v", err)
	}
}

func TestTrace_UnpreparedReturnsBackground(t *testing.T) {
	s := NewSingleSphereScene()
	if c := s.Trace(0, 0); c != s.Background {
		t.Errorf("unprepared scene should trace to the background, got %v", c)
	}
}

func TestTrace_EmptySceneIsBackground(t *testing.T) {
	s := New()
	s.Background = core.NewColour(0.1, 0.2, 0.3)
	if err := s.Preprocess(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, uv := range [][2]float64{{0, 0}, {1, 1}, {-1, 0.5}, {0.3, -0.9}} {
		if c := s.Trace(uv[0], uv[1]); c != s.Background {
			t.Errorf("Trace(%v, %v) = %v, expected background", uv[0], uv[1], c)
		}
	}
}

func TestTrace_FirstDeclaredWinsTies(t *testing.T) {
	// Two coincident spheres; emission tells them apart without any lights
	first := material.NewEmissive(core.NewColour(1, 0, 0))
	second := material.NewEmissive(core.NewColour(0, 1, 0))

	tests := []struct {
		name     string
		order    []material.Material
		expected core.Colour
	}{
		{"red first", []material.Material{first, second}, core.NewColour(1, 0, 0)},
		{"green first", []material.Material{second, first}, core.NewColour(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for _, mat := range tt.order {
				s.Shapes = append(s.Shapes, geometry.NewSphere(core.Vec3{}, 1, mat))
			}
			if err := s.Preprocess(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c := s.Trace(0, 0); c != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, c)
			}
		})
	}
}

func TestTrace_NearestWins(t *testing.T) {
	s := New()
	// Declared far-to-near; the nearer sphere must still win
	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(0, 0, -2), 1, material.NewEmissive(core.NewColour(0, 0, 1))),
		geometry.NewSphere(core.NewVec3(0, 0, 1), 0.5, material.NewEmissive(core.NewColour(1, 1, 0))),
	)
	if err := s.Preprocess(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c := s.Trace(0, 0); c != core.NewColour(1, 1, 0) {
		t.Errorf("expected nearest sphere colour, got %v", c)
	}
}

func TestTrace_SingleSphere(t *testing.T) {
	s := NewSingleSphereScene()
	if err := s.Preprocess(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	centre := s.Trace(0, 0)
	if centre == s.Background {
		t.Error("centre should hit the sphere")
	}
	if centre.IsBlack() {
		t.Error("centre of the sphere faces the light and should be lit")
	}

	for _, uv := range [][2]float64{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}} {
		if c := s.Trace(uv[0], uv[1]); c != s.Background {
			t.Errorf("corner (%v, %v) should be background, got %v", uv[0], uv[1], c)
		}
	}

	// Trace is a pure function of its inputs
	for i := 0; i < 10; i++ {
		if s.Trace(0.1, 0.2) != s.Trace(0.1, 0.2) {
			t.Fatal("Trace should be deterministic")
		}
	}
}

func TestOccluded(t *testing.T) {
	s := New()
	s.Shapes = append(s.Shapes, geometry.NewSphere(core.NewVec3(0, 0, -5), 1, nil))
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	if !s.Occluded(ray, 10) {
		t.Error("sphere should block a ray reaching past it")
	}
	if s.Occluded(ray, 3.5) {
		t.Error("sphere beyond maxDistance should not block")
	}
	if !s.Occluded(ray, math.Inf(1)) {
		t.Error("infinite distance should be blocked")
	}
}

func TestBuiltins(t *testing.T) {
	infos := Builtins()
	if len(infos) == 0 {
		t.Fatal("expected builtin scenes")
	}

	for _, info := range infos {
		t.Run(info.Name, func(t *testing.T) {
			s, err := NewBuiltin(info.Name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := s.Preprocess(); err != nil {
				t.Fatalf("builtin should preprocess: %v", err)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("builtin scene should contain shapes")
			}
			c := s.Trace(0, 0)
			if math.IsNaN(c.R) || math.IsNaN(c.G) || math.IsNaN(c.B) {
				t.Errorf("trace produced NaN: %v", c)
			}
		})
	}

	if _, err := NewBuiltin("missing"); err == nil {
		t.Error("unknown builtin should fail")
	}
}

func TestGetPrimitiveCount(t *testing.T) {
	s := NewTriangleMeshScene()
	// Ground plane + box (12) + pyramid (6) + icosahedron (20)
	if got := s.GetPrimitiveCount(); got != 39 {
		t.Errorf("expected 39 primitives, got %d", got)
	}
}
