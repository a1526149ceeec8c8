package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
)

// mockScene is a linear list of shapes implementing the Scene view
type mockScene struct {
	shapes     []geometry.Shape
	lights     []lights.Light
	ambient    core.Colour
	background core.Colour
}

func (m *mockScene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	for _, shape := range m.shapes {
		if hit, ok := shape.Hit(ray, tMin, tMax); ok {
			tMax = hit.T
			closest = hit
		}
	}
	return closest, closest != nil
}

func (m *mockScene) Occluded(ray core.Ray, maxDistance float64) bool {
	_, ok := m.Hit(ray, core.MinHitDistance, maxDistance)
	return ok
}

func (m *mockScene) GetLights() []lights.Light { return m.lights }
func (m *mockScene) GetAmbient() core.Colour { return m.ambient }
func (m *mockScene) GetBackground() core.Colour { return m.background }

// primaryHit fires a ray straight down -Z from z=5 and returns the nearest hit
func primaryHit(t *testing.T, scene *mockScene, x, y float64) (core.Ray, *material.HitRecord) {
	t.Helper()
	ray := core.NewRay(core.NewVec3(x, y, 5), core.NewVec3(0, 0, -1))
	hit, ok := scene.Hit(ray, core.MinHitDistance, math.Inf(1))
	if !ok {
		t.Fatal("expected the primary ray to hit")
	}
	return ray, hit
}

func TestNewIntegrator(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{"direct", false},
		{"whitted", false},
		{"path", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIntegrator(tt.name, true, 3)
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := NewIntegrator("whitted", false, -1); err == nil {
		t.Error("negative depth should be rejected")
	}
}

func TestDirectLighting_LambertCosine(t *testing.T) {
	plane := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), material.NewLambertian(core.NewColour(1, 1, 1)))

	tests := []struct {
		name     string
		light    lights.Light
		expected float64
	}{
		{"overhead", lights.NewDirectionalLight(core.NewVec3(0, 0, -1), core.NewColour(1, 1, 1), 1), 1.0},
		{"grazing 60 degrees", lights.NewDirectionalLight(core.NewVec3(math.Sin(math.Pi/3), 0, -0.5), core.NewColour(1, 1, 1), 1), 0.5},
		{"from behind", lights.NewDirectionalLight(core.NewVec3(0, 0, 1), core.NewColour(1, 1, 1), 1), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := &mockScene{shapes: []geometry.Shape{plane}, lights: []lights.Light{tt.light}}
			ray, hit := primaryHit(t, scene, 0, 0)
			colour := NewDirectLighting(false).Shade(ray, hit, scene)
			if math.Abs(colour.R-tt.expected) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.expected, colour.R)
			}
		})
	}
}

func TestDirectLighting_Ambient(t *testing.T) {
	plane := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), material.NewLambertian(core.NewColour(0.5, 0.5, 0.5)))
	scene := &mockScene{shapes: []geometry.Shape{plane}, ambient: core.NewColour(0.2, 0.4, 0.0)}

	ray, hit := primaryHit(t, scene, 0, 0)
	colour := NewDirectLighting(true).Shade(ray, hit, scene)
	expected := core.NewColour(0.1, 0.2, 0.0)
	if math.Abs(colour.R-expected.R) > 1e-9 || math.Abs(colour.G-expected.G) > 1e-9 || colour.B != 0 {
		t.Errorf("expected %v, got %v", expected, colour)
	}
}

func TestDirectLighting_Shadows(t *testing.T) {
	floor := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), material.NewLambertian(core.NewColour(1, 1, 1)))
	// Small occluder between the floor point under (0,0) and an overhead point light, out of the primary ray's way
	blocker := geometry.NewSphere(core.NewVec3(0, 2, 2), 0.5, material.NewLambertian(core.NewColour(1, 1, 1)))
	light := lights.NewPointLight(core.NewVec3(0, 4, 4), core.NewColour(1, 1, 1), 1)
	scene := &mockScene{shapes: []geometry.Shape{floor, blocker}, lights: []lights.Light{light}}

	ray, hit := primaryHit(t, scene, 0, 0)

	lit := NewDirectLighting(false).Shade(ray, hit, scene)
	if lit.IsBlack() {
		t.Fatal("without shadows the floor should be lit")
	}

	shadowed := NewDirectLighting(true).Shade(ray, hit, scene)
	if !shadowed.IsBlack() {
		t.Errorf("with shadows the floor should be dark, got %v", shadowed)
	}
}

func TestDirectLighting_EmissiveAndNilMaterial(t *testing.T) {
	glow := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewEmissive(core.NewColour(2, 1, 0)))
	scene := &mockScene{shapes: []geometry.Shape{glow}}
	ray, hit := primaryHit(t, scene, 0, 0)
	if colour := NewDirectLighting(false).Shade(ray, hit, scene); colour != core.NewColour(2, 1, 0) {
		t.Errorf("expected emission (2,1,0), got %v", colour)
	}

	bare := &mockScene{shapes: []geometry.Shape{geometry.NewSphere(core.NewVec3(0, 0, 0), 1, nil)}}
	ray, hit = primaryHit(t, bare, 0, 0)
	if colour := NewDirectLighting(false).Shade(ray, hit, bare); !colour.IsBlack() {
		t.Errorf("shape without material should shade black, got %v", colour)
	}
}

func TestWhitted_MirrorReflectsBackground(t *testing.T) {
	mirror := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), material.NewMetal(core.NewColour(0.5, 0.5, 0.5)))
	scene := &mockScene{shapes: []geometry.Shape{mirror}, background: core.NewColour(0.2, 0.4, 0.8)}
	ray, hit := primaryHit(t, scene, 0, 0)

	if colour := NewWhitted(false, 0).Shade(ray, hit, scene); !colour.IsBlack() {
		t.Errorf("depth 0 should not follow reflections, got %v", colour)
	}

	colour := NewWhitted(false, 1).Shade(ray, hit, scene)
	expected := core.NewColour(0.1, 0.2, 0.4)
	if math.Abs(colour.R-expected.R) > 1e-9 || math.Abs(colour.G-expected.G) > 1e-9 || math.Abs(colour.B-expected.B) > 1e-9 {
		t.Errorf("expected %v, got %v", expected, colour)
	}
}

func TestWhitted_DepthBounded(t *testing.T) {
	// Two facing mirrors bounce forever without a depth limit
	m := material.NewPhong(core.NewColour(0.5, 0.5, 0.5), core.Black, 0)
	m.Reflectivity = core.NewColour(0.5, 0.5, 0.5)
	back := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), m)
	front := geometry.NewPlane(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1), m)
	scene := &mockScene{shapes: []geometry.Shape{back, front}, ambient: core.NewColour(1, 1, 1), background: core.NewColour(1, 1, 1)}

	ray, hit := primaryHit(t, scene, 0, 0)
	previous := 0.0
	for depth := 0; depth < 6; depth++ {
		colour := NewWhitted(false, depth).Shade(ray, hit, scene)
		// Each bounce adds half the previous bounce's ambient: 0.5 * (2 - 0.5^depth)
		expected := 0.5 * (2 - math.Pow(0.5, float64(depth)))
		if math.Abs(colour.R-expected) > 1e-9 {
			t.Errorf("depth %d: expected %f, got %f", depth, expected, colour.R)
		}
		if colour.R <= previous {
			t.Errorf("depth %d: deeper recursion should add light", depth)
		}
		previous = colour.R
	}
}
