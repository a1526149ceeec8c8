package material

import (
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestImageTextureEvaluate(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	white := core.Grey(1)
	black := core.Black
	texture := NewImageTexture(2, 2, []core.Colour{white, black, black, white})

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Colour
	}{
		{"bottom left", core.NewVec2(0.1, 0.1), black},
		{"bottom right", core.NewVec2(0.9, 0.1), white},
		{"top left", core.NewVec2(0.1, 0.9), white},
		{"top right", core.NewVec2(0.9, 0.9), black},
		{"wraps positive", core.NewVec2(1.1, 1.9), white},
		{"wraps negative", core.NewVec2(-0.9, -0.9), black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.expected {
				t.Errorf("UV %v: expected %v, got %v", tt.uv, tt.expected, got)
			}
		})
	}
}

func TestImageTextureEmpty(t *testing.T) {
	texture := NewImageTexture(0, 0, nil)
	if got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); got != core.Black {
		t.Errorf("Expected black for empty texture, got %v", got)
	}
}

func TestChecker(t *testing.T) {
	red := core.NewColour(1, 0, 0)
	blue := core.NewColour(0, 0, 1)
	checker := NewChecker(red, blue, 2)

	tests := []struct {
		point    core.Vec3
		expected core.Colour
	}{
		{core.NewVec3(0.5, 0.5, 0.5), red},
		{core.NewVec3(2.5, 0.5, 0.5), blue},
		{core.NewVec3(2.5, 2.5, 0.5), red},
		{core.NewVec3(-0.5, 0.5, 0.5), blue},
	}

	for _, tt := range tests {
		if got := checker.Evaluate(core.Vec2{}, tt.point); got != tt.expected {
			t.Errorf("Point %v: expected %v, got %v", tt.point, tt.expected, got)
		}
	}

	if NewChecker(red, blue, 0).Scale != 1 {
		t.Error("Expected non-positive scale to default to 1")
	}
}
