package material

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Colour
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Colour
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Colour) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Colour {
	return s.Color
}

// Checker is a procedural 3D checkerboard
type Checker struct {
	Even  core.Colour
	Odd   core.Colour
	Scale float64 // Edge length of one cell in world units
}

// NewChecker creates a checker with the given cell size; non-positive sizes become 1
func NewChecker(even, odd core.Colour, scale float64) *Checker {
	if scale <= 0 {
		scale = 1
	}
	return &Checker{Even: even, Odd: odd, Scale: scale}
}

// Evaluate picks a colour from the parity of the cell containing point
func (c *Checker) Evaluate(uv core.Vec2, point core.Vec3) core.Colour {
	inv := 1.0 / c.Scale
	// Small bias keeps points lying exactly on an integer plane in a stable cell
	sum := int(math.Floor(point.X*inv+1e-7)) +
		int(math.Floor(point.Y*inv+1e-7)) +
		int(math.Floor(point.Z*inv+1e-7))
	if sum%2 == 0 {
		return c.Even
	}
	return c.Odd
}
