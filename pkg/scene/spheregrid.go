package scene

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Colour {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cone responses, then cubed
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b
	l_, m_, s_ = l_*l_*l_, m_*m_*m_, s_*s_*s_

	// LMS to linear RGB
	return core.NewColour(
		+4.0767416621*l_-3.3077115913*m_+0.2309699292*s_,
		-1.2684380046*l_+2.6097574011*m_-0.3413193965*s_,
		-0.0041960863*l_-0.7034186147*m_+1.7076147010*s_,
	).Saturate()
}

// NewSphereGridScene creates a scene with a grid of spheres coloured across hue and chroma
func NewSphereGridScene() *Scene {
	s := New()
	s.CameraConfig = geometry.CameraConfig{
		Position:    core.NewVec3(4.5, 6, 18),    // Farther back and slightly above
		LookAt:      core.NewVec3(4.5, 0.8, 4.5), // Centre of the grid
		Up:          core.NewVec3(0, 1, 0),
		FieldOfView: 40.0,
	}
	s.Background = core.NewColour(0.5, 0.7, 1.0)
	s.Ambient = core.Grey(0.15)

	// Bright sun-like light high and to the side
	s.Lights = append(s.Lights, lights.NewDirectionalLight(core.NewVec3(-1, -1.25, -1), core.NewColour(1.0, 0.96, 0.9), 1.0))

	s.Shapes = append(s.Shapes, geometry.NewPlane(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 1, 0),
		material.NewLambertian(core.Grey(0.5)),
	))

	gridSize := 20

	// Fit the grid into roughly 9x9 units
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue across X, chroma across Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			shininess := 16.0 * float64(1+(i+j)%3)
			sphereMaterial := material.NewPhong(oklchToRGB(lightness, chroma, hue), core.Grey(0.5), shininess)

			s.Shapes = append(s.Shapes, geometry.NewSphere(core.NewVec3(x, sphereRadius, z), sphereRadius, sphereMaterial))
		}
	}

	return s
}
