package lights

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// DirectionalLight is a light at infinity shining along a fixed direction
type DirectionalLight struct {
	Direction core.Vec3 // Unit direction the light travels in
	Color     core.Colour
	Intensity float64
}

// NewDirectionalLight creates a directional light. A zero direction produces a light with no effect.
func NewDirectionalLight(direction core.Vec3, color core.Colour, intensity float64) *DirectionalLight {
	return &DirectionalLight{
		Direction: direction.Normalize(),
		Color:     color,
		Intensity: intensity,
	}
}

func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// SampleCount implements the Light interface
func (dl *DirectionalLight) SampleCount() int {
	return 1
}

// Sample implements the Light interface
func (dl *DirectionalLight) Sample(point core.Vec3, index int) LightSample {
	if dl.Direction.IsZero() {
		return LightSample{}
	}
	return LightSample{
		Direction: dl.Direction.Negate(),
		Distance:  math.Inf(1),
		Radiance:  dl.Color.Multiply(dl.Intensity),
	}
}
