package lights

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// PointLight emits equally in all directions from a single position
type PointLight struct {
	Position    core.Vec3
	Color       core.Colour
	Intensity   float64
	Attenuation Attenuation
}

// NewPointLight creates a point light without distance falloff
func NewPointLight(position core.Vec3, color core.Colour, intensity float64) *PointLight {
	return &PointLight{
		Position:    position,
		Color:       color,
		Intensity:   intensity,
		Attenuation: NoAttenuation(),
	}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// SampleCount implements the Light interface
func (pl *PointLight) SampleCount() int {
	return 1
}

// Sample implements the Light interface
func (pl *PointLight) Sample(point core.Vec3, index int) LightSample {
	direction, distance := towards(point, pl.Position)
	if direction.IsZero() {
		return LightSample{}
	}

	return LightSample{
		Direction: direction,
		Distance:  distance,
		Radiance:  pl.Color.Multiply(pl.Intensity * pl.Attenuation.factor(distance)),
	}
}
