package lights

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// SpotLight is a point light restricted to a cone with a smooth edge
type SpotLight struct {
	Position        core.Vec3
	Direction       core.Vec3 // Unit direction the cone points in
	Color           core.Colour
	Intensity       float64
	Attenuation     Attenuation
	cosTotalWidth   float64 // Cosine of the outer cone half-angle
	cosFalloffStart float64 // Cosine of the angle where falloff begins
}

// NewSpotLight creates a spot light at from, aimed at to.
// coneAngle is the full cone half-angle in degrees; falloffAngle is the width of the soft edge.
func NewSpotLight(from, to core.Vec3, color core.Colour, intensity, coneAngle, falloffAngle float64) *SpotLight {
	falloffAngle = math.Max(0, math.Min(falloffAngle, coneAngle))
	return &SpotLight{
		Position:        from,
		Direction:       to.Subtract(from).Normalize(),
		Color:           color,
		Intensity:       intensity,
		Attenuation:     NoAttenuation(),
		cosTotalWidth:   math.Cos(coneAngle * math.Pi / 180.0),
		cosFalloffStart: math.Cos((coneAngle - falloffAngle) * math.Pi / 180.0),
	}
}

func (sl *SpotLight) Type() LightType {
	return LightTypeSpot
}

// SampleCount implements the Light interface
func (sl *SpotLight) SampleCount() int {
	return 1
}

// Sample implements the Light interface
func (sl *SpotLight) Sample(point core.Vec3, index int) LightSample {
	direction, distance := towards(point, sl.Position)
	if direction.IsZero() || sl.Direction.IsZero() {
		return LightSample{}
	}

	spot := sl.falloff(direction.Negate().Dot(sl.Direction))
	if spot == 0 {
		return LightSample{}
	}

	return LightSample{
		Direction: direction,
		Distance:  distance,
		Radiance:  sl.Color.Multiply(sl.Intensity * spot * sl.Attenuation.factor(distance)),
	}
}

// falloff maps the cosine between the cone axis and the emitted direction to [0,1]
func (sl *SpotLight) falloff(cosTheta float64) float64 {
	if cosTheta < sl.cosTotalWidth {
		return 0
	}
	if cosTheta >= sl.cosFalloffStart {
		return 1
	}
	// Smoothstep across the soft edge
	delta := (cosTheta - sl.cosTotalWidth) / (sl.cosFalloffStart - sl.cosTotalWidth)
	return delta * delta * (3 - 2*delta)
}
