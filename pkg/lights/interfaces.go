package lights

import "github.com/df07/go-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
	LightTypeSpot        LightType = "spot"
	LightTypeArea        LightType = "area"
)

// Light interface for objects that illuminate a shading point.
// Sampling is deterministic: the same point and index always give the same sample.
type Light interface {
	Type() LightType

	// SampleCount returns how many samples Sample accepts; indices run from 0 to SampleCount()-1
	SampleCount() int

	// Sample returns the light arriving at point from sample index.
	// A zero Radiance means the sample contributes nothing.
	Sample(point core.Vec3, index int) LightSample
}

// LightSample describes the light arriving at a shading point from one sample
type LightSample struct {
	Direction core.Vec3   // Unit direction from the shading point to the light
	Distance  float64     // Distance to the light; +Inf for lights at infinity
	Radiance  core.Colour // Light arriving along Direction, attenuation applied
}

// IsZero reports whether the sample carries no light
func (s LightSample) IsZero() bool {
	return s.Radiance.IsBlack() || s.Direction.IsZero()
}

// Attenuation holds the distance falloff coefficients of positional lights:
// radiance is divided by Constant + Linear*d + Quadratic*d².
type Attenuation struct {
	Constant  float64
	Linear    float64
	Quadratic float64
}

// NoAttenuation keeps radiance constant with distance
func NoAttenuation() Attenuation {
	return Attenuation{Constant: 1}
}

// InverseSquare is the physical point light falloff
func InverseSquare() Attenuation {
	return Attenuation{Quadratic: 1}
}

// factor returns the multiplier for distance d, or 0 when the denominator is not positive
func (a Attenuation) factor(d float64) float64 {
	denom := a.Constant + a.Linear*d + a.Quadratic*d*d
	if denom <= 0 {
		return 0
	}
	return 1.0 / denom
}

// towards returns the unit direction and distance from point to target
func towards(point, target core.Vec3) (core.Vec3, float64) {
	toLight := target.Subtract(point)
	distance := toLight.Length()
	if distance < core.DegenerateEpsilon {
		return core.Vec3{}, 0
	}
	return toLight.Multiply(1.0 / distance), distance
}
