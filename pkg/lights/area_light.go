package lights

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

// AreaLight is a rectangular emitter sampled on a fixed stratified grid.
// Each of the Samples×Samples cells contributes from its centre.
type AreaLight struct {
	*geometry.Quad // Embedded quad gives the light a visible surface
	Color          core.Colour
	Intensity      float64
	Samples        int     // Grid cells along each edge
	area           float64 // Cached area
}

// NewAreaLight creates a rectangular area light from a corner and two edges.
// The quad carries an emissive material so it can also be added to a scene as a shape.
func NewAreaLight(corner, u, v core.Vec3, color core.Colour, intensity float64, samples int) *AreaLight {
	if samples < 1 {
		samples = 1
	}
	return &AreaLight{
		Quad:      geometry.NewQuad(corner, u, v, material.NewEmissive(color.Multiply(intensity))),
		Color:     color,
		Intensity: intensity,
		Samples:   samples,
		area:      u.Cross(v).Length(),
	}
}

func (al *AreaLight) Type() LightType {
	return LightTypeArea
}

// SampleCount implements the Light interface
func (al *AreaLight) SampleCount() int {
	return al.Samples * al.Samples
}

// Sample implements the Light interface. Index i addresses grid cell (i%n, i/n).
func (al *AreaLight) Sample(point core.Vec3, index int) LightSample {
	n := al.Samples
	if al.area == 0 || index < 0 || index >= n*n {
		return LightSample{}
	}

	s := (float64(index%n) + 0.5) / float64(n)
	t := (float64(index/n) + 0.5) / float64(n)
	samplePoint := al.Corner.Add(al.U.Multiply(s)).Add(al.V.Multiply(t))

	direction, distance := towards(point, samplePoint)
	if direction.IsZero() {
		return LightSample{}
	}

	// Emits from both faces; edge-on cells contribute nothing
	cosLight := math.Abs(al.Normal.Dot(direction))
	if cosLight < 1e-8 {
		return LightSample{}
	}

	// Each cell covers area/n² of the emitter, seen at solid angle cell·cos/d²
	weight := cosLight * (al.area / float64(n*n)) / (distance * distance)
	return LightSample{
		Direction: direction,
		Distance:  distance,
		Radiance:  al.Color.Multiply(al.Intensity * weight),
	}
}
