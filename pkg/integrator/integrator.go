package integrator

import (
	"fmt"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
)

// Scene is the view of a scene that integrators shade against.
// Implemented by *scene.Scene; declared here to avoid an import cycle.
type Scene interface {
	// Hit returns the nearest intersection with t in [tMin, tMax]
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)

	// Occluded reports whether anything blocks the ray before maxDistance
	Occluded(ray core.Ray, maxDistance float64) bool

	GetLights() []lights.Light
	GetAmbient() core.Colour
	GetBackground() core.Colour
}

// Integrator computes the colour seen along a primary ray that hit a surface
type Integrator interface {
	Shade(ray core.Ray, hit *material.HitRecord, scene Scene) core.Colour
}

const (
	NameDirect  = "direct"
	NameWhitted = "whitted"
)

// NewIntegrator creates an integrator by name. maxDepth is ignored by "direct".
func NewIntegrator(name string, shadows bool, maxDepth int) (Integrator, error) {
	switch name {
	case "", NameDirect:
		return &DirectLighting{Shadows: shadows}, nil
	case NameWhitted:
		if maxDepth < 0 {
			return nil, fmt.Errorf("whitted max depth must not be negative, got %d", maxDepth)
		}
		return &Whitted{Shadows: shadows, MaxDepth: maxDepth}, nil
	default:
		return nil, fmt.Errorf("unknown integrator %q (expected %q or %q)", name, NameDirect, NameWhitted)
	}
}

// directLight sums the ambient term, any emission and every light sample at hit
func directLight(ray core.Ray, hit *material.HitRecord, scene Scene, shadows bool) core.Colour {
	mat := hit.Material
	if mat == nil {
		return core.Black
	}

	result := mat.Ambient(hit).MultiplyColour(scene.GetAmbient())
	if emitter, ok := mat.(material.Emitter); ok {
		result = result.Add(emitter.Emission(hit))
	}

	toViewer := ray.Direction.Negate()
	shadowOrigin := hit.Point.Add(hit.Normal.Multiply(core.ShadowEpsilon))

	for _, light := range scene.GetLights() {
		for i := 0; i < light.SampleCount(); i++ {
			sample := light.Sample(hit.Point, i)
			if sample.IsZero() {
				continue
			}
			// Light behind the surface as seen from the viewer's side
			if sample.Direction.Dot(hit.Normal) <= 0 {
				continue
			}
			if shadows && scene.Occluded(core.NewRay(shadowOrigin, sample.Direction), sample.Distance-core.ShadowEpsilon) {
				continue
			}

			result = result.Add(mat.Shade(material.ShadeContext{
				Hit:      hit,
				ToLight:  sample.Direction,
				ToViewer: toViewer,
				Radiance: sample.Radiance,
			}))
		}
	}

	return result
}
