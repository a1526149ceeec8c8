package integrator

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Whitted adds recursive mirror reflection to direct lighting.
// Reflection rays follow materials implementing material.Reflector up to MaxDepth bounces.
type Whitted struct {
	Shadows  bool
	MaxDepth int
}

// NewWhitted creates a Whitted-style integrator
func NewWhitted(shadows bool, maxDepth int) *Whitted {
	return &Whitted{Shadows: shadows, MaxDepth: maxDepth}
}

// Shade implements the Integrator interface
func (w *Whitted) Shade(ray core.Ray, hit *material.HitRecord, scene Scene) core.Colour {
	return w.shade(ray, hit, scene, w.MaxDepth)
}

func (w *Whitted) shade(ray core.Ray, hit *material.HitRecord, scene Scene, depth int) core.Colour {
	result := directLight(ray, hit, scene, w.Shadows)
	if depth <= 0 {
		return result
	}

	reflector, ok := hit.Material.(material.Reflector)
	if !ok {
		return result
	}
	reflectance := reflector.Reflectance(hit)
	if reflectance.IsBlack() {
		return result
	}

	origin := hit.Point.Add(hit.Normal.Multiply(core.ShadowEpsilon))
	reflected := core.NewRay(origin, ray.Direction.Reflect(hit.Normal))

	var incoming core.Colour
	if next, ok := scene.Hit(reflected, core.MinHitDistance, math.Inf(1)); ok {
		incoming = w.shade(reflected, next, scene, depth-1)
	} else {
		incoming = scene.GetBackground()
	}

	return result.Add(incoming.MultiplyColour(reflectance))
}
