package integrator

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// DirectLighting shades a hit with the ambient term plus one evaluation per light sample.
// No secondary rays are cast unless Shadows is set.
type DirectLighting struct {
	Shadows bool // Cast an occlusion ray per light sample
}

// NewDirectLighting creates a direct lighting integrator
func NewDirectLighting(shadows bool) *DirectLighting {
	return &DirectLighting{Shadows: shadows}
}

// Shade implements the Integrator interface
func (d *DirectLighting) Shade(ray core.Ray, hit *material.HitRecord, scene Scene) core.Colour {
	return directLight(ray, hit, scene, d.Shadows)
}
