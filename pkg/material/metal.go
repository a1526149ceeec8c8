package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Metal is a perfect mirror tinted by its albedo. It has no diffuse response;
// it only shows anything when an integrator follows reflection rays.
type Metal struct {
	Albedo core.Colour
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Colour) *Metal {
	return &Metal{Albedo: albedo.Saturate()}
}

// Shade implements Material
func (m *Metal) Shade(ctx ShadeContext) core.Colour {
	return core.Black
}

// Ambient implements Material
func (m *Metal) Ambient(hit *HitRecord) core.Colour {
	return core.Black
}

// Reflectance implements Reflector
func (m *Metal) Reflectance(hit *HitRecord) core.Colour {
	return m.Albedo
}
