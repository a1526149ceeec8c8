package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Emissive represents a surface that glows with a constant colour and ignores lights
type Emissive struct {
	Color core.Colour // Emitted radiance
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Colour) *Emissive {
	return &Emissive{Color: emission}
}

// Shade implements Material
func (e *Emissive) Shade(ctx ShadeContext) core.Colour {
	return core.Black
}

// Ambient implements Material
func (e *Emissive) Ambient(hit *HitRecord) core.Colour {
	return core.Black
}

// Emission implements Emitter
func (e *Emissive) Emission(hit *HitRecord) core.Colour {
	return e.Color
}
