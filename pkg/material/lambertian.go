package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Colour) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedo ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Shade applies the cosine term to the albedo
func (l *Lambertian) Shade(ctx ShadeContext) core.Colour {
	cosTheta := cosine(ctx)
	if cosTheta == 0 {
		return core.Black
	}
	albedo := l.Albedo.Evaluate(ctx.Hit.UV, ctx.Hit.Point)
	return albedo.MultiplyColour(ctx.Radiance).Multiply(cosTheta)
}

// Ambient reflects ambient light with the albedo
func (l *Lambertian) Ambient(hit *HitRecord) core.Colour {
	return l.Albedo.Evaluate(hit.UV, hit.Point)
}
