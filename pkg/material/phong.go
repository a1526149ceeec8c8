package material

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// Phong is a diffuse surface with a specular highlight and optional mirror term
type Phong struct {
	Diffuse      ColorSource
	Specular     core.Colour
	Shininess    float64
	AmbientColor core.Colour // Ambient reflectance; zero uses the diffuse colour
	Reflectivity core.Colour // Mirror reflectance used by recursive integrators
}

// NewPhong creates a Phong material with a solid diffuse colour
func NewPhong(diffuse, specular core.Colour, shininess float64) *Phong {
	return &Phong{
		Diffuse:   NewSolidColor(diffuse),
		Specular:  specular,
		Shininess: shininess,
	}
}

// Shade evaluates the diffuse cosine term plus the reflected-lobe highlight
func (p *Phong) Shade(ctx ShadeContext) core.Colour {
	cosTheta := cosine(ctx)
	if cosTheta == 0 {
		return core.Black
	}

	hit := ctx.Hit
	result := p.Diffuse.Evaluate(hit.UV, hit.Point).Multiply(cosTheta)

	if !p.Specular.IsBlack() && p.Shininess > 0 {
		reflected := ctx.ToLight.Negate().Reflect(hit.Normal)
		if rv := reflected.Dot(ctx.ToViewer); rv > 0 {
			result = result.Add(p.Specular.Multiply(math.Pow(rv, p.Shininess)))
		}
	}

	return result.MultiplyColour(ctx.Radiance)
}

// Ambient returns the ambient reflectance
func (p *Phong) Ambient(hit *HitRecord) core.Colour {
	if p.AmbientColor.IsBlack() {
		return p.Diffuse.Evaluate(hit.UV, hit.Point)
	}
	return p.AmbientColor
}

// Reflectance implements Reflector
func (p *Phong) Reflectance(hit *HitRecord) core.Colour {
	return p.Reflectivity
}
