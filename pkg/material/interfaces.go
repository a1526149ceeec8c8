package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Material describes how a surface responds to incident light
type Material interface {
	// Shade returns the light reflected towards the viewer for one light sample,
	// including the cosine term and the sample radiance.
	Shade(ctx ShadeContext) core.Colour

	// Ambient returns the reflectance applied to the scene ambient light
	Ambient(hit *HitRecord) core.Colour
}

// Reflector is implemented by materials that spawn mirror reflection rays
type Reflector interface {
	Reflectance(hit *HitRecord) core.Colour
}

// Emitter is implemented by materials that glow on their own
type Emitter interface {
	Emission(hit *HitRecord) core.Colour
}

// ShadeContext carries the inputs for evaluating a single light sample
type ShadeContext struct {
	Hit      *HitRecord
	ToLight  core.Vec3   // Unit direction from the hit point to the light
	ToViewer core.Vec3   // Unit direction from the hit point back along the incoming ray
	Radiance core.Colour // Light arriving along ToLight
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection, facing the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	UV        core.Vec2 // Surface coordinates for textures
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// cosine returns the clamped cosine between the surface normal and the light
func cosine(ctx ShadeContext) float64 {
	return max(0, ctx.Hit.Normal.Dot(ctx.ToLight))
}
