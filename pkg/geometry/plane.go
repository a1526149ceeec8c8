package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// planeExtent bounds infinite planes for bounding box queries
const planeExtent = 1e6

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3         // A point on the plane
	Normal   core.Vec3         // Unit normal; zero for a degenerate plane
	Material material.Material // Material of the plane
	tangent  core.Vec3
	bitan    core.Vec3
}

// NewPlane creates a new plane. A zero normal produces a plane that is never hit.
func NewPlane(point, normal core.Vec3, mat material.Material) *Plane {
	n := normal.Normalize()
	tangent, bitan := orthonormalBasis(n)
	return &Plane{
		Point:    point,
		Normal:   n,
		Material: mat,
		tangent:  tangent,
		bitan:    bitan,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if p.Normal.IsZero() {
		return nil, false
	}

	// Ray parallel to the plane never meets it
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < core.DegenerateEpsilon {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: p.Material,
	}
	hit.SetFaceNormal(ray, p.Normal)

	local := hit.Point.Subtract(p.Point)
	hit.UV = core.NewVec2(local.Dot(p.tangent), local.Dot(p.bitan))

	return hit, true
}

// BoundingBox returns a large, thin box around axis-aligned planes and a large cube otherwise
func (p *Plane) BoundingBox() core.AABB {
	const thickness = 0.001

	lo := core.NewVec3(-planeExtent, -planeExtent, -planeExtent)
	hi := core.NewVec3(planeExtent, planeExtent, planeExtent)

	switch {
	case math.Abs(p.Normal.X) > 0.999:
		lo.X, hi.X = p.Point.X-thickness, p.Point.X+thickness
	case math.Abs(p.Normal.Y) > 0.999:
		lo.Y, hi.Y = p.Point.Y-thickness, p.Point.Y+thickness
	case math.Abs(p.Normal.Z) > 0.999:
		lo.Z, hi.Z = p.Point.Z-thickness, p.Point.Z+thickness
	}

	return core.NewAABB(lo, hi)
}
