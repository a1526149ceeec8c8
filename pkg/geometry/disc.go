package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Disc represents a circular disc in 3D space
type Disc struct {
	Center   core.Vec3         // Center of the disc
	Normal   core.Vec3         // Unit normal
	Radius   float64           // Radius of the disc
	Material material.Material // Material of the disc
	Right    core.Vec3         // In-plane axis perpendicular to Normal
	Up       core.Vec3         // In-plane axis perpendicular to Normal and Right
}

// NewDisc creates a new disc
func NewDisc(center, normal core.Vec3, radius float64, mat material.Material) *Disc {
	n := normal.Normalize()
	right, up := orthonormalBasis(n)
	return &Disc{
		Center:   center,
		Normal:   n,
		Radius:   radius,
		Material: mat,
		Right:    right,
		Up:       up,
	}
}

// Hit implements the Shape interface
func (d *Disc) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if d.Radius <= 0 || d.Normal.IsZero() {
		return nil, false
	}

	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < core.DegenerateEpsilon {
		return nil, false
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if t < tMin || t > tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	local := hitPoint.Subtract(d.Center)
	if local.LengthSquared() > d.Radius*d.Radius {
		return nil, false
	}

	hit := &material.HitRecord{
		T:     t,
		Point: hitPoint,
		UV: core.NewVec2(
			0.5+0.5*local.Dot(d.Right)/d.Radius,
			0.5+0.5*local.Dot(d.Up)/d.Radius,
		),
		Material: d.Material,
	}
	hit.SetFaceNormal(ray, d.Normal)

	return hit, true
}

// BoundingBox implements the Shape interface
func (d *Disc) BoundingBox() core.AABB {
	r := d.Right.Multiply(d.Radius)
	u := d.Up.Multiply(d.Radius)
	return core.NewAABBFromPoints(
		d.Center.Add(r).Add(u),
		d.Center.Add(r).Subtract(u),
		d.Center.Subtract(r).Add(u),
		d.Center.Subtract(r).Subtract(u),
	).Expand(1e-4)
}
