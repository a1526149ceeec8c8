package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3         // One corner of the quad
	U        core.Vec3         // First edge vector
	V        core.Vec3         // Second edge vector
	Normal   core.Vec3         // Unit normal (U × V); zero when the edges are parallel
	Material material.Material // Material of the quad
	d        float64           // Plane equation constant: normal · x = d
	w        core.Vec3         // Cached vector for planar coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	q := &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		d:        normal.Dot(corner),
	}
	if crossLenSq := cross.Dot(cross); crossLenSq > 0 {
		q.w = cross.Multiply(1.0 / crossLenSq)
	}
	return q
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if q.Normal.IsZero() {
		return nil, false
	}

	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < core.DegenerateEpsilon {
		return nil, false
	}

	t := (q.d - ray.Origin.Dot(q.Normal)) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	// Planar coordinates of the hit point relative to the edges
	hitPoint := ray.At(t)
	p := hitPoint.Subtract(q.Corner)
	alpha := q.w.Dot(p.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(p))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    hitPoint,
		UV:       core.NewVec2(alpha, beta),
		Material: q.Material,
	}
	hit.SetFaceNormal(ray, q.Normal)

	return hit, true
}

// BoundingBox returns the bounds of the four corners, padded for axis-aligned quads
func (q *Quad) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	).Expand(1e-4)
}

// Area returns the surface area of the quad
func (q *Quad) Area() float64 {
	return q.U.Cross(q.V).Length()
}
