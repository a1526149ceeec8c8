package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3         // The three vertices
	Material   material.Material // Material of the triangle
	normal     core.Vec3         // Cached unit normal; zero for degenerate triangles
	bbox       core.AABB         // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}
	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	t.bbox = core.NewAABBFromPoints(v0, v1, v2).Expand(1e-6)
	return t
}

// NewTriangleWithNormal creates a new triangle with a custom shading normal
func NewTriangleWithNormal(v0, v1, v2, normal core.Vec3, mat material.Material) *Triangle {
	t := NewTriangle(v0, v1, v2, mat)
	if !t.normal.IsZero() && !normal.IsZero() {
		t.normal = normal.Normalize()
	}
	return t
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	tParam, u, v, ok := t.intersect(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        tParam,
		Point:    ray.At(tParam),
		UV:       core.NewVec2(u, v),
		Material: t.Material,
	}
	hit.SetFaceNormal(ray, t.normal)

	return hit, true
}

// intersect returns the ray parameter and barycentric coordinates of a hit
func (t *Triangle) intersect(ray core.Ray, tMin, tMax float64) (float64, float64, float64, bool) {
	if t.normal.IsZero() {
		return 0, 0, 0, false
	}

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -core.DegenerateEpsilon && a < core.DegenerateEpsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	tParam := f * edge2.Dot(q)
	if tParam < tMin || tParam > tMax {
		return 0, 0, 0, false
	}

	return tParam, u, v, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the triangle's unit normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
