package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit reports the nearest intersection with t in [tMin, tMax]; shapes are
// immutable after construction and may be hit from many goroutines at once.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}

// orthonormalBasis returns two unit vectors perpendicular to n and to each other
func orthonormalBasis(n core.Vec3) (core.Vec3, core.Vec3) {
	var helper core.Vec3
	if n.X > 0.9 || n.X < -0.9 {
		helper = core.NewVec3(0, 1, 0)
	} else {
		helper = core.NewVec3(1, 0, 0)
	}
	tangent := helper.Cross(n).Normalize()
	bitangent := n.Cross(tangent).Normalize()
	return tangent, bitangent
}
