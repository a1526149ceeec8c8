package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Box represents a rectangular box made up of 6 quads with optional rotation
type Box struct {
	Center   core.Vec3         // Center point of the box
	Size     core.Vec3         // Half-extents along each local axis
	Rotation core.Vec3         // Rotation angles in radians (X, Y, Z)
	Material material.Material // Material for all faces
	faces    [6]*Quad
	bbox     core.AABB
}

// NewBox creates a new box. Size holds half-extents, so (1,1,1) is a 2x2x2 box.
func NewBox(center, size, rotation core.Vec3, mat material.Material) *Box {
	box := &Box{
		Center:   center,
		Size:     size,
		Rotation: rotation,
		Material: mat,
	}
	box.generateFaces()
	return box
}

// NewAxisAlignedBox creates a new axis-aligned box (no rotation)
func NewAxisAlignedBox(center, size core.Vec3, mat material.Material) *Box {
	return NewBox(center, size, core.Vec3{}, mat)
}

// faceCorners lists, per face, the corner index and the two edge end indices.
// Edges are ordered so U × V points out of the box.
var faceCorners = [6][3]int{
	{4, 5, 7}, // front  (Z+)
	{1, 0, 2}, // back   (Z-)
	{5, 1, 6}, // right  (X+)
	{0, 4, 3}, // left   (X-)
	{3, 7, 2}, // top    (Y+)
	{4, 0, 5}, // bottom (Y-)
}

func (b *Box) generateFaces() {
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}

	for i := range corners {
		corners[i] = corners[i].MultiplyVec(b.Size).Rotate(b.Rotation).Add(b.Center)
	}

	for i, fc := range faceCorners {
		origin := corners[fc[0]]
		b.faces[i] = NewQuad(origin, corners[fc[1]].Subtract(origin), corners[fc[2]].Subtract(origin), b.Material)
	}

	b.bbox = core.NewAABBFromPoints(corners[:]...).Expand(1e-4)
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestT := tMax

	for _, face := range b.faces {
		if hit, ok := face.Hit(ray, tMin, closestT); ok {
			closestT = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.bbox
}
