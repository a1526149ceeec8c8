package geometry

import (
	"fmt"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// TriangleMesh represents a collection of triangles with efficient ray intersection.
// Triangles are kept in a flat slice and indexed by an internal BVH.
type TriangleMesh struct {
	triangles []Shape
	bvh       *BVH
	material  material.Material
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Normals   []core.Vec3         // Optional custom normals (one per triangle)
	Materials []material.Material // Optional per-triangle materials
	Rotation  *core.Vec3          // Optional rotation in radians applied to vertices
	Center    *core.Vec3          // Optional pivot for the rotation
	Scale     float64             // Optional uniform scale about the pivot (0 means 1)
	Offset    core.Vec3           // Translation applied last
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of three face indices forms a triangle.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face index count %d is not a multiple of 3", len(faces))
	}
	numTriangles := len(faces) / 3

	if options != nil {
		if options.Normals != nil && len(options.Normals) != numTriangles {
			return nil, fmt.Errorf("got %d normals for %d triangles", len(options.Normals), numTriangles)
		}
		if options.Materials != nil && len(options.Materials) != numTriangles {
			return nil, fmt.Errorf("got %d materials for %d triangles", len(options.Materials), numTriangles)
		}
	}

	working := transformVertices(vertices, options)

	triangles := make([]Shape, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= len(working) || i1 >= len(working) || i2 >= len(working) {
			return nil, fmt.Errorf("triangle %d references a vertex outside [0,%d)", i, len(working))
		}

		triMaterial := mat
		if options != nil && options.Materials != nil {
			triMaterial = options.Materials[i]
		}

		if options != nil && options.Normals != nil {
			triangles[i] = NewTriangleWithNormal(working[i0], working[i1], working[i2], options.Normals[i], triMaterial)
		} else {
			triangles[i] = NewTriangle(working[i0], working[i1], working[i2], triMaterial)
		}
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
		material:  mat,
	}, nil
}

// transformVertices applies scale and rotation about the pivot, then the offset
func transformVertices(vertices []core.Vec3, options *TriangleMeshOptions) []core.Vec3 {
	if options == nil || (options.Rotation == nil && options.Scale == 0 && options.Offset == (core.Vec3{})) {
		return vertices
	}

	var pivot core.Vec3
	if options.Center != nil {
		pivot = *options.Center
	}
	scale := options.Scale
	if scale == 0 {
		scale = 1
	}

	out := make([]core.Vec3, len(vertices))
	for i, v := range vertices {
		v = v.Subtract(pivot).Multiply(scale)
		if options.Rotation != nil {
			v = v.Rotate(*options.Rotation)
		}
		out[i] = v.Add(pivot).Add(options.Offset)
	}
	return out
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return tm.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the bounds of all triangles
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// GetTriangleCount returns the number of triangles in the mesh
func (tm *TriangleMesh) GetTriangleCount() int {
	return len(tm.triangles)
}
