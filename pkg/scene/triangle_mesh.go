package scene

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
)

// NewTriangleMeshScene creates a scene showcasing triangle mesh geometry
func NewTriangleMeshScene() *Scene {
	s := New()
	s.CameraConfig = geometry.CameraConfig{
		Position:    core.NewVec3(0, 2, 6),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		FieldOfView: 45.0,
	}
	s.Background = core.NewColour(0.5, 0.7, 1.0)
	s.Ambient = core.Grey(0.1)
	s.Integrator = integrator.NewWhitted(true, 3)

	// Warm key light overhead and a cool fill from the left
	key := lights.NewPointLight(core.NewVec3(2, 6, 3), core.NewColour(1.0, 0.92, 0.83), 1.0)
	fill := lights.NewPointLight(core.NewVec3(-3, 4, 2), core.NewColour(0.6, 0.7, 0.8), 0.5)
	s.Lights = append(s.Lights, key, fill)

	s.Shapes = append(s.Shapes, geometry.NewPlane(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 1, 0),
		material.NewLambertian(core.Grey(0.7)),
	))

	redMirror := material.NewPhong(core.NewColour(0.8, 0.2, 0.2), core.Grey(0.5), 32)
	redMirror.Reflectivity = core.Grey(0.2)
	blue := material.NewLambertian(core.NewColour(0.2, 0.3, 0.8))
	gold := material.NewPhong(core.NewColour(0.8, 0.6, 0.2), core.Grey(0.9), 96)

	s.Shapes = append(s.Shapes,
		createBoxMesh(core.NewVec3(-2, 0.5, 0), core.NewVec3(1, 1, 1), core.NewVec3(0, math.Pi/6, 0), redMirror),
		createPyramidMesh(core.NewVec3(0, 1, 0), 1.5, 2.0, core.NewVec3(0, math.Pi/4, 0), blue),
		createIcosahedronMesh(core.NewVec3(2, 0.8, 0), 0.8, core.NewVec3(0, math.Pi/3, 0), gold),
	)

	return s
}

// meshOrPanic builds a mesh from index data that is fixed at compile time
func meshOrPanic(vertices []core.Vec3, faces []int, mat material.Material, center, rotation core.Vec3) *geometry.TriangleMesh {
	mesh, err := geometry.NewTriangleMesh(vertices, faces, mat, &geometry.TriangleMeshOptions{
		Rotation: &rotation,
		Center:   &center,
	})
	if err != nil {
		panic(err)
	}
	return mesh
}

// createBoxMesh creates a triangle mesh representing a box
func createBoxMesh(center, size core.Vec3, rotation core.Vec3, mat material.Material) *geometry.TriangleMesh {
	h := size.Multiply(0.5)
	vertices := []core.Vec3{
		center.Add(core.NewVec3(-h.X, -h.Y, -h.Z)), // 0: left-bottom-back
		center.Add(core.NewVec3(+h.X, -h.Y, -h.Z)), // 1: right-bottom-back
		center.Add(core.NewVec3(+h.X, +h.Y, -h.Z)), // 2: right-top-back
		center.Add(core.NewVec3(-h.X, +h.Y, -h.Z)), // 3: left-top-back
		center.Add(core.NewVec3(-h.X, -h.Y, +h.Z)), // 4: left-bottom-front
		center.Add(core.NewVec3(+h.X, -h.Y, +h.Z)), // 5: right-bottom-front
		center.Add(core.NewVec3(+h.X, +h.Y, +h.Z)), // 6: right-top-front
		center.Add(core.NewVec3(-h.X, +h.Y, +h.Z)), // 7: left-top-front
	}

	// Two triangles per face
	faces := []int{
		0, 1, 2, 0, 2, 3, // back
		4, 6, 5, 4, 7, 6, // front
		0, 3, 7, 0, 7, 4, // left
		1, 5, 6, 1, 6, 2, // right
		0, 4, 5, 0, 5, 1, // bottom
		3, 2, 6, 3, 6, 7, // top
	}

	return meshOrPanic(vertices, faces, mat, center, rotation)
}

// createPyramidMesh creates a square-based pyramid
func createPyramidMesh(center core.Vec3, baseSize, height float64, rotation core.Vec3, mat material.Material) *geometry.TriangleMesh {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Vec3{
		center.Add(core.NewVec3(-halfBase, -halfHeight, -halfBase)), // 0: left-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, -halfBase)), // 1: right-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, +halfBase)), // 2: right-front
		center.Add(core.NewVec3(-halfBase, -halfHeight, +halfBase)), // 3: left-front
		center.Add(core.NewVec3(0, +halfHeight, 0)),                 // 4: apex
	}

	faces := []int{
		0, 2, 1, 0, 3, 2, // base
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
	}

	return meshOrPanic(vertices, faces, mat, center, rotation)
}

// createIcosahedronMesh creates a regular icosahedron with the given circumradius
func createIcosahedronMesh(center core.Vec3, radius float64, rotation core.Vec3, mat material.Material) *geometry.TriangleMesh {
	phi := (1.0 + math.Sqrt(5)) / 2.0
	scale := radius / math.Sqrt(1+phi*phi)

	raw := []core.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	vertices := make([]core.Vec3, len(raw))
	for i, v := range raw {
		vertices[i] = center.Add(v.Multiply(scale))
	}

	faces := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return meshOrPanic(vertices, faces, mat, center, rotation)
}
