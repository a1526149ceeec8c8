package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
)

// NewSingleSphereScene creates a unit sphere at the origin seen from (0,0,5),
// lit by a point light above and in front of it, over a blue background
func NewSingleSphereScene() *Scene {
	s := New()
	s.CameraConfig = geometry.CameraConfig{
		Position:    core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		FieldOfView: 40.0,
	}
	s.Background = core.NewColour(0.2, 0.3, 0.8)

	s.Shapes = append(s.Shapes, geometry.NewSphere(
		core.NewVec3(0, 0, 0),
		1.0,
		material.NewLambertian(core.NewColour(0.8, 0.3, 0.3)),
	))
	s.Lights = append(s.Lights, lights.NewPointLight(core.NewVec3(0, 5, 5), core.NewColour(1, 1, 1), 1.0))

	return s
}
