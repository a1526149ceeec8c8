package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene() *Scene {
	s := New()
	s.CameraConfig = geometry.CameraConfig{
		Position:    core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:      core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:          core.NewVec3(0, 1, 0),
		FieldOfView: 40.0,
	}
	s.Background = core.NewColour(0.5, 0.7, 1.0)
	s.Ambient = core.Grey(0.1)
	s.Integrator = integrator.NewWhitted(true, 4)

	// Create materials
	checker := material.NewChecker(core.NewColour(0.48, 0.48, 0.0), core.NewColour(0.9, 0.9, 0.9), 2.0)
	ground := material.NewTexturedLambertian(checker)
	red := material.NewPhong(core.NewColour(0.65, 0.25, 0.2), core.Grey(0.6), 64)
	silver := material.NewMetal(core.NewColour(0.8, 0.8, 0.8))
	gold := material.NewPhong(core.NewColour(0.8, 0.6, 0.2), core.Grey(0.8), 128)
	gold.Reflectivity = core.Grey(0.3)

	s.Shapes = append(s.Shapes,
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, red),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, silver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, gold),
	)

	key := lights.NewPointLight(core.NewVec3(3, 5, 2), core.NewColour(1.0, 0.95, 0.9), 0.9)
	fill := lights.NewDirectionalLight(core.NewVec3(1, -1, -0.5), core.NewColour(0.6, 0.7, 1.0), 0.3)
	s.Lights = append(s.Lights, key, fill)

	return s
}
