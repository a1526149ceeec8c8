package scene

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box scene with quad walls and area lighting
func NewCornellScene() *Scene {
	s := New()
	s.CameraConfig = geometry.CameraConfig{
		Position:    core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		FieldOfView: 40.0,
	}
	s.Ambient = core.Grey(0.05)
	s.Integrator = integrator.NewWhitted(true, 3)

	white := material.NewLambertian(core.NewColour(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewColour(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewColour(0.12, 0.45, 0.15))

	// Cornell box dimensions (standard 555x555x555 units)
	boxSize := 555.0

	s.Shapes = append(s.Shapes,
		// Floor - XZ plane at y=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white),
		// Ceiling - XZ plane at y=boxSize
		geometry.NewQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white),
		// Back wall - XY plane at z=boxSize
		geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white),
		// Left wall - YZ plane at x=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), red),
		// Right wall - YZ plane at x=boxSize
		geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green),
	)

	// Ceiling light, slightly below the ceiling so shadow rays reach it
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	ceilingLight := lights.NewAreaLight(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		core.NewColour(1.0, 0.95, 0.85),
		8.0,
		4,
	)
	s.Lights = append(s.Lights, ceilingLight)
	s.Shapes = append(s.Shapes, ceilingLight.Quad)

	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewMetal(core.NewColour(0.8, 0.8, 0.9))),
		geometry.NewBox(
			core.NewVec3(370, 165, 351),
			core.NewVec3(82.5, 165, 82.5),
			core.NewVec3(0, math.Pi/12, 0),
			white,
		),
	)

	return s
}
