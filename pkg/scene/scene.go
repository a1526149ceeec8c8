package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 1024
)

var (
	// ErrSceneFrozen is returned by mutators once Preprocess has succeeded
	ErrSceneFrozen = errors.New("scene is frozen after preprocessing")
	// ErrNoCamera is returned by Preprocess when no camera was configured
	ErrNoCamera = errors.New("scene has no camera")
	// ErrInvalidDimensions is returned by Preprocess for non-positive image sizes
	ErrInvalidDimensions = errors.New("image dimensions must be positive")
)

// Scene contains all the elements needed for rendering.
// Build it with New and the Add/Set methods, then call Preprocess; after that
// the scene is read-only and Trace may be called from any number of goroutines.
type Scene struct {
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Shapes       []geometry.Shape // Objects in the scene, in declaration order
	Lights       []lights.Light   // Lights in the scene
	Background   core.Colour      // Colour of rays that hit nothing
	Ambient      core.Colour      // Ambient light applied to every hit
	Integrator   integrator.Integrator
	Width        int // Image width in pixels
	Height       int // Image height in pixels

	frozen bool
}

// New creates an empty scene with the default camera and image size
func New() *Scene {
	return &Scene{
		CameraConfig: geometry.DefaultCameraConfig(),
		Shapes:       make([]geometry.Shape, 0),
		Lights:       make([]lights.Light, 0),
		Background:   core.Black,
		Integrator:   integrator.NewDirectLighting(false),
		Width:        DefaultWidth,
		Height:       DefaultHeight,
	}
}

// AddShape appends shapes to the scene
func (s *Scene) AddShape(shapes ...geometry.Shape) error {
	if s.frozen {
		return ErrSceneFrozen
	}
	s.Shapes = append(s.Shapes, shapes...)
	return nil
}

// AddLight appends lights to the scene
func (s *Scene) AddLight(ls ...lights.Light) error {
	if s.frozen {
		return ErrSceneFrozen
	}
	s.Lights = append(s.Lights, ls...)
	return nil
}

// AddAreaLight adds an area light along with its visible quad
func (s *Scene) AddAreaLight(light *lights.AreaLight) error {
	if err := s.AddLight(light); err != nil {
		return err
	}
	return s.AddShape(light.Quad)
}

// SetCamera replaces the camera configuration
func (s *Scene) SetCamera(config geometry.CameraConfig) error {
	if s.frozen {
		return ErrSceneFrozen
	}
	s.CameraConfig = config
	s.Camera = nil
	return nil
}

// SetSize sets the image dimensions
func (s *Scene) SetSize(width, height int) error {
	if s.frozen {
		return ErrSceneFrozen
	}
	s.Width, s.Height = width, height
	return nil
}

// SetIntegrator replaces the shading strategy
func (s *Scene) SetIntegrator(integ integrator.Integrator) error {
	if s.frozen {
		return ErrSceneFrozen
	}
	s.Integrator = integ
	return nil
}

// Preprocess validates the scene, builds the camera and freezes the scene.
// Calling it again on a frozen scene is a no-op.
func (s *Scene) Preprocess() error {
	if s.frozen {
		return nil
	}

	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, s.Width, s.Height)
	}

	for i, shape := range s.Shapes {
		if shape == nil {
			return fmt.Errorf("shape %d is nil", i)
		}
	}
	for i, light := range s.Lights {
		if light == nil {
			return fmt.Errorf("light %d is nil", i)
		}
	}

	if s.Camera == nil {
		if s.CameraConfig == (geometry.CameraConfig{}) {
			return ErrNoCamera
		}
		camera, err := geometry.NewCamera(s.CameraConfig)
		if err != nil {
			return fmt.Errorf("invalid camera: %w", err)
		}
		s.Camera = camera
	}

	if s.Integrator == nil {
		s.Integrator = integrator.NewDirectLighting(false)
	}

	s.frozen = true
	return nil
}

// IsPrepared reports whether Preprocess has frozen the scene
func (s *Scene) IsPrepared() bool {
	return s.frozen
}

// Trace returns the linear, unclamped colour seen through camera-plane point (u, v).
// An unprepared scene traces to the background.
func (s *Scene) Trace(u, v float64) core.Colour {
	if !s.frozen {
		return s.Background
	}

	ray := s.Camera.GetRay(u, v)
	hit, ok := s.Hit(ray, core.MinHitDistance, math.Inf(1))
	if !ok {
		return s.Background
	}
	return s.Integrator.Shade(ray, hit, s)
}

// Hit returns the nearest intersection across all shapes.
// Only a strictly closer hit replaces the current one, so the first-declared shape wins ties.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax

	for _, shape := range s.Shapes {
		hit, ok := shape.Hit(ray, tMin, closestSoFar)
		if !ok {
			continue
		}
		if closest == nil || hit.T < closestSoFar {
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}

// Occluded reports whether any shape blocks the ray before maxDistance
func (s *Scene) Occluded(ray core.Ray, maxDistance float64) bool {
	for _, shape := range s.Shapes {
		if _, ok := shape.Hit(ray, core.MinHitDistance, maxDistance); ok {
			return true
		}
	}
	return false
}

// GetLights implements integrator.Scene
func (s *Scene) GetLights() []lights.Light {
	return s.Lights
}

// GetAmbient implements integrator.Scene
func (s *Scene) GetAmbient() core.Colour {
	return s.Ambient
}

// GetBackground implements integrator.Scene
func (s *Scene) GetBackground() core.Colour {
	return s.Background
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		switch obj := shape.(type) {
		case *geometry.TriangleMesh:
			count += obj.GetTriangleCount()
		default:
			count++
		}
	}
	return count
}

// Size returns the image dimensions in pixels
func (s *Scene) Size() (int, int) {
	return s.Width, s.Height
}
