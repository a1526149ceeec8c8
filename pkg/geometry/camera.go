package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

var (
	// ErrDegenerateView is returned when the camera looks at its own position
	ErrDegenerateView = errors.New("camera look-at point equals its position")
	// ErrDegenerateUp is returned when the up vector is zero or parallel to the view direction
	ErrDegenerateUp = errors.New("camera up vector is parallel to the view direction")
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Position    core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera is looking at
	Up          core.Vec3 // Up vector
	FieldOfView float64   // Degrees spanned by the short image axis
}

// DefaultCameraConfig returns a camera at (0,0,5) looking at the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:    core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		FieldOfView: 40.0,
	}
}

// Validate reports configurations that cannot produce a camera basis
func (c CameraConfig) Validate() error {
	view := c.LookAt.Subtract(c.Position)
	if view.LengthSquared() < core.DegenerateEpsilon {
		return ErrDegenerateView
	}
	if c.Up.Cross(view).LengthSquared() < core.DegenerateEpsilon {
		return ErrDegenerateUp
	}
	if c.FieldOfView <= 0 || c.FieldOfView >= 180 || math.IsNaN(c.FieldOfView) {
		return fmt.Errorf("camera field of view %.2f must be in (0, 180) degrees", c.FieldOfView)
	}
	return nil
}

// Camera generates primary rays from camera-plane coordinates
type Camera struct {
	config   CameraConfig
	origin   core.Vec3
	right    core.Vec3 // Scaled so u=1 reaches the edge of the short axis
	up       core.Vec3
	forward  core.Vec3
}

// NewCamera creates a camera, rejecting degenerate configurations
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	forward := config.LookAt.Subtract(config.Position).Normalize()
	right := forward.Cross(config.Up).Normalize()
	up := right.Cross(forward)
	halfSize := math.Tan(config.FieldOfView * math.Pi / 360.0)

	return &Camera{
		config:   config,
		origin:   config.Position,
		right:    right.Multiply(halfSize),
		up:       up.Multiply(halfSize),
		forward:  forward,
	}, nil
}

// GetRay returns the primary ray through camera-plane point (u, v).
// u grows to the right and v grows upwards; the short image axis spans [-1, 1].
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.forward.Add(c.right.Multiply(u)).Add(c.up.Multiply(v))
	return core.NewRay(c.origin, direction)
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
