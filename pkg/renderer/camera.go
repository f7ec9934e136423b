package renderer

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Position       core.Vec3 // Eye position in world space
	Yaw            float64   // Rotation about +y in radians, positive turns toward +x
	Pitch          float64   // Rotation about +x in radians, positive tilts the view down
	ViewportWidth  float64   // Width of the image plane in world units
	ViewportHeight float64   // Height of the image plane in world units
	Distance       float64   // Distance from the eye to the image plane
	Near           float64   // Primary rays ignore anything closer than this
}

// DefaultCameraConfig returns a camera at (0,0,-2) looking down +z through a 1x1 viewport
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:       core.NewVec3(0, 0, -2),
		ViewportWidth:  1,
		ViewportHeight: 1,
		Distance:       1,
		Near:           1,
	}
}

// Forward returns the horizontal viewing direction, ignoring pitch
func (c CameraConfig) Forward() core.Vec3 {
	return core.NewVec3(math.Sin(c.Yaw), 0, math.Cos(c.Yaw))
}

// Right returns the horizontal direction toward increasing image x
func (c CameraConfig) Right() core.Vec3 {
	return core.NewVec3(math.Cos(c.Yaw), 0, -math.Sin(c.Yaw))
}

// Camera generates primary rays through a flat viewport
type Camera struct {
	config  CameraConfig
	toWorld core.Matrix4x4
}

// NewCamera creates a camera from configuration
func NewCamera(config CameraConfig) *Camera {
	toWorld := core.Translate(config.Position).
		Mul(core.RotateY(config.Yaw)).
		Mul(core.RotateX(config.Pitch))

	return &Camera{
		config:  config,
		toWorld: toWorld,
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay returns the primary ray for pixel (x, y) of a width x height image.
// The ray is built in camera space and moved into the world with the camera transform.
func (c *Camera) GetRay(x, y, width, height int) core.Ray {
	w, h := float64(width), float64(height)
	direction := core.NewVec3(
		(float64(x)-w/2)*c.config.ViewportWidth/w,
		(h/2-float64(y))*c.config.ViewportHeight/h,
		c.config.Distance,
	)

	ray := core.NewRay(core.NewVec3(0, 0, 0), direction, c.config.Near, core.RayFar)
	return ray.Transform(c.toWorld)
}
