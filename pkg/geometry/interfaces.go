package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Intersection records where a ray hit a surface
type Intersection struct {
	T      float64   // Distance along the ray
	Point  core.Vec3 // World-space hit point
	Normal core.Vec3 // World-space surface normal at the hit
}

// Geometry is a shape that can be hit by rays and moved by affine transforms.
// Hit must not mutate the geometry, so a scene can be traced from many goroutines.
// Transform mutates in place and must only be called while nothing is tracing.
type Geometry interface {
	// Hit returns the nearest intersection inside the ray's valid interval
	Hit(ray core.Ray) (Intersection, bool)
	// Transform applies m to points and its inverse-transpose to normals
	Transform(m core.Matrix4x4)
}
