package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// parallelEpsilon is the smallest |N·D| for which a ray is not treated as parallel to a plane
const parallelEpsilon = 1e-6

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal.Normalize(),
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray) (Intersection, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < parallelEpsilon {
		return Intersection{}, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if !ray.Contains(t) {
		return Intersection{}, false
	}

	return Intersection{
		T:      t,
		Point:  ray.At(t),
		Normal: p.Normal,
	}, true
}

// Transform moves the reference point and reorients the normal by the inverse-transpose
func (p *Plane) Transform(m core.Matrix4x4) {
	p.Point = m.TransformPoint(p.Point)
	p.Normal = m.TransformNormal(p.Normal)
}
