package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Hit tests if a ray intersects with the sphere.
// Only the smaller root is considered: when it falls outside the ray interval the
// sphere is missed even if the farther root would be valid (e.g. origin inside the sphere).
func (s *Sphere) Hit(ray core.Ray) (Intersection, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return Intersection{}, false
	}

	root := (-halfB - math.Sqrt(discriminant)) / a
	if !ray.Contains(root) {
		return Intersection{}, false
	}

	point := ray.At(root)
	return Intersection{
		T:      root,
		Point:  point,
		Normal: point.Subtract(s.Center).Normalize(),
	}, true
}

// Transform moves the center. The radius is left unchanged, so non-uniform
// scale does not turn the sphere into an ellipsoid.
func (s *Sphere) Transform(m core.Matrix4x4) {
	s.Center = m.TransformPoint(s.Center)
}
