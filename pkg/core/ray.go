package core

const (
	// RayEpsilon offsets secondary rays from the surface they leave to avoid self-intersection
	RayEpsilon = 1e-6
	// RayFar is the upper bound of an effectively unbounded ray
	RayFar = 1e20
)

// Ray is an origin, a unit direction and the half-open interval [TMin, TMax)
// of parameters at which a hit counts
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a ray, normalizing the direction so t values are world distances
func NewRay(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction.Normalize(),
		TMin:      tMin,
		TMax:      tMax,
	}
}

// NewSecondaryRay creates a shadow or reflection ray leaving a surface point
func NewSecondaryRay(origin, direction Vec3) Ray {
	return NewRay(origin, direction, RayEpsilon, RayFar)
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Contains reports whether t lies in the ray's valid interval
func (r Ray) Contains(t float64) bool {
	return t >= r.TMin && t < r.TMax
}

// Transform returns the ray moved by m: the origin as a point, the direction as a
// direction. The direction is re-normalized and the interval is kept as is.
func (r Ray) Transform(m Matrix4x4) Ray {
	return NewRay(m.TransformPoint(r.Origin), m.TransformDirection(r.Direction), r.TMin, r.TMax)
}
