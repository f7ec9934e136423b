package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
)

// Trace returns the color seen along ray, following reflections up to MaxDepth bounces
func (s *Scene) Trace(ray core.Ray) core.Color {
	return s.TraceLimited(ray, s.MaxDepth)
}

// TraceLimited returns the color seen along ray with at most depth further reflections.
// Depth strictly decreases on every recursive call, so it runs at most depth+1 times.
func (s *Scene) TraceLimited(ray core.Ray, depth int) core.Color {
	model, hit, ok := s.ClosestIntersection(ray)
	if !ok {
		return s.Background
	}

	mat := model.Material
	local := mat.Color.Scale(s.Lighting(hit))

	if depth <= 0 || !mat.IsReflective() {
		return local
	}

	reflected := s.TraceLimited(core.NewSecondaryRay(hit.Point, reflect(ray.Direction, hit.Normal)), depth-1)
	return local.Blend(reflected, mat.Reflective)
}

// reflect mirrors the incoming direction about the normal: R = 2(N·V)N - V with V = -D
func reflect(direction, normal core.Vec3) core.Vec3 {
	n := normal.Normalize()
	v := direction.Negate()
	return n.Multiply(2 * n.Dot(v)).Subtract(v)
}

// ClosestIntersection returns the model with the nearest hit inside the ray's interval.
// Models are scanned in order and the first one wins an exact tie.
func (s *Scene) ClosestIntersection(ray core.Ray) (*Model, geometry.Intersection, bool) {
	var closestModel *Model
	var closestHit geometry.Intersection

	for i := range s.Models {
		hit, ok := s.Models[i].Geometry.Hit(ray)
		if !ok || !ray.Contains(hit.T) {
			continue
		}
		if closestModel == nil || hit.T < closestHit.T {
			closestModel = &s.Models[i]
			closestHit = hit
		}
	}

	return closestModel, closestHit, closestModel != nil
}

// Lighting sums the contribution of every light visible from the hit point.
// A light is occluded if a shadow ray toward it hits anything at all, including
// geometry beyond the light itself.
func (s *Scene) Lighting(hit geometry.Intersection) float64 {
	intensity := 0.0
	for _, light := range s.Lights {
		shadowRay := core.NewSecondaryRay(hit.Point, light.Position().Subtract(hit.Point))
		if _, _, blocked := s.ClosestIntersection(shadowRay); blocked {
			continue
		}
		intensity += light.Illuminate(hit.Point, hit.Normal)
	}
	return intensity
}
