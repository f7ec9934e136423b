package lights

import "github.com/df07/go-recursive-raytracer/pkg/core"

// PointLight emits equally in every direction from a single position
type PointLight struct {
	Intensity float64
	Pos       core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity float64) *PointLight {
	return &PointLight{Intensity: intensity, Pos: position}
}

// Type implements Light
func (p *PointLight) Type() LightType {
	return LightTypePoint
}

// Position implements Light
func (p *PointLight) Position() core.Vec3 {
	return p.Pos
}

// Illuminate returns intensity * cos(theta) for a Lambertian surface, where theta is the
// angle between the normal and the direction to the light. Back-facing points get nothing.
func (p *PointLight) Illuminate(point, normal core.Vec3) float64 {
	toLight := p.Pos.Subtract(point)
	cosine := normal.Dot(toLight)
	if cosine <= 0 {
		return 0
	}
	return p.Intensity * cosine / (normal.Length() * toLight.Length())
}
