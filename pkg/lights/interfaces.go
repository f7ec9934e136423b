package lights

import "github.com/df07/go-recursive-raytracer/pkg/core"

// LightType names a kind of light
type LightType string

const (
	LightTypePoint LightType = "point"
)

// Light is a source of direct illumination
type Light interface {
	Type() LightType

	// Position is where shadow rays are aimed
	Position() core.Vec3

	// Illuminate returns the unoccluded intensity arriving at point on a surface with the given normal
	Illuminate(point, normal core.Vec3) float64
}
