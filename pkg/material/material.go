package material

import "github.com/df07/go-recursive-raytracer/pkg/core"

// Material describes how a surface is shaded: a base color lit by direct light,
// mixed with a mirror reflection in proportion to Reflective
type Material struct {
	Color      core.Color
	Reflective float64 // 0 is fully diffuse, 1 is a perfect mirror
}

// NewMaterial creates a material, clamping reflectivity to [0, 1]
func NewMaterial(color core.Color, reflective float64) Material {
	return Material{Color: color, Reflective: max(0, min(1, reflective))}
}

// NewDiffuse creates a material with no reflection
func NewDiffuse(color core.Color) Material {
	return Material{Color: color}
}

// IsReflective reports whether the material spawns reflection rays
func (m Material) IsReflective() bool {
	return m.Reflective > 0
}
