package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

const (
	// DefaultMaxDepth is the number of reflection bounces traced when none is configured
	DefaultMaxDepth = 2
)

// DefaultBackground is returned for rays that escape the scene
var DefaultBackground = core.NewColor(30, 30, 30)

// Model pairs a geometry with the material it is shaded with
type Model struct {
	Name     string
	Geometry geometry.Geometry
	Material material.Material
}

// Scene contains everything needed to trace rays.
// It is built once and must not be modified while any goroutine is tracing it;
// under that rule it is safe for concurrent use without locking.
type Scene struct {
	Models     []Model        // Objects in the scene, intersected in order
	Lights     []lights.Light // Lights in the scene
	MaxDepth   int            // Maximum number of reflection bounces
	Background core.Color     // Color of rays that hit nothing
}

// NewScene creates an empty scene with the given background
func NewScene(background core.Color) *Scene {
	return &Scene{
		Models:     make([]Model, 0),
		Lights:     make([]lights.Light, 0),
		MaxDepth:   DefaultMaxDepth,
		Background: background,
	}
}

// AddModel adds a geometry with its material to the scene
func (s *Scene) AddModel(name string, g geometry.Geometry, m material.Material) {
	s.Models = append(s.Models, Model{Name: name, Geometry: g, Material: m})
}

// AddLight adds a light to the scene
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(position core.Vec3, intensity float64) {
	s.AddLight(lights.NewPointLight(position, intensity))
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, model := range s.Models {
		switch g := model.Geometry.(type) {
		case *geometry.Mesh:
			// Meshes contain multiple triangles
			count += g.TriangleCount()
		default:
			count++
		}
	}
	return count
}
