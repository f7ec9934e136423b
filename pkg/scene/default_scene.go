package scene

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// ErrUnknownScene is returned when a built-in scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene or a scene file
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path,omitempty"` // Scene files only
}

type builtin struct {
	description string
	build       func() *Scene
}

var builtins = map[string]builtin{
	"default": {"Three spheres on a ground plane, the middle one a mirror", NewDefaultScene},
	"mirrors": {"A sphere between two facing mirrors", NewMirrorScene},
	"mesh":    {"A smooth-shaded octahedron and a flat pyramid", NewMeshScene},
	"empty":   {"No objects, background only", NewEmptyScene},
}

// ListBuiltins returns every built-in scene sorted by name
func ListBuiltins() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for name, b := range builtins {
		infos = append(infos, SceneInfo{Name: name, Description: b.description})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// NewBuiltin creates a fresh copy of the named built-in scene
func NewBuiltin(name string) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return b.build(), nil
}

// NewDefaultScene creates the default scene, viewed from (0,0,-2) looking down +z
func NewDefaultScene() *Scene {
	s := NewScene(DefaultBackground)

	s.AddModel("ground", geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)),
		material.NewMaterial(core.NewColor(200, 200, 120), 0.1))
	s.AddModel("red", geometry.NewSphere(core.NewVec3(-1.2, -0.4, 3), 0.6),
		material.NewDiffuse(core.NewColor(220, 40, 40)))
	s.AddModel("mirror", geometry.NewSphere(core.NewVec3(0, 0, 4), 1),
		material.NewMaterial(core.NewColor(230, 230, 230), 0.6))
	s.AddModel("blue", geometry.NewSphere(core.NewVec3(1.3, -0.5, 2.8), 0.5),
		material.NewMaterial(core.NewColor(40, 60, 220), 0.2))

	s.AddPointLight(core.NewVec3(10.5, 5, -2), 0.9)
	s.AddPointLight(core.NewVec3(-6, 8, 0), 0.4)

	return s
}

// NewMirrorScene creates a sphere between two parallel mirrors, which exercises deep reflection
func NewMirrorScene() *Scene {
	s := NewScene(core.NewColor(10, 10, 25))
	s.MaxDepth = 5

	s.AddModel("floor", geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)),
		material.NewDiffuse(core.NewColor(160, 160, 160)))
	s.AddModel("left mirror", geometry.NewPlane(core.NewVec3(-2.5, 0, 0), core.NewVec3(1, 0, 0)),
		material.NewMaterial(core.NewColor(200, 255, 200), 0.85))
	s.AddModel("right mirror", geometry.NewPlane(core.NewVec3(2.5, 0, 0), core.NewVec3(-1, 0, 0)),
		material.NewMaterial(core.NewColor(200, 200, 255), 0.85))
	s.AddModel("ball", geometry.NewSphere(core.NewVec3(0, -0.2, 4), 0.8),
		material.NewMaterial(core.NewColor(250, 140, 20), 0.3))

	s.AddPointLight(core.NewVec3(0, 6, 1), 1)

	return s
}

// NewMeshScene creates a scene with triangle meshes built in code
func NewMeshScene() *Scene {
	s := NewScene(core.NewColor(20, 20, 40))

	s.AddModel("ground", geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)),
		material.NewMaterial(core.NewColor(120, 120, 120), 0.25))

	octahedron := newOctahedron()
	octahedron.Transform(core.Translate(core.NewVec3(-1, 0, 4)).Mul(core.RotateY(math.Pi / 6)))
	s.AddModel("octahedron", octahedron, material.NewMaterial(core.NewColor(60, 200, 120), 0.15))

	pyramid := newPyramid()
	pyramid.Transform(core.Translate(core.NewVec3(1.3, -1, 3.5)).Mul(core.RotateY(math.Pi / 5)))
	s.AddModel("pyramid", pyramid, material.NewDiffuse(core.NewColor(230, 180, 60)))

	s.AddPointLight(core.NewVec3(5, 6, -3), 1)

	return s
}

// NewEmptyScene creates a scene with nothing in it
func NewEmptyScene() *Scene {
	return NewScene(DefaultBackground)
}

// newOctahedron builds a unit octahedron whose vertex normals point away from the
// center, so it shades like a sphere despite its eight flat faces
func newOctahedron() *geometry.Mesh {
	top := core.NewVec3(0, 1, 0)
	bottom := core.NewVec3(0, -1, 0)
	ring := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, -1),
		core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 0, 1),
	}

	triangles := make([]geometry.Triangle, 0, 8)
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		for _, face := range [][3]core.Vec3{{top, a, b}, {bottom, b, a}} {
			// Vertices are on the unit sphere, so the position is also the normal
			triangles = append(triangles, *geometry.NewSmoothTriangle(face, face))
		}
	}
	return geometry.NewMesh(triangles)
}

// newPyramid builds a flat-shaded square pyramid standing on y = 0
func newPyramid() *geometry.Mesh {
	apex := core.NewVec3(0, 1.2, 0)
	base := []core.Vec3{
		core.NewVec3(-0.6, 0, -0.6),
		core.NewVec3(0.6, 0, -0.6),
		core.NewVec3(0.6, 0, 0.6),
		core.NewVec3(-0.6, 0, 0.6),
	}

	triangles := make([]geometry.Triangle, 0, 6)
	for i := range base {
		triangles = append(triangles, *geometry.NewTriangle(base[i], apex, base[(i+1)%len(base)]))
	}
	triangles = append(triangles,
		*geometry.NewTriangle(base[0], base[1], base[2]),
		*geometry.NewTriangle(base[0], base[2], base[3]),
	)
	return geometry.NewMesh(triangles)
}
