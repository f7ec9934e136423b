package loaders

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// ErrUnknownGeometry is returned for a model whose geometry type is not supported
var ErrUnknownGeometry = errors.New("unknown geometry type")

// SceneFile is the YAML scene description
type SceneFile struct {
	Background *ColorSpec  `yaml:"background,omitempty"`
	Depth      *int        `yaml:"depth,omitempty"`
	Camera     *CameraSpec `yaml:"camera,omitempty"`
	Lights     []LightSpec `yaml:"lights"`
	Models     []ModelSpec `yaml:"models"`
	baseDir    string
}

// CameraSpec positions the viewer; unset fields keep the caller's defaults
type CameraSpec struct {
	Position       *[3]float64 `yaml:"position,omitempty"`
	Yaw            *float64    `yaml:"yaw,omitempty"`   // degrees about +y
	Pitch          *float64    `yaml:"pitch,omitempty"` // degrees about +x
	ViewportWidth  *float64    `yaml:"viewport_width,omitempty"`
	ViewportHeight *float64    `yaml:"viewport_height,omitempty"`
	Distance       *float64    `yaml:"distance,omitempty"`
	Near           *float64    `yaml:"near,omitempty"`
}

// LightSpec is a point light
type LightSpec struct {
	Position  [3]float64 `yaml:"position"`
	Intensity float64    `yaml:"intensity"`
}

// ModelSpec is one object of the scene
type ModelSpec struct {
	Name      string         `yaml:"name"`
	Geometry  GeometrySpec   `yaml:"geometry"`
	Material  MaterialSpec   `yaml:"material"`
	Transform *TransformSpec `yaml:"transform,omitempty"`
}

// GeometrySpec holds the fields of every geometry type; Type selects which are read
type GeometrySpec struct {
	Type     string       `yaml:"type"`
	Center   [3]float64   `yaml:"center,omitempty"`
	Radius   float64      `yaml:"radius,omitempty"`
	Point    [3]float64   `yaml:"point,omitempty"`
	Normal   [3]float64   `yaml:"normal,omitempty"`
	Vertices [][3]float64 `yaml:"vertices,omitempty"`
	Normals  [][3]float64 `yaml:"normals,omitempty"`
	Path     string       `yaml:"path,omitempty"`
}

// MaterialSpec is a material; Color defaults to white
type MaterialSpec struct {
	Color      *ColorSpec `yaml:"color,omitempty"`
	Reflective float64    `yaml:"reflective"`
}

// ColorSpec accepts either [r, g, b] with 0-255 channels or a hex string like "#ff8800"
type ColorSpec struct {
	core.Color
}

// UnmarshalYAML implements yaml.Unmarshaler
func (c *ColorSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := colorful.Hex(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: invalid color %q: %w", value.Line, value.Value, err)
		}
		r, g, b := parsed.RGB255()
		c.Color = core.NewColor(r, g, b)
		return nil

	case yaml.SequenceNode:
		var channels []int
		if err := value.Decode(&channels); err != nil {
			return err
		}
		if len(channels) != 3 {
			return fmt.Errorf("line %d: color needs 3 channels, got %d", value.Line, len(channels))
		}
		var rgb [3]uint8
		for i, ch := range channels {
			if ch < 0 || ch > 255 {
				return fmt.Errorf("line %d: color channel %d out of range", value.Line, ch)
			}
			rgb[i] = uint8(ch)
		}
		c.Color = core.NewColor(rgb[0], rgb[1], rgb[2])
		return nil
	}
	return fmt.Errorf("line %d: color must be [r, g, b] or a hex string", value.Line)
}

// MarshalYAML writes the color as [r, g, b]
func (c ColorSpec) MarshalYAML() (interface{}, error) {
	return []int{int(c.R), int(c.G), int(c.B)}, nil
}

// TransformStep is a single translate, scale or rotate step
type TransformStep struct {
	Translate *[3]float64 `yaml:"translate,omitempty"`
	Scale     *[3]float64 `yaml:"scale,omitempty"`
	RotateX   *float64    `yaml:"rotate_x,omitempty"`
	RotateY   *float64    `yaml:"rotate_y,omitempty"`
	RotateZ   *float64    `yaml:"rotate_z,omitempty"`
}

// TransformSpec is either an explicit row-major matrix or a list of steps applied in order
type TransformSpec struct {
	Matrix *[4][4]float64
	Steps  []TransformStep
}

// UnmarshalYAML implements yaml.Unmarshaler
func (t *TransformSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		return value.Decode(&t.Steps)
	case yaml.MappingNode:
		var m struct {
			Matrix *[4][4]float64 `yaml:"matrix"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		if m.Matrix == nil {
			return fmt.Errorf("line %d: transform mapping needs a matrix", value.Line)
		}
		t.Matrix = m.Matrix
		return nil
	}
	return fmt.Errorf("line %d: transform must be a matrix or a list of steps", value.Line)
}

// ToMatrix composes the transform; the first step listed is applied first
func (t *TransformSpec) ToMatrix() (core.Matrix4x4, error) {
	if t.Matrix != nil {
		return core.NewMatrix4x4(*t.Matrix), nil
	}

	result := core.Identity()
	for i, step := range t.Steps {
		m, err := step.matrix()
		if err != nil {
			return core.Matrix4x4{}, fmt.Errorf("step %d: %w", i, err)
		}
		result = m.Mul(result)
	}
	return result, nil
}

func (s TransformStep) matrix() (core.Matrix4x4, error) {
	var matrices []core.Matrix4x4
	if s.Translate != nil {
		matrices = append(matrices, core.Translate(vec(*s.Translate)))
	}
	if s.Scale != nil {
		matrices = append(matrices, core.Scale(vec(*s.Scale)))
	}
	if s.RotateX != nil {
		matrices = append(matrices, core.RotateX(radians(*s.RotateX)))
	}
	if s.RotateY != nil {
		matrices = append(matrices, core.RotateY(radians(*s.RotateY)))
	}
	if s.RotateZ != nil {
		matrices = append(matrices, core.RotateZ(radians(*s.RotateZ)))
	}
	if len(matrices) != 1 {
		return core.Matrix4x4{}, fmt.Errorf("expected exactly one operation, got %d", len(matrices))
	}
	return matrices[0], nil
}

// LoadScene reads a YAML scene description and builds the scene it describes.
// Mesh paths are resolved relative to the scene file.
func LoadScene(filename string) (*scene.Scene, *SceneFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, file, err := ParseScene(data, filepath.Dir(filename))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, file, nil
}

// ParseScene builds a scene from YAML data, resolving mesh paths against baseDir
func ParseScene(data []byte, baseDir string) (*scene.Scene, *SceneFile, error) {
	var file SceneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	file.baseDir = baseDir

	s, err := file.Build()
	if err != nil {
		return nil, nil, err
	}
	return s, &file, nil
}

// Build creates a new scene from the description
func (f *SceneFile) Build() (*scene.Scene, error) {
	background := scene.DefaultBackground
	if f.Background != nil {
		background = f.Background.Color
	}
	s := scene.NewScene(background)
	if f.Depth != nil {
		if *f.Depth < 0 {
			return nil, fmt.Errorf("depth must not be negative, got %d", *f.Depth)
		}
		s.MaxDepth = *f.Depth
	}

	for _, l := range f.Lights {
		s.AddPointLight(vec(l.Position), l.Intensity)
	}

	for i, spec := range f.Models {
		g, err := f.buildGeometry(spec.Geometry)
		if err != nil {
			return nil, fmt.Errorf("model %d (%s): %w", i, spec.Name, err)
		}
		if spec.Transform != nil {
			m, err := spec.Transform.ToMatrix()
			if err != nil {
				return nil, fmt.Errorf("model %d (%s): transform: %w", i, spec.Name, err)
			}
			g.Transform(m)
		}

		c := core.NewColor(255, 255, 255)
		if spec.Material.Color != nil {
			c = spec.Material.Color.Color
		}

		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("%s %d", spec.Geometry.Type, i)
		}
		s.AddModel(name, g, material.NewMaterial(c, spec.Material.Reflective))
	}

	return s, nil
}

// MeshPaths returns the resolved path of every mesh the scene references
func (f *SceneFile) MeshPaths() []string {
	var paths []string
	for _, spec := range f.Models {
		if spec.Geometry.Type == "mesh" {
			paths = append(paths, f.resolve(spec.Geometry.Path))
		}
	}
	return paths
}

func (f *SceneFile) resolve(path string) string {
	if filepath.IsAbs(path) || f.baseDir == "" {
		return path
	}
	return filepath.Join(f.baseDir, path)
}

func (f *SceneFile) buildGeometry(spec GeometrySpec) (geometry.Geometry, error) {
	switch spec.Type {
	case "sphere":
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive, got %g", spec.Radius)
		}
		return geometry.NewSphere(vec(spec.Center), spec.Radius), nil

	case "plane":
		normal := vec(spec.Normal)
		if normal.Length() == 0 {
			return nil, errors.New("plane normal must not be zero")
		}
		return geometry.NewPlane(vec(spec.Point), normal), nil

	case "triangle":
		if len(spec.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(spec.Vertices))
		}
		vertices := [3]core.Vec3{vec(spec.Vertices[0]), vec(spec.Vertices[1]), vec(spec.Vertices[2])}
		switch len(spec.Normals) {
		case 0:
			return geometry.NewTriangle(vertices[0], vertices[1], vertices[2]), nil
		case 3:
			normals := [3]core.Vec3{vec(spec.Normals[0]), vec(spec.Normals[1]), vec(spec.Normals[2])}
			return geometry.NewSmoothTriangle(vertices, normals), nil
		}
		return nil, fmt.Errorf("triangle needs 0 or 3 normals, got %d", len(spec.Normals))

	case "mesh":
		if spec.Path == "" {
			return nil, errors.New("mesh needs a path")
		}
		return LoadMesh(f.resolve(spec.Path))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGeometry, spec.Type)
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
