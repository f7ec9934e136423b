package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
)

// ErrFaceIndex is returned when a face references a vertex or normal that does not exist
var ErrFaceIndex = errors.New("face index out of range")

// faceCorner is one vertex reference of a face; normal is -1 when absent
type faceCorner struct {
	vertex int
	normal int
}

// LoadMesh loads a .ply file with LoadPLY and anything else with LoadOBJ
func LoadMesh(filename string) (*geometry.Mesh, error) {
	if strings.EqualFold(filepath.Ext(filename), ".ply") {
		return LoadPLY(filename)
	}
	return LoadOBJ(filename)
}

// LoadOBJ loads a Wavefront OBJ file as a triangle mesh
func LoadOBJ(filename string) (*geometry.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	mesh, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// ParseOBJ reads v, vn and f records; everything else is ignored.
// Faces with more than three corners are split into a triangle fan.
func ParseOBJ(r io.Reader) (*geometry.Mesh, error) {
	var vertices []core.Vec3
	var normals []core.Vec3
	var triangles []geometry.Triangle

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid vertex: %w", lineNum, err)
			}
			vertices = append(vertices, v)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid normal: %w", lineNum, err)
			}
			normals = append(normals, n)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices, got %d", lineNum, len(fields)-1)
			}
			corners := make([]faceCorner, 0, len(fields)-1)
			for _, field := range fields[1:] {
				corner, err := parseCorner(field, len(vertices), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				corners = append(corners, corner)
			}
			for i := 1; i+1 < len(corners); i++ {
				triangles = append(triangles, buildTriangle(vertices, normals, corners[0], corners[i], corners[i+1]))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ data: %w", err)
	}

	return geometry.NewMesh(triangles), nil
}

// buildTriangle uses the face's normals only when every corner has one
func buildTriangle(vertices, normals []core.Vec3, a, b, c faceCorner) geometry.Triangle {
	positions := [3]core.Vec3{vertices[a.vertex], vertices[b.vertex], vertices[c.vertex]}
	if a.normal < 0 || b.normal < 0 || c.normal < 0 {
		return *geometry.NewTriangle(positions[0], positions[1], positions[2])
	}
	return *geometry.NewSmoothTriangle(positions, [3]core.Vec3{normals[a.normal], normals[b.normal], normals[c.normal]})
}

// parseCorner parses v, v/vt, v//vn and v/vt/vn references
func parseCorner(field string, vertexCount, normalCount int) (faceCorner, error) {
	parts := strings.Split(field, "/")

	vertex, err := resolveIndex(parts[0], vertexCount)
	if err != nil {
		return faceCorner{}, fmt.Errorf("vertex %q: %w", field, err)
	}

	corner := faceCorner{vertex: vertex, normal: -1}
	if len(parts) == 3 && parts[2] != "" {
		normal, err := resolveIndex(parts[2], normalCount)
		if err != nil {
			return faceCorner{}, fmt.Errorf("normal %q: %w", field, err)
		}
		corner.normal = normal
	}
	return corner, nil
}

// resolveIndex converts a 1-based or negative relative index to a 0-based one
func resolveIndex(s string, count int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}

	switch {
	case idx > 0 && idx <= count:
		return idx - 1, nil
	case idx < 0 && -idx <= count:
		return count + idx, nil
	}
	return 0, fmt.Errorf("%w: %d of %d", ErrFaceIndex, idx, count)
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var xyz [3]float64
	for i := range xyz {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		xyz[i] = value
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}
