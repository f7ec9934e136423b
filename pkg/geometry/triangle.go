package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// epsilon is the float64 machine epsilon, the smallest determinant a ray/triangle
// pair may have before the ray is treated as lying in the triangle's plane
const epsilon = 2.220446049250313e-16

// Triangle is defined by three vertices and one normal per vertex.
// All three normals are equal for a flat triangle; they differ when the triangle
// approximates a curved surface and the normal is interpolated across the face.
type Triangle struct {
	Vertices [3]core.Vec3
	Normals  [3]core.Vec3
}

// NewTriangle creates a flat-shaded triangle whose vertex normals all equal the
// face normal (e1 × e2, counter-clockwise winding faces the viewer)
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	t := &Triangle{Vertices: [3]core.Vec3{v0, v1, v2}}
	n := t.FaceNormal()
	t.Normals = [3]core.Vec3{n, n, n}
	return t
}

// NewSmoothTriangle creates a triangle with explicit per-vertex normals
func NewSmoothTriangle(vertices, normals [3]core.Vec3) *Triangle {
	return &Triangle{Vertices: vertices, Normals: normals}
}

// FaceNormal returns the geometric normal given by the winding order
func (t *Triangle) FaceNormal() core.Vec3 {
	return t.Vertices[1].Subtract(t.Vertices[0]).Cross(t.Vertices[2].Subtract(t.Vertices[0])).Normalize()
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray) (Intersection, bool) {
	edge1 := t.Vertices[1].Subtract(t.Vertices[0])
	edge2 := t.Vertices[2].Subtract(t.Vertices[0])

	p := ray.Direction.Cross(edge2)
	determinant := edge1.Dot(p)

	// If determinant is near zero, ray lies in plane of triangle
	if math.Abs(determinant) < epsilon {
		return Intersection{}, false
	}

	invDet := 1.0 / determinant
	s := ray.Origin.Subtract(t.Vertices[0])
	beta := invDet * s.Dot(p)
	if beta < 0 || beta > 1 {
		return Intersection{}, false
	}

	q := s.Cross(edge1)
	gamma := invDet * ray.Direction.Dot(q)
	if gamma < 0 || beta+gamma > 1 {
		return Intersection{}, false
	}

	dist := invDet * edge2.Dot(q)
	if !ray.Contains(dist) {
		return Intersection{}, false
	}

	// Interpolate vertex normals with the barycentric coordinates
	alpha := 1 - beta - gamma
	normal := t.Normals[0].Multiply(alpha).
		Add(t.Normals[1].Multiply(beta)).
		Add(t.Normals[2].Multiply(gamma))

	return Intersection{
		T:      dist,
		Point:  ray.At(dist),
		Normal: normal,
	}, true
}

// Transform moves the vertices and reorients the normals
func (t *Triangle) Transform(m core.Matrix4x4) {
	t.transformWith(m, m.NormalMatrix())
}

// transformWith applies a transform whose normal matrix has already been computed
func (t *Triangle) transformWith(m, normalMatrix core.Matrix4x4) {
	for i := range t.Vertices {
		t.Vertices[i] = m.TransformPoint(t.Vertices[i])
		t.Normals[i] = normalMatrix.TransformDirection(t.Normals[i]).Normalize()
	}
}
