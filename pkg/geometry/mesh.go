package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Mesh is an ordered collection of triangles forming one object.
// Every triangle stores its own vertices and normals; nothing is shared.
type Mesh struct {
	Triangles []Triangle
}

// NewMesh creates a mesh from triangles
func NewMesh(triangles []Triangle) *Mesh {
	return &Mesh{Triangles: triangles}
}

// Hit returns the nearest triangle hit; ties go to the earlier triangle
func (m *Mesh) Hit(ray core.Ray) (Intersection, bool) {
	var closest Intersection
	hitAnything := false

	for i := range m.Triangles {
		hit, ok := m.Triangles[i].Hit(ray)
		if ok && (!hitAnything || hit.T < closest.T) {
			closest = hit
			hitAnything = true
		}
	}

	return closest, hitAnything
}

// Transform applies m to every triangle. The normal matrix is computed once per call.
func (m *Mesh) Transform(transform core.Matrix4x4) {
	normalMatrix := transform.NormalMatrix()
	for i := range m.Triangles {
		m.Triangles[i].transformWith(transform, normalMatrix)
	}
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Bounds returns the axis-aligned extent of all vertices. An empty mesh returns zero vectors.
func (m *Mesh) Bounds() (minPoint, maxPoint core.Vec3) {
	if len(m.Triangles) == 0 {
		return core.Vec3{}, core.Vec3{}
	}
	minPoint = m.Triangles[0].Vertices[0]
	maxPoint = minPoint
	for _, tri := range m.Triangles {
		for _, v := range tri.Vertices {
			minPoint = core.NewVec3(min(minPoint.X, v.X), min(minPoint.Y, v.Y), min(minPoint.Z, v.Z))
			maxPoint = core.NewVec3(max(maxPoint.X, v.X), max(maxPoint.Y, v.Y), max(maxPoint.Z, v.Z))
		}
	}
	return minPoint, maxPoint
}
