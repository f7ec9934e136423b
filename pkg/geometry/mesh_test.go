package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// quadAt returns two triangles covering the unit square at depth z, facing -z
func quadAt(z float64) []Triangle {
	a := core.NewVec3(0, 0, z)
	b := core.NewVec3(1, 0, z)
	c := core.NewVec3(1, 1, z)
	d := core.NewVec3(0, 1, z)
	return []Triangle{*NewTriangle(a, c, b), *NewTriangle(a, d, c)}
}

func TestMesh_Hit_Empty(t *testing.T) {
	mesh := NewMesh(nil)
	ray := core.NewRay(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1), 0, core.RayFar)

	if hit, isHit := mesh.Hit(ray); isHit {
		t.Errorf("Expected empty mesh to miss, got t=%f", hit.T)
	}
}

func TestMesh_Hit_Closest(t *testing.T) {
	// Far quad listed first so the nearer one must win on distance, not order
	triangles := append(quadAt(5), quadAt(2)...)
	mesh := NewMesh(triangles)

	ray := core.NewRay(core.NewVec3(0.3, 0.6, 0), core.NewVec3(0, 0, 1), 0, core.RayFar)
	hit, isHit := mesh.Hit(ray)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected closest hit at t=2, got %f", hit.T)
	}
	if !hit.Normal.ApproxEqual(core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("Expected normal (0,0,-1), got %v", hit.Normal)
	}

	// Limiting the interval exposes the far quad
	ray.TMin = 3
	hit, isHit = mesh.Hit(ray)
	if !isHit || math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("Expected far hit at t=5 with tMin=3, got hit=%t t=%f", isHit, hit.T)
	}
}

func TestMesh_Hit_TieKeepsFirst(t *testing.T) {
	first := NewSmoothTriangle(
		[3]core.Vec3{core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 1), core.NewVec3(0, 1, 1)},
		[3]core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 0)},
	)
	second := NewSmoothTriangle(first.Vertices,
		[3]core.Vec3{core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)},
	)
	mesh := NewMesh([]Triangle{*first, *second})

	ray := core.NewRay(core.NewVec3(0.2, 0.2, 0), core.NewVec3(0, 0, 1), 0, core.RayFar)
	hit, isHit := mesh.Hit(ray)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if !hit.Normal.ApproxEqual(core.NewVec3(1, 0, 0), 1e-12) {
		t.Errorf("Expected first triangle to win the tie, got normal %v", hit.Normal)
	}
}

func TestMesh_TransformRoundTrip(t *testing.T) {
	mesh := NewMesh(append(quadAt(1), quadAt(3)...))
	original := make([]Triangle, len(mesh.Triangles))
	copy(original, mesh.Triangles)

	m := core.Translate(core.NewVec3(-2, 0, 4)).Mul(core.RotateZ(1.1)).Mul(core.Scale(core.NewVec3(3, 3, 1)))
	mesh.Transform(m)
	mesh.Transform(m.Inverse())

	for i := range original {
		for j := 0; j < 3; j++ {
			if !mesh.Triangles[i].Vertices[j].ApproxEqual(original[i].Vertices[j], 1e-9) {
				t.Errorf("Triangle %d vertex %d: expected %v, got %v",
					i, j, original[i].Vertices[j], mesh.Triangles[i].Vertices[j])
			}
		}
	}
}

func TestMesh_Bounds(t *testing.T) {
	mesh := NewMesh(append(quadAt(-1), quadAt(2)...))
	minPoint, maxPoint := mesh.Bounds()

	if minPoint != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected min (0,0,-1), got %v", minPoint)
	}
	if maxPoint != core.NewVec3(1, 1, 2) {
		t.Errorf("Expected max (1,1,2), got %v", maxPoint)
	}
	if mesh.TriangleCount() != 4 {
		t.Errorf("Expected 4 triangles, got %d", mesh.TriangleCount())
	}
}
