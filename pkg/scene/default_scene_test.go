package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

func TestNewBuiltin(t *testing.T) {
	for _, info := range ListBuiltins() {
		t.Run(info.Name, func(t *testing.T) {
			s, err := NewBuiltin(info.Name)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.MaxDepth <= 0 {
				t.Errorf("Expected positive depth limit, got %d", s.MaxDepth)
			}
			if info.Name != "empty" && len(s.Models) == 0 {
				t.Error("Expected models in scene")
			}
		})
	}

	if _, err := NewBuiltin("nonexistent"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestListBuiltins_Sorted(t *testing.T) {
	infos := ListBuiltins()
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Name >= infos[i].Name {
			t.Errorf("Expected sorted names, got %q before %q", infos[i-1].Name, infos[i].Name)
		}
	}
}

func TestNewBuiltin_ReturnsFreshCopies(t *testing.T) {
	a, _ := NewBuiltin("default")
	b, _ := NewBuiltin("default")
	a.Models[0].Material.Reflective = 0.99
	if b.Models[0].Material.Reflective == 0.99 {
		t.Error("Expected independent scene instances")
	}
}

func TestScene_GetPrimitiveCount(t *testing.T) {
	s := NewMeshScene()
	// ground plane + 8 octahedron faces + 6 pyramid faces
	if got := s.GetPrimitiveCount(); got != 15 {
		t.Errorf("Expected 15 primitives, got %d", got)
	}
}

func TestDefaultScene_CenterRayHitsMirror(t *testing.T) {
	s := NewDefaultScene()
	ray := core.NewRay(core.NewVec3(0, 0, -2), core.NewVec3(0, 0, 1), 1, core.RayFar)

	model, _, ok := s.ClosestIntersection(ray)
	if !ok {
		t.Fatal("Expected the center ray to hit")
	}
	if model.Name != "mirror" {
		t.Errorf("Expected mirror sphere, got %q", model.Name)
	}
}
