package preview

import (
	"context"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

func newTestPreview(t *testing.T, cols, rows int) (*Preview, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)

	p := New(screen, scene.NewDefaultScene(), renderer.DefaultCameraConfig(), nil)
	p.SetWorkers(2)
	return p, screen
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		name     string
		key      tcell.Key
		r        rune
		expected action
	}{
		{"w moves forward", tcell.KeyRune, 'w', actionForward},
		{"s moves back", tcell.KeyRune, 's', actionBack},
		{"a strafes left", tcell.KeyRune, 'a', actionLeft},
		{"d strafes right", tcell.KeyRune, 'd', actionRight},
		{"r rises", tcell.KeyRune, 'r', actionUp},
		{"f sinks", tcell.KeyRune, 'f', actionDown},
		{"q quits", tcell.KeyRune, 'q', actionQuit},
		{"escape quits", tcell.KeyEscape, 0, actionQuit},
		{"ctrl-c quits", tcell.KeyCtrlC, 0, actionQuit},
		{"left arrow turns", tcell.KeyLeft, 0, actionYawLeft},
		{"up arrow looks up", tcell.KeyUp, 0, actionPitchUp},
		{"unbound rune", tcell.KeyRune, 'x', actionNone},
		{"unbound key", tcell.KeyF1, 0, actionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := actionFor(tt.key, tt.r); got != tt.expected {
				t.Errorf("Expected action %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestPreview_Apply(t *testing.T) {
	p, _ := newTestPreview(t, 10, 4)
	p.SetSteps(1, math.Pi/2)
	start := p.Camera().Position

	steps := []struct {
		action   action
		position core.Vec3
		yaw      float64
	}{
		{actionForward, start.Add(core.NewVec3(0, 0, 1)), 0},
		{actionRight, start.Add(core.NewVec3(1, 0, 1)), 0},
		{actionUp, start.Add(core.NewVec3(1, 1, 1)), 0},
		{actionYawRight, start.Add(core.NewVec3(1, 1, 1)), math.Pi / 2},
		// Facing +x now, so forward is +x
		{actionForward, start.Add(core.NewVec3(2, 1, 1)), math.Pi / 2},
		{actionLeft, start.Add(core.NewVec3(2, 1, 2)), math.Pi / 2},
		{actionDown, start.Add(core.NewVec3(2, 0, 2)), math.Pi / 2},
		{actionBack, start.Add(core.NewVec3(1, 0, 2)), math.Pi / 2},
	}

	for i, step := range steps {
		if !p.apply(step.action) {
			t.Fatalf("Step %d: expected camera to change", i)
		}
		c := p.Camera()
		if !c.Position.ApproxEqual(step.position, 1e-9) {
			t.Errorf("Step %d: expected position %v, got %v", i, step.position, c.Position)
		}
		if math.Abs(c.Yaw-step.yaw) > 1e-12 {
			t.Errorf("Step %d: expected yaw %f, got %f", i, step.yaw, c.Yaw)
		}
	}

	if p.apply(actionNone) {
		t.Error("Expected no change for actionNone")
	}
}

func TestPreview_PitchIsClamped(t *testing.T) {
	p, _ := newTestPreview(t, 10, 4)
	p.SetSteps(1, 1)

	for i := 0; i < 5; i++ {
		p.apply(actionPitchDown)
	}
	if got := p.Camera().Pitch; got != math.Pi/2 {
		t.Errorf("Expected pitch clamped to pi/2, got %f", got)
	}
	for i := 0; i < 10; i++ {
		p.apply(actionPitchUp)
	}
	if got := p.Camera().Pitch; got != -math.Pi/2 {
		t.Errorf("Expected pitch clamped to -pi/2, got %f", got)
	}
}

func TestPreview_HandleEvent(t *testing.T) {
	p, _ := newTestPreview(t, 10, 4)

	quit, redraw := p.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	if quit || !redraw {
		t.Errorf("Expected redraw without quit for 'w', got quit=%v redraw=%v", quit, redraw)
	}

	quit, redraw = p.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	if quit || redraw {
		t.Errorf("Expected nothing for an unbound key, got quit=%v redraw=%v", quit, redraw)
	}

	quit, _ = p.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if !quit {
		t.Error("Expected escape to quit")
	}
}

func TestPreview_Draw(t *testing.T) {
	p, screen := newTestPreview(t, 12, 5)

	if err := p.Draw(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for row := 0; row < 4; row++ {
		for x := 0; x < 12; x++ {
			if r, _, _, _ := screen.GetContent(x, row); r != halfBlock {
				t.Fatalf("Cell (%d,%d): expected half block, got %q", x, row, r)
			}
		}
	}

	// Status line
	if r, _, _, _ := screen.GetContent(1, 4); r != 'p' {
		t.Errorf("Expected status line on the last row, got %q", r)
	}
}

func TestPreview_Draw_Cancelled(t *testing.T) {
	p, _ := newTestPreview(t, 12, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Draw(ctx); err == nil {
		t.Error("Expected error from a cancelled draw")
	}
}

func TestPreview_Draw_TinyScreen(t *testing.T) {
	p, _ := newTestPreview(t, 5, 1)
	if err := p.Draw(context.Background()); err != nil {
		t.Errorf("Expected a screen with no image rows to be skipped, got %v", err)
	}
}
