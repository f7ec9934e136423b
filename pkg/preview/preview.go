package preview

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

const (
	// DefaultMoveStep is how far one key press moves the camera
	DefaultMoveStep = 0.05
	// DefaultTurnStep is how far one arrow key press turns the camera, in radians
	DefaultTurnStep = math.Pi / 36

	halfBlock = '▀'
)

type action int

const (
	actionNone action = iota
	actionQuit
	actionForward
	actionBack
	actionLeft
	actionRight
	actionUp
	actionDown
	actionYawLeft
	actionYawRight
	actionPitchUp
	actionPitchDown
)

var runeActions = map[rune]action{
	'q': actionQuit,
	'Q': actionQuit,
	'w': actionForward,
	's': actionBack,
	'a': actionLeft,
	'd': actionRight,
	'r': actionUp,
	'f': actionDown,
}

var keyActions = map[tcell.Key]action{
	tcell.KeyEscape: actionQuit,
	tcell.KeyCtrlC:  actionQuit,
	tcell.KeyLeft:   actionYawLeft,
	tcell.KeyRight:  actionYawRight,
	tcell.KeyUp:     actionPitchUp,
	tcell.KeyDown:   actionPitchDown,
}

func actionFor(key tcell.Key, r rune) action {
	if key == tcell.KeyRune {
		return runeActions[r]
	}
	return keyActions[key]
}

// Preview renders a scene into a terminal, two pixels per cell, and moves the camera on key presses
type Preview struct {
	screen   tcell.Screen
	scene    *scene.Scene
	camera   renderer.CameraConfig
	logger   core.Logger
	workers  int
	moveStep float64
	turnStep float64
	lastTime time.Duration
}

// New creates a preview drawing to an initialized screen
func New(screen tcell.Screen, s *scene.Scene, camera renderer.CameraConfig, logger core.Logger) *Preview {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Preview{
		screen:   screen,
		scene:    s,
		camera:   camera,
		logger:   logger,
		moveStep: DefaultMoveStep,
		turnStep: DefaultTurnStep,
	}
}

// SetWorkers sets the number of render goroutines; zero or less means one per CPU
func (p *Preview) SetWorkers(n int) {
	p.workers = n
}

// SetSteps sets the movement and turn increments
func (p *Preview) SetSteps(move, turn float64) {
	p.moveStep = move
	p.turnStep = turn
}

// Camera returns the current camera configuration
func (p *Preview) Camera() renderer.CameraConfig {
	return p.camera
}

// Run opens the terminal, runs the preview until the user quits or ctx is done,
// and restores the terminal. configure, if not nil, is applied to the preview before the first frame.
func Run(ctx context.Context, s *scene.Scene, camera renderer.CameraConfig, logger core.Logger, configure func(*Preview)) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	p := New(screen, s, camera, logger)
	if configure != nil {
		configure(p)
	}
	return p.Loop(ctx)
}

// Loop draws the first frame and then redraws after every key press or resize
func (p *Preview) Loop(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	if err := p.Draw(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			done, redraw := p.HandleEvent(ev)
			if done {
				return nil
			}
			if redraw {
				if err := p.Draw(ctx); err != nil {
					return err
				}
			}
		}
	}
}

// HandleEvent applies a terminal event and reports whether to quit and whether to redraw
func (p *Preview) HandleEvent(ev tcell.Event) (quit bool, redraw bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a := actionFor(ev.Key(), ev.Rune())
		if a == actionQuit {
			return true, false
		}
		return false, p.apply(a)

	case *tcell.EventResize:
		p.screen.Sync()
		return false, true
	}
	return false, false
}

// apply moves or turns the camera and reports whether anything changed
func (p *Preview) apply(a action) bool {
	c := &p.camera
	switch a {
	case actionForward:
		c.Position = c.Position.Add(c.Forward().Multiply(p.moveStep))
	case actionBack:
		c.Position = c.Position.Subtract(c.Forward().Multiply(p.moveStep))
	case actionRight:
		c.Position = c.Position.Add(c.Right().Multiply(p.moveStep))
	case actionLeft:
		c.Position = c.Position.Subtract(c.Right().Multiply(p.moveStep))
	case actionUp:
		c.Position.Y += p.moveStep
	case actionDown:
		c.Position.Y -= p.moveStep
	case actionYawLeft:
		c.Yaw -= p.turnStep
	case actionYawRight:
		c.Yaw += p.turnStep
	case actionPitchUp:
		c.Pitch = math.Max(c.Pitch-p.turnStep, -math.Pi/2)
	case actionPitchDown:
		c.Pitch = math.Min(c.Pitch+p.turnStep, math.Pi/2)
	default:
		return false
	}
	return true
}

// Draw renders the scene at the terminal size and shows it; the last row holds a status line
func (p *Preview) Draw(ctx context.Context) error {
	cols, rows := p.screen.Size()
	imageRows := rows - 1
	if cols <= 0 || imageRows <= 0 {
		return nil
	}

	img, stats, err := p.render(ctx, cols, imageRows*2)
	if err != nil {
		return err
	}
	p.lastTime = stats.Duration
	p.logger.Printf("Preview frame %dx%d rendered in %v\n", cols, imageRows*2, stats.Duration)

	for row := 0; row < imageRows; row++ {
		for x := 0; x < cols; x++ {
			top := img.RGBAAt(x, row*2)
			bottom := img.RGBAAt(x, row*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			p.screen.SetContent(x, row, halfBlock, nil, style)
		}
	}

	p.drawStatus(imageRows, cols)
	p.screen.Show()
	return nil
}

// render traces a width x height image with square pixels
func (p *Preview) render(ctx context.Context, width, height int) (*image.RGBA, renderer.RenderStats, error) {
	config := p.camera
	config.ViewportHeight = config.ViewportWidth * float64(height) / float64(width)

	rt := renderer.NewRaytracer(p.scene, renderer.NewCamera(config), width, height)
	rt.SetWorkers(p.workers)
	img, stats, err := rt.Render(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("preview render: %w", err)
	}
	return img, stats, nil
}

func (p *Preview) drawStatus(row, cols int) {
	c := p.camera
	status := fmt.Sprintf(" pos (%.2f, %.2f, %.2f) yaw %.0f° pitch %.0f° | %v | wasd/rf move, arrows look, q quit",
		c.Position.X, c.Position.Y, c.Position.Z,
		c.Yaw*180/math.Pi, c.Pitch*180/math.Pi, p.lastTime.Round(time.Millisecond))

	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= cols {
			break
		}
		p.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		p.screen.SetContent(x, row, ' ', nil, style)
	}
}
