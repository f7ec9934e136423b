package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// ErrInvalidSize is returned when asked to render an image with no pixels
var ErrInvalidSize = errors.New("image dimensions must be positive")

// Raytracer renders a scene through a camera into an image
type Raytracer struct {
	scene      *scene.Scene
	camera     *Camera
	width      int
	height     int
	numWorkers int
	logger     core.Logger
}

// NewRaytracer creates a new raytracer using one worker per CPU
func NewRaytracer(s *scene.Scene, camera *Camera, width, height int) *Raytracer {
	return &Raytracer{
		scene:  s,
		camera: camera,
		width:  width,
		height: height,
		logger: core.NopLogger{},
	}
}

// SetWorkers sets the number of render goroutines; zero or less means one per CPU
func (rt *Raytracer) SetWorkers(n int) {
	rt.numWorkers = n
}

// SetLogger sets the logger used for render progress
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// TracePixel returns the color of pixel (x, y)
func (rt *Raytracer) TracePixel(x, y int) core.Color {
	return rt.scene.Trace(rt.camera.GetRay(x, y, rt.width, rt.height))
}

// RenderRow traces every pixel of row y into img and returns the number of pixels written
func (rt *Raytracer) RenderRow(img *image.RGBA, y int) int {
	for x := 0; x < rt.width; x++ {
		img.SetRGBA(x, y, rt.TracePixel(x, y).ToRGBA())
	}
	return rt.width
}

// Render traces the whole image in parallel. If ctx is cancelled the rows already
// finished are kept and ctx's error is returned alongside the partial image.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rt.width, rt.height)
	}

	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))

	pool := NewWorkerPool(rt, rt.numWorkers, rt.height)
	stats := RenderStats{
		Width:      rt.width,
		Height:     rt.height,
		NumWorkers: pool.GetNumWorkers(),
	}

	pool.Start(ctx)
	for y := 0; y < rt.height; y++ {
		pool.SubmitTask(RowTask{Y: y, Image: img})
	}

	var renderErr error
	for i := 0; i < rt.height; i++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			renderErr = result.Error
			continue
		}
		stats.RowsRendered++
		stats.TotalPixels += result.Pixels
	}
	pool.Stop()

	stats.Duration = time.Since(startTime)
	stats.AverageLuminance = CalculateAverageLuminance(img)

	if renderErr != nil {
		rt.logger.Printf("Render cancelled after %d of %d rows: %v\n", stats.RowsRendered, rt.height, renderErr)
		return img, stats, renderErr
	}

	rt.logger.Printf("Rendered %dx%d with %d workers in %v\n", rt.width, rt.height, stats.NumWorkers, stats.Duration)
	return img, stats, nil
}
