package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/df07/go-recursive-raytracer/internal/logger"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/watcher"
)

func newRenderCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to a PNG or BMP file",
		Example: `  raytracer render --scene mirrors --output mirrors.png
  raytracer render --scene scenes/example.yaml --width 400 --height 400 --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if _, err := renderer.FormatFromPath(a.cfg.Render.Output); err != nil {
				return err
			}

			if !watch {
				_, err := a.renderOnce(ctx)
				return err
			}
			return a.renderWatch(ctx)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&a.overrides.Scene, "scene", "s", "", "Built-in scene name or scene file path")
	flags.StringVarP(&a.overrides.Output, "output", "o", "", "Output image path (.png or .bmp)")
	flags.IntVar(&a.overrides.Width, "width", 0, "Image width in pixels")
	flags.IntVar(&a.overrides.Height, "height", 0, "Image height in pixels")
	flags.IntVar(&a.overrides.Depth, "depth", 0, "Maximum reflection depth (default from the scene)")
	flags.IntVar(&a.overrides.Workers, "workers", 0, "Render goroutines (default one per CPU)")
	flags.BoolVarP(&watch, "watch", "w", false, "Re-render whenever the scene file or its meshes change")
	return cmd
}

// renderOnce renders the configured scene to the output file and returns the files it was built from
func (a *app) renderOnce(ctx context.Context) ([]string, error) {
	s, file, camera, err := a.prepareScene()
	if err != nil {
		return nil, err
	}

	rc := a.cfg.Render
	if len(s.Lights) == 0 {
		logger.Warn("Scene has no lights, only the background and black surfaces will show", zap.String("scene", rc.Scene))
	}
	logger.Debug("Camera",
		zap.Float64s("position", []float64{camera.Position.X, camera.Position.Y, camera.Position.Z}),
		zap.Float64("yaw", camera.Yaw),
		zap.Float64("pitch", camera.Pitch),
	)
	logger.Info("Rendering",
		zap.String("scene", rc.Scene),
		zap.Int("width", rc.Width),
		zap.Int("height", rc.Height),
		zap.Int("depth", s.MaxDepth),
		zap.Int("models", len(s.Models)),
	)

	rt := renderer.NewRaytracer(s, renderer.NewCamera(camera), rc.Width, rc.Height)
	rt.SetWorkers(rc.Workers)
	rt.SetLogger(a.coreLogger())

	img, stats, err := rt.Render(ctx)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if err := renderer.SaveImage(rc.Output, img); err != nil {
		return nil, err
	}

	logger.Info("Render saved",
		zap.String("output", rc.Output),
		zap.Duration("duration", stats.Duration),
		zap.Int("workers", stats.NumWorkers),
		zap.Float64("luminance", stats.AverageLuminance),
	)

	if file == nil {
		return nil, nil
	}
	return append([]string{rc.Scene}, file.MeshPaths()...), nil
}

// renderWatch renders, then renders again after every change to the scene's files
// until ctx is done. A failed render is logged and the watch continues.
func (a *app) renderWatch(ctx context.Context) error {
	files, err := a.renderOnce(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("--watch needs a scene file, %q is built in", a.cfg.Render.Scene)
	}

	fw, err := watcher.NewFileWatcher(a.cfg.Render.WatchDebounce, a.coreLogger())
	if err != nil {
		return err
	}
	defer fw.Close()

	changes := make(chan string, 1)
	notify := func(path string) {
		select {
		case changes <- path:
		default:
		}
	}
	if err := fw.Watch(files, notify); err != nil {
		return err
	}
	go fw.Run(ctx)

	logger.Info("Watching for changes", zap.Strings("files", fw.Files()))
	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-changes:
			logger.Info("Change detected", zap.String("file", path))
			files, err := a.renderOnce(ctx)
			if err != nil {
				logger.Error("Render failed", zap.Error(err))
				continue
			}
			// Meshes may have been added or removed
			if err := fw.Replace(files, notify); err != nil {
				return err
			}
		}
	}
}
