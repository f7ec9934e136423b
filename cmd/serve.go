package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/df07/go-recursive-raytracer/web/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders of the built-in scenes over HTTP",
		Long: `Starts an HTTP server with these endpoints:

  GET /api/health
  GET /api/scenes
  GET /api/render?scene=default&width=400&height=400&depth=2&format=png
  GET /api/inspect?scene=default&width=400&height=400&x=200&y=200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(a.cfg.Server.Addr, server.Options{
				Camera:        a.cfg.Camera.RendererConfig(),
				Workers:       a.cfg.Render.Workers,
				MaxPixels:     a.cfg.Server.MaxPixels,
				RenderTimeout: a.cfg.Server.RenderTimeout,
				Logger:        a.coreLogger(),
			})
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&a.overrides.Addr, "addr", "", "Listen address (default :8080)")
	cmd.Flags().IntVar(&a.overrides.Workers, "workers", 0, "Render goroutines per request (default one per CPU)")
	return cmd
}
