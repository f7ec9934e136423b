package cmd

import (
	"math"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/df07/go-recursive-raytracer/pkg/preview"
)

func newPreviewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Explore a scene interactively in the terminal",
		Long: `Renders the scene into the terminal with two pixels per character cell.

Keys: w/s forward and back, a/d strafe, r/f up and down, arrows look around,
q or Esc to quit. Logs go to --log-file only, since the screen is in use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			s, _, camera, err := a.prepareScene()
			if err != nil {
				return err
			}
			return preview.Run(ctx, s, camera, a.coreLogger(), func(p *preview.Preview) {
				p.SetWorkers(a.cfg.Render.Workers)
				p.SetSteps(a.cfg.Preview.MoveStep, a.cfg.Preview.TurnStep*math.Pi/180)
			})
		},
	}

	cmd.Flags().StringVarP(&a.overrides.Scene, "scene", "s", "", "Built-in scene name or scene file path")
	cmd.Flags().IntVar(&a.overrides.Depth, "depth", 0, "Maximum reflection depth (default from the scene)")
	cmd.Flags().IntVar(&a.overrides.Workers, "workers", 0, "Render goroutines (default one per CPU)")
	return cmd
}
