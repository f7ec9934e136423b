package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

func newInfoCmd(a *app) *cobra.Command {
	var list bool
	var scenesDir string

	cmd := &cobra.Command{
		Use:   "info [scene]",
		Short: "Describe a scene, or list the available scenes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				printBuiltins(out)
				files, err := scene.ListSceneFiles(scenesDir)
				if err != nil {
					return err
				}
				printSceneFiles(out, scenesDir, files)
				return nil
			}

			name := a.cfg.Render.Scene
			if len(args) == 1 {
				name = args[0]
			}
			s, _, err := loadScene(name)
			if err != nil {
				return err
			}
			printScene(out, name, s)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List the built-in scenes and the scene files in --scenes-dir")
	cmd.Flags().StringVar(&scenesDir, "scenes-dir", "scenes", "Directory searched for scene files by --list")
	return cmd
}

func printBuiltins(out io.Writer) {
	fmt.Fprintln(out, "Built-in scenes:")
	for _, info := range scene.ListBuiltins() {
		fmt.Fprintf(out, "  %-10s %s\n", info.Name, info.Description)
	}
}

func printSceneFiles(out io.Writer, dir string, files []scene.SceneInfo) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(out, "\nScene files in %s:\n", dir)
	for _, info := range files {
		fmt.Fprintf(out, "  %-30s %s", info.Path, info.Name)
		if info.Description != "" {
			fmt.Fprintf(out, ": %s", info.Description)
		}
		fmt.Fprintln(out)
	}
}

func printScene(out io.Writer, name string, s *scene.Scene) {
	fmt.Fprintf(out, "Scene:      %s\n", name)
	fmt.Fprintf(out, "Models:     %d (%d primitives)\n", len(s.Models), s.GetPrimitiveCount())
	fmt.Fprintf(out, "Lights:     %d\n", len(s.Lights))
	fmt.Fprintf(out, "Max depth:  %d\n", s.MaxDepth)
	fmt.Fprintf(out, "Background: #%02x%02x%02x\n", s.Background.R, s.Background.G, s.Background.B)

	for _, light := range s.Lights {
		p := light.Position()
		fmt.Fprintf(out, "  %s light at (%g, %g, %g)\n", light.Type(), p.X, p.Y, p.Z)
	}

	for _, m := range s.Models {
		kind := fmt.Sprintf("%T", m.Geometry)
		if mesh, ok := m.Geometry.(*geometry.Mesh); ok {
			kind = fmt.Sprintf("%s, %d triangles", kind, mesh.TriangleCount())
		}
		fmt.Fprintf(out, "  %-14s %-32s color #%02x%02x%02x reflective %.2f\n",
			m.Name, kind, m.Material.Color.R, m.Material.Color.G, m.Material.Color.B, m.Material.Reflective)
		if mesh, ok := m.Geometry.(*geometry.Mesh); ok && mesh.TriangleCount() > 0 {
			lo, hi := mesh.Bounds()
			fmt.Fprintf(out, "  %-14s bounds (%.2f, %.2f, %.2f) to (%.2f, %.2f, %.2f)\n", "",
				lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
		}
	}
}
