package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-recursive-raytracer/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var save bool
	var saveTo string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration, or save it",
		Long: `Prints the configuration after defaults, the config file and flags are merged.

With --save it is written to the user config directory, where later runs pick it up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case saveTo != "":
				if err := a.cfg.SaveTo(saveTo); err != nil {
					return fmt.Errorf("saving config: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Saved", saveTo)
				return nil
			case save:
				if err := a.cfg.Save(); err != nil {
					return fmt.Errorf("saving config: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Saved", config.ConfigDir())
				return nil
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Write the configuration to the user config directory")
	cmd.Flags().StringVar(&saveTo, "save-to", "", "Write the configuration to this file")
	return cmd
}
