package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/df07/go-recursive-raytracer/internal/config"
	"github.com/df07/go-recursive-raytracer/internal/logger"
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// app holds state shared by every command: the merged configuration and the raw flag values
type app struct {
	cfg        *config.Config
	configPath string
	overrides  config.Overrides
}

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "raytracer",
		Short: "Recursive ray tracer with reflections and hard shadows",
		Long: `A Whitted-style ray tracer: spheres, planes and triangle meshes lit by point
lights, with binary shadows and mirror reflection up to a fixed depth.

Scenes are either built in (see "raytracer info --list") or YAML files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Name() != "preview")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to config file (default ./"+config.FileName+" or the user config dir)")
	flags.StringVar(&a.overrides.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.overrides.LogFile, "log-file", "", "Also write logs to this file, rotated")

	rootCmd.AddCommand(
		newRenderCmd(a),
		newInfoCmd(a),
		newPreviewCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// init loads configuration (defaults < file < flags) and sets up logging.
// The preview owns the terminal, so it only logs to a file.
func (a *app) init(consoleOutput bool) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyOverrides(a.overrides)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if consoleOutput {
		return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	}
	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	return logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, false)
}

// coreLogger adapts the zap logger for the pkg/ packages
func (a *app) coreLogger() core.Logger {
	return logger.Printf{Level: zapcore.InfoLevel}
}

// Execute runs the root command
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
