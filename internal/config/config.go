// Package config handles raytracer configuration loading and management.
package config

import (
	"math"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// Config holds all raytracer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Preview PreviewConfig `yaml:"preview"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds settings for offline renders.
type RenderConfig struct {
	Scene         string        `yaml:"scene"`  // Built-in scene name or path to a scene file
	Width         int           `yaml:"width"`  // Image width in pixels
	Height        int           `yaml:"height"` // Image height in pixels
	Depth         int           `yaml:"depth"`  // Reflection depth, 0 keeps the scene's own
	Workers       int           `yaml:"workers"`
	Output        string        `yaml:"output"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// CameraConfig holds the default viewpoint; angles are in degrees.
type CameraConfig struct {
	Position       [3]float64 `yaml:"position"`
	Yaw            float64    `yaml:"yaw"`
	Pitch          float64    `yaml:"pitch"`
	ViewportWidth  float64    `yaml:"viewport_width"`
	ViewportHeight float64    `yaml:"viewport_height"`
	Distance       float64    `yaml:"distance"`
	Near           float64    `yaml:"near"`
}

// PreviewConfig holds terminal preview settings.
type PreviewConfig struct {
	MoveStep float64 `yaml:"move_step"` // World units per key press
	TurnStep float64 `yaml:"turn_step"` // Degrees per arrow key press
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	MaxPixels     int           `yaml:"max_pixels"`
	RenderTimeout time.Duration `yaml:"render_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Scene:         "default",
			Width:         800,
			Height:        800,
			Depth:         0,
			Workers:       0,
			Output:        "output/render.png",
			WatchDebounce: 200 * time.Millisecond,
		},
		Camera: CameraConfig{
			Position:       [3]float64{0, 0, -2},
			ViewportWidth:  1,
			ViewportHeight: 1,
			Distance:       1,
			Near:           1,
		},
		Preview: PreviewConfig{
			MoveStep: 0.05,
			TurnStep: 5,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			MaxPixels:     2048 * 2048,
			RenderTimeout: 60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Merge returns the camera with every field the scene file sets replaced.
func (c CameraConfig) Merge(spec *loaders.CameraSpec) CameraConfig {
	if spec == nil {
		return c
	}
	if spec.Position != nil {
		c.Position = *spec.Position
	}
	setFloat(&c.Yaw, spec.Yaw)
	setFloat(&c.Pitch, spec.Pitch)
	setFloat(&c.ViewportWidth, spec.ViewportWidth)
	setFloat(&c.ViewportHeight, spec.ViewportHeight)
	setFloat(&c.Distance, spec.Distance)
	setFloat(&c.Near, spec.Near)
	return c
}

// RendererConfig converts to the renderer's camera configuration.
func (c CameraConfig) RendererConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		Position:       core.NewVec3(c.Position[0], c.Position[1], c.Position[2]),
		Yaw:            c.Yaw * math.Pi / 180,
		Pitch:          c.Pitch * math.Pi / 180,
		ViewportWidth:  c.ViewportWidth,
		ViewportHeight: c.ViewportHeight,
		Distance:       c.Distance,
		Near:           c.Near,
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
