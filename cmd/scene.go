package cmd

import (
	"fmt"
	"os"

	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// loadScene resolves a built-in scene name or a path to a scene file.
// The scene file is nil for built-in scenes.
func loadScene(nameOrPath string) (*scene.Scene, *loaders.SceneFile, error) {
	if nameOrPath == "" {
		return nil, nil, fmt.Errorf("%w: no scene given", scene.ErrUnknownScene)
	}

	if s, err := scene.NewBuiltin(nameOrPath); err == nil {
		return s, nil, nil
	}

	if _, err := os.Stat(nameOrPath); err != nil {
		return nil, nil, fmt.Errorf("%w: %q is neither a built-in scene nor a readable file", scene.ErrUnknownScene, nameOrPath)
	}
	return loaders.LoadScene(nameOrPath)
}

// prepareScene loads the configured scene and resolves the camera and depth.
// Precedence: config defaults < scene file < command-line depth.
func (a *app) prepareScene() (*scene.Scene, *loaders.SceneFile, renderer.CameraConfig, error) {
	s, file, err := loadScene(a.cfg.Render.Scene)
	if err != nil {
		return nil, nil, renderer.CameraConfig{}, err
	}

	camera := a.cfg.Camera
	if file != nil {
		camera = camera.Merge(file.Camera)
	}
	if a.cfg.Render.Depth > 0 {
		s.MaxDepth = a.cfg.Render.Depth
	}
	return s, file, camera.RendererConfig(), nil
}
