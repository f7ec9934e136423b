package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Validate rejects settings that cannot produce an image.
func (c *Config) Validate() error {
	r := c.Render
	switch {
	case r.Width <= 0:
		return fmt.Errorf("%w: render.width must be positive, got %d", ErrInvalid, r.Width)
	case r.Height <= 0:
		return fmt.Errorf("%w: render.height must be positive, got %d", ErrInvalid, r.Height)
	case r.Depth < 0:
		return fmt.Errorf("%w: render.depth must not be negative, got %d", ErrInvalid, r.Depth)
	case r.Workers < 0:
		return fmt.Errorf("%w: render.workers must not be negative, got %d", ErrInvalid, r.Workers)
	case r.WatchDebounce < 0:
		return fmt.Errorf("%w: render.watch_debounce must not be negative, got %v", ErrInvalid, r.WatchDebounce)
	}

	cam := c.Camera
	switch {
	case cam.ViewportWidth <= 0 || cam.ViewportHeight <= 0:
		return fmt.Errorf("%w: camera viewport must be positive, got %gx%g", ErrInvalid, cam.ViewportWidth, cam.ViewportHeight)
	case cam.Distance <= 0:
		return fmt.Errorf("%w: camera.distance must be positive, got %g", ErrInvalid, cam.Distance)
	}

	if c.Server.MaxPixels < 0 {
		return fmt.Errorf("%w: server.max_pixels must not be negative, got %d", ErrInvalid, c.Server.MaxPixels)
	}
	return nil
}
