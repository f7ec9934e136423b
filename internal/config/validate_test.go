package config

import (
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero depth keeps scene depth", func(c *Config) { c.Render.Depth = 0 }, false},
		{"zero workers means one per CPU", func(c *Config) { c.Render.Workers = 0 }, false},
		{"negative height", func(c *Config) { c.Render.Height = -4 }, true},
		{"zero width", func(c *Config) { c.Render.Width = 0 }, true},
		{"negative depth", func(c *Config) { c.Render.Depth = -1 }, true},
		{"negative workers", func(c *Config) { c.Render.Workers = -2 }, true},
		{"negative debounce", func(c *Config) { c.Render.WatchDebounce = -time.Second }, true},
		{"zero viewport", func(c *Config) { c.Camera.ViewportWidth = 0 }, true},
		{"negative distance", func(c *Config) { c.Camera.Distance = -1 }, true},
		{"negative max pixels", func(c *Config) { c.Server.MaxPixels = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
