package config

// Overrides holds command-line values; zero values leave the config untouched.
type Overrides struct {
	Scene    string
	Width    int
	Height   int
	Depth    int
	Workers  int
	Output   string
	Addr     string
	LogLevel string
	LogFile  string
}

// ApplyOverrides applies command-line overrides, the highest priority source.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Scene != "" {
		c.Render.Scene = o.Scene
	}
	if o.Width > 0 {
		c.Render.Width = o.Width
	}
	if o.Height > 0 {
		c.Render.Height = o.Height
	}
	if o.Depth > 0 {
		c.Render.Depth = o.Depth
	}
	if o.Workers > 0 {
		c.Render.Workers = o.Workers
	}
	if o.Output != "" {
		c.Render.Output = o.Output
	}
	if o.Addr != "" {
		c.Server.Addr = o.Addr
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Logging.LogFile = o.LogFile
	}
}
