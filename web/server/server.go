package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Options configures a Server; zero values fall back to defaults
type Options struct {
	Camera        renderer.CameraConfig
	Workers       int
	MaxPixels     int
	RenderTimeout time.Duration
	Logger        core.Logger
}

// Server renders built-in scenes over HTTP
type Server struct {
	addr    string
	opts    Options
	renders atomic.Int64
}

// NewServer creates a new web server
func NewServer(addr string, opts Options) *Server {
	if opts.Camera == (renderer.CameraConfig{}) {
		opts.Camera = renderer.DefaultCameraConfig()
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = 2048 * 2048
	}
	if opts.RenderTimeout <= 0 {
		opts.RenderTimeout = time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}
	return &Server{addr: addr, opts: opts}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start serves until ctx is done, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.opts.Logger.Printf("Starting web server on %s\n", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errChan; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListBuiltins())
}

// viewRequest is the scene and image size shared by render and inspect requests
type viewRequest struct {
	Scene  string
	Width  int
	Height int
	Depth  int
}

// parseViewRequest parses request parameters
func (s *Server) parseViewRequest(values url.Values) (viewRequest, error) {
	req := viewRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 1, 4096); err != nil {
		return req, err
	}
	if req.Height, err = parseIntParam(values, "height", 400, 1, 4096); err != nil {
		return req, err
	}
	if req.Depth, err = parseIntParam(values, "depth", -1, 0, 32); err != nil {
		return req, err
	}
	if req.Width*req.Height > s.opts.MaxPixels {
		return req, fmt.Errorf("image of %dx%d exceeds the %d pixel limit", req.Width, req.Height, s.opts.MaxPixels)
	}
	return req, nil
}

// buildScene creates the requested built-in scene; a negative depth keeps the scene's own
func buildScene(req viewRequest) (*scene.Scene, error) {
	s, err := scene.NewBuiltin(req.Scene)
	if err != nil {
		return nil, err
	}
	if req.Depth >= 0 {
		s.MaxDepth = req.Depth
	}
	return s, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
