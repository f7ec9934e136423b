package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

var contentTypes = map[string]string{
	"png": "image/png",
	"bmp": "image/bmp",
}

// handleRender renders a built-in scene and responds with the encoded image.
// Closing the connection cancels the render between rows.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	req, err := s.parseViewRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "png"
	}
	contentType, ok := contentTypes[format]
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", renderer.ErrUnsupportedFormat, format))
		return
	}

	sceneObj, err := buildScene(req)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	logger := NewRequestLogger(fmt.Sprintf("render-%d", s.renders.Add(1)), s.opts.Logger)
	ctx, cancel := context.WithTimeout(r.Context(), s.opts.RenderTimeout)
	defer cancel()

	rt := renderer.NewRaytracer(sceneObj, renderer.NewCamera(s.opts.Camera), req.Width, req.Height)
	rt.SetWorkers(s.opts.Workers)
	rt.SetLogger(logger)

	img, stats, err := rt.Render(ctx)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("render aborted: %w", err))
		return
	}

	var buf bytes.Buffer
	if err := renderer.Encode(&buf, img, format); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-Duration", stats.Duration.String())
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
