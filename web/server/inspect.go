package server

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool       `json:"hit"`
	Model        string     `json:"model,omitempty"`
	GeometryType string     `json:"geometryType,omitempty"`
	Point        [3]float64 `json:"point"`
	Normal       [3]float64 `json:"normal"`
	Distance     float64    `json:"distance"`
	Color        string     `json:"color"`      // Final traced color of the pixel
	Material     string     `json:"material"`   // Base material color
	Reflective   float64    `json:"reflective"` // Material reflectivity
	Lighting     float64    `json:"lighting"`   // Summed light intensity at the hit point
}

// handleInspect reports what the primary ray through one pixel hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseViewRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	x, err := parseIntParam(r.URL.Query(), "x", req.Width/2, 0, req.Width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(r.URL.Query(), "y", req.Height/2, 0, req.Height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sceneObj, err := buildScene(req)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, renderer.NewCamera(s.opts.Camera), req.Width, req.Height, x, y))
}

// inspectPixel casts the primary ray through pixel (x, y) and describes the closest hit
func inspectPixel(s *scene.Scene, camera *renderer.Camera, width, height, x, y int) InspectResponse {
	ray := camera.GetRay(x, y, width, height)
	resp := InspectResponse{Color: hexColor(s.Trace(ray))}

	model, hit, ok := s.ClosestIntersection(ray)
	if !ok {
		return resp
	}

	resp.Hit = true
	resp.Model = model.Name
	resp.GeometryType = reflect.TypeOf(model.Geometry).Elem().Name()
	resp.Point = [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z}
	resp.Normal = [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z}
	resp.Distance = hit.T
	resp.Material = hexColor(model.Material.Color)
	resp.Reflective = model.Material.Reflective
	resp.Lighting = s.Lighting(hit)
	return resp
}

func hexColor(c core.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
