package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request parameter limits
const (
	MinImageSize = 16
	MaxImageSize = 2000
	MaxGridSize  = 16

	DefaultTileSize = 32
)

// Server handles web requests for the raytracer
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}

	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/health", s.handleHealth)

	return s
}

// Handler returns the request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the request limits
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scenes": scene.ListScenes(),
		"defaults": map[string]int{
			"width":  scene.DefaultWidth,
			"height": scene.DefaultHeight,
			"aa":     scene.DefaultSamplingConfig().GridSize,
		},
		"limits": map[string]map[string]int{
			"width":  {"min": MinImageSize, "max": MaxImageSize},
			"height": {"min": MinImageSize, "max": MaxImageSize},
			"aa":     {"min": 1, "max": MaxGridSize},
		},
	})
}

// SceneParams are the query parameters shared by render and inspect requests
type SceneParams struct {
	Scene  string
	Width  int
	Height int
}

// parseSceneParams parses and validates the scene, width and height parameters
func parseSceneParams(values url.Values) (SceneParams, error) {
	params := SceneParams{Scene: values.Get("scene")}
	if params.Scene == "" {
		params.Scene = "cornell" // Default scene
	}

	var err error
	if params.Width, err = parseIntParam(values, "width", scene.DefaultWidth, MinImageSize, MaxImageSize); err != nil {
		return params, err
	}
	if params.Height, err = parseIntParam(values, "height", scene.DefaultHeight, MinImageSize, MaxImageSize); err != nil {
		return params, err
	}
	return params, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
