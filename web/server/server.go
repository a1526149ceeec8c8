package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/scene"
)

const (
	defaultScene = "cornell"
	minSize      = 16
	maxSize      = 2048
)

// Server streams band renders of the builtin scenes to a browser
type Server struct {
	port   int
	logger core.Logger
}

// NewServer creates a new web server. A nil logger discards output.
func NewServer(port int, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Server{port: port, logger: logger}
}

// Handler returns the API routes plus the static file server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SceneInfo describes a builtin scene for the scene picker
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// handleScenes lists the builtin scenes with their default sizes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	var scenes []SceneInfo
	for _, info := range scene.Builtins() {
		sceneObj, err := scene.NewBuiltin(info.Name)
		if err != nil {
			continue
		}
		scenes = append(scenes, SceneInfo{
			Name:        info.Name,
			Description: info.Description,
			Width:       sceneObj.Width,
			Height:      sceneObj.Height,
		})
	}
	writeJSON(w, http.StatusOK, scenes)
}

// loadScene builds a builtin scene at the requested size and preprocesses it
func loadScene(name string, width, height int) (*scene.Scene, error) {
	sceneObj, err := scene.NewBuiltin(name)
	if err != nil {
		return nil, err
	}
	if width > 0 && height > 0 {
		if err := sceneObj.SetSize(width, height); err != nil {
			return nil, err
		}
	}
	if err := sceneObj.Preprocess(); err != nil {
		return nil, err
	}
	return sceneObj, nil
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

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
