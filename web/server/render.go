package server

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/loaders"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// Request limits
const (
	minImageSize = 8
	maxImageSize = 2000
	maxSamples   = 10000
)

// renderCounter numbers renders for log tagging
var renderCounter atomic.Int64

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string // Scene ID (e.g., "default", "file:glass-trio")
	Width   int    // Image width, 0 = scene default
	Height  int    // Image height, 0 = keep the scene's aspect ratio
	Samples int    // Samples per pixel, 0 = scene default
	Seed    int64
	Upload  bool // Also upload the PNG
}

// handleRender renders a scene and responds with the PNG image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	if req.Upload && s.uploader == nil {
		writeError(w, http.StatusBadRequest, "uploads are not configured")
		return
	}

	sceneObj, status, err := s.createScene(req)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	config.Seed = req.Seed
	if req.Samples > 0 {
		config.SamplesPerPixel = req.Samples
	}

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	logger := NewWebLogger(renderID, nil)
	logger.Printf("Scene %s at %dx%d", req.Scene, config.Width, config.Height)

	raytracer := renderer.NewRaytracer(sceneObj, config, logger)
	buf, stats, err := raytracer.Render(nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Render error: %v", err))
		return
	}

	var encoded bytes.Buffer
	if err := loaders.EncodePNG(&encoded, buf); err != nil {
		log.Printf("[%s] PNG encoding failed: %v", renderID, err)
		writeError(w, http.StatusInternalServerError, "failed to encode image")
		return
	}

	if req.Upload {
		name := fmt.Sprintf("%s/render_%d_%d.png", sceneKey(req.Scene), req.Seed, time.Now().Unix())
		key, err := s.uploader.Upload(r.Context(), name, encoded.Bytes(), "image/png")
		if err != nil {
			log.Printf("[%s] Upload failed: %v", renderID, err)
			writeError(w, http.StatusBadGateway, "upload failed")
			return
		}
		w.Header().Set("X-Upload-Key", key)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	w.Write(encoded.Bytes())
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default"}

	if sceneID := query.Get("scene"); sceneID != "" {
		req.Scene = sceneID
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}

	req.Seed = 42
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	if value := query.Get("upload"); value != "" {
		if req.Upload, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid upload: %s", value)
		}
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
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

// createScene loads the requested scene and applies the requested image size.
// The returned status is the HTTP status to report on error.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, int, error) {
	sceneObj, err := scene.Load(req.Scene, s.scenesDir, req.Seed)
	if err != nil {
		if errors.Is(err, scene.ErrUnknownScene) {
			return nil, http.StatusNotFound, fmt.Errorf("unknown scene: %s", req.Scene)
		}
		log.Printf("Failed to load scene %s: %v", req.Scene, err)
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to load scene: %s", req.Scene)
	}

	if req.Width > 0 || req.Height > 0 {
		sceneObj.Resize(req.Width, req.Height)
	}
	return sceneObj, http.StatusOK, nil
}

// sceneKey turns a scene ID into a storage path segment
func sceneKey(sceneID string) string {
	key := []byte(sceneID)
	for i, c := range key {
		if c == ':' || c == '/' {
			key[i] = '_'
		}
	}
	return string(key)
}
