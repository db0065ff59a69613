package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/image/draw"

	"github.com/kazijawad/bonsai/log"
	"github.com/kazijawad/bonsai/pkg/integrator"
	"github.com/kazijawad/bonsai/pkg/renderer"
	"github.com/kazijawad/bonsai/pkg/scene"
)

var logger = log.New("server")

// Server serves a live preview of a progressive render. One render runs in
// the background for the lifetime of the server; every pass replaces the
// snapshot that the HTTP handlers read.
type Server struct {
	port   int
	scene  *scene.Scene
	config renderer.Config

	mu        sync.Mutex
	latest    *renderer.PassResult
	renderErr error
	startTime time.Time
}

// NewServer creates a preview server for a scene
func NewServer(port int, sc *scene.Scene, config renderer.Config) *Server {
	return &Server{
		port:   port,
		scene:  sc,
		config: config,
	}
}

// Start launches the background render and blocks serving HTTP
func (s *Server) Start() error {
	go s.renderLoop(context.Background())

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/frame.png", s.handleFrame)
	mux.HandleFunc("/api/status", s.handleStatus)

	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("preview server on http://localhost%s", addr)
	return http.ListenAndServe(addr, mux)
}

// renderLoop runs the progressive render and keeps the latest pass snapshot
func (s *Server) renderLoop(ctx context.Context) {
	if s.scene.BVH == nil {
		s.scene.Preprocess()
	}

	depth := s.scene.SamplingConfig.MaxDepth
	if depth <= 0 {
		depth = 25
	}
	integ := integrator.NewPathTracer(depth, s.scene.SamplingConfig.RussianRouletteMinBounces)
	r := renderer.NewRenderer(s.scene, s.scene.CameraConfig, integ, s.config)

	s.mu.Lock()
	s.startTime = time.Now()
	s.mu.Unlock()

	passChan, errChan := r.RenderProgressive(ctx)
	for result := range passChan {
		snapshot := result
		s.mu.Lock()
		s.latest = &snapshot
		s.mu.Unlock()
	}
	if err, ok := <-errChan; ok {
		s.mu.Lock()
		s.renderErr = err
		s.mu.Unlock()
		logger.Errorf("render failed: %v", err)
	}
}

// snapshot returns the most recent pass and render error, if any
func (s *Server) snapshot() (*renderer.PassResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.renderErr
}

// statusResponse mirrors the render progress for the polling page
type statusResponse struct {
	Scene          string  `json:"scene"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	PassNumber     int     `json:"passNumber"`
	MaxPasses      int     `json:"maxPasses"`
	IsComplete     bool    `json:"isComplete"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MaxSamples     int     `json:"maxSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	ElapsedMs      int64   `json:"elapsedMs"`
	Error          string  `json:"error,omitempty"`
}

// handleStatus reports the progress of the background render
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	latest, renderErr := s.snapshot()

	resp := statusResponse{
		Scene:     s.scene.Name,
		Width:     s.config.Width,
		Height:    s.config.Height,
		MaxPasses: s.config.MaxPasses,
	}
	if latest != nil {
		resp.PassNumber = latest.PassNumber
		resp.IsComplete = latest.IsLast
		resp.TotalSamples = latest.Stats.TotalSamples
		resp.AverageSamples = latest.Stats.AverageSamples
		resp.MaxSamples = latest.Stats.MaxSamples
		resp.MinSamples = latest.Stats.MinSamples
		resp.MaxSamplesUsed = latest.Stats.MaxSamplesUsed
		resp.ElapsedMs = latest.Stats.Elapsed.Milliseconds()
	}
	if renderErr != nil {
		resp.Error = renderErr.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleFrame serves the current accumulated frame as a PNG, optionally
// scaled up with nearest-neighbor so small previews stay sharp
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	scale, err := parseIntParam(r.URL.Query(), "scale", 1, 1, 8)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	latest, _ := s.snapshot()
	if latest == nil {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}

	img := latest.Image
	if scale > 1 {
		bounds := img.Bounds()
		scaled := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)
		img = scaled
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	if err := png.Encode(w, img); err != nil {
		logger.Errorf("failed to encode frame: %v", err)
	}
}

// handleIndex serves a small page that polls the frame and status endpoints
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<title>bonsai</title>
<style>
  body { background: #1e1e1e; color: #ddd; font-family: monospace; text-align: center; }
  img { image-rendering: pixelated; margin-top: 1em; }
  #status { margin-top: 1em; white-space: pre; }
</style>
</head>
<body>
<h1>bonsai</h1>
<img id="frame" alt="waiting for the first pass">
<div id="status">waiting...</div>
<script>
  let complete = false;
  async function poll() {
    if (complete) return;
    try {
      const res = await fetch('/api/status');
      const status = await res.json();
      if (status.error) {
        document.getElementById('status').textContent = 'error: ' + status.error;
        complete = true;
        return;
      }
      if (status.passNumber > 0) {
        document.getElementById('frame').src = '/frame.png?scale=2&t=' + Date.now();
        document.getElementById('status').textContent =
          'scene ' + status.scene +
          ' | pass ' + status.passNumber + '/' + status.maxPasses +
          ' | ' + status.averageSamples.toFixed(1) + ' spp' +
          ' | ' + (status.elapsedMs / 1000).toFixed(1) + 's' +
          (status.isComplete ? ' | done' : '');
        complete = status.isComplete;
      }
    } catch (e) {
      document.getElementById('status').textContent = 'connection lost';
    }
    if (!complete) setTimeout(poll, 500);
  }
  poll();
</script>
</body>
</html>
`

// parseIntParam parses an integer query parameter with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
	}
	return parsed, nil
}
