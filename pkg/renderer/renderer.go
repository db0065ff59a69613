package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/kazijawad/bonsai/log"
	"github.com/kazijawad/bonsai/pkg/integrator"
)

var logger = log.New("renderer")

// Config contains configuration for progressive rendering
type Config struct {
	Width              int     // Image width in pixels
	Height             int     // Image height in pixels
	TileSize           int     // Size of each square tile
	InitialSamples     int     // Samples per pixel for the first pass
	SamplesPerPixel    int     // Total samples per pixel when all passes finish
	MaxPasses          int     // Maximum number of progressive passes
	NumWorkers         int     // Parallel workers, 0 for one per CPU
	Seed               int64   // Base seed for the per-tile random streams
	AdaptiveMinSamples float64 // Minimum samples as a fraction of the pass target
	AdaptiveThreshold  float64 // Relative error below which a pixel stops sampling, 0 disables
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:              400,
		Height:             400,
		TileSize:           64,
		InitialSamples:     1,
		SamplesPerPixel:    64,
		MaxPasses:          7,
		NumWorkers:         0,
		Seed:               42,
		AdaptiveMinSamples: 0.15,
		AdaptiveThreshold:  0.01,
	}
}

func (c *Config) normalize() {
	if c.Width <= 0 {
		c.Width = 400
	}
	if c.Height <= 0 {
		c.Height = 400
	}
	if c.TileSize <= 0 {
		c.TileSize = 64
	}
	if c.InitialSamples < 1 {
		c.InitialSamples = 1
	}
	if c.SamplesPerPixel < 1 {
		c.SamplesPerPixel = 1
	}
	if c.MaxPasses < 1 {
		c.MaxPasses = 1
	}
}

// PassResult contains the result of a single progressive pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// Renderer renders a scene progressively: each pass raises the per-pixel
// sample target, and the film accumulates across passes so every pass refines
// the same image.
type Renderer struct {
	scene      integrator.Scene
	camera     *Camera
	integrator integrator.Integrator
	config     Config
	film       *Film
	tiles      []*Tile
	workerPool *WorkerPool
	started    bool
	startTime  time.Time
}

// NewRenderer creates a progressive renderer for a scene
func NewRenderer(sc integrator.Scene, camConfig CameraConfig, integ integrator.Integrator, config Config) *Renderer {
	config.normalize()

	film := NewFilm(config.Width, config.Height)
	camera := NewCamera(camConfig, config.Width, config.Height)
	tiles := NewTileGrid(config.Width, config.Height, config.TileSize, config.Seed)

	return &Renderer{
		scene:      sc,
		camera:     camera,
		integrator: integ,
		config:     config,
		film:       film,
		tiles:      tiles,
		workerPool: NewWorkerPool(sc, camera, integ, film, config, len(tiles)),
	}
}

// Film returns the accumulation film. Read it only between passes; workers
// write to it while a pass is in flight.
func (r *Renderer) Film() *Film {
	return r.film
}

// Config returns the renderer's normalized configuration
func (r *Renderer) Config() Config {
	return r.config
}

// samplesForPass returns the cumulative per-pixel sample target for a pass.
// Targets double every pass from InitialSamples, and the final pass always
// runs to the full count: 1, 2, 4, ..., SamplesPerPixel.
func (r *Renderer) samplesForPass(passNumber int) int {
	target := r.config.SamplesPerPixel
	if shift := passNumber - 1; shift < 30 {
		if doubled := r.config.InitialSamples << shift; doubled < target {
			target = doubled
		}
	}
	if passNumber >= r.config.MaxPasses {
		target = r.config.SamplesPerPixel
	}
	return target
}

// RenderPass renders a single progressive pass in parallel and returns the
// image accumulated so far
func (r *Renderer) RenderPass(passNumber int) (*image.RGBA, RenderStats, error) {
	targetSamples := r.samplesForPass(passNumber)

	if !r.started {
		r.workerPool.Start()
		r.started = true
		r.startTime = time.Now()
	}

	logger.Infof("pass %d: target %d samples per pixel (%d workers)",
		passNumber, targetSamples, r.workerPool.GetNumWorkers())

	for taskID, tile := range r.tiles {
		r.workerPool.SubmitTask(TileTask{
			Tile:          tile,
			TargetSamples: targetSamples,
			TaskID:        taskID,
		})
	}

	for i := 0; i < len(r.tiles); i++ {
		if _, ok := r.workerPool.GetResult(); !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
	}

	stats := collectStats(r.film, targetSamples, time.Since(r.startTime))
	return r.film.ToImage(), stats, nil
}

// RenderProgressive runs all passes on a goroutine and delivers each pass
// over the returned channels. Both channels close when rendering finishes,
// fails, or the context is cancelled.
func (r *Renderer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)
		defer r.workerPool.Stop()

		logger.Infof("starting progressive render: %dx%d, %d samples per pixel over up to %d passes",
			r.config.Width, r.config.Height, r.config.SamplesPerPixel, r.config.MaxPasses)

		for pass := 1; pass <= r.config.MaxPasses; pass++ {
			select {
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			default:
			}

			passStart := time.Now()
			img, stats, err := r.RenderPass(pass)
			if err != nil {
				errChan <- err
				return
			}

			isLast := pass == r.config.MaxPasses || r.samplesForPass(pass) >= r.config.SamplesPerPixel
			logger.Infof("pass %d completed in %v (%.1f samples per pixel on average)",
				pass, time.Since(passStart).Round(time.Millisecond), stats.AverageSamples)

			select {
			case passChan <- PassResult{PassNumber: pass, Image: img, Stats: stats, IsLast: isLast}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if isLast {
				return
			}
		}
	}()

	return passChan, errChan
}
