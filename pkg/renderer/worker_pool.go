package renderer

import (
	"math"
	"runtime"
	"sync"

	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/integrator"
)

// TileTask asks the pool to bring one tile up to a sample target
type TileTask struct {
	Tile          *Tile
	TargetSamples int
	TaskID        int // For deterministic result ordering
}

// TileResult reports a finished task back to the coordinator
type TileResult struct {
	TaskID  int
	Samples int // Samples added while rendering this task
}

// WorkerPool renders tiles on a fixed set of goroutines. Tiles cover
// disjoint pixel regions of the shared film, so workers never contend on
// pixel data, and the scene, camera, and integrator are all read-only
// during a pass.
type WorkerPool struct {
	scene              integrator.Scene
	camera             *Camera
	integrator         integrator.Integrator
	film               *Film
	adaptiveMinSamples float64
	adaptiveThreshold  float64

	tasks      chan TileTask
	results    chan TileResult
	numWorkers int
	wg         sync.WaitGroup
}

// NewWorkerPool sizes the pool from the config. A non-positive worker count
// uses one worker per CPU.
func NewWorkerPool(sc integrator.Scene, camera *Camera, integ integrator.Integrator, film *Film, config Config, maxTiles int) *WorkerPool {
	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		scene:              sc,
		camera:             camera,
		integrator:         integ,
		film:               film,
		adaptiveMinSamples: config.AdaptiveMinSamples,
		adaptiveThreshold:  config.AdaptiveThreshold,
		tasks:              make(chan TileTask, maxTiles),
		results:            make(chan TileResult, maxTiles),
		numWorkers:         numWorkers,
	}
}

// Start launches the worker goroutines
func (wp *WorkerPool) Start() {
	wp.wg.Add(wp.numWorkers)
	for i := 0; i < wp.numWorkers; i++ {
		go wp.run()
	}
}

// Stop drains the workers and closes the result channel. Pending tasks
// finish before the workers exit.
func (wp *WorkerPool) Stop() {
	close(wp.tasks)
	wp.wg.Wait()
	close(wp.results)
}

// SubmitTask queues one tile task
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.tasks <- task
}

// GetResult blocks until a task finishes or the pool stops
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.results
	return result, ok
}

// GetNumWorkers reports the pool size
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) run() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		samples := wp.renderTile(task.Tile, task.TargetSamples)
		wp.results <- TileResult{TaskID: task.TaskID, Samples: samples}
	}
}

// renderTile samples every pixel in the tile up to the pass target, stopping
// early for pixels that have already converged
func (wp *WorkerPool) renderTile(tile *Tile, targetSamples int) int {
	sampler := core.NewRandomSampler(tile.Random)
	added := 0

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			ps := wp.film.Pixel(i, j)
			for ps.SampleCount < targetSamples && !wp.shouldStopSampling(ps, targetSamples) {
				ray := wp.camera.GetRay(i, j, sampler)
				color := wp.integrator.Li(ray, wp.scene, sampler)
				if !color.IsFinite() {
					// A NaN would poison the pixel accumulator forever
					color = core.Spectrum{}
				}
				ps.AddSample(color)
				added++
			}
		}
	}

	return added
}

// shouldStopSampling reports whether a pixel's relative luminance error has
// dropped below the adaptive threshold
func (wp *WorkerPool) shouldStopSampling(ps *PixelStats, targetSamples int) bool {
	if wp.adaptiveThreshold <= 0 {
		return false // adaptive sampling disabled
	}

	minSamples := max(1, int(float64(targetSamples)*wp.adaptiveMinSamples))
	if ps.SampleCount < minSamples {
		return false
	}

	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	variance := math.Max(0, meanSq-mean*mean)

	// Black pixels have no meaningful relative error
	if mean <= 1e-8 {
		return variance < 1e-6
	}

	relativeError := math.Sqrt(variance) / mean
	return relativeError < wp.adaptiveThreshold
}
