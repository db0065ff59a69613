package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	MaxSamples     int           // Target samples per pixel for this pass
	MinSamples     int           // Minimum samples taken by any pixel
	MaxSamplesUsed int           // Maximum samples taken by any pixel
	Elapsed        time.Duration // Wall time spent rendering so far
}

// collectStats summarizes the film's per-pixel sample counts
func collectStats(film *Film, targetSamples int, elapsed time.Duration) RenderStats {
	stats := RenderStats{
		TotalPixels: film.Width * film.Height,
		MaxSamples:  targetSamples,
		MinSamples:  int(^uint(0) >> 1),
		Elapsed:     elapsed,
	}

	for y := 0; y < film.Height; y++ {
		for x := 0; x < film.Width; x++ {
			count := film.pixels[y][x].SampleCount
			stats.TotalSamples += count
			stats.MinSamples = min(stats.MinSamples, count)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, count)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	} else {
		stats.MinSamples = 0
	}
	return stats
}
