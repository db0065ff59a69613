package lights

import "github.com/kazijawad/bonsai/pkg/core"

// Light can be sampled for direct lighting.
type Light interface {
	// Sample draws a point on the light as seen from a shading point.
	// The returned density is measured in solid angle at that point.
	Sample(point core.Vec3, sample core.Vec2) LightSample

	// PDF returns the solid-angle density of reaching the light from the
	// point along the given direction, zero if the direction misses it.
	PDF(point core.Vec3, direction core.Vec3) float64
}

// LightSample contains information about a sampled point on a light
type LightSample struct {
	Point     core.Vec3     // Point on the light source
	Normal    core.Vec3     // Surface normal at the sample point
	Direction core.Vec3     // Direction from shading point to light
	Distance  float64       // Distance to the light
	Emission  core.Spectrum // Radiance emitted toward the shading point
	PDF       float64       // Solid-angle density of this sample
}

// SampleOneLight picks one light uniformly and samples it. The selection
// probability is folded into the returned density so the caller can use it
// directly as the estimator's divisor.
func SampleOneLight(lights []Light, point core.Vec3, sampler core.Sampler) (LightSample, bool) {
	if len(lights) == 0 {
		return LightSample{}, false
	}

	idx := int(sampler.Get1D() * float64(len(lights)))
	if idx > len(lights)-1 {
		idx = len(lights) - 1
	}

	sample := lights[idx].Sample(point, sampler.Get2D())
	sample.PDF /= float64(len(lights))
	return sample, true
}
