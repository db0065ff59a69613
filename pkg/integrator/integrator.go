package integrator

import (
	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/lights"
	"github.com/kazijawad/bonsai/pkg/material"
)

// Scene is what an integrator needs to trace light paths: intersection
// against the accelerated geometry, the light list for next-event
// estimation, and the background colors for escaped rays.
type Scene interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool)
	GetLights() []lights.Light
	GetBackgroundColors() (top, bottom core.Spectrum)
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Li computes the radiance arriving along a ray
	Li(ray core.Ray, scene Scene, sampler core.Sampler) core.Spectrum
}
