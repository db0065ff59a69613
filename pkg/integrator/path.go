package integrator

import (
	"math"

	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/lights"
	"github.com/kazijawad/bonsai/pkg/material"
)

// Intersection epsilon for primary, bounce, and shadow rays. Offsetting the
// parametric range is cheaper than offsetting spawn points and behaves the
// same at the scales our scenes use.
const rayEpsilon = 0.001

// PathTracer implements unidirectional path tracing with next-event
// estimation. At every bounce it asks the material for a BSDF, samples one
// light through it, then samples the BSDF itself to continue the path.
// Emission found by BSDF sampling only counts on camera rays and after
// specular bounces, since on all other paths the lights were already
// accounted for by direct sampling.
type PathTracer struct {
	maxDepth     int
	rrMinBounces int
}

// NewPathTracer creates a path tracer. Russian roulette starts terminating
// paths after rrMinBounces bounces.
func NewPathTracer(maxDepth, rrMinBounces int) *PathTracer {
	if maxDepth <= 0 {
		maxDepth = 1
	}
	return &PathTracer{
		maxDepth:     maxDepth,
		rrMinBounces: rrMinBounces,
	}
}

// Li computes the radiance arriving along a ray
func (pt *PathTracer) Li(ray core.Ray, scene Scene, sampler core.Sampler) core.Spectrum {
	var radiance core.Spectrum
	beta := core.NewSpectrum(1, 1, 1)
	specularBounce := true // camera rays count emission on their first hit

	for bounce := 0; bounce < pt.maxDepth; bounce++ {
		si, isHit := scene.Hit(ray, rayEpsilon, math.Inf(1))
		if !isHit {
			radiance = radiance.Add(beta.Multiply(backgroundGradient(ray, scene)))
			break
		}

		if specularBounce {
			radiance = radiance.Add(beta.Multiply(emittedLight(si)))
		}

		si.Material.ComputeScatteringFunctions(si, material.Radiance)
		bsdf := si.BSDF
		if bsdf == nil || bsdf.NumComponents(material.BxDFAll) == 0 {
			// Nothing scatters here (a light seen from behind, or a
			// zero-albedo surface)
			break
		}

		radiance = radiance.Add(beta.Multiply(pt.directLighting(si, scene, sampler)))

		wi, f, pdf, sampledType := bsdf.SampleF(si.Wo, sampler.Get2D(), sampler.Get1D(), material.BxDFAll)
		if pdf <= 0 || f.IsBlack() {
			break
		}

		cosine := wi.AbsDot(si.Shading.Normal)
		beta = beta.Multiply(f).Scale(cosine / pdf)
		if beta.IsBlack() || !beta.IsFinite() {
			break
		}
		specularBounce = sampledType&material.BxDFSpecular != 0

		ray = core.NewRay(si.Point, wi)

		if bounce >= pt.rrMinBounces {
			// Survival bounded to [0.5, 0.95] keeps the compensation
			// factor between 1.05x and 2x
			survival := math.Min(0.95, math.Max(0.5, beta.Luminance()))
			if sampler.Get1D() > survival {
				break
			}
			beta = beta.Scale(1.0 / survival)
		}
	}

	return radiance
}

// directLighting estimates the contribution of one uniformly chosen light.
// The BSDF is evaluated first: if it is black for the light direction (as it
// always is for purely specular surfaces) the shadow ray is never traced.
func (pt *PathTracer) directLighting(si *material.SurfaceInteraction, scene Scene, sampler core.Sampler) core.Spectrum {
	lightSample, hasLight := lights.SampleOneLight(scene.GetLights(), si.Point, sampler)
	if !hasLight || lightSample.PDF <= 0 || lightSample.Emission.IsBlack() {
		return core.Spectrum{}
	}

	f := si.BSDF.F(si.Wo, lightSample.Direction, material.BxDFAll)
	if f.IsBlack() {
		return core.Spectrum{}
	}

	shadowRay := core.NewRay(si.Point, lightSample.Direction)
	if _, blocked := scene.Hit(shadowRay, rayEpsilon, lightSample.Distance-rayEpsilon); blocked {
		return core.Spectrum{}
	}

	cosine := lightSample.Direction.AbsDot(si.Shading.Normal)
	return f.Multiply(lightSample.Emission).Scale(cosine / lightSample.PDF)
}

// emittedLight returns the emitted radiance at a hit, zero for non-emitters
func emittedLight(si *material.SurfaceInteraction) core.Spectrum {
	if emitter, ok := si.Material.(material.Emitter); ok {
		return emitter.Emit(si)
	}
	return core.Spectrum{}
}

// backgroundGradient returns the background color for an escaped ray, a
// vertical gradient between the scene's bottom and top colors.
func backgroundGradient(ray core.Ray, scene Scene) core.Spectrum {
	top, bottom := scene.GetBackgroundColors()

	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottom.Lerp(top, t)
}
