package material

import (
	"math"

	"github.com/kazijawad/bonsai/pkg/core"
)

// FresnelKind selects the reflectance model of a Fresnel term.
type FresnelKind int

const (
	// FresnelNoOp reflects all light equally in every channel
	FresnelNoOp FresnelKind = iota
	// FresnelDielectric models the interface between two dielectrics
	FresnelDielectric
	// FresnelConductor models a conductor with a complex index of refraction
	FresnelConductor
)

// Fresnel describes the fraction of light reflected at a surface boundary as
// a function of the incident angle. The three supported models form a closed
// set selected by kind; there is no behavior outside these variants.
type Fresnel struct {
	kind FresnelKind

	// Dielectric indices, incident and transmitted side
	etaI, etaT float64

	// Conductor indices and absorption coefficient, per channel
	etaICond core.Spectrum
	etaTCond core.Spectrum
	k        core.Spectrum
}

// NewFresnelNoOp returns a Fresnel term that reflects everything. It stands
// in where a lobe wants no angular falloff, such as a perfect mirror.
func NewFresnelNoOp() Fresnel {
	return Fresnel{kind: FresnelNoOp}
}

// NewFresnelDielectric returns a Fresnel term for the boundary between two
// dielectric media with the given indices of refraction. etaI is the index on
// the incident side, etaT on the transmitted side.
func NewFresnelDielectric(etaI, etaT float64) Fresnel {
	return Fresnel{kind: FresnelDielectric, etaI: etaI, etaT: etaT}
}

// NewFresnelConductor returns a Fresnel term for a conductor described by a
// per-channel complex index of refraction etaT + i*k, entered from a medium
// with real index etaI.
func NewFresnelConductor(etaI, etaT, k core.Spectrum) Fresnel {
	return Fresnel{kind: FresnelConductor, etaICond: etaI, etaTCond: etaT, k: k}
}

// Kind returns which reflectance model the term uses.
func (f Fresnel) Kind() FresnelKind {
	return f.kind
}

// Evaluate returns the reflected fraction of light arriving with the given
// cosine between the incident direction and the surface normal. Negative
// cosines mean the light arrives from the transmitted side; the dielectric
// model handles that by swapping the media, the conductor model by symmetry.
func (f Fresnel) Evaluate(cosThetaI float64) core.Spectrum {
	switch f.kind {
	case FresnelDielectric:
		return core.NewUniformSpectrum(FrDielectric(cosThetaI, f.etaI, f.etaT))
	case FresnelConductor:
		return FrConductor(math.Abs(cosThetaI), f.etaICond, f.etaTCond, f.k)
	default:
		return core.NewUniformSpectrum(1)
	}
}

// FrDielectric computes the unpolarized Fresnel reflectance at a boundary
// between two dielectrics. A negative cosThetaI means the ray approaches from
// the transmitted side, in which case the roles of the media swap. Returns 1
// under total internal reflection.
func FrDielectric(cosThetaI, etaI, etaT float64) float64 {
	cosThetaI = clamp(cosThetaI, -1, 1)
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	// Snell's law gives the transmitted angle; past the critical angle all
	// light reflects.
	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParl := ((etaT * cosThetaI) - (etaI * cosThetaT)) /
		((etaT * cosThetaI) + (etaI * cosThetaT))
	rPerp := ((etaI * cosThetaI) - (etaT * cosThetaT)) /
		((etaI * cosThetaI) + (etaT * cosThetaT))
	return (rParl*rParl + rPerp*rPerp) / 2
}

// FrConductor computes the per-channel Fresnel reflectance of a conductor
// with complex index of refraction etaT + i*k entered from a dielectric with
// index etaI. cosThetaI must be non-negative.
func FrConductor(cosThetaI float64, etaI, etaT, k core.Spectrum) core.Spectrum {
	cosThetaI = clamp(cosThetaI, -1, 1)
	eta := etaT.Divide(etaI)
	etaK := k.Divide(etaI)

	cos2 := cosThetaI * cosThetaI
	sin2 := 1 - cos2
	eta2 := eta.Multiply(eta)
	etaK2 := etaK.Multiply(etaK)

	t0 := eta2.Subtract(etaK2).Subtract(core.NewUniformSpectrum(sin2))
	a2PlusB2 := t0.Multiply(t0).Add(eta2.Multiply(etaK2).Scale(4)).Sqrt()
	t1 := a2PlusB2.Add(core.NewUniformSpectrum(cos2))
	a := a2PlusB2.Add(t0).Scale(0.5).Sqrt()
	t2 := a.Scale(2 * cosThetaI)
	rs := t1.Subtract(t2).Divide(t1.Add(t2))

	t3 := a2PlusB2.Scale(cos2).Add(core.NewUniformSpectrum(sin2 * sin2))
	t4 := t2.Scale(sin2)
	rp := rs.Multiply(t3.Subtract(t4)).Divide(t3.Add(t4))

	return rp.Add(rs).Scale(0.5)
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
