package material

import (
	"github.com/kazijawad/bonsai/pkg/core"
)

// MaxBxDFs bounds the number of lobes a single BSDF can hold.
const MaxBxDFs = 8

// BSDF aggregates the scattering lobes installed at one intersection and
// presents them as a single distribution in world space. It owns the shared
// local frame the lobes work in; the z axis is the shading normal, while the
// geometric normal is kept separately to classify reflection against
// transmission without leaking energy where the two normals disagree.
//
// A BSDF lives for a single shading evaluation and is discarded afterwards;
// it is never cached or reused across bounces.
type BSDF struct {
	// Eta is the relative index of refraction across the boundary, 1 for
	// opaque surfaces
	Eta float64

	ns, ng core.Vec3 // Shading and geometric normals
	ss, ts core.Vec3 // Tangent and bitangent completing the frame

	nBxDFs int
	bxdfs  [MaxBxDFs]BxDF
}

// NewBSDF builds the local shading frame for an intersection from its shading
// normal and primary tangent. eta is the relative index of refraction across
// the surface boundary; opaque materials pass 1.
func NewBSDF(si *SurfaceInteraction, eta float64) *BSDF {
	ns := si.Shading.Normal
	ss := si.Shading.Dpdu.Subtract(ns.Multiply(ns.Dot(si.Shading.Dpdu)))
	if ss.LengthSquared() < 1e-12 {
		// Degenerate tangent, build an arbitrary frame around the normal
		ss, _ = core.CoordinateSystem(ns)
	} else {
		ss = ss.Normalize()
	}
	return &BSDF{
		Eta: eta,
		ns:  ns,
		ng:  si.Normal,
		ss:  ss,
		ts:  ns.Cross(ss),
	}
}

// Add appends a lobe. Exceeding MaxBxDFs is a material authoring error and
// panics rather than silently dropping energy.
func (b *BSDF) Add(lobe BxDF) {
	if b.nBxDFs >= MaxBxDFs {
		panic("material: BSDF lobe capacity exceeded")
	}
	b.bxdfs[b.nBxDFs] = lobe
	b.nBxDFs++
}

// NumComponents returns how many lobes match the requested flags.
func (b *BSDF) NumComponents(flags BxDFType) int {
	count := 0
	for i := 0; i < b.nBxDFs; i++ {
		if b.bxdfs[i].MatchesFlags(flags) {
			count++
		}
	}
	return count
}

// WorldToLocal projects a world-space direction onto the shading frame.
func (b *BSDF) WorldToLocal(v core.Vec3) core.Vec3 {
	return core.NewVec3(v.Dot(b.ss), v.Dot(b.ts), v.Dot(b.ns))
}

// LocalToWorld expresses a local-frame direction in world space.
func (b *BSDF) LocalToWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		b.ss.X*v.X+b.ts.X*v.Y+b.ns.X*v.Z,
		b.ss.Y*v.X+b.ts.Y*v.Y+b.ns.Y*v.Z,
		b.ss.Z*v.X+b.ts.Z*v.Y+b.ns.Z*v.Z,
	)
}

// F evaluates the distribution for a world-space direction pair, summing the
// matching lobes. Whether a lobe counts as reflection or transmission is
// decided against the geometric normal, not the shading normal.
func (b *BSDF) F(woW, wiW core.Vec3, flags BxDFType) core.Spectrum {
	wi, wo := b.WorldToLocal(wiW), b.WorldToLocal(woW)
	if wo.Z == 0 {
		return core.Spectrum{}
	}
	reflect := wiW.Dot(b.ng)*woW.Dot(b.ng) > 0

	var f core.Spectrum
	for i := 0; i < b.nBxDFs; i++ {
		lobe := b.bxdfs[i]
		if !lobe.MatchesFlags(flags) {
			continue
		}
		if (reflect && lobe.Type&BxDFReflection != 0) ||
			(!reflect && lobe.Type&BxDFTransmission != 0) {
			f = f.Add(lobe.F(wo, wi))
		}
	}
	return f
}

// SampleF draws an incident direction in world space. The lobe to sample is
// picked uniformly among those matching flags using lobeSelector, then the
// reported value and density are widened to cover every matching lobe so the
// estimator stays consistent: for a non-specular choice the pdf gains the
// other matching lobes' densities and f is re-summed over them, and whenever
// more than one lobe matched the pdf is divided by the match count.
//
// A zero spectrum with pdf 0 means no interaction; callers terminate the
// path. The returned type flags identify the sampled lobe, letting callers
// detect delta scattering, whose pdf 1 is a sentinel rather than a density.
func (b *BSDF) SampleF(woW core.Vec3, sample core.Vec2, lobeSelector float64, flags BxDFType) (core.Vec3, core.Spectrum, float64, BxDFType) {
	matching := b.NumComponents(flags)
	if matching == 0 {
		return core.Vec3{}, core.Spectrum{}, 0, 0
	}
	comp := int(lobeSelector * float64(matching))
	if comp > matching-1 {
		comp = matching - 1
	}

	chosenIdx := -1
	for i := 0; i < b.nBxDFs; i++ {
		if b.bxdfs[i].MatchesFlags(flags) {
			if comp == 0 {
				chosenIdx = i
				break
			}
			comp--
		}
	}
	chosen := b.bxdfs[chosenIdx]

	wo := b.WorldToLocal(woW)
	if wo.Z == 0 {
		return core.Vec3{}, core.Spectrum{}, 0, 0
	}

	wi, f, pdf, sampledType := chosen.SampleF(wo, sample)
	if pdf == 0 {
		return core.Vec3{}, core.Spectrum{}, 0, 0
	}
	wiW := b.LocalToWorld(wi)

	if chosen.Type&BxDFSpecular == 0 && matching > 1 {
		for i := 0; i < b.nBxDFs; i++ {
			if i != chosenIdx && b.bxdfs[i].MatchesFlags(flags) {
				pdf += b.bxdfs[i].PDF(wo, wi)
			}
		}
	}
	if matching > 1 {
		pdf /= float64(matching)
	}

	if chosen.Type&BxDFSpecular == 0 {
		reflect := wiW.Dot(b.ng)*woW.Dot(b.ng) > 0
		f = core.Spectrum{}
		for i := 0; i < b.nBxDFs; i++ {
			lobe := b.bxdfs[i]
			if !lobe.MatchesFlags(flags) {
				continue
			}
			if (reflect && lobe.Type&BxDFReflection != 0) ||
				(!reflect && lobe.Type&BxDFTransmission != 0) {
				f = f.Add(lobe.F(wo, wi))
			}
		}
	}
	return wiW, f, pdf, sampledType
}

// PDF returns the mean density of the matching lobes for a world-space
// direction pair, zero when nothing matches or the geometry is degenerate.
func (b *BSDF) PDF(woW, wiW core.Vec3, flags BxDFType) float64 {
	if b.nBxDFs == 0 || woW.IsZero() {
		return 0
	}
	wo, wi := b.WorldToLocal(woW), b.WorldToLocal(wiW)
	if wo.Z == 0 {
		return 0
	}

	var pdf float64
	matching := 0
	for i := 0; i < b.nBxDFs; i++ {
		if b.bxdfs[i].MatchesFlags(flags) {
			matching++
			pdf += b.bxdfs[i].PDF(wo, wi)
		}
	}
	if matching == 0 {
		return 0
	}
	return pdf / float64(matching)
}
