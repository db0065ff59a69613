package material

import (
	"math"
	"strings"

	"github.com/kazijawad/bonsai/pkg/core"
)

const invPi = 1 / math.Pi

// BxDFType is a bit set classifying a scattering lobe. Every lobe carries
// Reflection or Transmission together with one of Diffuse, Glossy or
// Specular; a lobe's flags are fixed at construction.
type BxDFType int

const (
	// BxDFReflection marks lobes scattering into the hemisphere of the outgoing direction
	BxDFReflection BxDFType = 1 << iota
	// BxDFTransmission marks lobes scattering into the opposite hemisphere
	BxDFTransmission
	// BxDFDiffuse marks lobes spreading energy across the whole hemisphere
	BxDFDiffuse
	// BxDFGlossy marks lobes concentrating energy around a preferred direction
	BxDFGlossy
	// BxDFSpecular marks delta lobes whose energy sits on a single direction
	BxDFSpecular
)

// BxDFAll matches every lobe regardless of its classification.
const BxDFAll = BxDFReflection | BxDFTransmission | BxDFDiffuse | BxDFGlossy | BxDFSpecular

// String returns a readable form of the flag set, such as "Diffuse|Reflection".
func (t BxDFType) String() string {
	if t == 0 {
		return "None"
	}
	var parts []string
	if t&BxDFDiffuse != 0 {
		parts = append(parts, "Diffuse")
	}
	if t&BxDFGlossy != 0 {
		parts = append(parts, "Glossy")
	}
	if t&BxDFSpecular != 0 {
		parts = append(parts, "Specular")
	}
	if t&BxDFReflection != 0 {
		parts = append(parts, "Reflection")
	}
	if t&BxDFTransmission != 0 {
		parts = append(parts, "Transmission")
	}
	return strings.Join(parts, "|")
}

type bxdfKind int

const (
	lambertianReflection bxdfKind = iota
	orenNayar
	specularReflection
	specularTransmission
)

// BxDF is one scattering lobe expressed in the local shading frame, where the
// z axis is the shading normal and directions point away from the surface.
// The supported lobes form a closed set selected at construction; a BxDF is
// immutable afterwards and safe to copy and share.
type BxDF struct {
	// Type holds the lobe's classification flags
	Type BxDFType

	kind bxdfKind

	// Reflectance or transmittance scale, depending on the lobe
	r core.Spectrum

	// Oren-Nayar terms derived from the roughness angle
	a, b float64

	fresnel Fresnel

	// Refraction indices on either side of the boundary
	etaA, etaB float64

	mode TransportMode
}

// NewLambertianReflection returns a lobe reflecting incident light equally in
// all directions with the given reflectance.
func NewLambertianReflection(r core.Spectrum) BxDF {
	return BxDF{
		Type: BxDFReflection | BxDFDiffuse,
		kind: lambertianReflection,
		r:    r,
	}
}

// NewOrenNayar returns a rough diffuse lobe. Sigma is the standard deviation
// of the microfacet orientation angle in degrees; at sigma 0 the lobe reduces
// to Lambertian reflection.
func NewOrenNayar(r core.Spectrum, sigma float64) BxDF {
	sigma *= math.Pi / 180
	sigma2 := sigma * sigma
	return BxDF{
		Type: BxDFReflection | BxDFDiffuse,
		kind: orenNayar,
		r:    r,
		a:    1 - sigma2/(2*(sigma2+0.33)),
		b:    0.45 * sigma2 / (sigma2 + 0.09),
	}
}

// NewSpecularReflection returns a perfect mirror lobe scaled by the given
// reflectance and attenuated by the Fresnel term.
func NewSpecularReflection(r core.Spectrum, fresnel Fresnel) BxDF {
	return BxDF{
		Type:    BxDFReflection | BxDFSpecular,
		kind:    specularReflection,
		r:       r,
		fresnel: fresnel,
	}
}

// NewSpecularTransmission returns a perfect refraction lobe across the
// boundary between media with indices etaA (outside) and etaB (inside). The
// transport mode decides whether the non-reciprocal radiance scaling applies.
func NewSpecularTransmission(t core.Spectrum, etaA, etaB float64, mode TransportMode) BxDF {
	return BxDF{
		Type: BxDFTransmission | BxDFSpecular,
		kind: specularTransmission,
		r:    t,
		etaA: etaA,
		etaB: etaB,
		mode: mode,
	}
}

// MatchesFlags reports whether every flag of the lobe is contained in the
// requested set.
func (b BxDF) MatchesFlags(flags BxDFType) bool {
	return b.Type&flags == b.Type
}

// F returns the value of the scattering distribution for the given pair of
// local directions. Specular lobes return black; their energy is reachable
// only through SampleF.
func (b BxDF) F(wo, wi core.Vec3) core.Spectrum {
	switch b.kind {
	case lambertianReflection:
		return b.r.Scale(invPi)
	case orenNayar:
		sinThetaI := sinTheta(wi)
		sinThetaO := sinTheta(wo)

		// Cosine of the azimuth difference, clamped to forward scattering
		var maxCos float64
		if sinThetaI > 1e-4 && sinThetaO > 1e-4 {
			dCos := cosPhi(wi)*cosPhi(wo) + sinPhi(wi)*sinPhi(wo)
			maxCos = math.Max(0, dCos)
		}

		var sinAlpha, tanBeta float64
		if absCosTheta(wi) > absCosTheta(wo) {
			sinAlpha = sinThetaO
			tanBeta = sinThetaI / absCosTheta(wi)
		} else {
			sinAlpha = sinThetaI
			tanBeta = sinThetaO / absCosTheta(wo)
		}
		return b.r.Scale(invPi * (b.a + b.b*maxCos*sinAlpha*tanBeta))
	default:
		return core.Spectrum{}
	}
}

// SampleF draws an incident direction for the given outgoing direction.
// Diffuse lobes draw from a cosine-weighted hemisphere and report its true
// density. Specular lobes are deterministic and report pdf 1 as a sentinel;
// their returned weight already folds in the cosine the caller would
// otherwise divide out.
func (b BxDF) SampleF(wo core.Vec3, sample core.Vec2) (core.Vec3, core.Spectrum, float64, BxDFType) {
	switch b.kind {
	case specularReflection:
		wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
		if absCosTheta(wi) == 0 {
			return wi, core.Spectrum{}, 0, b.Type
		}
		f := b.fresnel.Evaluate(cosTheta(wi)).Multiply(b.r).Scale(1 / absCosTheta(wi))
		return wi, f, 1, b.Type
	case specularTransmission:
		entering := cosTheta(wo) > 0
		etaI, etaT := b.etaA, b.etaB
		if !entering {
			etaI, etaT = b.etaB, b.etaA
		}

		wi, ok := refract(wo, core.NewVec3(0, 0, 1).Faceforward(wo), etaI/etaT)
		if !ok {
			// Total internal reflection, no energy crosses the boundary
			return wi, core.Spectrum{}, 0, b.Type
		}

		ft := b.r.Scale(1 - FrDielectric(cosTheta(wi), b.etaA, b.etaB))
		if b.mode == Radiance {
			// Radiance scales by the squared relative index when crossing
			// a boundary; importance transport does not.
			ft = ft.Scale((etaI * etaI) / (etaT * etaT))
		}
		return wi, ft.Scale(1 / absCosTheta(wi)), 1, b.Type
	default:
		wi := core.SampleCosineHemisphere(sample)
		if wo.Z < 0 {
			wi.Z = -wi.Z
		}
		return wi, b.F(wo, wi), b.PDF(wo, wi), b.Type
	}
}

// PDF returns the density SampleF uses for the direction pair, zero for
// specular lobes and for directions on the wrong side of the surface.
func (b BxDF) PDF(wo, wi core.Vec3) float64 {
	switch b.kind {
	case lambertianReflection, orenNayar:
		if !sameHemisphere(wo, wi) {
			return 0
		}
		return absCosTheta(wi) * invPi
	default:
		return 0
	}
}

// Local-frame trigonometry. With z as the shading normal, the spherical
// angles of a unit direction fall out of its components directly.

func cosTheta(w core.Vec3) float64 { return w.Z }

func absCosTheta(w core.Vec3) float64 { return math.Abs(w.Z) }

func sin2Theta(w core.Vec3) float64 { return math.Max(0, 1-w.Z*w.Z) }

func sinTheta(w core.Vec3) float64 { return math.Sqrt(sin2Theta(w)) }

func cosPhi(w core.Vec3) float64 {
	s := sinTheta(w)
	if s == 0 {
		return 1
	}
	return clamp(w.X/s, -1, 1)
}

func sinPhi(w core.Vec3) float64 {
	s := sinTheta(w)
	if s == 0 {
		return 0
	}
	return clamp(w.Y/s, -1, 1)
}

func sameHemisphere(w, wp core.Vec3) bool {
	return w.Z*wp.Z > 0
}

// refract computes the direction of wi refracted about n for the relative
// index eta = etaI/etaT, reporting false under total internal reflection.
// n must lie in the same hemisphere as wi.
func refract(wi, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosThetaI := n.Dot(wi)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wt := wi.Negate().Multiply(eta).Add(n.Multiply(eta*cosThetaI - cosThetaT))
	return wt, true
}
