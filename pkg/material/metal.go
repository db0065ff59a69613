package material

import (
	"github.com/kazijawad/bonsai/pkg/core"
)

// Metal is a smooth conductor. Its reflectance comes entirely from the
// per-channel complex index of refraction, so colored metals like gold and
// copper fall out of their published eta and k values.
type Metal struct {
	Eta Texture // Real part of the index of refraction, per channel
	K   Texture // Absorption coefficient, per channel
}

// NewMetal creates a smooth conductor from its complex index of refraction
func NewMetal(eta, k Texture) *Metal {
	return &Metal{Eta: eta, K: k}
}

// ComputeScatteringFunctions installs a specular lobe with conductor Fresnel
func (m *Metal) ComputeScatteringFunctions(si *SurfaceInteraction, mode TransportMode) {
	si.BSDF = NewBSDF(si, 1)

	fresnel := NewFresnelConductor(
		core.NewUniformSpectrum(1),
		m.Eta.Evaluate(si),
		m.K.Evaluate(si),
	)
	si.BSDF.Add(NewSpecularReflection(core.NewUniformSpectrum(1), fresnel))
}
