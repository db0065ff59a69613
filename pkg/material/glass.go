package material

import (
	"math"
)

// Glass is a smooth dielectric with both specular reflection and specular
// transmission. The Fresnel split between the two lobes happens at sampling
// time through their respective weights.
type Glass struct {
	Kr    Texture      // Reflectance
	Kt    Texture      // Transmittance
	Index FloatTexture // Index of refraction of the interior medium
}

// NewGlass creates a smooth dielectric. index is the interior medium's index
// of refraction relative to the exterior.
func NewGlass(kr, kt Texture, index FloatTexture) *Glass {
	return &Glass{Kr: kr, Kt: kt, Index: index}
}

// ComputeScatteringFunctions installs up to two specular lobes sharing the
// boundary's index of refraction.
func (g *Glass) ComputeScatteringFunctions(si *SurfaceInteraction, mode TransportMode) {
	eta := 1.5
	if g.Index != nil {
		eta = g.Index.Evaluate(si)
	}
	si.BSDF = NewBSDF(si, eta)

	r := g.Kr.Evaluate(si).Clamp(0, math.Inf(1))
	t := g.Kt.Evaluate(si).Clamp(0, math.Inf(1))
	if r.IsBlack() && t.IsBlack() {
		return
	}
	if !r.IsBlack() {
		si.BSDF.Add(NewSpecularReflection(r, NewFresnelDielectric(1, eta)))
	}
	if !t.IsBlack() {
		si.BSDF.Add(NewSpecularTransmission(t, 1, eta, mode))
	}
}
