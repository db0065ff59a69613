package material

import (
	"math"
)

// Plastic layers a dielectric specular coat over a diffuse base, the classic
// two-lobe approximation of a lacquered surface.
type Plastic struct {
	Kd Texture // Diffuse base reflectance
	Ks Texture // Specular coat reflectance
}

// NewPlastic creates a coated diffuse material
func NewPlastic(kd, ks Texture) *Plastic {
	return &Plastic{Kd: kd, Ks: ks}
}

// ComputeScatteringFunctions installs the diffuse base and the specular coat,
// skipping either lobe when its reflectance is black.
func (p *Plastic) ComputeScatteringFunctions(si *SurfaceInteraction, mode TransportMode) {
	si.BSDF = NewBSDF(si, 1)

	kd := p.Kd.Evaluate(si).Clamp(0, math.Inf(1))
	if !kd.IsBlack() {
		si.BSDF.Add(NewLambertianReflection(kd))
	}

	ks := p.Ks.Evaluate(si).Clamp(0, math.Inf(1))
	if !ks.IsBlack() {
		si.BSDF.Add(NewSpecularReflection(ks, NewFresnelDielectric(1, 1.5)))
	}
}
