package material

import (
	"math"
)

// Matte is a purely diffuse surface. A zero roughness angle gives Lambertian
// reflection; a positive one switches to the rough diffuse model, which
// favors backscattering.
type Matte struct {
	Kd    Texture      // Diffuse reflectance
	Sigma FloatTexture // Roughness angle in degrees, may be nil for smooth
}

// NewMatte creates a diffuse material from a reflectance texture and an
// optional roughness texture.
func NewMatte(kd Texture, sigma FloatTexture) *Matte {
	return &Matte{Kd: kd, Sigma: sigma}
}

// ComputeScatteringFunctions installs a single diffuse lobe, or none when the
// reflectance is black.
func (m *Matte) ComputeScatteringFunctions(si *SurfaceInteraction, mode TransportMode) {
	si.BSDF = NewBSDF(si, 1)

	r := m.Kd.Evaluate(si).Clamp(0, math.Inf(1))
	if r.IsBlack() {
		return
	}

	var sigma float64
	if m.Sigma != nil {
		sigma = clamp(m.Sigma.Evaluate(si), 0, 90)
	}
	if sigma == 0 {
		si.BSDF.Add(NewLambertianReflection(r))
	} else {
		si.BSDF.Add(NewOrenNayar(r, sigma))
	}
}
