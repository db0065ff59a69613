package material

import (
	"math"
)

// Mirror is a perfectly specular reflector with no angular falloff.
type Mirror struct {
	Kr Texture // Reflectance
}

// NewMirror creates a perfect mirror with the given reflectance texture
func NewMirror(kr Texture) *Mirror {
	return &Mirror{Kr: kr}
}

// ComputeScatteringFunctions installs a single specular reflection lobe
func (m *Mirror) ComputeScatteringFunctions(si *SurfaceInteraction, mode TransportMode) {
	si.BSDF = NewBSDF(si, 1)

	r := m.Kr.Evaluate(si).Clamp(0, math.Inf(1))
	if r.IsBlack() {
		return
	}
	si.BSDF.Add(NewSpecularReflection(r, NewFresnelNoOp()))
}
