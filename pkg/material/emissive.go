package material

import (
	"github.com/kazijawad/bonsai/pkg/core"
)

// Emissive represents a light-emitting material. It scatters nothing; its
// BSDF carries zero lobes so paths terminate at the light.
type Emissive struct {
	Emission core.Spectrum // Emitted radiance
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Spectrum) *Emissive {
	return &Emissive{Emission: emission}
}

// ComputeScatteringFunctions installs an empty BSDF; lights do not reflect
func (e *Emissive) ComputeScatteringFunctions(si *SurfaceInteraction, mode TransportMode) {
	si.BSDF = NewBSDF(si, 1)
}

// Emit returns the emitted radiance, front face only
func (e *Emissive) Emit(si *SurfaceInteraction) core.Spectrum {
	if !si.FrontFace {
		return core.Spectrum{}
	}
	return e.Emission
}
