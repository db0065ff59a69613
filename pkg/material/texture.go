package material

import (
	"math"

	"github.com/kazijawad/bonsai/pkg/core"
)

// Texture supplies a spectrum that varies over a surface. Materials evaluate
// their textures at the intersection point to obtain reflectance parameters.
type Texture interface {
	Evaluate(si *SurfaceInteraction) core.Spectrum
}

// FloatTexture supplies a scalar that varies over a surface, such as a
// roughness angle or an index of refraction.
type FloatTexture interface {
	Evaluate(si *SurfaceInteraction) float64
}

// ConstantTexture returns the same spectrum everywhere.
type ConstantTexture struct {
	Value core.Spectrum
}

// NewConstantTexture creates a texture with a fixed spectrum value
func NewConstantTexture(v core.Spectrum) ConstantTexture {
	return ConstantTexture{Value: v}
}

// Evaluate returns the constant value regardless of the interaction
func (t ConstantTexture) Evaluate(si *SurfaceInteraction) core.Spectrum {
	return t.Value
}

// ConstantFloatTexture returns the same scalar everywhere.
type ConstantFloatTexture struct {
	Value float64
}

// NewConstantFloatTexture creates a texture with a fixed scalar value
func NewConstantFloatTexture(v float64) ConstantFloatTexture {
	return ConstantFloatTexture{Value: v}
}

// Evaluate returns the constant value regardless of the interaction
func (t ConstantFloatTexture) Evaluate(si *SurfaceInteraction) float64 {
	return t.Value
}

// CheckerTexture alternates two textures in a checker pattern anchored in
// world space, so the pattern stays stable under reparameterization.
type CheckerTexture struct {
	Odd   Texture
	Even  Texture
	Scale float64
}

// NewCheckerTexture creates a checker pattern alternating between two textures
func NewCheckerTexture(odd, even Texture, scale float64) CheckerTexture {
	return CheckerTexture{Odd: odd, Even: even, Scale: scale}
}

// Evaluate picks the odd or even texture based on the hit position
func (t CheckerTexture) Evaluate(si *SurfaceInteraction) core.Spectrum {
	sines := math.Sin(t.Scale*si.Point.X) *
		math.Sin(t.Scale*si.Point.Y) *
		math.Sin(t.Scale*si.Point.Z)
	if sines < 0 {
		return t.Odd.Evaluate(si)
	}
	return t.Even.Evaluate(si)
}
