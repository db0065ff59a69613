package lights

import (
	"math"

	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/geometry"
	"github.com/kazijawad/bonsai/pkg/material"
)

// QuadLight is a one-sided rectangular area light. It embeds its quad so the
// scene can intersect it like any other shape; BSDF-sampled rays that reach
// it pick up the emission through the material.
type QuadLight struct {
	*geometry.Quad
	Emission core.Spectrum

	area float64
}

// NewQuadLight creates a rectangular light emitting from its front face, the
// side the quad's U × V normal points away from.
func NewQuadLight(corner, u, v core.Vec3, emission core.Spectrum) *QuadLight {
	return &QuadLight{
		Quad:     geometry.NewQuad(corner, u, v, material.NewEmissive(emission)),
		Emission: emission,
		area:     u.Cross(v).Length(),
	}
}

// Sample implements the Light interface with uniform area sampling
func (ql *QuadLight) Sample(point core.Vec3, sample core.Vec2) LightSample {
	samplePoint := ql.Corner.Add(ql.U.Multiply(sample.X)).Add(ql.V.Multiply(sample.Y))

	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	direction := toLight.Multiply(1.0 / distance)

	// Convert the area density to solid angle at the shading point:
	// pdf = d² / (cosθ · area)
	cosTheta := math.Abs(ql.Normal.Dot(direction))
	if cosTheta < 1e-8 {
		// Edge-on, no contribution possible
		return LightSample{
			Point:     samplePoint,
			Normal:    ql.Normal,
			Direction: direction,
			Distance:  distance,
		}
	}

	var emission core.Spectrum
	if ql.Normal.Dot(direction) < 0 {
		emission = ql.Emission
	}

	return LightSample{
		Point:     samplePoint,
		Normal:    ql.Normal,
		Direction: direction,
		Distance:  distance,
		Emission:  emission,
		PDF:       distance * distance / (cosTheta * ql.area),
	}
}

// PDF implements the Light interface
func (ql *QuadLight) PDF(point core.Vec3, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	si, hit := ql.Quad.Hit(ray, 0.001, math.Inf(1))
	if !hit {
		return 0.0
	}

	cosTheta := math.Abs(ql.Normal.Dot(direction))
	if cosTheta < 1e-8 {
		return 0.0
	}
	return si.T * si.T / (cosTheta * ql.area)
}
