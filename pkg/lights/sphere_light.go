package lights

import (
	"math"

	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/geometry"
	"github.com/kazijawad/bonsai/pkg/material"
)

// SphereLight is a spherical area light. Shading points outside the sphere
// sample the cone it subtends; points inside fall back to uniform surface
// sampling.
type SphereLight struct {
	*geometry.Sphere
	Emission core.Spectrum
}

// NewSphereLight creates a spherical light
func NewSphereLight(center core.Vec3, radius float64, emission core.Spectrum) *SphereLight {
	return &SphereLight{
		Sphere:   geometry.NewSphere(center, radius, material.NewEmissive(emission)),
		Emission: emission,
	}
}

// Sample implements the Light interface
func (sl *SphereLight) Sample(point core.Vec3, sample core.Vec2) LightSample {
	toCenter := sl.Center.Subtract(point)
	if toCenter.Length() <= sl.Radius {
		return sl.sampleUniform(point, sample)
	}
	return sl.sampleCone(point, sample)
}

// sampleUniform draws a point uniformly on the whole surface, used when the
// shading point sits inside the sphere.
func (sl *SphereLight) sampleUniform(point core.Vec3, sample core.Vec2) LightSample {
	localDir := core.UniformSampleSphere(sample)
	samplePoint := sl.Center.Add(localDir.Multiply(sl.Radius))
	normal := localDir

	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	direction := toLight.Multiply(1.0 / distance)

	// Area density converted to solid angle at the shading point
	cosTheta := math.Abs(normal.Dot(direction))
	if cosTheta < 1e-8 || distance < 1e-8 {
		return LightSample{Point: samplePoint, Normal: normal, Direction: direction, Distance: distance}
	}
	areaPDF := 1.0 / (4.0 * math.Pi * sl.Radius * sl.Radius)

	var emission core.Spectrum
	if normal.Dot(direction) < 0 {
		emission = sl.Emission
	}

	return LightSample{
		Point:     samplePoint,
		Normal:    normal,
		Direction: direction,
		Distance:  distance,
		Emission:  emission,
		PDF:       areaPDF * distance * distance / cosTheta,
	}
}

// sampleCone draws a direction within the cone the sphere subtends as seen
// from the shading point.
func (sl *SphereLight) sampleCone(point core.Vec3, sample core.Vec2) LightSample {
	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()

	// Orthonormal basis with w toward the sphere center
	w := toCenter.Multiply(1.0 / distanceToCenter)
	u, v := core.CoordinateSystem(w)

	sinThetaMax := sl.Radius / distanceToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))

	local := core.SampleCone(sample, cosThetaMax)
	direction := u.Multiply(local.X).Add(v.Multiply(local.Y)).Add(w.Multiply(local.Z))

	// Intersect our own sphere for the actual surface point
	ray := core.NewRay(point, direction)
	si, hit := sl.Sphere.Hit(ray, 0.001, math.Inf(1))
	if !hit {
		// Grazing numerical miss at the cone boundary
		return sl.sampleUniform(point, sample)
	}

	return LightSample{
		Point:     si.Point,
		Normal:    si.Normal,
		Direction: direction,
		Distance:  si.T,
		Emission:  sl.Emission,
		PDF:       core.UniformConePDF(cosThetaMax),
	}
}

// PDF implements the Light interface
func (sl *SphereLight) PDF(point core.Vec3, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	si, hit := sl.Sphere.Hit(ray, 0.001, math.Inf(1))
	if !hit {
		return 0.0
	}

	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()

	if distanceToCenter <= sl.Radius {
		cosTheta := math.Abs(si.Normal.Dot(direction))
		if cosTheta < 1e-8 {
			return 0.0
		}
		areaPDF := 1.0 / (4.0 * math.Pi * sl.Radius * sl.Radius)
		return areaPDF * si.T * si.T / cosTheta
	}

	sinThetaMax := sl.Radius / distanceToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))
	return core.UniformConePDF(cosThetaMax)
}
