package core

import (
	"math"
	"math/rand"
)

// Sampler produces the random values that drive Monte Carlo estimators.
// Deterministic implementations can stand in during tests.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler draws values from a seeded PRNG
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler wraps an existing generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns one value in [0, 1)
func (s *RandomSampler) Get1D() float64 {
	return s.random.Float64()
}

// Get2D returns a pair of values in [0, 1)
func (s *RandomSampler) Get2D() Vec2 {
	return NewVec2(s.random.Float64(), s.random.Float64())
}

// SampleConcentricDisk maps a uniform sample in [0,1)² to the unit disk.
// Shirley's concentric mapping keeps stratified samples stratified, unlike
// rejection sampling.
func SampleConcentricDisk(sample Vec2) Vec2 {
	u := 2*sample.X - 1
	v := 2*sample.Y - 1
	if u == 0 && v == 0 {
		return Vec2{}
	}

	// Each of the four square quadrants wraps onto a disk octant pair
	var r, theta float64
	if math.Abs(u) > math.Abs(v) {
		r = u
		theta = math.Pi / 4 * (v / u)
	} else {
		r = v
		theta = math.Pi/2 - math.Pi/4*(u/v)
	}
	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// SampleCosineHemisphere generates a cosine-weighted direction in the local
// shading frame, where the +z axis is the surface normal. Directions are
// produced by projecting a concentric disk sample up to the hemisphere.
func SampleCosineHemisphere(sample Vec2) Vec3 {
	d := SampleConcentricDisk(sample)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return NewVec3(d.X, d.Y, z)
}

// CosineHemispherePDF returns the density of SampleCosineHemisphere
// for a direction with the given cosine to the normal
func CosineHemispherePDF(cosTheta float64) float64 {
	return cosTheta / math.Pi
}

// UniformSampleSphere generates a uniform direction on the unit sphere
func UniformSampleSphere(sample Vec2) Vec3 {
	z := 1 - 2*sample.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SampleCone samples a direction uniformly within a cone around the +z axis.
// cosThetaMax is the cosine of the cone's half angle.
func SampleCone(sample Vec2, cosThetaMax float64) Vec3 {
	cosTheta := 1 - sample.X*(1-cosThetaMax)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * sample.Y
	return NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// UniformConePDF returns the density of SampleCone over solid angle
func UniformConePDF(cosThetaMax float64) float64 {
	return 1 / (2 * math.Pi * (1 - cosThetaMax))
}
