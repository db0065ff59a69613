package material

import (
	"math"
	"testing"

	"github.com/kazijawad/bonsai/pkg/core"
)

func TestFresnelDielectric_NormalIncidence(t *testing.T) {
	// At normal incidence the reflectance reduces to ((etaT-etaI)/(etaT+etaI))^2
	fresnel := NewFresnelDielectric(1.0, 1.5)
	got := fresnel.Evaluate(1.0).R
	expected := math.Pow((1.5-1.0)/(1.5+1.0), 2)

	if math.Abs(got-expected) > 1e-10 {
		t.Errorf("Normal incidence reflectance: got %f, expected %f", got, expected)
	}
}

func TestFresnelDielectric_TotalInternalReflection(t *testing.T) {
	// Traveling from glass to air, the critical angle is asin(1/1.5) ~ 41.8
	// degrees. Past it, everything reflects.
	criticalCos := math.Sqrt(1 - 1/(1.5*1.5))
	grazingCos := criticalCos * 0.5

	got := FrDielectric(grazingCos, 1.5, 1.0)
	if got != 1.0 {
		t.Errorf("Past critical angle: got %f, expected exactly 1.0", got)
	}
}

func TestFresnelDielectric_InsideMediumSwapsIndices(t *testing.T) {
	// A negative cosine means the ray arrives from the transmitted side; the
	// result must match evaluating with swapped indices and a flipped cosine.
	for _, cosI := range []float64{0.2, 0.5, 0.9, 1.0} {
		fromOutside := FrDielectric(cosI, 1.5, 1.0)
		fromInside := FrDielectric(-cosI, 1.0, 1.5)
		if math.Abs(fromOutside-fromInside) > 1e-12 {
			t.Errorf("cos %f: outside %f != inside %f", cosI, fromOutside, fromInside)
		}
	}
}

func TestFresnelDielectric_GrazingIncidence(t *testing.T) {
	// Reflectance approaches 1 at grazing angles
	got := FrDielectric(1e-6, 1.0, 1.5)
	if got < 0.99 {
		t.Errorf("Grazing reflectance: got %f, expected near 1", got)
	}
}

func TestFresnelDielectric_RangeAndMonotonicity(t *testing.T) {
	prev := -1.0
	// Sweep from grazing to normal incidence; reflectance stays in [0, 1]
	// and never increases as the cosine grows.
	for cosI := 0.01; cosI <= 1.0; cosI += 0.01 {
		r := FrDielectric(cosI, 1.0, 1.5)
		if r < 0 || r > 1 {
			t.Fatalf("Reflectance %f out of [0,1] at cos %f", r, cosI)
		}
		if prev >= 0 && r > prev+1e-9 {
			t.Fatalf("Reflectance increased from %f to %f at cos %f", prev, r, cosI)
		}
		prev = r
	}
}

func TestFresnelConductor_NormalIncidence(t *testing.T) {
	// At normal incidence the conductor formula reduces to
	// ((eta-1)^2 + k^2) / ((eta+1)^2 + k^2) per channel.
	eta := core.NewSpectrum(0.2, 0.92, 1.1)
	k := core.NewSpectrum(3.9, 2.45, 2.14)
	fresnel := NewFresnelConductor(core.NewUniformSpectrum(1), eta, k)

	got := fresnel.Evaluate(1.0)
	expect := func(e, kk float64) float64 {
		return ((e-1)*(e-1) + kk*kk) / ((e+1)*(e+1) + kk*kk)
	}
	expected := core.NewSpectrum(expect(eta.R, k.R), expect(eta.G, k.G), expect(eta.B, k.B))

	if math.Abs(got.R-expected.R) > 1e-9 ||
		math.Abs(got.G-expected.G) > 1e-9 ||
		math.Abs(got.B-expected.B) > 1e-9 {
		t.Errorf("Conductor normal incidence: got %v, expected %v", got, expected)
	}
}

func TestFresnelConductor_RangePerChannel(t *testing.T) {
	eta := core.NewSpectrum(0.2, 0.92, 1.1)
	k := core.NewSpectrum(3.9, 2.45, 2.14)
	fresnel := NewFresnelConductor(core.NewUniformSpectrum(1), eta, k)

	for cosI := 0.05; cosI <= 1.0; cosI += 0.05 {
		r := fresnel.Evaluate(cosI)
		for _, c := range []float64{r.R, r.G, r.B} {
			if c < 0 || c > 1 {
				t.Fatalf("Conductor reflectance %v out of range at cos %f", r, cosI)
			}
		}
	}
}

func TestFresnelNoOp_UnitReflectance(t *testing.T) {
	fresnel := NewFresnelNoOp()
	for _, cosI := range []float64{-1, -0.3, 0, 0.4, 1} {
		r := fresnel.Evaluate(cosI)
		if r.R != 1 || r.G != 1 || r.B != 1 {
			t.Errorf("NoOp at cos %f: got %v, expected unit", cosI, r)
		}
	}
}
