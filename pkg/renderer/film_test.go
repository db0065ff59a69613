package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/kazijawad/bonsai/pkg/core"
)

func TestPixelStats_AddSample(t *testing.T) {
	var ps PixelStats

	red := core.NewSpectrum(1, 0, 0)
	green := core.NewSpectrum(0, 1, 0)
	ps.AddSample(red)
	ps.AddSample(green)

	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}

	avg := ps.GetColor()
	if math.Abs(avg.R-0.5) > 1e-12 || math.Abs(avg.G-0.5) > 1e-12 || avg.B != 0 {
		t.Errorf("Expected average (0.5, 0.5, 0), got %v", avg)
	}

	wantLum := red.Luminance() + green.Luminance()
	if math.Abs(ps.LuminanceAccum-wantLum) > 1e-12 {
		t.Errorf("Expected luminance accumulator %f, got %f", wantLum, ps.LuminanceAccum)
	}

	wantLumSq := red.Luminance()*red.Luminance() + green.Luminance()*green.Luminance()
	if math.Abs(ps.LuminanceSqAccum-wantLumSq) > 1e-12 {
		t.Errorf("Expected squared luminance accumulator %f, got %f", wantLumSq, ps.LuminanceSqAccum)
	}
}

func TestPixelStats_GetColorWithNoSamples(t *testing.T) {
	var ps PixelStats
	if got := ps.GetColor(); !got.IsBlack() {
		t.Errorf("Expected black for an unsampled pixel, got %v", got)
	}
}

func TestFilm_AddSampleRouting(t *testing.T) {
	film := NewFilm(3, 2)
	film.AddSample(2, 1, core.NewSpectrum(1, 1, 1))

	for y := 0; y < film.Height; y++ {
		for x := 0; x < film.Width; x++ {
			want := 0
			if x == 2 && y == 1 {
				want = 1
			}
			if got := film.Pixel(x, y).SampleCount; got != want {
				t.Errorf("Pixel (%d, %d): expected %d samples, got %d", x, y, want, got)
			}
		}
	}
}

func TestFilm_ToImage(t *testing.T) {
	film := NewFilm(2, 1)

	// Gamma 2.0 halves the exponent, and channels clamp at 1 before the
	// 8-bit conversion
	film.AddSample(0, 0, core.NewSpectrum(0.25, 1.0, 4.0))

	img := film.ToImage()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("Expected a 2x1 image, got %v", img.Bounds())
	}

	if got, want := img.RGBAAt(0, 0), (color.RGBA{R: 127, G: 255, B: 255, A: 255}); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got, want := img.RGBAAt(1, 0), (color.RGBA{A: 255}); got != want {
		t.Errorf("Expected an opaque black unsampled pixel, got %v", got)
	}
}

func TestFilm_ToImageAverages(t *testing.T) {
	film := NewFilm(1, 1)
	film.AddSample(0, 0, core.NewSpectrum(1, 1, 1))
	film.AddSample(0, 0, core.Spectrum{})

	// Average 0.5, gamma corrected to sqrt(0.5)
	want := uint8(255 * math.Sqrt(0.5))
	got := film.ToImage().RGBAAt(0, 0)
	if got.R != want || got.G != want || got.B != want {
		t.Errorf("Expected gray %d, got %v", want, got)
	}
}
