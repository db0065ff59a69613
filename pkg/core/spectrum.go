package core

import (
	"math"
)

// Spectrum represents a radiometric quantity as an RGB triple.
// Values are linear; clamping and gamma are applied only at the film.
type Spectrum struct {
	R, G, B float64
}

// NewSpectrum creates a new Spectrum from RGB components
func NewSpectrum(r, g, b float64) Spectrum {
	return Spectrum{R: r, G: g, B: b}
}

// NewUniformSpectrum creates a Spectrum with the same value in every channel
func NewUniformSpectrum(v float64) Spectrum {
	return Spectrum{R: v, G: v, B: v}
}

// Add returns the component-wise sum of two spectra
func (s Spectrum) Add(other Spectrum) Spectrum {
	return Spectrum{s.R + other.R, s.G + other.G, s.B + other.B}
}

// Subtract returns the component-wise difference of two spectra
func (s Spectrum) Subtract(other Spectrum) Spectrum {
	return Spectrum{s.R - other.R, s.G - other.G, s.B - other.B}
}

// Multiply returns the component-wise product of two spectra
func (s Spectrum) Multiply(other Spectrum) Spectrum {
	return Spectrum{s.R * other.R, s.G * other.G, s.B * other.B}
}

// Divide returns the component-wise quotient of two spectra
func (s Spectrum) Divide(other Spectrum) Spectrum {
	return Spectrum{s.R / other.R, s.G / other.G, s.B / other.B}
}

// Scale returns the spectrum scaled by a scalar
func (s Spectrum) Scale(scalar float64) Spectrum {
	return Spectrum{s.R * scalar, s.G * scalar, s.B * scalar}
}

// Sqrt returns the component-wise square root of the spectrum
func (s Spectrum) Sqrt() Spectrum {
	return Spectrum{math.Sqrt(s.R), math.Sqrt(s.G), math.Sqrt(s.B)}
}

// Clamp returns a spectrum with components clamped to [min, max]
func (s Spectrum) Clamp(minVal, maxVal float64) Spectrum {
	return Spectrum{
		R: max(minVal, min(maxVal, s.R)),
		G: max(minVal, min(maxVal, s.G)),
		B: max(minVal, min(maxVal, s.B)),
	}
}

// Lerp linearly interpolates between this spectrum and another
func (s Spectrum) Lerp(other Spectrum, t float64) Spectrum {
	return s.Scale(1 - t).Add(other.Scale(t))
}

// GammaCorrect applies gamma correction for display
func (s Spectrum) GammaCorrect(gamma float64) Spectrum {
	invGamma := 1.0 / gamma
	return Spectrum{
		R: math.Pow(s.R, invGamma),
		G: math.Pow(s.G, invGamma),
		B: math.Pow(s.B, invGamma),
	}
}

// Luminance returns the perceptual luminance of the spectrum
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (s Spectrum) Luminance() float64 {
	return 0.299*s.R + 0.587*s.G + 0.114*s.B
}

// MaxComponent returns the largest channel value
func (s Spectrum) MaxComponent() float64 {
	return max(s.R, max(s.G, s.B))
}

// IsBlack reports whether every channel is exactly zero
func (s Spectrum) IsBlack() bool {
	return s.R == 0 && s.G == 0 && s.B == 0
}

// IsFinite reports whether every channel is a finite number
func (s Spectrum) IsFinite() bool {
	return !math.IsNaN(s.R) && !math.IsInf(s.R, 0) &&
		!math.IsNaN(s.G) && !math.IsInf(s.G, 0) &&
		!math.IsNaN(s.B) && !math.IsInf(s.B, 0)
}
