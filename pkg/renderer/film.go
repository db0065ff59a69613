package renderer

import (
	"image"
	"image/color"

	"github.com/kazijawad/bonsai/pkg/core"
)

// PixelStats tracks sampling statistics for a single pixel. Luminance moments
// drive the adaptive convergence test without storing every sample.
type PixelStats struct {
	ColorAccum       core.Spectrum // Radiance accumulator for the final result
	LuminanceAccum   float64       // Luminance accumulator for convergence
	LuminanceSqAccum float64       // Luminance squared for variance
	SampleCount      int           // Number of samples taken
}

// AddSample adds a new radiance sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Spectrum) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Spectrum {
	if ps.SampleCount == 0 {
		return core.Spectrum{}
	}
	return ps.ColorAccum.Scale(1.0 / float64(ps.SampleCount))
}

// Film accumulates radiance samples for every pixel of the image. Workers
// write to disjoint tile regions, so no locking happens on the sample path.
type Film struct {
	Width  int
	Height int
	pixels [][]PixelStats
}

// NewFilm creates a film with all pixel statistics zeroed
func NewFilm(width, height int) *Film {
	pixels := make([][]PixelStats, height)
	for y := range pixels {
		pixels[y] = make([]PixelStats, width)
	}
	return &Film{
		Width:  width,
		Height: height,
		pixels: pixels,
	}
}

// Pixel returns the statistics for pixel (x, y)
func (f *Film) Pixel(x, y int) *PixelStats {
	return &f.pixels[y][x]
}

// AddSample accumulates a radiance sample at pixel (x, y)
func (f *Film) AddSample(x, y int, color core.Spectrum) {
	f.pixels[y][x].AddSample(color)
}

// ToImage converts the accumulated averages to an 8-bit image with gamma 2.0
func (f *Film) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, spectrumToRGBA(f.pixels[y][x].GetColor()))
		}
	}
	return img
}

// spectrumToRGBA converts linear radiance to a display color with gamma
// correction and clamping
func spectrumToRGBA(s core.Spectrum) color.RGBA {
	s = s.GammaCorrect(2.0).Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * s.R),
		G: uint8(255 * s.G),
		B: uint8(255 * s.B),
		A: 255,
	}
}
