package material

import (
	"math"

	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/loaders"
)

// ImageTexture samples a decoded image by surface UV with nearest-neighbor
// filtering. UVs wrap outside [0, 1].
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Spectrum // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates an image texture from raw pixel data
func NewImageTexture(width, height int, pixels []core.Spectrum) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewImageTextureFromData wraps loaded image data without copying it
func NewImageTextureFromData(data *loaders.ImageData) *ImageTexture {
	return &ImageTexture{
		Width:  data.Width,
		Height: data.Height,
		Pixels: data.Pixels,
	}
}

// Evaluate returns the texel under the interaction's UV coordinates
func (t *ImageTexture) Evaluate(si *SurfaceInteraction) core.Spectrum {
	if t.Width == 0 || t.Height == 0 {
		// Loud fallback for missing data
		return core.NewSpectrum(1, 0, 1)
	}

	u := wrapUnit(si.UV.X)
	v := wrapUnit(si.UV.Y)

	// V=0 is the bottom of the image, so flip for the top-left pixel origin
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int((1-v)*float64(t.Height)), t.Height-1)
	return t.Pixels[y*t.Width+x]
}

// wrapUnit wraps a texture coordinate to [0, 1)
func wrapUnit(x float64) float64 {
	return x - math.Floor(x)
}
