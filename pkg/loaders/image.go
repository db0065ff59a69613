package loaders

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/kazijawad/bonsai/pkg/core"
)

// ImageData holds decoded pixels as a flat spectrum slice, row major from
// the top-left corner.
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Spectrum
}

// LoadImage decodes an image file into spectrum pixels. The format is
// detected from the file header; PNG, JPEG, GIF, WebP, BMP and TIFF are
// supported.
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", filename, err)
	}
	return FromImage(img), nil
}

// FromImage converts an already-decoded image. Sub-images are read through
// their own bounds, so cropped views convert correctly.
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	data := &ImageData{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: make([]core.Spectrum, 0, bounds.Dx()*bounds.Dy()),
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// RGBA reports alpha-premultiplied channels in [0, 65535]
			r, g, b, _ := img.At(x, y).RGBA()
			data.Pixels = append(data.Pixels, core.NewSpectrum(
				float64(r)/65535,
				float64(g)/65535,
				float64(b)/65535,
			))
		}
	}
	return data
}
