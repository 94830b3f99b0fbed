package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Conformance records what Conform had to do to a source image.
type Conformance struct {
	// SourceWidth and SourceHeight are the decoded dimensions before resampling.
	SourceWidth  int
	SourceHeight int

	// SourceMode is the decoded color mode before conversion.
	SourceMode ColorMode

	// Resized is true when the source was resampled to the target size.
	Resized bool

	// Converted is true when the source was not already in ModeRGB.
	Converted bool
}

// Conform resamples img to width x height and converts it to RGB.
//
// Resampling uses the Lanczos filter and is applied for any size mismatch,
// however large; aspect ratio is not preserved. Color conversion expands
// paletted, grayscale, YCbCr and 16-bit sources to 8-bit RGB and drops alpha.
//
// Parameters:
//   - img: The decoded source image.
//   - width, height: Target dimensions. Both must be positive.
//
// Returns:
//   - *Canvas: A new canvas of exactly width x height.
//   - Conformance: What was changed to get there.
func Conform(img image.Image, width, height int) (*Canvas, Conformance) {
	bounds := img.Bounds()
	conf := Conformance{
		SourceWidth:  bounds.Dx(),
		SourceHeight: bounds.Dy(),
		SourceMode:   ModeOf(img),
	}
	conf.Converted = conf.SourceMode != ModeRGB

	if c, ok := img.(*Canvas); ok && bounds.Dx() == width && bounds.Dy() == height {
		return c.Clone(), conf
	}

	var nrgba *image.NRGBA
	if bounds.Dx() != width || bounds.Dy() != height {
		conf.Resized = true
		nrgba = imaging.Resize(img, width, height, imaging.Lanczos)
	} else {
		nrgba = imaging.Clone(img)
	}

	return canvasFromNRGBA(nrgba), conf
}

// canvasFromNRGBA copies the color channels of src, which must have its
// origin at (0,0), and discards alpha.
func canvasFromNRGBA(src *image.NRGBA) *Canvas {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := NewCanvas(w, h)
	for y := 0; y < h; y++ {
		si := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		di := dst.PixOffset(0, y)
		for x := 0; x < w; x++ {
			dst.Pix[di+0] = src.Pix[si+0]
			dst.Pix[di+1] = src.Pix[si+1]
			dst.Pix[di+2] = src.Pix[si+2]
			si += 4
			di += canvasBPP
		}
	}
	return dst
}
