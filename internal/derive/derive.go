// Package derive computes the secondary outputs of a restored composite.
//
// Each function reads its input without modifying it, so several derivatives
// can be produced from the same composite independently.
package derive

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/gift"
)

// UnsharpThreshold is the minimum difference, in 8-bit units, between a pixel
// and its blurred value for sharpening to touch it. It keeps near-flat areas
// from having their noise amplified.
const UnsharpThreshold = 3

// EnhanceOptions configures Enhance.
type EnhanceOptions struct {
	// Radius is the Gaussian blur sigma of the unsharp mask.
	Radius float64
	// Percent is the sharpening strength; 100 adds the full difference once.
	Percent float64
	// ContrastFactor scales distance from the image's mean gray level. 1
	// leaves the image unchanged, 0 produces flat gray at the mean, values
	// above 1 increase contrast.
	ContrastFactor float64
}

// DefaultEnhanceOptions returns the settings used when none are given.
func DefaultEnhanceOptions() EnhanceOptions {
	return EnhanceOptions{
		Radius:         1.5,
		Percent:        150,
		ContrastFactor: 1.1,
	}
}

// Validate reports the first option that is negative, infinite or not a
// number.
func (o EnhanceOptions) Validate() error {
	switch {
	case invalid(o.Radius):
		return fmt.Errorf("invalid sharpen radius: %v", o.Radius)
	case invalid(o.Percent):
		return fmt.Errorf("invalid sharpen percent: %v", o.Percent)
	case invalid(o.ContrastFactor):
		return fmt.Errorf("invalid contrast factor: %v", o.ContrastFactor)
	}
	return nil
}

func invalid(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v < 0
}

// Invert returns a copy of img with every color channel replaced by 255-v.
// Alpha is preserved.
func Invert(img image.Image) *image.RGBA {
	return effect.Invert(img)
}

// Enhance sharpens img with an unsharp mask and then adjusts its contrast.
//
// The unsharp mask blurs with a Gaussian of sigma Radius and adds back
// Percent/100 of the difference wherever it exceeds UnsharpThreshold. The
// contrast step then scales every channel's distance from the mean luma of
// the sharpened image by ContrastFactor, so a uniform image is left as is.
//
// # Errors
//
//   - Returns error if opts fails Validate; img is not touched in that case
func Enhance(img image.Image, opts EnhanceOptions) (*image.NRGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	sharpen := gift.New(gift.UnsharpMask(
		float32(opts.Radius),
		float32(opts.Percent/100),
		float32(UnsharpThreshold)/255,
	))
	sharpen.SetParallelization(false)
	sharpened := image.NewNRGBA(sharpen.Bounds(img.Bounds()))
	sharpen.Draw(sharpened, img)

	contrast := gift.New(contrastFilter(meanLuma(sharpened), opts.ContrastFactor))
	contrast.SetParallelization(false)
	dst := image.NewNRGBA(contrast.Bounds(sharpened.Bounds()))
	contrast.Draw(dst, sharpened)
	return dst, nil
}

// contrastFilter blends every color channel with the gray level mean, given
// on the 0-255 scale: v' = mean + factor*(v-mean). Results are clamped when
// written. Alpha is left alone.
func contrastFilter(mean, factor float64) gift.Filter {
	m := float32(mean / 255)
	f := float32(factor)
	return gift.ColorFunc(func(r0, g0, b0, a0 float32) (r, g, b, a float32) {
		return m + f*(r0-m), m + f*(g0-m), m + f*(b0-m), a0
	})
}

// meanLuma returns the average ITU-R 601 luma of img rounded to the nearest
// integer. Luma is computed per pixel in 8-bit fixed point, the same way an
// RGB to grayscale conversion does.
func meanLuma(img *image.NRGBA) float64 {
	b := img.Rect
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}

	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			p := img.Pix[i : i+4 : i+4]
			sum += (uint64(p[0])*19595 + uint64(p[1])*38470 + uint64(p[2])*7471 + 0x8000) >> 16
			i += 4
		}
	}
	return math.Floor(float64(sum)/float64(n) + 0.5)
}
