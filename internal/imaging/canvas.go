package imaging

import (
	"image"
	"image/color"
)

// Canvas is an in-memory 8-bit RGB image without an alpha channel.
//
// It is the canonical pixel store for both conformed sources and the merge
// accumulator. Canvas implements image.Image; every pixel reports full
// opacity, so it can be passed directly to encoders and filters.
type Canvas struct {
	// Pix holds the image's pixels in R, G, B order. The pixel at
	// (x, y) starts at Pix[y*Stride + x*3].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds. Min is always (0,0).
	Rect image.Rectangle
}

// bytes per pixel: r, g, b
const canvasBPP = 3

// NewCanvas returns a width x height canvas with every pixel set to Black.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{
		Pix:    make([]uint8, width*height*canvasBPP),
		Stride: width * canvasBPP,
		Rect:   image.Rect(0, 0, width, height),
	}
}

// ColorModel returns color.RGBAModel.
func (c *Canvas) ColorModel() color.Model { return color.RGBAModel }

// Bounds returns the domain for which At can return non-zero color.
func (c *Canvas) Bounds() image.Rectangle { return c.Rect }

// Opaque reports true; a Canvas has no alpha channel.
func (c *Canvas) Opaque() bool { return true }

// At returns the opaque color at (x, y), or transparent black out of bounds.
func (c *Canvas) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(c.Rect)) {
		return color.RGBA{}
	}
	return c.RGBAt(x, y).RGBA()
}

// PixOffset returns the index of the first element of Pix that corresponds to
// the pixel at (x, y).
func (c *Canvas) PixOffset(x, y int) int {
	return y*c.Stride + x*canvasBPP
}

// RGBAt returns the pixel at (x, y). Coordinates must be in bounds.
func (c *Canvas) RGBAt(x, y int) RGB {
	i := c.PixOffset(x, y)
	p := c.Pix[i : i+canvasBPP : i+canvasBPP]
	return RGB{R: p[0], G: p[1], B: p[2]}
}

// SetRGB sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (c *Canvas) SetRGB(x, y int, v RGB) {
	if !(image.Point{X: x, Y: y}.In(c.Rect)) {
		return
	}
	i := c.PixOffset(x, y)
	p := c.Pix[i : i+canvasBPP : i+canvasBPP]
	p[0], p[1], p[2] = v.R, v.G, v.B
}

// Clone returns a deep copy of c.
func (c *Canvas) Clone() *Canvas {
	pix := make([]uint8, len(c.Pix))
	copy(pix, c.Pix)
	return &Canvas{Pix: pix, Stride: c.Stride, Rect: c.Rect}
}
