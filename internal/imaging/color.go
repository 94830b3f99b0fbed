package imaging

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Sentinel colors. A pixel equal to either carries no information.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// IsSentinel reports whether c is exactly Black or exactly White.
// There is no tolerance: (1,0,0) and (255,255,254) are real content.
func (c RGB) IsSentinel() bool {
	return c == Black || c == White
}

// RGBA returns c as an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Hex returns the color in "#rrggbb" form.
func (c RGB) Hex() string {
	col, _ := colorful.MakeColor(c.RGBA())
	return col.Hex()
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}
