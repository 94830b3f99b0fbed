package composite

import (
	"fmt"

	"github.com/ironsheep/image-restore/internal/imaging"
)

// Canonical is the output geometry every source is conformed to.
type Canonical struct {
	Width  int
	Height int
	// Mode is always imaging.ModeRGB; it is kept so callers can report it.
	Mode imaging.ColorMode
}

// Canonicalize fixes the output size from the first path.
//
// Only the header of paths[0] is read. The color mode is RGB regardless of
// what the first file uses.
//
// # Errors
//
//   - ErrNoImages if paths is empty
//   - *DecodeError if the first file cannot be opened or its header decoded
func Canonicalize(paths []string) (Canonical, error) {
	if len(paths) == 0 {
		return Canonical{}, ErrNoImages
	}

	info, err := imaging.Probe(paths[0])
	if err != nil {
		return Canonical{}, &DecodeError{Path: paths[0], Err: err}
	}
	if info.Width <= 0 || info.Height <= 0 {
		return Canonical{}, &DecodeError{
			Path: paths[0],
			Err:  fmt.Errorf("invalid dimensions %dx%d", info.Width, info.Height),
		}
	}

	return Canonical{
		Width:  info.Width,
		Height: info.Height,
		Mode:   imaging.ModeRGB,
	}, nil
}
