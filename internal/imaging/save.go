package imaging

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// outputPerm is applied to every written file; os.CreateTemp uses 0600.
const outputPerm = 0o644

// Save encodes img to path in the format implied by the path's extension.
//
// Supported extensions are those known to imaging.FormatFromFilename:
// .png, .jpg/.jpeg, .gif, .bmp and .tif/.tiff. The image is first encoded to a
// temporary file in the destination directory and renamed into place, so a
// failed encode never leaves a truncated file at path. An existing file at
// path is replaced.
//
// # Errors
//
//   - Returns error if the extension is not a supported output format
//   - Returns error if the temporary file cannot be created, written or renamed
func Save(img image.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("failed to determine output format for %q: %w", path, err)
	}

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %q: %w", path, err)
	}
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmp.Name())
		}
	}()

	if err := imaging.Encode(tmp, img, format,
		imaging.JPEGQuality(95),
		imaging.PNGCompressionLevel(png.BestCompression),
	); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode %s image %q: %w", format, path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %q: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), outputPerm); err != nil {
		return fmt.Errorf("failed to set permissions on %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to rename output into %q: %w", path, err)
	}
	renamed = true
	return nil
}
