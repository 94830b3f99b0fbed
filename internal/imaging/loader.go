package imaging

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp" // Register BMP format decoder
)

// SourceExtensions lists the file extensions, lower-cased, that CollectImages
// treats as candidate sub-images.
var SourceExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif"}

// IsSourceFile reports whether name carries one of SourceExtensions,
// compared case-insensitively.
func IsSourceFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// CollectImages lists the candidate sub-images in dir.
//
// The scan is not recursive. Directories are skipped regardless of their
// name. Paths are returned joined with dir, in directory listing order.
//
// Returns:
//   - []string: Candidate paths. Empty (not nil error) if none match.
//   - error: Non-nil if the directory cannot be read.
func CollectImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsSourceFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// ColorMode names how an image stores its pixels.
type ColorMode string

const (
	ModeRGB      ColorMode = "RGB"
	ModeRGBA     ColorMode = "RGBA"
	ModeRGBA64   ColorMode = "RGBA64"
	ModePaletted ColorMode = "P"
	ModeGray     ColorMode = "L"
	ModeGray16   ColorMode = "L16"
	ModeCMYK     ColorMode = "CMYK"
	ModeUnknown  ColorMode = "unknown"
)

// ModeOf returns the color mode of a decoded image.
//
// Opaque RGBA images and YCbCr (JPEG) images count as ModeRGB, since their
// pixels map onto RGB without losing anything.
func ModeOf(img image.Image) ColorMode {
	switch m := img.(type) {
	case *Canvas:
		return ModeRGB
	case *image.YCbCr:
		return ModeRGB
	case *image.RGBA:
		if m.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.NRGBA:
		if m.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.RGBA64, *image.NRGBA64:
		return ModeRGBA64
	case *image.Paletted:
		return ModePaletted
	case *image.Gray:
		return ModeGray
	case *image.Gray16:
		return ModeGray16
	case *image.CMYK:
		return ModeCMYK
	}
	return modeOfModel(img.ColorModel())
}

func modeOfModel(m color.Model) ColorMode {
	if _, ok := m.(color.Palette); ok {
		return ModePaletted
	}
	switch m {
	case color.RGBAModel, color.NRGBAModel:
		return ModeRGBA
	case color.RGBA64Model, color.NRGBA64Model:
		return ModeRGBA64
	case color.GrayModel:
		return ModeGray
	case color.Gray16Model:
		return ModeGray16
	case color.YCbCrModel:
		return ModeRGB
	case color.CMYKModel:
		return ModeCMYK
	}
	return ModeUnknown
}

// ImageInfo contains header metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the registered decoder name, e.g. "png", "jpeg", "gif", "bmp".
	Format string `json:"format"`

	// Mode is the color mode declared by the file header.
	Mode ColorMode `json:"mode"`
}

// Probe reads only the header of the image at path.
//
// The file is closed before Probe returns. A successful Probe does not
// guarantee that the full pixel data decodes.
func Probe(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	conf, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}

	return &ImageInfo{
		Width:  conf.Width,
		Height: conf.Height,
		Format: format,
		Mode:   modeOfModel(conf.ColorModel),
	}, nil
}

// Load decodes the image at path.
//
// The file handle is released before Load returns; only the decoded pixels
// are retained. EXIF orientation is not applied, so the pixel grid matches
// what other decoders see.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
