package imaging

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// createTestImage writes a uniformly colored PNG into dir and returns its path.
func createTestImage(t *testing.T, dir, name string, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writePNG(t, dir, name, img)
}

// writePNG encodes img as PNG into dir/name and returns the path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestIsSourceFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.png", true},
		{"a.PNG", true},
		{"a.jpg", true},
		{"a.JpEg", true},
		{"a.bmp", true},
		{"a.gif", true},
		{"a.tiff", false},
		{"a.webp", false},
		{"png", false},
		{"a.png.txt", false},
		{".png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSourceFile(tt.name); got != tt.want {
				t.Errorf("IsSourceFile(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestCollectImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.PNG", "a.jpg", "c.gif", "notes.txt", "d.tiff"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	// A directory with an image extension must not be collected.
	if err := os.Mkdir(filepath.Join(dir, "nested.png"), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	createTestImage(t, filepath.Join(dir, "nested.png"), "inner.png", 2, 2, color.RGBA{1, 2, 3, 255})

	got, err := CollectImages(dir)
	if err != nil {
		t.Fatalf("CollectImages failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.PNG"),
		filepath.Join(dir, "c.gif"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectImages: got %v, want %v", got, want)
	}
}

func TestCollectImages_Empty(t *testing.T) {
	got, err := CollectImages(t.TempDir())
	if err != nil {
		t.Fatalf("CollectImages failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no images, got %v", got)
	}
}

func TestCollectImages_MissingDir(t *testing.T) {
	_, err := CollectImages(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("CollectImages should fail for a missing directory")
	}
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	path := createTestImage(t, dir, "probe.png", 200, 150, color.RGBA{255, 128, 64, 255})

	info, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if info.Width != 200 || info.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
}

func TestProbe_Paletted(t *testing.T) {
	dir := t.TempDir()
	pal := color.Palette{color.RGBA{0, 0, 0, 255}, color.RGBA{200, 10, 10, 255}}
	img := image.NewPaletted(image.Rect(0, 0, 7, 5), pal)

	path := filepath.Join(dir, "pal.gif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := gif.Encode(f, img, nil); err != nil {
		t.Fatalf("failed to encode gif: %v", err)
	}
	f.Close()

	info, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if info.Mode != ModePaletted {
		t.Errorf("Mode: got %s, want %s", info.Mode, ModePaletted)
	}
	if info.Format != "gif" {
		t.Errorf("Format: got %s, want gif", info.Format)
	}
}

func TestProbe_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := Probe(path); err == nil {
		t.Error("Probe should fail for invalid image data")
	}
	if _, err := Probe(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Probe should fail for a missing file")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := createTestImage(t, dir, "load.png", 30, 20, color.RGBA{10, 20, 30, 255})

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", b.Dx(), b.Dy())
	}

	if got := rgbAt(img, 5, 5); got != (RGB{10, 20, 30}) {
		t.Errorf("pixel: got %v, want (10,20,30)", got)
	}
}

func TestLoad_KeepsStoredColorOfTranslucentPixels(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	path := writePNG(t, dir, "alpha.png", src)

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got, want := rgbAt(img, 1, 1), (RGB{200, 100, 50}); got != want {
		t.Errorf("pixel: got %v, want %v", got, want)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load should fail for invalid image data")
	}
	if _, err := Load(filepath.Join(dir, "nope.png")); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestModeOf(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)

	opaque := image.NewRGBA(rect)
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 0xff
	}
	translucent := image.NewNRGBA(rect)

	tests := []struct {
		name string
		img  image.Image
		want ColorMode
	}{
		{"canvas", NewCanvas(2, 2), ModeRGB},
		{"opaque rgba", opaque, ModeRGB},
		{"translucent nrgba", translucent, ModeRGBA},
		{"ycbcr", image.NewYCbCr(rect, image.YCbCrSubsampleRatio420), ModeRGB},
		{"paletted", image.NewPaletted(rect, color.Palette{color.Black}), ModePaletted},
		{"gray", image.NewGray(rect), ModeGray},
		{"gray16", image.NewGray16(rect), ModeGray16},
		{"rgba64", image.NewRGBA64(rect), ModeRGBA64},
		{"cmyk", image.NewCMYK(rect), ModeCMYK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModeOf(tt.img); got != tt.want {
				t.Errorf("ModeOf: got %s, want %s", got, tt.want)
			}
		})
	}
}
