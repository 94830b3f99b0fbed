package composite

import (
	"image"

	"github.com/ironsheep/image-restore/internal/imaging"
)

// Conflict describes a pixel where a later source replaced an earlier,
// different non-sentinel color.
type Conflict struct {
	X, Y int
	Was  imaging.RGB
	Now  imaging.RGB
}

// FileStats describes what one source contributed.
type FileStats struct {
	// Index is the 0-based position of the source in merge order.
	Index int
	Path  string

	Conformance imaging.Conformance

	// Written counts non-sentinel pixels copied into the accumulator.
	Written int

	// Conflicts counts writes that replaced a different non-sentinel color.
	Conflicts int

	// FirstConflict is the first such replacement in row-major order, or nil.
	FirstConflict *Conflict
}

// Stats summarizes a whole merge.
type Stats struct {
	Files     int
	Merged    int
	Resized   int
	Converted int
	Skipped   []*DecodeError

	Written   int
	Conflicts int

	// Uncovered counts pixels no source ever wrote; they are still Black.
	Uncovered int
}

// Observer receives per-file progress from Merge. Either method may be called
// any number of times, always in file order.
type Observer interface {
	FileMerged(total int, fs FileStats)
	FileSkipped(index, total int, err *DecodeError)
}

// Accumulator is the canonical-size canvas that sources are folded into.
//
// An Accumulator is owned by a single merge and is not safe for concurrent use.
type Accumulator struct {
	canon   Canonical
	canvas  *imaging.Canvas
	covered []bool
}

// NewAccumulator returns an accumulator of canon's size with every pixel Black.
func NewAccumulator(canon Canonical) *Accumulator {
	return &Accumulator{
		canon:   canon,
		canvas:  imaging.NewCanvas(canon.Width, canon.Height),
		covered: make([]bool, canon.Width*canon.Height),
	}
}

// Add conforms img to the canonical size and mode and folds it in.
//
// Every non-sentinel pixel of the conformed image overwrites the accumulator,
// including pixels an earlier source already wrote.
func (a *Accumulator) Add(img image.Image) FileStats {
	src, conf := imaging.Conform(img, a.canon.Width, a.canon.Height)
	fs := FileStats{Conformance: conf}

	w, h := a.canon.Width, a.canon.Height
	dst := a.canvas
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := src.RGBAt(x, y)
			if px.IsSentinel() {
				continue
			}

			i := y*w + x
			if a.covered[i] {
				if was := dst.RGBAt(x, y); was != px {
					fs.Conflicts++
					if fs.FirstConflict == nil {
						fs.FirstConflict = &Conflict{X: x, Y: y, Was: was, Now: px}
					}
				}
			}
			dst.SetRGB(x, y, px)
			a.covered[i] = true
			fs.Written++
		}
	}
	return fs
}

// Uncovered returns the number of pixels no source has written.
func (a *Accumulator) Uncovered() int {
	n := 0
	for _, c := range a.covered {
		if !c {
			n++
		}
	}
	return n
}

// Canvas returns the accumulated image. Callers must not modify it while
// more sources are being added.
func (a *Accumulator) Canvas() *imaging.Canvas {
	return a.canvas
}

// Merge decodes each path in order and folds it into a fresh accumulator.
//
// A path that cannot be decoded is recorded in Stats.Skipped, reported to
// obs, and skipped; Merge itself never fails. Each file is closed before the
// next one is opened. obs may be nil.
//
// Returns the composite, which the caller now owns, and the merge statistics.
func Merge(canon Canonical, paths []string, obs Observer) (*imaging.Canvas, *Stats) {
	acc := NewAccumulator(canon)
	stats := &Stats{Files: len(paths)}

	for i, path := range paths {
		img, err := imaging.Load(path)
		if err != nil {
			derr := &DecodeError{Path: path, Err: err}
			stats.Skipped = append(stats.Skipped, derr)
			if obs != nil {
				obs.FileSkipped(i, len(paths), derr)
			}
			continue
		}

		fs := acc.Add(img)
		fs.Index = i
		fs.Path = path

		stats.Merged++
		stats.Written += fs.Written
		stats.Conflicts += fs.Conflicts
		if fs.Conformance.Resized {
			stats.Resized++
		}
		if fs.Conformance.Converted {
			stats.Converted++
		}
		if obs != nil {
			obs.FileMerged(len(paths), fs)
		}
	}

	stats.Uncovered = acc.Uncovered()
	return acc.Canvas(), stats
}
