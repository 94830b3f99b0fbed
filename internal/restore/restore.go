// Package restore runs the full restoration pipeline: collect the sub-images
// in a directory, merge them into a composite, and write the composite along
// with its inverted and enhanced derivatives.
package restore

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ironsheep/image-restore/internal/composite"
	"github.com/ironsheep/image-restore/internal/derive"
	"github.com/ironsheep/image-restore/internal/imaging"
)

// Output file name suffixes, inserted between the stem and the extension of
// Config.OutputBase.
const (
	SuffixComposite = "_原图"
	SuffixInverted  = "_反色"
	SuffixEnhanced  = "_增强"
)

// OutputKind identifies one of the written images.
type OutputKind string

const (
	KindComposite OutputKind = "composite"
	KindInverted  OutputKind = "inverted"
	KindEnhanced  OutputKind = "enhanced"
)

// Config holds everything Run needs.
type Config struct {
	// InputDir is scanned, non-recursively, for sub-images.
	InputDir string
	// OutputBase is a name of the form <stem>.<ext>; the extension selects
	// the output format.
	OutputBase string
	// Enhance gates the third, sharpened and contrast-adjusted output.
	Enhance bool
	// EnhanceOptions is passed through to derive.Enhance.
	EnhanceOptions derive.EnhanceOptions
}

// DefaultConfig returns the settings of the tool's example invocation.
func DefaultConfig() Config {
	return Config{
		InputDir:       "sub_images",
		OutputBase:     "image.png",
		Enhance:        true,
		EnhanceOptions: derive.DefaultEnhanceOptions(),
	}
}

// OutputPaths returns the three file names derived from base.
func OutputPaths(base string) (compositePath, invertedPath, enhancedPath string) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return stem + SuffixComposite + ext,
		stem + SuffixInverted + ext,
		stem + SuffixEnhanced + ext
}

// SaveError reports an output that could not be produced or written.
type SaveError struct {
	Kind OutputKind
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to write %s image %q: %v", e.Kind, e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Output records one attempted output file.
type Output struct {
	Kind OutputKind
	Path string
	// Err is nil when the file was written.
	Err error
}

// Result describes a completed run.
type Result struct {
	Canonical composite.Canonical
	Stats     *composite.Stats
	Outputs   []Output
}

// Written returns the paths of outputs that were saved successfully.
func (r *Result) Written() []string {
	var paths []string
	for _, o := range r.Outputs {
		if o.Err == nil {
			paths = append(paths, o.Path)
		}
	}
	return paths
}

// Run executes the pipeline described by cfg, reporting progress to logger.
//
// Run fails, having written nothing, when the input directory cannot be
// read, holds no candidate images (composite.ErrNoImages), or its first image
// cannot be decoded (*composite.DecodeError). It also fails when the
// composite cannot be saved (*SaveError), in which case no derivative is
// attempted. Failures to write the inverted or enhanced image are logged and
// recorded in Result.Outputs but do not make Run fail.
//
// If logger is nil, slog.Default() is used.
func Run(cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	paths, err := imaging.CollectImages(cfg.InputDir)
	if err != nil {
		logger.Error("unable to read input folder", "dir", cfg.InputDir, "error", err)
		return nil, err
	}
	if len(paths) == 0 {
		logger.Error("no images found", "dir", cfg.InputDir,
			"extensions", strings.Join(imaging.SourceExtensions, ","))
		return nil, fmt.Errorf("%w in %q", composite.ErrNoImages, cfg.InputDir)
	}

	canon, err := composite.Canonicalize(paths)
	if err != nil {
		logger.Error("unable to read reference image", "file", paths[0], "error", err)
		return nil, err
	}

	logger.Info("found images", "count", len(paths),
		"width", canon.Width, "height", canon.Height, "mode", canon.Mode)

	rep := &reporter{logger: logger}
	canvas, stats := composite.Merge(canon, paths, rep)
	rep.summary(stats)

	res := &Result{Canonical: canon, Stats: stats}
	compositePath, invertedPath, enhancedPath := OutputPaths(cfg.OutputBase)

	if err := save(logger, res, KindComposite, compositePath, canvas); err != nil {
		return res, err
	}

	save(logger, res, KindInverted, invertedPath, derive.Invert(canvas))

	if cfg.Enhance {
		logger.Info("enhancing composite",
			"radius", cfg.EnhanceOptions.Radius,
			"percent", cfg.EnhanceOptions.Percent,
			"contrast", cfg.EnhanceOptions.ContrastFactor)
		enhanced, err := derive.Enhance(canvas, cfg.EnhanceOptions)
		if err != nil {
			record(logger, res, KindEnhanced, enhancedPath, err)
		} else {
			save(logger, res, KindEnhanced, enhancedPath, enhanced)
		}
	}

	return res, nil
}

func save(logger *slog.Logger, res *Result, kind OutputKind, path string, img image.Image) error {
	return record(logger, res, kind, path, imaging.Save(img, path))
}

// record appends the outcome of one output to res and logs it. It returns
// a *SaveError when err is non-nil.
func record(logger *slog.Logger, res *Result, kind OutputKind, path string, err error) error {
	if err != nil {
		serr := &SaveError{Kind: kind, Path: path, Err: err}
		res.Outputs = append(res.Outputs, Output{Kind: kind, Path: path, Err: serr})
		logger.Error("could not write image", "kind", kind, "file", path, "error", err)
		return serr
	}

	res.Outputs = append(res.Outputs, Output{Kind: kind, Path: path})
	logger.Info("saved image", "kind", kind, "file", path)
	return nil
}
