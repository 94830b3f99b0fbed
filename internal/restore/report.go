package restore

import (
	"log/slog"
	"path/filepath"

	"github.com/ironsheep/image-restore/internal/composite"
)

// reporter turns merge progress into log records.
type reporter struct {
	logger *slog.Logger
}

func (r *reporter) FileMerged(total int, fs composite.FileStats) {
	logger := r.logger.With("file", filepath.Base(fs.Path))

	conf := fs.Conformance
	if conf.Resized {
		logger.Warn("size differs from reference, resampling",
			"width", conf.SourceWidth, "height", conf.SourceHeight)
	}
	if conf.Converted {
		logger.Debug("converting color mode", "from", conf.SourceMode)
	}

	logger.Info("merged image", "index", fs.Index+1, "total", total, "pixels", fs.Written)

	if c := fs.FirstConflict; c != nil {
		logger.Warn("later image overwrote earlier pixels",
			"conflicts", fs.Conflicts,
			"x", c.X, "y", c.Y,
			"was", c.Was.Hex(), "now", c.Now.Hex())
	}
}

func (r *reporter) FileSkipped(index, total int, err *composite.DecodeError) {
	r.logger.Error("could not process image",
		"file", filepath.Base(err.Path), "index", index+1, "total", total, "error", err.Err)
}

func (r *reporter) summary(stats *composite.Stats) {
	r.logger.Info("merge complete",
		"merged", stats.Merged,
		"skipped", len(stats.Skipped),
		"resized", stats.Resized,
		"converted", stats.Converted,
		"conflicts", stats.Conflicts,
		"uncovered", stats.Uncovered,
		"total", stats.Files)
}
