package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ironsheep/image-restore/internal/derive"
	"github.com/ironsheep/image-restore/internal/restore"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// CLI is the command line of image-restore.
type CLI struct {
	Input          string           `short:"i" help:"Folder holding the masked sub-images." default:"sub_images"`
	Output         string           `short:"o" help:"Base output name <stem>.<ext>; the extension picks the format." default:"image.png"`
	Enhance        bool             `help:"Also write the sharpened, contrast-adjusted image." default:"true" negatable:""`
	SharpenRadius  float64          `help:"Unsharp mask radius." default:"1.5" group:"enhance"`
	SharpenPercent float64          `help:"Unsharp mask strength in percent." default:"150" group:"enhance"`
	ContrastFactor float64          `help:"Contrast multiplier; 1 keeps the original contrast." default:"1.1" group:"enhance"`
	LogLevel       string           `help:"Log level." enum:"debug,info,warn,error" default:"info" env:"IMAGE_RESTORE_LOG_LEVEL"`
	Version        kong.VersionFlag `short:"v" help:"Print version information."`
}

func (c *CLI) Validate(kctx *kong.Context) error {
	inputDir, err := filepath.Abs(c.Input)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(inputDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid input path %q: %w", c.Input, err)
	}
	c.Input = inputDir

	if strings.TrimSuffix(filepath.Base(c.Output), filepath.Ext(c.Output)) == "" {
		return fmt.Errorf("invalid output name %q", c.Output)
	}

	for _, v := range []struct {
		name  string
		value float64
	}{
		{"sharpen radius", c.SharpenRadius},
		{"sharpen percent", c.SharpenPercent},
		{"contrast factor", c.ContrastFactor},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) || v.value < 0 {
			return fmt.Errorf("invalid %s: %v", v.name, v.value)
		}
	}
	return nil
}

func (c *CLI) config() restore.Config {
	return restore.Config{
		InputDir:   c.Input,
		OutputBase: c.Output,
		Enhance:    c.Enhance,
		EnhanceOptions: derive.EnhanceOptions{
			Radius:         c.SharpenRadius,
			Percent:        c.SharpenPercent,
			ContrastFactor: c.ContrastFactor,
		},
	}
}

func (c *CLI) Run(logger *slog.Logger) error {
	logger.Debug("running", "version", Version, "commit", GitCommit, "input", c.Input, "output", c.Output)

	res, err := restore.Run(c.config(), logger)
	if err != nil {
		return err
	}

	logger.Info("done", "written", len(res.Written()), "attempted", len(res.Outputs))
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("image-restore"),
		kong.Description("Rebuild one image from a folder of masked sub-images, then write inverted and enhanced variants."),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("image-restore %s (built %s, commit %s)", Version, BuildTime, GitCommit),
		},
	)

	logger := newLogger(cli.LogLevel)
	slog.SetDefault(logger)

	if err := kctx.Run(logger); err != nil {
		logger.Error("restore failed", "error", err)
		os.Exit(1)
	}
}
