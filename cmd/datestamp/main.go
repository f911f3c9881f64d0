package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quidome/datestamp-go/pkg/capturedate"
	"github.com/quidome/datestamp-go/pkg/plan"
	"github.com/quidome/datestamp-go/pkg/scan"
	"github.com/quidome/datestamp-go/pkg/stamp"
	"github.com/quidome/datestamp-go/pkg/watermark"
)

const version = "0.1.0"

type options struct {
	position      string
	fontSize      int
	autoSize      float64
	color         string
	opacity       int
	margin        int
	font          string
	strokeWidth   int
	strokeColor   string
	fallbackMtime bool
	quality       int
	output        string
	verbose       bool
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "datestamp [path]",
		Short: "Stamp images with their EXIF capture date",
		Long: "Datestamp reads the EXIF capture date of an image file (or every image\n" +
			"under a directory, recursively) and draws it as a text watermark.\n" +
			"Stamped copies are written to the output directory with a _wm suffix;\n" +
			"original files are never modified.",
		Version:      version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.Flags().StringVar(&opts.position, "position", "rb", "watermark position (lt/rt/lb/rb/c and long aliases)")
	rootCmd.Flags().IntVar(&opts.fontSize, "font-size", 96, "font size in pixels")
	rootCmd.Flags().Float64Var(&opts.autoSize, "auto-size", 0, "font size as a ratio of the image's shorter edge (overrides --font-size)")
	rootCmd.Flags().StringVar(&opts.color, "color", "#FFFFFF", "text color (#RRGGBB, #RGB or a color name)")
	rootCmd.Flags().IntVar(&opts.opacity, "opacity", 220, "text opacity (0-255)")
	rootCmd.Flags().IntVar(&opts.margin, "margin", 20, "margin from the image edges in pixels")
	rootCmd.Flags().StringVar(&opts.font, "font", "", "path to a TrueType/OpenType font file")
	rootCmd.Flags().IntVar(&opts.strokeWidth, "stroke-width", 2, "stroke outline width in pixels")
	rootCmd.Flags().StringVar(&opts.strokeColor, "stroke-color", "#000000", "stroke outline color")
	rootCmd.Flags().BoolVar(&opts.fallbackMtime, "fallback-mtime", false, "use the file modification time when no EXIF date exists")
	rootCmd.Flags().IntVar(&opts.quality, "quality", 92, "JPEG encoding quality (1-100)")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "output", "output directory, relative to the working directory")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	return rootCmd
}

func run(cmd *cobra.Command, path string, opts *options) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	warnOnFontFallback(logger, cfg.FontPath)

	fsys, sources, err := resolveSources(path, opts.output)
	if err != nil {
		return err
	}
	logger.Debug().Int("count", len(sources)).Msg("resolved input files")

	ops := plan.Plan(opts.output, sources)
	results, err := stamp.Execute(fsys, ops, stamp.Options{
		Watermark: cfg,
		Date:      capturedate.Options{FallbackMtime: opts.fallbackMtime},
		Quality:   clampQuality(opts.quality),
	})
	if err != nil {
		return err
	}

	succeeded := 0
	for _, r := range results {
		switch {
		case r.Success:
			succeeded++
			logger.Info().
				Str("source", r.Operation.SourcePath).
				Str("date", r.Date).
				Str("output", r.Operation.DestinationPath).
				Msg("stamped")
		case r.Skipped:
			logger.Warn().
				Str("source", r.Operation.SourcePath).
				Msg("no capture date, skipped (use --fallback-mtime to stamp anyway)")
		default:
			logger.Error().
				Err(r.Error).
				Str("source", r.Operation.SourcePath).
				Msg("failed")
		}
	}

	if succeeded == 0 {
		return errors.New("no images were stamped")
	}
	return nil
}

// resolveSources expands the input path into a filesystem rooted at the
// scan root plus relative source paths. The output directory name is
// excluded from traversal so previously stamped files are not reprocessed.
func resolveSources(path, outputDir string) (fs.FS, []string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("input path: %w", err)
	}

	scanOpts := scan.DefaultOptions()
	scanOpts.ExcludeDirs = []string{filepath.Base(outputDir)}

	if !info.IsDir() {
		if !scan.Supported(path, scanOpts) {
			return nil, nil, fmt.Errorf("%w: %s", scan.ErrUnsupported, path)
		}
		return os.DirFS(filepath.Dir(path)), []string{filepath.Base(path)}, nil
	}

	fsys := os.DirFS(path)
	sources, err := scan.Scan(fsys, ".", scanOpts)
	if err != nil {
		return nil, nil, err
	}
	return fsys, sources, nil
}

func buildConfig(opts *options) (watermark.Config, error) {
	position, err := watermark.ParsePosition(opts.position)
	if err != nil {
		return watermark.Config{}, fmt.Errorf("--position: %w", err)
	}

	textColor, err := watermark.ParseColor(opts.color)
	if err != nil {
		return watermark.Config{}, fmt.Errorf("--color: %w", err)
	}

	strokeColor, err := watermark.ParseColor(opts.strokeColor)
	if err != nil {
		return watermark.Config{}, fmt.Errorf("--stroke-color: %w", err)
	}

	return watermark.Config{
		Position:      position,
		FontSize:      opts.fontSize,
		AutoSizeRatio: opts.autoSize,
		Color:         textColor,
		Opacity:       clampOpacity(opts.opacity),
		Margin:        nonNegative(opts.margin),
		StrokeWidth:   nonNegative(opts.strokeWidth),
		StrokeColor:   strokeColor,
		FontPath:      opts.font,
	}, nil
}

// warnOnFontFallback probes the font candidates once up front so the
// fallback warning is reported a single time, not per file.
func warnOnFontFallback(logger zerolog.Logger, fontPath string) {
	if fontPath == "" {
		return
	}
	if _, source, err := watermark.LoadFace(fontPath, 12); err == nil && source != watermark.FaceConfigured {
		logger.Warn().Str("font", fontPath).Msg("configured font not usable, falling back")
	}
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

func clampQuality(v int) int {
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampOpacity(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
