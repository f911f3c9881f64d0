package stamp

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // decode-only; stamped copies are exported as JPEG

	"github.com/quidome/datestamp-go/pkg/capturedate"
	"github.com/quidome/datestamp-go/pkg/plan"
	"github.com/quidome/datestamp-go/pkg/watermark"
)

// defaultJPEGQuality matches the encoding parameters used for source material.
const defaultJPEGQuality = 92

// Result contains the outcome of one watermark operation.
type Result struct {
	Operation plan.Operation
	Date      string
	Success   bool
	Skipped   bool
	Error     error
}

// Options configures Execute.
type Options struct {
	Watermark watermark.Config
	Date      capturedate.Options

	// Quality is the JPEG encoding quality (1-100). Zero selects the
	// default of 92. Ignored for non-JPEG destinations.
	Quality int
}

// Execute renders date watermarks for the given operations, one file at a
// time: decode, determine capture date, render, encode.
//
// Source paths are read through fsys; destination paths are written to the
// OS filesystem. Per-file failures (no capture date, undecodable image,
// write failure) are recorded in the Result and the batch continues. An
// output directory that cannot be created aborts the batch.
func Execute(fsys fs.FS, ops []plan.Operation, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(ops))

	quality := opts.Quality
	if quality <= 0 {
		quality = defaultJPEGQuality
	}

	for _, op := range ops {
		result := Result{Operation: op}

		destDir := filepath.Dir(op.DestinationPath)
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return results, fmt.Errorf("create output directory: %w", err)
		}

		date, err := capturedate.Determine(fsys, op.SourcePath, opts.Date)
		if err != nil {
			result.Skipped = errors.Is(err, capturedate.ErrNoDate)
			result.Error = err
			results = append(results, result)
			continue
		}
		result.Date = date.DateString()

		if err := stampOne(fsys, op, result.Date, opts.Watermark, quality); err != nil {
			result.Error = err
			results = append(results, result)
			continue
		}

		result.Success = true
		results = append(results, result)
	}

	return results, nil
}

// stampOne processes a single file. The decoded image and font face are
// scoped here and released before the next file begins.
func stampOne(fsys fs.FS, op plan.Operation, text string, cfg watermark.Config, quality int) error {
	f, err := fsys.Open(op.SourcePath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	stamped, err := watermark.Render(img, text, cfg)
	if err != nil {
		return fmt.Errorf("render watermark: %w", err)
	}

	format, err := imaging.FormatFromFilename(op.DestinationPath)
	if err != nil {
		return fmt.Errorf("output format: %w", err)
	}

	out, err := os.Create(op.DestinationPath)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer out.Close()

	if err := imaging.Encode(out, stamped, format, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("encode image: %w", err)
	}

	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	return nil
}
