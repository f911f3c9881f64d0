package capturedate

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"time"
)

// ErrNoDate is returned when a file carries no EXIF capture time and the
// mtime fallback is disabled.
var ErrNoDate = errors.New("no capture date available")

// Source describes where a capture date was derived from.
type Source string

const (
	SourceExif  Source = "exif"
	SourceMtime Source = "mtime"
)

// Result contains the capture date chosen for a file and its source.
type Result struct {
	Date   time.Time
	Source Source
}

// DateString formats the capture date as YYYY-MM-DD.
func (r Result) DateString() string {
	return r.Date.Format("2006-01-02")
}

// MetadataExtractor extracts an embedded capture timestamp from an image stream.
//
// Implementations should return (t, true, nil) when a timestamp is found.
// If no timestamp exists, return (time.Time{}, false, nil).
// Errors are treated as best-effort failures by Determine.
type MetadataExtractor interface {
	CaptureTime(path string, r io.Reader) (time.Time, bool, error)
}

// Options configures Determine.
type Options struct {
	// FallbackMtime permits using the file's modification time when the
	// image carries no EXIF capture time.
	FallbackMtime bool

	// Metadata optionally extracts embedded timestamps.
	//
	// If nil, a default EXIF-based extractor is used.
	Metadata MetadataExtractor
}

// Determine returns the capture date for path.
//
// When no EXIF capture time exists, the file's mtime is used if
// Options.FallbackMtime is set; otherwise Determine returns ErrNoDate.
func Determine(fsys fs.FS, path string, opts Options) (Result, error) {
	path = filepath.Clean(path)

	info, err := fs.Stat(fsys, path)
	if err != nil {
		return Result{}, err
	}
	if info.IsDir() {
		return Result{}, fs.ErrInvalid
	}

	metadata := opts.Metadata
	if metadata == nil {
		metadata = exifExtractor{}
	}

	f, err := fsys.Open(path)
	if err != nil {
		return Result{}, err
	}
	captureTime, ok, metaErr := metadata.CaptureTime(path, f)
	_ = f.Close()
	if metaErr == nil && ok {
		return Result{Date: captureTime, Source: SourceExif}, nil
	}

	if opts.FallbackMtime && !info.ModTime().IsZero() {
		return Result{Date: info.ModTime(), Source: SourceMtime}, nil
	}

	return Result{}, ErrNoDate
}
