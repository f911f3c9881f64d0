package capturedate

import (
	"io"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

type exifExtractor struct{}

func (e exifExtractor) CaptureTime(path string, r io.Reader) (time.Time, bool, error) {
	x, err := exif.Decode(r)
	if err != nil {
		// Stripped files and containers without EXIF land here;
		// treat as "not found" rather than a failure.
		return time.Time{}, false, nil
	}

	// Strict priority: DateTimeOriginal, then DateTimeDigitized, then DateTime.
	for _, tag := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTimeDigitized, exif.DateTime} {
		if tm, ok := exifTimeFromTag(x, tag); ok {
			return tm, true, nil
		}
	}

	return time.Time{}, false, nil
}

func exifTimeFromTag(x *exif.Exif, tag exif.FieldName) (time.Time, bool) {
	f, err := x.Get(tag)
	if err != nil {
		return time.Time{}, false
	}

	s, err := f.StringVal()
	if err != nil {
		return time.Time{}, false
	}

	// EXIF DateTime format: "2006:01:02 15:04:05".
	// It often has no timezone; interpret as Local.
	tm, err := time.ParseInLocation("2006:01:02 15:04:05", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}

	return tm, true
}
