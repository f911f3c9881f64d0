package plan

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Operation represents a planned watermark render from source to destination.
type Operation struct {
	SourcePath      string
	DestinationPath string
}

// Destination computes the output path for a source image.
//
// The output filename is <stem>_wm<ext>, placed directly under outRoot.
// Two sources with the same stem (for example from different
// subdirectories) map to the same destination; the later write wins.
//
// WebP sources are decode-only, so their stamped copies are exported
// as JPEG.
func Destination(outRoot, source string) string {
	filename := filepath.Base(source)
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	if strings.EqualFold(ext, ".webp") {
		ext = ".jpg"
	}

	return filepath.Join(outRoot, fmt.Sprintf("%s_wm%s", stem, ext))
}

// Plan computes destination paths for a list of source files.
func Plan(outRoot string, sources []string) []Operation {
	operations := make([]Operation, 0, len(sources))

	for _, src := range sources {
		operations = append(operations, Operation{
			SourcePath:      src,
			DestinationPath: Destination(outRoot, src),
		})
	}

	return operations
}
