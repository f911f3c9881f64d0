package scan

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNoImages is returned when a directory walk finds no supported images.
	ErrNoImages = errors.New("no supported images found")

	// ErrUnsupported is returned for a single-file input whose extension
	// is not in the allow-list.
	ErrUnsupported = errors.New("unsupported image format")
)

type Options struct {
	// Extensions is the allow-list of image file extensions, with leading dot.
	Extensions []string

	// ExcludeDirs lists directory names skipped during traversal, so a
	// previous run's output directory is never reprocessed.
	ExcludeDirs []string
}

func DefaultOptions() Options {
	return Options{
		Extensions: []string{
			".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff",
		},
	}
}

// Scan walks root and returns the relative slash paths of all supported
// image files, sorted for deterministic output.
//
// A root that does not exist surfaces the filesystem error (fs.ErrNotExist).
// A tree with zero matching files returns ErrNoImages.
func Scan(fsys fs.FS, root string, opts Options) ([]string, error) {
	exts := normalizeExts(opts.Extensions)

	excluded := make(map[string]bool, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		if d != "" {
			excluded[d] = true
		}
	}

	var matches []string

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && excluded[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if !exts[strings.ToLower(filepath.Ext(rel))] {
			return nil
		}

		matches = append(matches, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, ErrNoImages
	}

	sort.Strings(matches)
	return matches, nil
}

// Supported reports whether name's extension is in the allow-list.
func Supported(name string, opts Options) bool {
	return normalizeExts(opts.Extensions)[strings.ToLower(filepath.Ext(name))]
}

func normalizeExts(exts []string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, ext := range exts {
		e := strings.TrimSpace(strings.ToLower(ext))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = true
	}
	return m
}
