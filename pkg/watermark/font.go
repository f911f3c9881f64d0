package watermark

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FaceSource describes which candidate a font face was loaded from.
type FaceSource string

const (
	FaceConfigured FaceSource = "configured"
	FaceSystem     FaceSource = "system"
	FaceBuiltin    FaceSource = "builtin"
)

// systemFonts are probed in order when no usable font path is configured.
// CJK-capable fonts come first per platform so non-Latin dates and any
// future text render without replacement glyphs where possible.
var systemFonts = []string{
	`C:\Windows\Fonts\msyh.ttc`,
	`C:\Windows\Fonts\simhei.ttf`,
	`C:\Windows\Fonts\arial.ttf`,
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/Helvetica.ttc",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
}

// LoadFace loads a font face at the given pixel size, trying an ordered list
// of candidates: the configured path, known system fonts, and finally the
// bundled Go Regular face. The first successful load wins and its source is
// reported so callers can warn about fallbacks.
func LoadFace(configured string, size float64) (font.Face, FaceSource, error) {
	if configured != "" {
		if face, err := loadFaceFile(configured, size); err == nil {
			return face, FaceConfigured, nil
		}
	}

	for _, path := range systemFonts {
		if face, err := loadFaceFile(path, size); err == nil {
			return face, FaceSystem, nil
		}
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, FaceBuiltin, fmt.Errorf("parse builtin font: %w", err)
	}
	face, err := newFace(f, size)
	if err != nil {
		return nil, FaceBuiltin, fmt.Errorf("builtin font face: %w", err)
	}
	return face, FaceBuiltin, nil
}

func loadFaceFile(path string, size float64) (font.Face, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f *opentype.Font
	if strings.HasSuffix(strings.ToLower(path), ".ttc") {
		coll, err := opentype.ParseCollection(b)
		if err != nil {
			return nil, err
		}
		f, err = coll.Font(0)
		if err != nil {
			return nil, err
		}
	} else {
		f, err = opentype.Parse(b)
		if err != nil {
			return nil, err
		}
	}

	return newFace(f, size)
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
