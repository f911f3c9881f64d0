package watermark

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned for a color string that is neither a hex
// value nor a known color name.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor resolves "#RRGGBB", "#RGB" or an SVG 1.1 color name.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, nil
	}

	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHex(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")

	switch len(hex) {
	case 3:
		// #RGB expands each nibble: #f0a -> #ff00aa.
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[2*i] = hex[i]
			expanded[2*i+1] = hex[i]
		}
		hex = string(expanded)
	case 6:
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
