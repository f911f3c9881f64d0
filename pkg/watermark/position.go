package watermark

import (
	"errors"
	"fmt"
	"strings"
)

// Position is a named anchor for the watermark text box within the image.
type Position int

const (
	LeftTop Position = iota
	RightTop
	LeftBottom
	RightBottom
	Center
)

// ErrInvalidPosition is returned for a position string outside the alias table.
var ErrInvalidPosition = errors.New("invalid watermark position")

// positionAliases is the total alias table. Parsing happens once at
// configuration time, never during rendering.
var positionAliases = map[string]Position{
	"lt": LeftTop, "left-top": LeftTop, "top-left": LeftTop,
	"rt": RightTop, "right-top": RightTop, "top-right": RightTop,
	"lb": LeftBottom, "left-bottom": LeftBottom, "bottom-left": LeftBottom,
	"rb": RightBottom, "right-bottom": RightBottom, "bottom-right": RightBottom,
	"c": Center, "center": Center, "middle": Center,
}

// ParsePosition resolves a position alias to its anchor.
func ParsePosition(s string) (Position, error) {
	p, ok := positionAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return p, nil
}

func (p Position) String() string {
	switch p {
	case LeftTop:
		return "left-top"
	case RightTop:
		return "right-top"
	case LeftBottom:
		return "left-bottom"
	case Center:
		return "center"
	default:
		return "right-bottom"
	}
}

// Anchor returns the top-left coordinates for a text box of (w, h) placed
// within an image of (imgW, imgH) at margin m.
//
// Images smaller than the text box plus margins yield negative coordinates;
// the text is clipped, not repositioned.
func (p Position) Anchor(imgW, imgH, w, h, m float64) (x, y float64) {
	switch p {
	case LeftTop:
		return m, m
	case RightTop:
		return imgW - w - m, m
	case LeftBottom:
		return m, imgH - h - m
	case Center:
		return (imgW - w) / 2, (imgH - h) / 2
	default: // RightBottom
		return imgW - w - m, imgH - h - m
	}
}
