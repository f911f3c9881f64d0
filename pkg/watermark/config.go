package watermark

import (
	"image/color"
	"math"
)

// minAutoFontSize is the floor for auto-sized text.
const minAutoFontSize = 12

// Config holds the watermark appearance settings. It is constructed once
// from CLI input and shared read-only across all image tasks.
type Config struct {
	Position      Position
	FontSize      int
	AutoSizeRatio float64
	Color         color.NRGBA
	Opacity       uint8
	Margin        int
	StrokeWidth   int
	StrokeColor   color.NRGBA
	FontPath      string
}

// FontSizeFor resolves the font size for an image of the given dimensions.
//
// A positive AutoSizeRatio sizes the text from the image's shorter edge and
// always overrides FontSize.
func (c Config) FontSizeFor(width, height int) int {
	if c.AutoSizeRatio > 0 {
		shorter := width
		if height < shorter {
			shorter = height
		}
		size := int(math.Round(float64(shorter) * c.AutoSizeRatio))
		if size < minAutoFontSize {
			size = minAutoFontSize
		}
		return size
	}
	return c.FontSize
}
