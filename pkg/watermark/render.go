package watermark

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Render draws text onto a copy of img per the config and returns the new
// image. The source image is never mutated and the canvas dimensions are
// preserved.
//
// The text is drawn fully opaque onto a transparent overlay (stroke pass
// first, then fill), which is then composited once through a uniform alpha
// mask at the configured opacity. Overlapping stroke stamps therefore never
// exceed the configured opacity.
func Render(img image.Image, text string, cfg Config) (image.Image, error) {
	bounds := img.Bounds()
	imgW, imgH := bounds.Dx(), bounds.Dy()

	size := cfg.FontSizeFor(imgW, imgH)
	face, _, err := LoadFace(cfg.FontPath, float64(size))
	if err != nil {
		return nil, fmt.Errorf("load font face: %w", err)
	}

	overlay := gg.NewContext(imgW, imgH)
	overlay.SetFontFace(face)

	textW, textH := overlay.MeasureString(text)
	sw := float64(cfg.StrokeWidth)
	boxW, boxH := textW+2*sw, textH+2*sw

	x, y := cfg.Position.Anchor(float64(imgW), float64(imgH), boxW, boxH, float64(cfg.Margin))

	// gg draws strings from the baseline; shift down by the face ascent
	// from the box's top-left, past the stroke extent.
	ascent := float64(face.Metrics().Ascent) / 64
	tx, ty := x+sw, y+sw+ascent

	strokeColor := cfg.StrokeColor
	strokeColor.A = 0xff
	fillColor := cfg.Color
	fillColor.A = 0xff

	if cfg.StrokeWidth > 0 {
		overlay.SetColor(strokeColor)
		for dy := -cfg.StrokeWidth; dy <= cfg.StrokeWidth; dy++ {
			for dx := -cfg.StrokeWidth; dx <= cfg.StrokeWidth; dx++ {
				if dx*dx+dy*dy > cfg.StrokeWidth*cfg.StrokeWidth {
					continue
				}
				overlay.DrawString(text, tx+float64(dx), ty+float64(dy))
			}
		}
	}

	overlay.SetColor(fillColor)
	overlay.DrawString(text, tx, ty)

	out := imaging.Clone(img)
	mask := image.NewUniform(color.Alpha{A: cfg.Opacity})
	draw.DrawMask(out, out.Bounds(), overlay.Image(), image.Point{}, mask, image.Point{}, draw.Over)

	return out, nil
}
