package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Composite draws fg over bg and returns a new opaque image the size of fg.
// A nil bg composites over solid fill.
func Composite(fg *image.NRGBA, bg image.Image, fill color.Color) *image.NRGBA {
	b := fg.Bounds()
	out := image.NewNRGBA(b)

	draw.Draw(out, b, image.NewUniform(fill), image.Point{}, draw.Src)
	if bg != nil {
		draw.ApproxBiLinear.Scale(out, b, bg, bg.Bounds(), draw.Over, nil)
	}
	draw.Draw(out, b, fg, b.Min, draw.Over)
	return out
}
