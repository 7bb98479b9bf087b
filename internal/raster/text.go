package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var placeholderBackground = color.NRGBA{38, 40, 46, 255}

// DrawLabel writes text with its top-left corner at (x, y), with a
// one-pixel shadow so it reads on light and dark backgrounds.
func DrawLabel(dst draw.Image, text string, x, y int, col color.Color) {
	face := basicfont.Face7x13
	baseline := y + face.Ascent

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA{0, 0, 0, 200}),
		Face: face,
		Dot:  fixed.P(x+1, baseline+1),
	}
	d.DrawString(text)

	d.Src = image.NewUniform(col)
	d.Dot = fixed.P(x, baseline)
	d.DrawString(text)
}

// Placeholder is the image shown when nothing can be rendered: a flat
// panel with msg centered on it.
func Placeholder(size int, msg string) *image.NRGBA {
	if size <= 0 {
		size = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderBackground), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	w := font.MeasureString(face, msg).Ceil()
	x := (size - w) / 2
	y := (size - face.Height) / 2
	DrawLabel(img, msg, x, y, color.NRGBA{220, 220, 225, 255})
	return img
}
