package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solid(size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestDownsampleSize(t *testing.T) {
	out := Downsample(solid(40, color.NRGBA{200, 100, 50, 255}), 20)
	assert.Equal(t, image.Rect(0, 0, 20, 20), out.Bounds())
	assertNear(t, color.NRGBA{200, 100, 50, 255}, out.NRGBAAt(10, 10))
}

func TestDownsampleNoopWhenSmall(t *testing.T) {
	in := solid(10, color.NRGBA{1, 2, 3, 255})
	assert.Same(t, in, Downsample(in, 10))
}

func TestDownsampleKeepsEdgeColor(t *testing.T) {
	// Left half red and opaque, right half transparent black.
	in := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 20; x++ {
			in.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	out := Downsample(in, 20)
	edge := out.NRGBAAt(10, 10)
	if edge.A > 0 {
		assert.Greater(t, edge.R, uint8(200), "no dark fringe on the silhouette")
	}
}

func TestCompositeOverFill(t *testing.T) {
	fg := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	fg.SetNRGBA(1, 1, color.NRGBA{0, 255, 0, 255})

	out := Composite(fg, nil, color.NRGBA{10, 20, 30, 255})
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, out.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, out.NRGBAAt(0, 0))
}

func TestCompositeOverBackground(t *testing.T) {
	fg := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	bg := solid(16, color.NRGBA{90, 90, 90, 255})

	out := Composite(fg, bg, color.Black)
	assertNear(t, color.NRGBA{90, 90, 90, 255}, out.NRGBAAt(4, 4))
}

func assertNear(t *testing.T, want, got color.NRGBA) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 2)
	assert.InDelta(t, want.G, got.G, 2)
	assert.InDelta(t, want.B, got.B, 2)
	assert.InDelta(t, want.A, got.A, 2)
}
