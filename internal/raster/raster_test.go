package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smplx-poser/internal/bodymodel"
	"smplx-poser/internal/camera"
	"smplx-poser/internal/pose"
)

func TestFillTriangleDepthTest(t *testing.T) {
	fb := NewFrameBuffer(10, 10)
	px := []float64{0, 10, 0}
	py := []float64{0, 0, 10}

	FillTriangle(fb, px, py, []float64{1, 1, 1}, [3]int{0, 1, 2}, 10, 20, 30)
	FillTriangle(fb, px, py, []float64{0, 0, 0}, [3]int{0, 1, 2}, 200, 0, 0)

	i := (2*10 + 2) * 4
	assert.Equal(t, []uint8{10, 20, 30, 255}, fb.Color[i:i+4], "farther triangle must not overwrite")
	assert.Equal(t, 1.0, fb.ZBuf[2*10+2])

	j := (9*10 + 9) * 4
	assert.Equal(t, uint8(0), fb.Color[j+3], "outside the triangle stays transparent")
}

func TestFillTriangleRejectsBadIndices(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	FillTriangle(fb, []float64{0, 4}, []float64{0, 4}, []float64{0, 0}, [3]int{0, 1, 2}, 1, 1, 1)
	for _, c := range fb.Color {
		assert.Zero(t, c)
	}
}

func TestFillDiscBias(t *testing.T) {
	fb := NewFrameBuffer(9, 9)
	for i := range fb.ZBuf {
		fb.ZBuf[i] = 0.05
	}
	FillDisc(fb, 4.5, 4.5, 0, 2, 0.1, 255, 0, 0)
	i := (4*9 + 4) * 4
	assert.Equal(t, uint8(255), fb.Color[i], "shallow occluder is within bias")

	fb = NewFrameBuffer(9, 9)
	for i := range fb.ZBuf {
		fb.ZBuf[i] = 1
	}
	FillDisc(fb, 4.5, 4.5, 0, 2, 0.1, 255, 0, 0)
	assert.Equal(t, uint8(0), fb.Color[i+3], "deep occluder hides the marker")
}

func renderRest(t *testing.T, opt Options) ([]uint8, int) {
	t.Helper()
	out, err := bodymodel.NewStickman().Forward(bodymodel.InputFrom(pose.Shape{}, pose.Vector{}))
	require.NoError(t, err)
	front, err := camera.Preset("front")
	require.NoError(t, err)
	img := Render(out, front, opt)
	require.Equal(t, opt.Size, img.Bounds().Dx())
	require.Equal(t, opt.Size, img.Bounds().Dy())
	return img.Pix, opt.Size
}

func TestRenderDrawsBody(t *testing.T) {
	opt := DefaultOptions()
	opt.Size = 120
	opt.Supersample = 1
	opt.ShowJoints = false
	pix, size := renderRest(t, opt)

	opaque := 0
	for i := 3; i < len(pix); i += 4 {
		if pix[i] == 255 {
			opaque++
		}
	}
	assert.Greater(t, opaque, 200)
	assert.Less(t, opaque, size*size/2)
	assert.Equal(t, uint8(0), pix[3], "corner is background")
}

func TestRenderJointMarkers(t *testing.T) {
	opt := DefaultOptions()
	opt.Size = 160
	opt.Supersample = 1
	opt.JointColor = color.NRGBA{255, 0, 0, 255}
	pix, _ := renderRest(t, opt)

	markers := 0
	for i := 0; i < len(pix); i += 4 {
		if pix[i] == 255 && pix[i+1] == 0 && pix[i+2] == 0 {
			markers++
		}
	}
	assert.Greater(t, markers, 22)
}

func TestRenderNilOutput(t *testing.T) {
	img := Render(nil, camera.Default(), Options{Size: 32})
	assert.Equal(t, 32, img.Bounds().Dx())
	for i := 3; i < len(img.Pix); i += 4 {
		assert.Zero(t, img.Pix[i])
	}
}

func TestPlaceholder(t *testing.T) {
	img := Placeholder(200, "model not loaded")
	require.Equal(t, 200, img.Bounds().Dx())

	bg := img.NRGBAAt(0, 0)
	assert.Equal(t, placeholderBackground, bg)

	text := 0
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			if img.NRGBAAt(x, y) != bg {
				text++
			}
		}
	}
	assert.Greater(t, text, 0)
}

func TestLightApplyBrightensWithShade(t *testing.T) {
	l := DefaultLight()
	dr, _, _ := l.Apply(128, 128, 128, 0.3)
	br, _, _ := l.Apply(128, 128, 128, 1.5)
	assert.Less(t, dr, br)
}
