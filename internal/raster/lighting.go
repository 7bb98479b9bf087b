package raster

import (
	"math"

	"smplx-poser/internal/mathutil"
)

// Light holds precomputed lighting parameters in view space
// (X right, Y up, Z toward the viewer).
type Light struct {
	Dir      mathutil.Vec3
	RimDir   mathutil.Vec3
	ViewDir  mathutil.Vec3
	Half     mathutil.Vec3 // Blinn-Phong half-vector
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// DefaultLight is a key light from the upper right with a cool rim from behind.
func DefaultLight() Light {
	dir := mathutil.Vec3{180, 260, 340}.Normalize()
	rim := mathutil.Vec3{-160, 130, -210}.Normalize()
	view := mathutil.Vec3{0, 0, 1}

	return Light{
		Dir:      dir,
		RimDir:   rim,
		ViewDir:  view,
		Half:     dir.Add(view).Normalize(),
		Ambient:  0.30,
		Hemi:     0.35,
		Direct:   0.95,
		Rim:      0.35,
		SpecInt:  0.25,
		SpecPow:  16.0,
		Exposure: 1.0,
		InvGamma: 1.0 / 2.2,
	}
}

// Shade returns the combined lighting scalar for a unit face normal.
func (l *Light) Shade(n mathutil.Vec3) float64 {
	// Lambertian, abs for double-sided faces
	ndl := math.Abs(n.Dot(l.Dir))
	ndlRim := math.Abs(n.Dot(l.RimDir))

	hemi := (n[1]*0.5 + 0.5) * l.Hemi

	ndh := math.Abs(n.Dot(l.Half))
	spec := math.Pow(ndh, l.SpecPow) * l.SpecInt

	return l.Ambient + hemi + ndl*l.Direct + ndlRim*l.Rim + spec
}

// Apply lights an sRGB base color with a shade factor: decode to linear,
// scale, tone map, encode.
func (l *Light) Apply(r, g, b uint8, shade float64) (uint8, uint8, uint8) {
	k := shade * l.Exposure
	enc := func(c uint8) uint8 {
		t := ACESTonemap(srgbToLinear[c] * k)
		return clamp255(math.Pow(t, l.InvGamma) * 255)
	}
	return enc(r), enc(g), enc(b)
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
