package camera

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"smplx-poser/internal/mathutil"
)

// Defaults of the third-person view that shows the whole body.
const (
	DefaultElev = 20
	DefaultAzim = 45
	DefaultDist = 10

	MinDist = 5
	MaxDist = 20

	// DefaultFOV is used by perspective projection.
	DefaultFOV = 30.0
)

// View is an orbit camera around the body: elevation and azimuth in degrees,
// distance in scene units (10 = neutral zoom).
type View struct {
	Elev float64 `json:"elev" yaml:"elev"`
	Azim float64 `json:"azim" yaml:"azim"`
	Dist float64 `json:"dist" yaml:"dist"`
}

func Default() View {
	return View{Elev: DefaultElev, Azim: DefaultAzim, Dist: DefaultDist}
}

// Normalize clamps elevation to [-90,90], wraps azimuth to (-180,180] and
// clamps distance to [MinDist,MaxDist]. A zero distance becomes DefaultDist.
func (v View) Normalize() View {
	v.Elev = math.Max(-90, math.Min(90, v.Elev))
	v.Azim = mathutil.WrapDegrees(v.Azim)
	if v.Dist == 0 {
		v.Dist = DefaultDist
	}
	v.Dist = math.Max(MinDist, math.Min(MaxDist, v.Dist))
	return v
}

// Zoom is the image-space magnification implied by Dist.
func (v View) Zoom() float64 {
	d := v.Dist
	if d <= 0 {
		d = DefaultDist
	}
	return DefaultDist / d
}

// Matrix maps model space (Y-up) to view space: the body is turned by
// -azimuth about Y, then tilted by elevation about X.
func (v View) Matrix() mathutil.Mat3 {
	yaw := mathutil.RotY(-mathutil.Deg2Rad(v.Azim))
	pitch := mathutil.RotX(mathutil.Deg2Rad(v.Elev))
	return mathutil.Mat3Mul(pitch, yaw)
}

func (v View) String() string {
	return fmt.Sprintf("elev=%.0f° azim=%.0f° dist=%.1f", v.Elev, v.Azim, v.Dist)
}

var presets = map[string]View{
	"front":   {Elev: 0, Azim: 0, Dist: DefaultDist},
	"back":    {Elev: 0, Azim: 180, Dist: DefaultDist},
	"left":    {Elev: 0, Azim: 90, Dist: DefaultDist},
	"right":   {Elev: 0, Azim: -90, Dist: DefaultDist},
	"top":     {Elev: 60, Azim: 0, Dist: DefaultDist},
	"bottom":  {Elev: -30, Azim: 0, Dist: DefaultDist},
	"default": Default(),
}

// Preset returns a named standard view.
func Preset(name string) (View, error) {
	v, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return View{}, fmt.Errorf("camera: unknown preset %q", name)
	}
	return v, nil
}

// PresetNames lists the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Project transforms 3D vertices to 2D screen coordinates.
// Returns px, py, pz slices (screen X, screen Y, depth; larger is nearer).
func Project(verts []mathutil.Vec3, R mathutil.Mat3, center mathutil.Vec3, scale float64, renderSize int, perspective bool) ([]float64, []float64, []float64) {
	n := len(verts)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)

	half := float64(renderSize) / 2
	c := R.MulVec3(center)

	var camDist, zCenter float64
	if perspective {
		halfFOV := mathutil.Deg2Rad(DefaultFOV / 2)

		var zMin, zMax, xyMax float64
		zMin = math.Inf(1)
		zMax = math.Inf(-1)
		for i := range verts {
			t := R.MulVec3(verts[i])
			zMin = math.Min(zMin, t[2])
			zMax = math.Max(zMax, t[2])
			for k := 0; k < 2; k++ {
				xyMax = math.Max(xyMax, math.Abs(t[k]-c[k]))
			}
		}
		zCenter = (zMin + zMax) / 2
		if xyMax < 0.001 {
			xyMax = 0.001
		}
		camDist = xyMax / math.Tan(halfFOV)
	}

	for i := range verts {
		t := R.MulVec3(verts[i]).Sub(c)

		if perspective {
			depth := math.Max(camDist-(t[2]+c[2]-zCenter), 0.1)
			factor := camDist / depth
			t[0] *= factor
			t[1] *= factor
		}

		px[i] = t[0]*scale + half
		py[i] = -t[1]*scale + half
		pz[i] = t[2]
	}

	return px, py, pz
}
