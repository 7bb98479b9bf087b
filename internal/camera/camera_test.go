package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smplx-poser/internal/mathutil"
)

func TestDefault(t *testing.T) {
	v := Default()
	assert.Equal(t, View{Elev: 20, Azim: 45, Dist: 10}, v)
	assert.Equal(t, 1.0, v.Zoom())
}

func TestNormalize(t *testing.T) {
	v := View{Elev: 120, Azim: 270, Dist: 50}.Normalize()
	assert.Equal(t, 90.0, v.Elev)
	assert.Equal(t, -90.0, v.Azim)
	assert.Equal(t, float64(MaxDist), v.Dist)

	v = View{Elev: -200, Azim: -180, Dist: 1}.Normalize()
	assert.Equal(t, -90.0, v.Elev)
	assert.Equal(t, 180.0, v.Azim)
	assert.Equal(t, float64(MinDist), v.Dist)

	assert.Equal(t, float64(DefaultDist), View{}.Normalize().Dist)
}

func TestZoom(t *testing.T) {
	assert.Equal(t, 2.0, View{Dist: 5}.Zoom())
	assert.Equal(t, 0.5, View{Dist: 20}.Zoom())
	assert.Equal(t, 1.0, View{}.Zoom())
}

func TestFrontMatrixIsIdentity(t *testing.T) {
	v, err := Preset("front")
	require.NoError(t, err)
	assert.Equal(t, mathutil.Mat3Identity(), v.Matrix())
}

func TestSideViewTurnsBody(t *testing.T) {
	v, err := Preset("left")
	require.NoError(t, err)
	// The body's +X side faces the camera (+Z toward the viewer).
	got := v.Matrix().MulVec3(mathutil.Vec3{1, 0, 0})
	assert.InDeltaSlice(t, []float64{0, 0, 1}, got[:], 1e-12)
}

func TestPresetLookup(t *testing.T) {
	v, err := Preset("  TOP ")
	require.NoError(t, err)
	assert.Equal(t, 60.0, v.Elev)

	_, err = Preset("isometric")
	assert.Error(t, err)

	assert.Equal(t, []string{"back", "bottom", "default", "front", "left", "right", "top"}, PresetNames())
}

func TestProjectCentersOnScreen(t *testing.T) {
	verts := []mathutil.Vec3{{0, 0, 0}, {1, 2, 0}}
	px, py, pz := Project(verts, mathutil.Mat3Identity(), mathutil.Vec3{}, 10, 100, false)

	assert.Equal(t, []float64{50, 60}, px)
	assert.Equal(t, []float64{50, 30}, py, "screen Y grows downward")
	assert.Equal(t, []float64{0, 0}, pz)
}

func TestPerspectiveEnlargesNearPoints(t *testing.T) {
	verts := []mathutil.Vec3{{1, 0, 1}, {1, 0, -1}}
	px, _, _ := Project(verts, mathutil.Mat3Identity(), mathutil.Vec3{}, 10, 100, true)
	assert.Greater(t, px[0], px[1])
}
