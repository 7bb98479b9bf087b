package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smplx-poser/internal/camera"
)

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(Flags{})

	assert.Equal(t, "./output_frames", c.OutputDir)
	assert.Equal(t, 600, c.RenderSize)
	assert.Equal(t, 2, c.Supersample)
	assert.Equal(t, 1, c.Workers)
	assert.Equal(t, "png", c.Format)
	assert.Equal(t, "stickman", c.Model)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, camera.Default(), c.View)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	doc := `{"output_dir": "renders", "workers": 4, "format": "webp", "view": {"elev": 0, "azim": 400, "dist": 10}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	c, err := LoadOrDefault(path, Flags{Workers: 2, Model: "none"})
	require.NoError(t, err)

	assert.Equal(t, "renders", c.OutputDir)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, "webp", c.Format)
	assert.Equal(t, "none", c.Model)
	assert.Equal(t, 40.0, c.View.Azim)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestApplyLogLevel(t *testing.T) {
	prev := logrus.GetLevel()
	defer logrus.SetLevel(prev)

	c := Config{LogLevel: "debug"}
	require.NoError(t, c.ApplyLogLevel())
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	c.LogLevel = "loud"
	assert.Error(t, c.ApplyLogLevel())
}

func TestRenderOptions(t *testing.T) {
	c := Config{RenderSize: 300, Supersample: 3, HideJoints: true, Perspective: true}
	opt := c.RenderOptions()
	assert.Equal(t, 300, opt.Size)
	assert.Equal(t, 3, opt.Supersample)
	assert.False(t, opt.ShowJoints)
	assert.True(t, opt.Perspective)
}
