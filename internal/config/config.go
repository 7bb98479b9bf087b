package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"smplx-poser/internal/camera"
	"smplx-poser/internal/raster"
)

// FileName is the config file looked up by Find.
const FileName = "smplx-poser.json"

// Config holds output paths and render settings.
type Config struct {
	// Paths
	OutputDir  string `json:"output_dir"`
	Background string `json:"background"`

	// Render settings
	RenderSize  int         `json:"render_size"`
	Supersample int         `json:"supersample"`
	Workers     int         `json:"workers"`
	Format      string      `json:"format"`
	Model       string      `json:"model"`
	Perspective bool        `json:"perspective"`
	HideJoints  bool        `json:"hide_joints"`
	View        camera.View `json:"view"`

	LogLevel string `json:"log_level"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir  string
	Background string
	RenderSize int
	Workers    int
	Format     string
	Model      string
	LogLevel   string
}

// Resolve applies flags and fills in defaults for anything still empty.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.RenderSize > 0 {
		c.RenderSize = flags.RenderSize
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Model != "" {
		c.Model = flags.Model
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.OutputDir == "" {
		c.OutputDir = "./output_frames"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 600
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Format == "" {
		c.Format = "png"
	}
	if c.Model == "" {
		c.Model = "stickman"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.View == (camera.View{}) {
		c.View = camera.Default()
	}
	c.View = c.View.Normalize()
}

// ApplyLogLevel sets the global logrus level from LogLevel.
func (c *Config) ApplyLogLevel() error {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logrus.SetLevel(lvl)
	return nil
}

// Find returns the first config file next to the executable or in the
// working directory, or "" when there is none.
func Find() string {
	var dirs []string
	if exe, _ := os.Executable(); exe != "" {
		dirs = append(dirs, filepath.Dir(exe))
	}
	if cwd, _ := os.Getwd(); cwd != "" {
		dirs = append(dirs, cwd)
	}

	for _, dir := range dirs {
		p := filepath.Join(dir, FileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadOrDefault loads path when given, else the file found by Find, else an
// empty Config. The result is resolved against flags.
func LoadOrDefault(path string, flags Flags) (Config, error) {
	if path == "" {
		path = Find()
	}
	var cfg Config
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return Config{}, err
		}
	}
	cfg.Resolve(flags)
	return cfg, nil
}

// RenderOptions builds raster options from the render settings.
func (c *Config) RenderOptions() raster.Options {
	opt := raster.DefaultOptions()
	if c.RenderSize > 0 {
		opt.Size = c.RenderSize
	}
	if c.Supersample > 0 {
		opt.Supersample = c.Supersample
	}
	opt.Perspective = c.Perspective
	opt.ShowJoints = !c.HideJoints
	return opt
}
