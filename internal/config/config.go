package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"minigl/internal/camera"
	"minigl/internal/output"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir" toml:"base_dir" yaml:"base_dir"`
	Scene     string `json:"scene" toml:"scene" yaml:"scene"`
	OutputDir string `json:"output_dir" toml:"output_dir" yaml:"output_dir"`

	// Frame buffer
	Width      int    `json:"width" toml:"width" yaml:"width"`
	Height     int    `json:"height" toml:"height" yaml:"height"`
	Scale      int    `json:"scale" toml:"scale" yaml:"scale"`
	Format     string `json:"format" toml:"format" yaml:"format"`
	Background string `json:"background" toml:"background" yaml:"background"`
	Depth      bool   `json:"depth" toml:"depth" yaml:"depth"`

	// Camera
	Projection string  `json:"projection" toml:"projection" yaml:"projection"`
	Near       float64 `json:"near" toml:"near" yaml:"near"`
	Far        float64 `json:"far" toml:"far" yaml:"far"`
	Extent     float64 `json:"extent" toml:"extent" yaml:"extent"`
	FOV        float64 `json:"fov" toml:"fov" yaml:"fov"`
	Distance   float64 `json:"distance" toml:"distance" yaml:"distance"`
	Elevation  float64 `json:"elevation" toml:"elevation" yaml:"elevation"`

	// Orbit
	Frames int     `json:"frames" toml:"frames" yaml:"frames"`
	Orbit  float64 `json:"orbit" toml:"orbit" yaml:"orbit"`

	Workers int `json:"workers" toml:"workers" yaml:"workers"`
}

// Load reads a config file and returns Config. The format follows the
// extension: .toml, .yaml/.yml, anything else is JSON.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	} else if !filepath.IsAbs(cfg.BaseDir) {
		cfg.BaseDir = filepath.Join(filepath.Dir(path), cfg.BaseDir)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene      string
	OutputDir  string
	Width      int
	Height     int
	Scale      int
	Format     string
	Projection string
	Frames     int
	Workers    int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Projection != "" {
		c.Projection = flags.Projection
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		if c.Scene != "" && !filepath.IsAbs(c.Scene) {
			c.Scene = filepath.Join(c.BaseDir, c.Scene)
		}
		if c.OutputDir != "" && !filepath.IsAbs(c.OutputDir) {
			c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
		}
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "renders")
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 256
	}
	if c.Height <= 0 {
		c.Height = c.Width
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Background == "" {
		c.Background = "#000000"
	}
	if c.Projection == "" {
		c.Projection = camera.Orthogonal.String()
	}
	if c.Near == 0 && c.Far == 0 {
		c.Near, c.Far = -1, -100
	}
	if c.Extent <= 0 {
		c.Extent = 2
	}
	if c.FOV <= 0 {
		c.FOV = 60
	}
	if c.Distance == 0 {
		c.Distance = 10
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.Orbit == 0 {
		c.Orbit = 360
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate rejects settings the renderer cannot honour. Call after Resolve.
func (c *Config) Validate() error {
	if c.Scene == "" {
		return fmt.Errorf("config: no scene file")
	}
	if _, err := camera.ParseProjection(c.Projection); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := output.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := output.ParseColor(c.Background); err != nil {
		return fmt.Errorf("config: background: %w", err)
	}
	if !(c.Near > c.Far) {
		return fmt.Errorf("config: near %g must be greater than far %g", c.Near, c.Far)
	}
	if c.FOV >= 180 {
		return fmt.Errorf("config: fov %g must be below 180 degrees", c.FOV)
	}
	return nil
}
