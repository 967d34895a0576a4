// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/globeview/internal/engine/camera"
	"github.com/Faultbox/globeview/pkg/geo"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Globe    GlobeConfig    `yaml:"globe"`
	Coverage CoverageConfig `yaml:"coverage"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Fullscreen    bool   `yaml:"fullscreen"`
	VSync         bool   `yaml:"vsync"`
	FPSLimit      int    `yaml:"fps_limit"`
	ScreenshotDir string `yaml:"screenshot_dir"` // F12 writes PNGs here
}

// CameraConfig holds orbit navigation settings. Heights are meters above the
// surface.
type CameraConfig struct {
	FOV             float64 `yaml:"fov"`
	MinHeight       float64 `yaml:"min_height"`
	MaxHeight       float64 `yaml:"max_height"`
	ZoomSensitivity float64 `yaml:"zoom_sensitivity"`
	PanSensitivity  float64 `yaml:"pan_sensitivity"`
	Damping         float64 `yaml:"damping"`
}

// GlobeConfig holds planet and tile pyramid settings.
type GlobeConfig struct {
	EarthRadius float64 `yaml:"earth_radius"`
	Ratio       float64 `yaml:"ratio"` // Render units per meter
	MaxZoom     int     `yaml:"max_zoom"`
	TileSize    int     `yaml:"tile_size"`
	LODFOV      float64 `yaml:"lod_fov"` // Degrees, used only by the zoom estimate
	InitialZoom int     `yaml:"initial_zoom"`
}

// CoverageConfig holds coverage refresh settings.
type CoverageConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Listen string `yaml:"listen"` // Empty disables the endpoint
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	cam := camera.DefaultSettings()
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			VSync:         true,
			ScreenshotDir: "screenshots",
		},
		Camera: CameraConfig{
			FOV:             cam.FOVY,
			MinHeight:       cam.MinHeight,
			MaxHeight:       cam.MaxHeight,
			ZoomSensitivity: cam.ZoomSensitivity,
			PanSensitivity:  cam.PanSensitivity,
			Damping:         cam.Damping,
		},
		Globe: GlobeConfig{
			EarthRadius: geo.EarthRadius,
			Ratio:       cam.Ratio,
			MaxZoom:     19,
			TileSize:    geo.TileSize,
			LODFOV:      40,
			InitialZoom: 3,
		},
		Coverage: CoverageConfig{
			Interval: 100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// CameraSettings converts the config into orbit controller settings.
func (c *Config) CameraSettings() camera.Settings {
	return camera.Settings{
		EarthRadius:     c.Globe.EarthRadius,
		Ratio:           c.Globe.Ratio,
		MinHeight:       c.Camera.MinHeight,
		MaxHeight:       c.Camera.MaxHeight,
		ZoomSensitivity: c.Camera.ZoomSensitivity,
		PanSensitivity:  c.Camera.PanSensitivity,
		Damping:         c.Camera.Damping,
		FOVY:            c.Camera.FOV,
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("graphics: fps_limit %d must not be negative", c.Graphics.FPSLimit))
	}
	if c.Globe.EarthRadius <= 0 {
		errs = append(errs, fmt.Errorf("globe: earth_radius %v must be positive", c.Globe.EarthRadius))
	}
	if c.Globe.Ratio <= 0 {
		errs = append(errs, fmt.Errorf("globe: ratio %v must be positive", c.Globe.Ratio))
	}
	if c.Globe.MaxZoom < 0 {
		errs = append(errs, fmt.Errorf("globe: max_zoom %d must not be negative", c.Globe.MaxZoom))
	}
	if c.Globe.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("globe: tile_size %d must be positive", c.Globe.TileSize))
	}
	if c.Globe.LODFOV <= 0 || c.Globe.LODFOV >= 180 {
		errs = append(errs, fmt.Errorf("globe: lod_fov %v must be in (0, 180)", c.Globe.LODFOV))
	}
	if c.Camera.MinHeight <= 0 || c.Camera.MinHeight >= c.Camera.MaxHeight {
		errs = append(errs, fmt.Errorf("camera: height range [%v, %v] is empty", c.Camera.MinHeight, c.Camera.MaxHeight))
	}
	if c.Camera.Damping <= 0 || c.Camera.Damping >= 1 {
		errs = append(errs, fmt.Errorf("camera: damping %v must be in (0, 1)", c.Camera.Damping))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera: fov %v must be in (0, 180)", c.Camera.FOV))
	}
	if c.Coverage.Interval <= 0 {
		errs = append(errs, fmt.Errorf("coverage: interval %v must be positive", c.Coverage.Interval))
	}
	return errors.Join(errs...)
}
