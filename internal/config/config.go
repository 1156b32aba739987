// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/Faultbox/skinview/internal/engine/camera"
	"github.com/Faultbox/skinview/internal/view"
	"github.com/Faultbox/skinview/pkg/skin"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	View    ViewConfig    `yaml:"view"`
	Camera  CameraConfig  `yaml:"camera"`
	Skin    SkinConfig    `yaml:"skin"`
	Render  RenderConfig  `yaml:"render"`
	Publish PublishConfig `yaml:"publish"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// ViewConfig holds the initial display flags.
type ViewConfig struct {
	Slim         bool               `yaml:"slim"`
	Exploded     bool               `yaml:"exploded"`
	Grid         bool               `yaml:"grid"`
	Orthographic bool               `yaml:"orthographic"`
	InitialPitch float32            `yaml:"initial_pitch"`
	InitialYaw   float32            `yaml:"initial_yaw"`
	Background   *[3]float32        `yaml:"background"` // nil = transparent
	Visibility   map[skin.Part]bool `yaml:"visibility"` // missing layers are shown
}

// CameraConfig holds input gains and zoom bounds.
type CameraConfig struct {
	Sensitivity float32 `yaml:"sensitivity"`
	PanSpeed    float32 `yaml:"pan_speed"`
	ZoomScale   float32 `yaml:"zoom_scale"`
	MinZoom     float32 `yaml:"min_zoom"`
	MaxZoom     float32 `yaml:"max_zoom"`
}

// SkinConfig selects the textures shown at startup.
type SkinConfig struct {
	Path     string `yaml:"path"`      // skin image; empty uses the catalog template
	CapePath string `yaml:"cape_path"` // optional
	Catalog  string `yaml:"catalog"`   // skins.json
	Template string `yaml:"template"`  // default skin name from the catalog
	Watch    bool   `yaml:"watch"`     // reload files when they change
}

// RenderConfig holds headless render and screenshot settings.
type RenderConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Supersample int    `yaml:"supersample"`
	Format      string `yaml:"format"` // png or webp
	OutputDir   string `yaml:"output_dir"`
}

// PublishConfig holds the S3 destination for published renders.
type PublishConfig struct {
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"` // S3-compatible endpoint, optional
	Prefix   string `yaml:"prefix"`
	EnvFile  string `yaml:"env_file"` // credentials in KEY=value form
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	cam := camera.DefaultConfig()
	return &Config{
		Window: WindowConfig{
			Title:  "skinview",
			Width:  800,
			Height: 800,
			VSync:  true,
		},
		View: ViewConfig{
			InitialPitch: 35.264,
			InitialYaw:   -45,
		},
		Camera: CameraConfig{
			Sensitivity: cam.Sensitivity,
			PanSpeed:    cam.PanSpeed,
			ZoomScale:   cam.ZoomScale,
			MinZoom:     cam.MinZoom,
			MaxZoom:     cam.MaxZoom,
		},
		Render: RenderConfig{
			Width:       512,
			Height:      512,
			Supersample: 2,
			Format:      "png",
			OutputDir:   "screenshots",
		},
		Publish: PublishConfig{
			Region: "us-east-1",
			Prefix: "renders/",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// CameraSettings converts the camera section.
func (c *Config) CameraSettings() camera.Config {
	return camera.Config{
		Sensitivity: c.Camera.Sensitivity,
		PanSpeed:    c.Camera.PanSpeed,
		ZoomScale:   c.Camera.ZoomScale,
		MinZoom:     c.Camera.MinZoom,
		MaxZoom:     c.Camera.MaxZoom,
	}
}

// ViewOptions converts the view and camera sections.
func (c *Config) ViewOptions() view.Options {
	opts := view.Options{
		Slim:         c.View.Slim,
		Exploded:     c.View.Exploded,
		Grid:         c.View.Grid,
		Orthographic: c.View.Orthographic,
		InitialPitch: c.View.InitialPitch,
		InitialYaw:   c.View.InitialYaw,
		Visibility:   c.View.Visibility,
		Camera:       c.CameraSettings(),
	}
	if bg := c.View.Background; bg != nil {
		color := view.Color(*bg)
		opts.Background = &color
	}
	return opts
}
