package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/skinview/internal/engine/camera"
)

// FileName is the config file looked up in the working directory.
const FileName = "skinview.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)
	cfg.Validate()

	return cfg, nil
}

// LoadFile loads defaults merged with a single file, without flags.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	cfg.Validate()
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", FileName),
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "skinview")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "skinview")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "skinview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "skinview")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate clamps out-of-range values instead of rejecting them.
func (c *Config) Validate() {
	def := Default()

	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}

	c.View.InitialPitch = clamp(c.View.InitialPitch, camera.MinPitch, camera.MaxPitch)
	if bg := c.View.Background; bg != nil {
		for i := range bg {
			bg[i] = clamp(bg[i], 0, 1)
		}
	}

	cam := &c.Camera
	if cam.ZoomScale <= 0 {
		cam.ZoomScale = def.Camera.ZoomScale
	}
	if cam.MinZoom <= 0 {
		cam.MinZoom = def.Camera.MinZoom
	}
	if cam.MaxZoom <= 0 {
		cam.MaxZoom = def.Camera.MaxZoom
	}
	if cam.MinZoom > cam.MaxZoom {
		cam.MinZoom, cam.MaxZoom = cam.MaxZoom, cam.MinZoom
	}

	if c.Render.Width <= 0 {
		c.Render.Width = def.Render.Width
	}
	if c.Render.Height <= 0 {
		c.Render.Height = def.Render.Height
	}
	if c.Render.Supersample < 1 {
		c.Render.Supersample = 1
	}
	if c.Render.Supersample > 4 {
		c.Render.Supersample = 4
	}
	if c.Render.Format == "" {
		c.Render.Format = def.Render.Format
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
