package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/skinview/internal/engine/camera"
	"github.com/Faultbox/skinview/internal/view"
	"github.com/Faultbox/skinview/pkg/skin"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 800, cfg.Window.Width)
	assert.True(t, cfg.Window.VSync)
	assert.InDelta(t, 35.264, cfg.View.InitialPitch, 1e-5)
	assert.InDelta(t, -45, cfg.View.InitialYaw, 1e-5)
	assert.Nil(t, cfg.View.Background)
	assert.Equal(t, camera.DefaultConfig(), cfg.CameraSettings())
	assert.Equal(t, "png", cfg.Render.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.LogFile)
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "skinview.yaml")

	yamlContent := `
window:
  width: 1024
  fullscreen: true
view:
  slim: true
  grid: true
  initial_yaw: 90
  background: [0.15, 0.15, 0.15]
  visibility:
    hat: false
    cape: false
camera:
  sensitivity: 0.8
  max_zoom: 3
skin:
  path: steve.png
  cape_path: cape.png
  watch: true
render:
  supersample: 3
  format: webp
publish:
  bucket: skins
  endpoint: http://localhost:9000
logging:
  level: debug
  log_file: skinview.log
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o644))

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, configPath))

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height, "unset values keep defaults")
	assert.True(t, cfg.Window.Fullscreen)
	assert.True(t, cfg.View.Slim)
	assert.True(t, cfg.View.Grid)
	assert.Equal(t, float32(90), cfg.View.InitialYaw)
	require.NotNil(t, cfg.View.Background)
	assert.Equal(t, [3]float32{0.15, 0.15, 0.15}, *cfg.View.Background)
	assert.Equal(t, map[skin.Part]bool{skin.Hat: false, skin.Cape: false}, cfg.View.Visibility)
	assert.Equal(t, float32(0.8), cfg.Camera.Sensitivity)
	assert.Equal(t, float32(3), cfg.Camera.MaxZoom)
	assert.Equal(t, float32(0.25), cfg.Camera.MinZoom)
	assert.Equal(t, "steve.png", cfg.Skin.Path)
	assert.Equal(t, "cape.png", cfg.Skin.CapePath)
	assert.True(t, cfg.Skin.Watch)
	assert.Equal(t, 3, cfg.Render.Supersample)
	assert.Equal(t, "webp", cfg.Render.Format)
	assert.Equal(t, "skins", cfg.Publish.Bucket)
	assert.Equal(t, "us-east-1", cfg.Publish.Region)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "skinview.log", cfg.Logging.LogFile)
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("window: [\n"), 0o644))
	assert.Error(t, loadFromFile(Default(), invalid))

	unknownPart := filepath.Join(dir, "part.yaml")
	require.NoError(t, os.WriteFile(unknownPart, []byte("view:\n  visibility:\n    tail: false\n"), 0o644))
	assert.ErrorIs(t, loadFromFile(Default(), unknownPart), skin.ErrUnknownPart)

	assert.Error(t, loadFromFile(Default(), filepath.Join(dir, "missing.yaml")))
}

func TestValidateClamps(t *testing.T) {
	bg := [3]float32{-1, 0.5, 2}
	cfg := Default()
	cfg.Window.Width = -5
	cfg.View.InitialPitch = 120
	cfg.View.Background = &bg
	cfg.Camera.MinZoom = 6
	cfg.Camera.MaxZoom = 2
	cfg.Camera.ZoomScale = 0
	cfg.Render.Supersample = 9
	cfg.Render.Format = ""

	cfg.Validate()

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, float32(90), cfg.View.InitialPitch)
	assert.Equal(t, [3]float32{0, 0.5, 1}, *cfg.View.Background)
	assert.Equal(t, float32(2), cfg.Camera.MinZoom)
	assert.Equal(t, float32(6), cfg.Camera.MaxZoom)
	assert.Equal(t, float32(800), cfg.Camera.ZoomScale)
	assert.Equal(t, 4, cfg.Render.Supersample)
	assert.Equal(t, "png", cfg.Render.Format)

	cfg.Render.Supersample = 0
	cfg.View.InitialPitch = -200
	cfg.Validate()
	assert.Equal(t, 1, cfg.Render.Supersample)
	assert.Equal(t, float32(-90), cfg.View.InitialPitch)
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	assert.NotEmpty(t, dir)
	assert.Equal(t, "skinview", filepath.Base(dir))
}

func TestFindConfigFile(t *testing.T) {
	origDir, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))
	require.NoError(t, os.Chdir(tmpDir))

	assert.Empty(t, findConfigFile())

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte("window:\n  width: 640\n"), 0o644))
	assert.Equal(t, filepath.Join(".", FileName), findConfigFile())
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:     "debug flag",
			setup:    func() { *flagDebug = true },
			verify:   func(t *testing.T, cfg *Config) { assert.Equal(t, "debug", cfg.Logging.Level) },
			teardown: func() { *flagDebug = false },
		},
		{
			name: "skin and cape flags",
			setup: func() {
				*flagSkin = "alex.png"
				*flagCape = "cape.png"
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "alex.png", cfg.Skin.Path)
				assert.Equal(t, "cape.png", cfg.Skin.CapePath)
			},
			teardown: func() {
				*flagSkin = ""
				*flagCape = ""
			},
		},
		{
			name: "view flags",
			setup: func() {
				*flagSlim = true
				*flagOrtho = true
				*flagWatch = true
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.View.Slim)
				assert.True(t, cfg.View.Orthographic)
				assert.True(t, cfg.Skin.Watch)
			},
			teardown: func() {
				*flagSlim = false
				*flagOrtho = false
				*flagWatch = false
			},
		},
		{
			name:     "fullscreen flag",
			setup:    func() { *flagFullscreen = true },
			verify:   func(t *testing.T, cfg *Config) { assert.True(t, cfg.Window.Fullscreen) },
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 1280
				*flagHeight = 960
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 1280, cfg.Window.Width)
				assert.Equal(t, 960, cfg.Window.Height)
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "skinview.yaml")
	yamlContent := `
window:
  width: 1600
  height: 900
camera:
  min_zoom: -1
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o644))

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1920, cfg.Window.Width, "flag beats file")
	assert.Equal(t, 900, cfg.Window.Height, "file beats default")
	assert.Equal(t, float32(0.25), cfg.Camera.MinZoom, "load validates")
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	bg := [3]float32{0.9, 0.9, 0.9}

	cfg := Default()
	cfg.View.Background = &bg
	cfg.View.Visibility = map[skin.Part]bool{skin.Jacket: false}
	require.NoError(t, cfg.SaveTo(path))

	loaded := Default()
	require.NoError(t, loadFromFile(loaded, path))
	assert.Equal(t, cfg, loaded)
}

func TestViewOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.ViewOptions()
	assert.Nil(t, opts.Background)
	assert.Equal(t, camera.DefaultConfig(), opts.Camera)
	assert.InDelta(t, -45, opts.InitialYaw, 1e-5)

	bg := [3]float32{0.9, 0.9, 0.9}
	cfg.View.Background = &bg
	cfg.View.Orthographic = true
	opts = cfg.ViewOptions()
	require.NotNil(t, opts.Background)
	assert.Equal(t, view.LightBackground, *opts.Background)
	assert.True(t, opts.Orthographic)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("publish:\n  bucket: renders\nrender:\n  supersample: 0\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "renders", cfg.Publish.Bucket)
	assert.Equal(t, 1, cfg.Render.Supersample)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
