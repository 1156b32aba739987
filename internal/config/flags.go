package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSkin       = flag.String("skin", "", "Skin image to open")
	flagCape       = flag.String("cape", "", "Cape image to open")
	flagSlim       = flag.Bool("slim", false, "Use slim arms")
	flagOrtho      = flag.Bool("ortho", false, "Start in orthographic projection")
	flagWatch      = flag.Bool("watch", false, "Reload skin and cape files when they change")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSkin != "" {
		cfg.Skin.Path = *flagSkin
	} else if flag.NArg() > 0 {
		cfg.Skin.Path = flag.Arg(0)
	}
	if *flagCape != "" {
		cfg.Skin.CapePath = *flagCape
	}
	if *flagSlim {
		cfg.View.Slim = true
	}
	if *flagOrtho {
		cfg.View.Orthographic = true
	}
	if *flagWatch {
		cfg.Skin.Watch = true
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
