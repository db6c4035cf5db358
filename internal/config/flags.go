package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagModel      = flag.String("model", "", "OBJ model to render")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagWireframe  = flag.Bool("wireframe", false, "Start in wireframe mode")
	flagTess       = flag.Float64("tess", 0, "Initial tessellation factor")
	flagSave       = flag.Bool("save-config", false, "Write the effective config to the user config directory and exit")
	flagAssets     = flag.String("assets", "", "Extra asset directory, searched before the configured roots")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether -save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Render.ShowFPS = true
	}
	if *flagModel != "" {
		cfg.Assets.Model = *flagModel
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
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
	if *flagWireframe {
		cfg.Render.Wireframe = true
	}
	if *flagAssets != "" {
		cfg.Assets.Roots = append(cfg.Assets.Roots, *flagAssets)
	}
	if *flagTess > 0 {
		cfg.Render.TessellationFactor = float32(*flagTess)
	}
}
