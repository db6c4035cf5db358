package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	if cfg.Render.TessellationFactor != 10 {
		t.Errorf("expected tessellation factor 10, got %g", cfg.Render.TessellationFactor)
	}
	if cfg.Render.MinTessellation != 1 || cfg.Render.MaxTessellation != 64 {
		t.Errorf("expected tessellation bounds [1, 64], got [%g, %g]", cfg.Render.MinTessellation, cfg.Render.MaxTessellation)
	}
	if cfg.Render.TessellationStep != 0.5 {
		t.Errorf("expected tessellation step 0.5, got %g", cfg.Render.TessellationStep)
	}
	if cfg.Render.ModelScale != 10 {
		t.Errorf("expected model scale 10, got %g", cfg.Render.ModelScale)
	}
	if cfg.Render.Wireframe {
		t.Error("expected wireframe to be off by default")
	}
	if cfg.Render.Rotating {
		t.Error("expected rotation to be off by default")
	}
	if cfg.Render.LightPosition != [3]float32{100, 100, 0} {
		t.Errorf("unexpected light position %v", cfg.Render.LightPosition)
	}

	if cfg.Camera.Eye != [3]float32{0, 15, -30} {
		t.Errorf("unexpected camera eye %v", cfg.Camera.Eye)
	}
	if cfg.Camera.FOV != float32(math.Pi/3) {
		t.Errorf("expected fov pi/3, got %g", cfg.Camera.FOV)
	}
	if cfg.Camera.Near != 1 || cfg.Camera.Far != 1000 {
		t.Errorf("expected clip range [1, 1000], got [%g, %g]", cfg.Camera.Near, cfg.Camera.Far)
	}

	if cfg.Screenshot.Format != "webp" {
		t.Errorf("expected screenshot format webp, got %s", cfg.Screenshot.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true

render:
  tessellation_factor: 32
  wireframe: true
  clear_color: [0, 0, 0, 1]

camera:
  eye: [0, 5, -10]
  speed: 40

assets:
  roots: [data, mods]
  model: models/rock.obj
  use_materials: true

screenshot:
  format: png

logging:
  level: "debug"
  log_file: "tess.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Render.TessellationFactor != 32 {
		t.Errorf("expected tessellation factor 32, got %g", cfg.Render.TessellationFactor)
	}
	if !cfg.Render.Wireframe {
		t.Error("expected wireframe to be true")
	}
	if cfg.Render.ClearColor != [4]float32{0, 0, 0, 1} {
		t.Errorf("unexpected clear color %v", cfg.Render.ClearColor)
	}
	// Unset keys keep their defaults.
	if cfg.Render.MaxTessellation != 64 {
		t.Errorf("expected default max tessellation 64, got %g", cfg.Render.MaxTessellation)
	}
	if cfg.Camera.Eye != [3]float32{0, 5, -10} {
		t.Errorf("unexpected camera eye %v", cfg.Camera.Eye)
	}
	if cfg.Camera.Speed != 40 {
		t.Errorf("expected camera speed 40, got %g", cfg.Camera.Speed)
	}
	if len(cfg.Assets.Roots) != 2 || cfg.Assets.Roots[1] != "mods" {
		t.Errorf("unexpected roots %v", cfg.Assets.Roots)
	}
	if cfg.Assets.Model != "models/rock.obj" {
		t.Errorf("expected model models/rock.obj, got %s", cfg.Assets.Model)
	}
	if !cfg.Assets.UseMaterials {
		t.Error("expected use_materials to be true")
	}
	if cfg.Screenshot.Format != "png" {
		t.Errorf("expected screenshot format png, got %s", cfg.Screenshot.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "tess.log" {
		t.Errorf("expected log file 'tess.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"inverted bounds", func(c *Config) { c.Render.MaxTessellation = 0.5 }, "max_tessellation"},
		{"factor above max", func(c *Config) { c.Render.TessellationFactor = 65 }, "tessellation_factor"},
		{"zero step", func(c *Config) { c.Render.TessellationStep = 0 }, "tessellation_step"},
		{"zero point size", func(c *Config) { c.Render.PointSize = 0 }, "point_size"},
		{"flat fov", func(c *Config) { c.Camera.FOV = 0 }, "fov"},
		{"far before near", func(c *Config) { c.Camera.Far = 0.5 }, "clip range"},
		{"eye on target", func(c *Config) { c.Camera.Eye = c.Camera.Target }, "coincide"},
		{"no model", func(c *Config) { c.Assets.Model = "" }, "assets.model"},
		{"bad format", func(c *Config) { c.Screenshot.Format = "gif" }, "screenshot format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Render.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "model flag",
			setup: func() { *flagModel = "models/teapot.obj" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.Model != "models/teapot.obj" {
					t.Errorf("expected model models/teapot.obj, got %s", cfg.Assets.Model)
				}
			},
			teardown: func() { *flagModel = "" },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "wireframe and tess flags",
			setup: func() {
				*flagWireframe = true
				*flagTess = 24
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Render.Wireframe {
					t.Error("expected wireframe with wireframe flag")
				}
				if cfg.Render.TessellationFactor != 24 {
					t.Errorf("expected tessellation factor 24, got %g", cfg.Render.TessellationFactor)
				}
			},
			teardown: func() {
				*flagWireframe = false
				*flagTess = 0
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
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  tessellation_factor: 100\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject tessellation factor above max")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Render.TessellationFactor = 12.5
	cfg.Assets.Model = "models/rock.obj"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Render.TessellationFactor != 12.5 {
		t.Errorf("expected tessellation factor 12.5, got %g", loaded.Render.TessellationFactor)
	}
	if loaded.Assets.Model != "models/rock.obj" {
		t.Errorf("expected model models/rock.obj, got %s", loaded.Assets.Model)
	}
	if loaded.Render.ClearColor != cfg.Render.ClearColor {
		t.Errorf("clear color changed: %v vs %v", loaded.Render.ClearColor, cfg.Render.ClearColor)
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  tesselation_factor: 12\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for misspelled key, got nil")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("# nothing set\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty config should load: %v", err)
	}
	if cfg.Render.TessellationFactor != 10 {
		t.Errorf("expected default tessellation factor, got %g", cfg.Render.TessellationFactor)
	}
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 1024\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 1024 {
		t.Errorf("expected width 1024 from %s, got %d", EnvConfig, cfg.Window.Width)
	}
}

func TestApplyAssetsFlag(t *testing.T) {
	*flagAssets = "/opt/extra"
	defer func() { *flagAssets = "" }()

	cfg := Default()
	applyFlags(cfg)

	roots := cfg.Assets.Roots
	if len(roots) != 2 || roots[len(roots)-1] != "/opt/extra" {
		t.Errorf("expected /opt/extra appended as highest priority root, got %v", roots)
	}
}

func TestSaveToLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Default().SaveTo(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.yaml" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only config.yaml, got %v", names)
	}
}
