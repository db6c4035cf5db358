// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
)

// Config holds all demo settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Render     RenderConfig     `yaml:"render"`
	Camera     CameraConfig     `yaml:"camera"`
	Assets     AssetsConfig     `yaml:"assets"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// RenderConfig holds tessellation and scene settings.
type RenderConfig struct {
	TessellationFactor float32    `yaml:"tessellation_factor"`
	MinTessellation    float32    `yaml:"min_tessellation"`
	MaxTessellation    float32    `yaml:"max_tessellation"`
	TessellationStep   float32    `yaml:"tessellation_step"`
	DisplacementLevel  float32    `yaml:"displacement_level"`
	Scaling            float32    `yaml:"scaling"`
	ModelScale         float32    `yaml:"model_scale"`
	RotationSpeed      float32    `yaml:"rotation_speed"` // radians per second
	Wireframe          bool       `yaml:"wireframe"`
	Rotating           bool       `yaml:"rotating"`
	ShowControlPoints  bool       `yaml:"show_control_points"`
	PointSize          float32    `yaml:"point_size"`
	ClearColor         [4]float32 `yaml:"clear_color,flow"`
	LightPosition      [3]float32 `yaml:"light_position,flow"`
	ShowFPS            bool       `yaml:"show_fps"`
}

// CameraConfig holds the free-fly camera's starting pose and projection.
type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye,flow"`
	Target [3]float32 `yaml:"target,flow"`
	Up     [3]float32 `yaml:"up,flow"`
	FOV    float32    `yaml:"fov"` // vertical, radians
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
	Speed  float32    `yaml:"speed"` // units per second
}

// AssetsConfig names the model and the textures applied to it.
type AssetsConfig struct {
	Roots           []string `yaml:"roots"` // searched last to first
	Model           string   `yaml:"model"`
	Diffuse         string   `yaml:"diffuse"`
	NormalMap       string   `yaml:"normal_map"`
	DisplacementMap string   `yaml:"displacement_map"`
	UseMaterials    bool     `yaml:"use_materials"` // take diffuse/normal maps from the MTL
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // webp or png
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the demo's stock values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Tessellation Demo",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Render: RenderConfig{
			TessellationFactor: 10,
			MinTessellation:    1,
			MaxTessellation:    64,
			TessellationStep:   0.5,
			DisplacementLevel:  1,
			Scaling:            1,
			ModelScale:         10,
			RotationSpeed:      1,
			PointSize:          4,
			ClearColor:         [4]float32{100.0 / 255, 149.0 / 255, 237.0 / 255, 1},
			LightPosition:      [3]float32{100, 100, 0},
			ShowFPS:            true,
		},
		Camera: CameraConfig{
			Eye:    [3]float32{0, 15, -30},
			Target: [3]float32{0, 0, 0},
			Up:     [3]float32{0, 1, 0},
			FOV:    math.Pi / 3,
			Near:   1,
			Far:    1000,
			Speed:  20,
		},
		Assets: AssetsConfig{
			Roots:           []string{"assets"},
			Model:           "models/sphere.obj",
			Diffuse:         "textures/white.jpg",
			NormalMap:       "textures/normal/spikes_normal.jpg",
			DisplacementMap: "textures/displacement/spikes_displacement.jpg",
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "webp",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the demo cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}

	r := c.Render
	if r.MinTessellation < 1 {
		errs = append(errs, fmt.Errorf("min_tessellation %g must be at least 1", r.MinTessellation))
	}
	if r.MaxTessellation < r.MinTessellation {
		errs = append(errs, fmt.Errorf("max_tessellation %g is below min_tessellation %g", r.MaxTessellation, r.MinTessellation))
	}
	if r.TessellationFactor < r.MinTessellation || r.TessellationFactor > r.MaxTessellation {
		errs = append(errs, fmt.Errorf("tessellation_factor %g outside [%g, %g]", r.TessellationFactor, r.MinTessellation, r.MaxTessellation))
	}
	if r.PointSize <= 0 {
		errs = append(errs, fmt.Errorf("point_size %g must be positive", r.PointSize))
	}
	if r.TessellationStep <= 0 {
		errs = append(errs, fmt.Errorf("tessellation_step %g must be positive", r.TessellationStep))
	}

	cam := c.Camera
	if cam.FOV <= 0 || cam.FOV >= math.Pi {
		errs = append(errs, fmt.Errorf("camera fov %g must be in (0, pi)", cam.FOV))
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		errs = append(errs, fmt.Errorf("camera clip range [%g, %g] is invalid", cam.Near, cam.Far))
	}
	if cam.Eye == cam.Target {
		errs = append(errs, errors.New("camera eye and target coincide"))
	}

	if c.Assets.Model == "" {
		errs = append(errs, errors.New("assets.model is empty"))
	}
	switch c.Screenshot.Format {
	case "webp", "png":
	default:
		errs = append(errs, fmt.Errorf("unknown screenshot format %q", c.Screenshot.Format))
	}

	return errors.Join(errs...)
}
