// Package demo runs the tessellation demo: it owns the window, the GPU
// resources and the frame loop.
package demo

import (
	"fmt"
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tessellation-demo/internal/assets"
	"github.com/Faultbox/tessellation-demo/internal/config"
	"github.com/Faultbox/tessellation-demo/internal/engine/camera"
	"github.com/Faultbox/tessellation-demo/internal/engine/controls"
	"github.com/Faultbox/tessellation-demo/internal/engine/debug"
	"github.com/Faultbox/tessellation-demo/internal/engine/input"
	"github.com/Faultbox/tessellation-demo/internal/engine/mesh"
	"github.com/Faultbox/tessellation-demo/internal/engine/overlay"
	"github.com/Faultbox/tessellation-demo/internal/engine/renderer"
	"github.com/Faultbox/tessellation-demo/internal/engine/texture"
	"github.com/Faultbox/tessellation-demo/internal/engine/window"
	"github.com/Faultbox/tessellation-demo/internal/logger"
	"github.com/Faultbox/tessellation-demo/pkg/math"
)

var (
	fpsColor   = [4]float32{1, 1, 0, 1} // overlay text
	pointColor = [4]float32{1, 0.3, 0.2, 1}
)

// Demo is the running demo instance.
type Demo struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	assets   *assets.Manager
	textures *texture.Cache
	model    *renderer.Mesh
	fpsText  *renderer.TextOverlay
	shots    *debug.ScreenshotCapture

	state    controls.State
	fps      *overlay.FPSCounter
	rotation float32 // radians
}

// New opens the window and loads the model. Anything created before a
// failure is released before New returns.
func New(cfg *config.Config) (*Demo, error) {
	d := &Demo{
		cfg:   cfg,
		log:   logger.Named("demo"),
		input: input.New(input.DefaultKeymap()),
		fps:   overlay.NewFPSCounter(),
	}
	ok := false
	defer func() {
		if !ok {
			d.Close()
		}
	}()

	d.log.Info("initializing demo",
		zap.String("model", cfg.Assets.Model),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	if d.shots, err = debug.NewScreenshotCapture(cfg.Screenshot.Dir, "tessdemo", cfg.Screenshot.Format); err != nil {
		return nil, err
	}

	d.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	width, height := d.window.DrawableSize()
	d.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Render.ClearColor,
		SolidColor: [4]float32{1, 1, 1, 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	d.assets = assets.NewManager(cfg.Assets.Roots...)
	d.textures = texture.NewCache(d.assets, d.renderer)

	if err := d.loadModel(); err != nil {
		return nil, err
	}

	if d.fpsText, err = d.renderer.NewTextOverlay(); err != nil {
		return nil, err
	}
	d.fpsText.SetImage(overlay.Render(overlay.Label(0), 2))

	d.state = initialState(cfg, width, height)
	d.updateTitle()
	d.log.Info("demo initialized", zap.Int("textures", d.textures.Len()))
	ok = true
	return d, nil
}

// loadModel builds the normal-mapped mesh and uploads it.
func (d *Demo) loadModel() error {
	a := d.cfg.Assets

	var m *mesh.Mesh[mesh.TangentVertex]
	var err error
	if a.UseMaterials {
		m, err = mesh.NormalMappedFromOBJ(d.assets, a.Model, d.textures)
	} else {
		m, err = loadFlat(d.assets, a.Model)
	}
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}

	tangents := make([]math.Vec3, len(m.Vertices))
	binormals := make([]math.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		tangents[i], binormals[i] = math.V3(v.Tangent), math.V3(v.Binormal)
	}
	if bad := mesh.NonFinite(tangents, binormals); len(bad) > 0 {
		d.log.Warn("degenerate texture coordinates, tangent basis is not finite",
			zap.Int("vertices", len(bad)),
			zap.Int("first", bad[0]),
		)
	}

	diffuse, err := d.optionalTexture(a.Diffuse, a.UseMaterials)
	if err != nil {
		return err
	}
	normal, err := d.optionalTexture(a.NormalMap, a.UseMaterials)
	if err != nil {
		return err
	}
	displacement, err := d.optionalTexture(a.DisplacementMap, false)
	if err != nil {
		return err
	}
	m.SetTextures(diffuse, normal)
	// Displacement named by a material wins over the configured map.
	m.FillDisplacement(displacement)

	if d.model, err = renderer.NewMesh(m, renderer.TangentLayout); err != nil {
		return fmt.Errorf("uploading model: %w", err)
	}
	d.log.Info("model loaded",
		zap.String("path", a.Model),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", len(m.Indices)/3),
		zap.Int("subsets", len(m.Subsets)),
	)
	return nil
}

// loadFlat loads every part of an OBJ into one subset and computes its basis.
func loadFlat(src mesh.FileSource, path string) (*mesh.Mesh[mesh.TangentVertex], error) {
	vertices, indices, err := mesh.LoadOBJ(src, path)
	if err != nil {
		return nil, err
	}
	return mesh.BuildTangentMesh(vertices, indices)
}

// optionalTexture loads path unless it is empty or the material library
// already supplies that map.
func (d *Demo) optionalTexture(path string, fromMaterials bool) (texture.ID, error) {
	if path == "" || fromMaterials {
		return 0, nil
	}
	return d.textures.Load(path)
}

func initialState(cfg *config.Config, width, height int) controls.State {
	c := cfg.Camera
	cam := camera.State{
		Eye:    math.V3(c.Eye),
		Target: math.V3(c.Target),
		Up:     math.V3(c.Up),
		FOV:    c.FOV,
		Aspect: 1,
		Near:   c.Near,
		Far:    c.Far,
		Speed:  c.Speed,
	}
	return controls.State{
		Wireframe:  cfg.Render.Wireframe,
		Rotating:   cfg.Render.Rotating,
		Points:     cfg.Render.ShowControlPoints,
		TessFactor: cfg.Render.TessellationFactor,
		Limits: controls.Limits{
			Min:  cfg.Render.MinTessellation,
			Max:  cfg.Render.MaxTessellation,
			Step: cfg.Render.TessellationStep,
		},
		Camera: camera.WithViewport(cam, width, height),
		Width:  width,
		Height: height,
	}
}

// Run runs the frame loop until the user quits.
func (d *Demo) Run() error {
	d.log.Info("starting frame loop")
	last := time.Now()

	for {
		now := time.Now()
		dt := now.Sub(last)
		last = now

		prev := d.state
		d.state = controls.Apply(d.state, d.input.Poll())
		if d.state.Quit {
			d.log.Info("quit requested")
			return nil
		}
		if d.logChanges(prev) {
			d.updateTitle()
		}

		if d.state.Resized {
			w, h := d.window.DrawableSize()
			d.renderer.Resize(w, h)
			d.state.Camera = camera.WithViewport(d.state.Camera, w, h)
		}
		if d.state.Rotating {
			d.rotation += float32(dt.Seconds()) * d.cfg.Render.RotationSpeed
		}

		d.render()

		if d.fps.Tick(dt) {
			d.fpsText.SetImage(overlay.Render(overlay.Label(d.fps.FPS()), 2))
			d.log.Debug("fps", zap.Int("fps", d.fps.FPS()), zap.Duration("dt", dt))
		}
		if d.cfg.Render.ShowFPS {
			d.fpsText.Draw(4, 4, fpsColor)
		}

		d.state.Camera = camera.Update(d.state.Camera, dt)

		if d.state.Screenshot {
			d.screenshot()
			// Encoding stalls the loop; keep the stall out of dt and the FPS window.
			d.fps.Reset()
			last = time.Now()
		}

		d.window.SwapBuffers()
	}
}

func (d *Demo) render() {
	r := d.cfg.Render
	eye := d.state.Camera.Eye

	frame := renderer.Frame{
		World:              WorldMatrix(d.rotation, r.ModelScale),
		View:               d.state.Camera.View(),
		Projection:         d.state.Camera.Projection(),
		LightPos:           math.V3(r.LightPosition).Point(),
		Eye:                eye.Point(),
		TessellationFactor: d.state.TessFactor,
		Scaling:            r.Scaling,
		DisplacementLevel:  r.DisplacementLevel,
	}

	d.renderer.SetWireframe(d.state.Wireframe)
	d.renderer.Begin()
	d.renderer.DrawTessellated(d.model, frame)
	if d.state.Points {
		d.renderer.DrawControlPoints(d.model, frame, r.PointSize, pointColor)
	}
}

// WorldMatrix turns the model half a turn, scales it, then spins it by rotation radians.
func WorldMatrix(rotation, scale float32) math.Mat4 {
	return math.RotateY(rotation).
		Mul(math.UniformScale(scale)).
		Mul(math.RotateY(gomath.Pi))
}

func (d *Demo) screenshot() {
	pixels, w, h := d.renderer.ReadPixels()
	name, err := d.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		d.log.Error("screenshot failed", zap.Error(err))
		return
	}
	d.log.Info("screenshot saved", zap.String("file", name))
}

// logChanges logs toggled render settings and reports whether any changed.
func (d *Demo) logChanges(prev controls.State) bool {
	changed := false
	if prev.Wireframe != d.state.Wireframe {
		d.log.Debug("wireframe toggled", zap.Bool("on", d.state.Wireframe))
		changed = true
	}
	if prev.Rotating != d.state.Rotating {
		d.log.Debug("rotation toggled", zap.Bool("on", d.state.Rotating))
		changed = true
	}
	if prev.Points != d.state.Points {
		d.log.Debug("control points toggled", zap.Bool("on", d.state.Points))
		changed = true
	}
	if prev.TessFactor != d.state.TessFactor {
		d.log.Debug("tessellation factor", zap.Float32("factor", d.state.TessFactor))
		changed = true
	}
	return changed
}

func (d *Demo) updateTitle() {
	d.window.SetTitle(Title(d.cfg.Window.Title, d.state))
}

// Title formats the window title with the current render settings.
func Title(base string, s controls.State) string {
	mode := "solid"
	if s.Wireframe {
		mode = "wireframe"
	}
	return fmt.Sprintf("%s | tess %.1f | %s", base, s.TessFactor, mode)
}

// Close releases every resource in reverse order of creation. It is safe
// on a partially constructed Demo.
func (d *Demo) Close() {
	d.log.Info("closing demo")

	if d.fpsText != nil {
		d.fpsText.Release()
	}
	if d.model != nil {
		d.model.Release()
	}
	if d.textures != nil {
		d.textures.Release()
	}
	if d.assets != nil {
		d.assets.Close()
	}
	if d.renderer != nil {
		d.renderer.Close()
	}
	if d.window != nil {
		d.window.Close()
	}
}
