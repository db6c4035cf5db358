// Package renderer draws tessellated, displacement-mapped meshes with OpenGL.
//
// Everything here needs a current OpenGL 4.1 context, created by the window
// package before New is called.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tessellation-demo/internal/engine/renderer/shaders"
	"github.com/Faultbox/tessellation-demo/internal/engine/shader"
	"github.com/Faultbox/tessellation-demo/internal/engine/texture"
	"github.com/Faultbox/tessellation-demo/internal/logger"
	"github.com/Faultbox/tessellation-demo/pkg/math"
)

// log is replaced with a named logger once New runs.
var log = zap.NewNop()

// Texture units of the tessellation pipeline.
const (
	UnitDiffuse      = 0
	UnitDisplacement = 1
	UnitNormal       = 2
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
	SolidColor [4]float32 // wireframe line color
}

// Frame holds the per-frame pipeline inputs.
type Frame struct {
	World              math.Mat4
	View               math.Mat4
	Projection         math.Mat4
	LightPos           math.Vec4
	Eye                math.Vec4
	TessellationFactor float32
	Scaling            float32
	DisplacementLevel  float32
}

// tessProgram is a linked tessellation pipeline and its uniform locations.
type tessProgram struct {
	id                 uint32
	world              int32
	view               int32
	projection         int32
	lightPos           int32
	eye                int32
	tessellationFactor int32
	scaling            int32
	displacementLevel  int32
	diffuseColor       int32
	solidColor         int32
}

// Renderer owns the GL pipeline state: programs, samplers and fallback textures.
type Renderer struct {
	config Config

	shaded    tessProgram
	solid     tessProgram
	wireframe bool

	linearSampler uint32
	pointSampler  uint32

	// Bound in place of maps a subset does not have.
	whiteTex  uint32
	normalTex uint32
	blackTex  uint32

	points  pointsProgram
	overlay overlayProgram
}

// New initialises OpenGL and builds the pipeline.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	log = logger.Named("renderer")

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	var major, minor int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	gl.GetIntegerv(gl.MINOR_VERSION, &minor)
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)
	if major < 4 {
		return nil, fmt.Errorf("OpenGL %d.%d has no tessellation stages, need 4.0+", major, minor)
	}

	r := &Renderer{config: cfg}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], cfg.ClearColor[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	if r.shaded, err = newTessProgram(shaders.TessFragmentShader); err != nil {
		r.Close()
		return nil, fmt.Errorf("shaded pipeline: %w", err)
	}
	if r.solid, err = newTessProgram(shaders.SolidFragmentShader); err != nil {
		r.Close()
		return nil, fmt.Errorf("solid pipeline: %w", err)
	}
	if r.points, err = newPointsProgram(); err != nil {
		r.Close()
		return nil, fmt.Errorf("points pipeline: %w", err)
	}
	if r.overlay, err = newOverlayProgram(); err != nil {
		r.Close()
		return nil, fmt.Errorf("overlay pipeline: %w", err)
	}

	r.linearSampler = newSampler(gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR)
	r.pointSampler = newSampler(gl.NEAREST, gl.NEAREST)

	r.whiteTex = uploadSolid(255, 255, 255, 255)
	r.normalTex = uploadSolid(128, 128, 255, 255)
	r.blackTex = uploadSolid(0, 0, 0, 255)

	if code := gl.GetError(); code != gl.NO_ERROR {
		r.Close()
		return nil, fmt.Errorf("pipeline setup: GL error 0x%x", code)
	}

	log.Debug("pipeline ready",
		zap.Uint32("shaded", r.shaded.id),
		zap.Uint32("solid", r.solid.id),
		zap.Uint32("points", r.points.id),
		zap.Uint32("overlay", r.overlay.id),
	)
	return r, nil
}

func newTessProgram(fragment string) (tessProgram, error) {
	id, err := shader.CompilePipeline(shader.Sources{
		Vertex:         shaders.TessVertexShader,
		TessControl:    shaders.TessControlShader,
		TessEvaluation: shaders.TessEvaluationShader,
		Fragment:       fragment,
	})
	if err != nil {
		return tessProgram{}, err
	}

	p := tessProgram{
		id:                 id,
		world:              shader.GetUniform(id, "World"),
		view:               shader.GetUniform(id, "View"),
		projection:         shader.GetUniform(id, "Projection"),
		lightPos:           shader.GetUniform(id, "LightPos"),
		eye:                shader.GetUniform(id, "Eye"),
		tessellationFactor: shader.GetUniform(id, "TessellationFactor"),
		scaling:            shader.GetUniform(id, "Scaling"),
		displacementLevel:  shader.GetUniform(id, "DisplacementLevel"),
		diffuseColor:       shader.GetUniform(id, "DiffuseColor"),
		solidColor:         shader.GetUniform(id, "SolidColor"),
	}

	gl.UseProgram(id)
	gl.Uniform1i(shader.GetUniform(id, "DiffuseMap"), UnitDiffuse)
	gl.Uniform1i(shader.GetUniform(id, "DisplacementMap"), UnitDisplacement)
	gl.Uniform1i(shader.GetUniform(id, "NormalMap"), UnitNormal)
	gl.UseProgram(0)
	return p, nil
}

func newSampler(minFilter, magFilter int32) uint32 {
	var s uint32
	gl.GenSamplers(1, &s)
	gl.SamplerParameteri(s, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.SamplerParameteri(s, gl.TEXTURE_MAG_FILTER, magFilter)
	gl.SamplerParameteri(s, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.SamplerParameteri(s, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.SamplerParameteri(s, gl.TEXTURE_WRAP_R, gl.REPEAT)
	return s
}

// Close releases programs, samplers and fallback textures.
func (r *Renderer) Close() {
	log.Info("closing renderer")
	for _, p := range []*uint32{&r.shaded.id, &r.solid.id, &r.points.id, &r.overlay.id} {
		if *p != 0 {
			gl.DeleteProgram(*p)
			*p = 0
		}
	}
	for _, s := range []*uint32{&r.linearSampler, &r.pointSampler} {
		if *s != 0 {
			gl.DeleteSamplers(1, s)
			*s = 0
		}
	}
	for _, t := range []*uint32{&r.whiteTex, &r.normalTex, &r.blackTex} {
		if *t != 0 {
			gl.DeleteTextures(1, t)
			*t = 0
		}
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetWireframe switches between shaded fill and flat-colored wireframe.
func (r *Renderer) SetWireframe(on bool) {
	if on == r.wireframe {
		return
	}
	r.wireframe = on
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	log.Debug("fill mode changed", zap.Bool("wireframe", on))
}

// DrawTessellated draws every subset of m through the tessellation pipeline,
// binding each subset's maps to their units.
func (r *Renderer) DrawTessellated(m *Mesh, f Frame) {
	p := &r.shaded
	if r.wireframe {
		p = &r.solid
	}

	gl.UseProgram(p.id)
	gl.UniformMatrix4fv(p.world, 1, false, f.World.Ptr())
	gl.UniformMatrix4fv(p.view, 1, false, f.View.Ptr())
	gl.UniformMatrix4fv(p.projection, 1, false, f.Projection.Ptr())
	gl.Uniform4f(p.lightPos, f.LightPos[0], f.LightPos[1], f.LightPos[2], f.LightPos[3])
	gl.Uniform4f(p.eye, f.Eye[0], f.Eye[1], f.Eye[2], f.Eye[3])
	gl.Uniform1f(p.tessellationFactor, f.TessellationFactor)
	gl.Uniform1f(p.scaling, f.Scaling)
	gl.Uniform1f(p.displacementLevel, f.DisplacementLevel)
	c := r.config.SolidColor
	gl.Uniform4f(p.solidColor, c[0], c[1], c[2], c[3])

	for _, unit := range []uint32{UnitDiffuse, UnitDisplacement, UnitNormal} {
		gl.BindSampler(unit, r.linearSampler)
	}

	m.Begin()
	for i, s := range m.Subsets {
		bindTexture(UnitDiffuse, s.DiffuseMap, r.whiteTex)
		bindTexture(UnitDisplacement, s.DisplacementMap, r.blackTex)
		bindTexture(UnitNormal, s.NormalMap, r.normalTex)
		gl.Uniform4f(p.diffuseColor, s.DiffuseColor[0], s.DiffuseColor[1], s.DiffuseColor[2], s.DiffuseColor[3])
		m.DrawSubsetPatch(i, 3)
	}
	gl.BindVertexArray(0)
}

func bindTexture(unit uint32, id texture.ID, fallback uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	if id == 0 {
		gl.BindTexture(gl.TEXTURE_2D, fallback)
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels, w, h
}
