package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tessellation-demo/internal/engine/mesh"
	"github.com/Faultbox/tessellation-demo/internal/engine/renderer/shaders"
	"github.com/Faultbox/tessellation-demo/internal/engine/shader"
	"github.com/Faultbox/tessellation-demo/internal/engine/texture"
)

type overlayProgram struct {
	id   uint32
	rect int32
	tint int32
}

func newOverlayProgram() (overlayProgram, error) {
	id, err := shader.CompileProgram(shaders.OverlayVertexShader, shaders.OverlayFragmentShader)
	if err != nil {
		return overlayProgram{}, err
	}
	gl.UseProgram(id)
	gl.Uniform1i(shader.GetUniform(id, "Text"), 0)
	gl.UseProgram(0)
	return overlayProgram{
		id:   id,
		rect: shader.GetUniform(id, "Rect"),
		tint: shader.GetUniform(id, "Tint"),
	}, nil
}

// TextOverlay draws a text image at a fixed pixel position over the scene.
type TextOverlay struct {
	r      *Renderer
	quad   *Mesh
	tex    uint32
	width  int
	height int
}

// NewTextOverlay creates an empty overlay.
func (r *Renderer) NewTextOverlay() (*TextOverlay, error) {
	quad, err := NewMesh(mesh.Quad(), PositionLayout)
	if err != nil {
		return nil, fmt.Errorf("overlay quad: %w", err)
	}
	o := &TextOverlay{r: r, quad: quad}
	gl.GenTextures(1, &o.tex)
	return o, nil
}

// SetImage replaces the overlay contents. img is flipped in place.
func (o *TextOverlay) SetImage(img *image.RGBA) {
	texture.FlipVertical(img)
	o.width, o.height = img.Rect.Dx(), img.Rect.Dy()

	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(o.width), int32(o.height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Draw draws the overlay with its top-left corner at pixel (x, y), tinted.
func (o *TextOverlay) Draw(x, y int, tint [4]float32) {
	vw, vh := o.r.Size()
	if o.width == 0 || vw == 0 || vh == 0 {
		return
	}

	left := 2*float32(x)/float32(vw) - 1
	right := 2*float32(x+o.width)/float32(vw) - 1
	top := 1 - 2*float32(y)/float32(vh)
	bottom := 1 - 2*float32(y+o.height)/float32(vh)

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	p := o.r.overlay
	gl.UseProgram(p.id)
	gl.Uniform4f(p.rect, left, bottom, right, top)
	gl.Uniform4f(p.tint, tint[0], tint[1], tint[2], tint[3])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.BindSampler(0, o.r.pointSampler)

	o.quad.Begin()
	o.quad.DrawAll()
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	if o.r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
}

// Release deletes the overlay's quad and texture.
func (o *TextOverlay) Release() {
	o.quad.Release()
	if o.tex != 0 {
		gl.DeleteTextures(1, &o.tex)
		o.tex = 0
	}
}
