package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tessellation-demo/internal/engine/renderer/shaders"
	"github.com/Faultbox/tessellation-demo/internal/engine/shader"
)

// pointsProgram draws mesh vertices as screen-facing points.
type pointsProgram struct {
	id         uint32
	world      int32
	view       int32
	projection int32
	pointSize  int32
	color      int32
}

func newPointsProgram() (pointsProgram, error) {
	id, err := shader.CompileProgram(shaders.PointsVertexShader, shaders.PointsFragmentShader)
	if err != nil {
		return pointsProgram{}, err
	}
	return pointsProgram{
		id:         id,
		world:      shader.GetUniform(id, "World"),
		view:       shader.GetUniform(id, "View"),
		projection: shader.GetUniform(id, "Projection"),
		pointSize:  shader.GetUniform(id, "PointSize"),
		color:      shader.GetUniform(id, "SolidColor"),
	}, nil
}

// DrawControlPoints draws the untessellated vertices of m's first subset on
// top of the frame, size pixels wide.
func (r *Renderer) DrawControlPoints(m *Mesh, f Frame, size float32, color [4]float32) {
	if len(m.Subsets) == 0 {
		return
	}
	p := &r.points

	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(p.id)
	gl.UniformMatrix4fv(p.world, 1, false, f.World.Ptr())
	gl.UniformMatrix4fv(p.view, 1, false, f.View.Ptr())
	gl.UniformMatrix4fv(p.projection, 1, false, f.Projection.Ptr())
	gl.Uniform1f(p.pointSize, size)
	gl.Uniform4f(p.color, color[0], color[1], color[2], color[3])

	m.Begin()
	m.DrawPoints(m.Subsets[0].IndexCount)
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}
