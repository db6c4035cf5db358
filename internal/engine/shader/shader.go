// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Sources holds GLSL source for each pipeline stage. Vertex and Fragment are
// required; the tessellation stages must be given together or not at all.
type Sources struct {
	Vertex         string
	TessControl    string
	TessEvaluation string
	Fragment       string
}

type stage struct {
	kind uint32
	name string
	src  string
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	return CompilePipeline(Sources{Vertex: vertexSrc, Fragment: fragmentSrc})
}

// CompilePipeline compiles every stage in src and links them into a program.
// Shader objects are deleted once linked, whether or not linking succeeds.
func CompilePipeline(src Sources) (uint32, error) {
	if src.Vertex == "" || src.Fragment == "" {
		return 0, errors.New("vertex and fragment stages are required")
	}
	if (src.TessControl == "") != (src.TessEvaluation == "") {
		return 0, errors.New("tessellation control and evaluation stages must be used together")
	}

	stages := []stage{{gl.VERTEX_SHADER, "vertex", src.Vertex}}
	if src.TessControl != "" {
		stages = append(stages,
			stage{gl.TESS_CONTROL_SHADER, "tessellation control", src.TessControl},
			stage{gl.TESS_EVALUATION_SHADER, "tessellation evaluation", src.TessEvaluation},
		)
	}
	stages = append(stages, stage{gl.FRAGMENT_SHADER, "fragment", src.Fragment})

	compiled := make([]uint32, 0, len(stages))
	defer func() {
		for _, s := range compiled {
			gl.DeleteShader(s)
		}
	}()
	for _, st := range stages {
		s, err := compileShader(st.src, st.kind, st.name)
		if err != nil {
			return 0, err
		}
		compiled = append(compiled, s)
	}

	program := gl.CreateProgram()
	for _, s := range compiled {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)
	for _, s := range compiled {
		gl.DetachShader(program, s)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", gl.GoStr(&log[0]))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, gl.GoStr(&log[0]))
	}

	return shader, nil
}

// GetUniform returns the uniform location for the given name, or -1 if the
// uniform is absent or optimised out.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
