package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tessellation-demo/internal/engine/mesh"
)

// Attribute describes one float vertex attribute inside an interleaved vertex.
type Attribute struct {
	Location uint32
	Size     int32 // float components
	Offset   uintptr
}

// TangentLayout matches mesh.TangentVertex and the tessellation vertex shader.
var TangentLayout = []Attribute{
	{0, 3, unsafe.Offsetof(mesh.TangentVertex{}.Position)},
	{1, 2, unsafe.Offsetof(mesh.TangentVertex{}.TexCoord)},
	{2, 3, unsafe.Offsetof(mesh.TangentVertex{}.Normal)},
	{3, 3, unsafe.Offsetof(mesh.TangentVertex{}.Binormal)},
	{4, 3, unsafe.Offsetof(mesh.TangentVertex{}.Tangent)},
}

// PositionLayout matches a bare [3]float32 position, as used by mesh.Quad.
var PositionLayout = []Attribute{{0, 3, 0}}

// ErrEmptyMesh is returned when uploading a mesh without vertices or indices.
var ErrEmptyMesh = errors.New("mesh has no geometry")

// Mesh is a mesh resident on the GPU: a vertex array with its vertex and
// index buffers, plus the subsets describing how to draw it.
type Mesh struct {
	vao, vbo, ebo uint32
	Subsets       []mesh.Subset
	released      bool
}

// NewMesh uploads m using layout to describe its vertex type.
func NewMesh[V any](m *mesh.Mesh[V], layout []Attribute) (*Mesh, error) {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 || len(m.Subsets) == 0 {
		return nil, ErrEmptyMesh
	}

	g := &Mesh{Subsets: append([]mesh.Subset(nil), m.Subsets...)}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*m.Stride, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	for _, a := range layout {
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, int32(m.Stride), a.Offset)
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		g.Release()
		return nil, fmt.Errorf("uploading mesh: GL error 0x%x", code)
	}

	log.Debug("mesh uploaded",
		zap.Uint32("vao", g.vao),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("indices", len(m.Indices)),
		zap.Int("stride", m.Stride),
		zap.Int("subsets", len(m.Subsets)),
	)
	return g, nil
}

// Begin binds the mesh's vertex array for the draw calls that follow.
func (g *Mesh) Begin() {
	gl.BindVertexArray(g.vao)
}

// DrawAll draws the first subset's index count from the start of the buffer.
// For meshes built with mesh.Create that covers every index.
func (g *Mesh) DrawAll() {
	drawElements(gl.TRIANGLES, g.Subsets[0].IndexCount, 0)
}

// DrawPoints draws up to n indices of the first subset as points.
func (g *Mesh) DrawPoints(n int) {
	drawElements(gl.POINTS, min(n, g.Subsets[0].IndexCount), 0)
}

// DrawSubsetPatch draws subset i as patches of controlPoints vertices.
func (g *Mesh) DrawSubsetPatch(i, controlPoints int) {
	s := g.Subsets[i]
	gl.PatchParameteri(gl.PATCH_VERTICES, int32(controlPoints))
	drawElements(gl.PATCHES, s.IndexCount, s.StartIndex)
}

// Release deletes the GPU buffers. Textures referenced by subsets belong to
// the texture cache and are not touched. Further calls do nothing.
func (g *Mesh) Release() {
	if g.released {
		return
	}
	g.released = true
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
	log.Debug("mesh released", zap.Uint32("vao", g.vao))
	g.vao, g.vbo, g.ebo = 0, 0, 0
}

func drawElements(mode uint32, count, start int) {
	if count <= 0 {
		return
	}
	gl.DrawElementsWithOffset(mode, int32(count), gl.UNSIGNED_INT, uintptr(start*4))
}
