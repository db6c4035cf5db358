// Package mesh builds renderable meshes from OBJ models: it computes
// tangent-space bases and merges model parts into one vertex/index buffer
// with a subset per part.
package mesh

import (
	"unsafe"

	"github.com/Faultbox/tessellation-demo/internal/engine/texture"
)

// StaticVertex is a vertex as loaded from the model file.
type StaticVertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// TangentVertex is a static vertex augmented with its tangent-space basis.
// Field order matches the tessellation pipeline's attribute locations.
type TangentVertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
	Binormal [3]float32
	Tangent  [3]float32
}

// Material is the per-part material the aggregator resolves textures from.
type Material struct {
	Name string
	// File names as written in the material library.
	DiffuseMap      string
	NormalMap       string
	DisplacementMap string
}

// Part is one group of a model: its own vertices, indices local to those
// vertices, and one material.
type Part struct {
	Name     string
	Vertices []StaticVertex
	Indices  []uint32
	Material Material
}

// Subset is a contiguous index range drawn with one material binding.
type Subset struct {
	StartIndex      int
	IndexCount      int
	DiffuseMap      texture.ID
	NormalMap       texture.ID
	DisplacementMap texture.ID
	DiffuseColor    [4]float32
}

// End returns the index one past the subset's range.
func (s Subset) End() int {
	return s.StartIndex + s.IndexCount
}

// White is the flat diffuse color used when a part has no diffuse texture.
var White = [4]float32{1, 1, 1, 1}

// Mesh is an aggregated mesh ready for GPU upload: one vertex buffer, one index
// buffer and the subsets partitioning the index buffer.
type Mesh[V any] struct {
	Vertices []V
	Indices  []uint32
	Stride   int
	Subsets  []Subset
}

// SubsetIndices returns the index range of subset i.
func (m *Mesh[V]) SubsetIndices(i int) []uint32 {
	s := m.Subsets[i]
	return m.Indices[s.StartIndex:s.End()]
}

// SetTextures assigns the same diffuse and normal maps to every subset.
// Zero leaves a map unchanged.
func (m *Mesh[V]) SetTextures(diffuse, normal texture.ID) {
	for i := range m.Subsets {
		s := &m.Subsets[i]
		if diffuse != 0 {
			s.DiffuseMap = diffuse
		}
		if normal != 0 {
			s.NormalMap = normal
		}
	}
}

// FillDisplacement binds id as the displacement map of every subset that has
// none of its own.
func (m *Mesh[V]) FillDisplacement(id texture.ID) {
	for i := range m.Subsets {
		if m.Subsets[i].DisplacementMap == 0 {
			m.Subsets[i].DisplacementMap = id
		}
	}
}

func strideOf[V any]() int {
	var v V
	return int(unsafe.Sizeof(v))
}
