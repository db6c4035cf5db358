package mesh

import (
	"fmt"
	"path/filepath"

	"github.com/Faultbox/tessellation-demo/pkg/formats"
)

// FileSource reads model, material and texture files by path.
type FileSource interface {
	Load(path string) ([]byte, error)
}

// LoadParts decodes an OBJ file and its material library into mesh parts,
// one per material group, in file order. A referenced library that cannot
// be loaded fails the whole model.
func LoadParts(src FileSource, objPath string) ([]Part, error) {
	data, err := src.Load(objPath)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", objPath, err)
	}
	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parsing model %s: %w", objPath, err)
	}

	var materials map[string]*formats.Material
	if obj.MaterialLib != "" {
		libPath := filepath.Join(filepath.Dir(objPath), obj.MaterialLib)
		data, err := src.Load(libPath)
		if err != nil {
			return nil, fmt.Errorf("loading material library %s: %w", libPath, err)
		}
		if materials, err = formats.ParseMTL(data); err != nil {
			return nil, fmt.Errorf("parsing material library %s: %w", libPath, err)
		}
	}

	return PartsFromOBJ(obj, materials), nil
}

// PartsFromOBJ converts OBJ groups into parts. Corners sharing the same
// position/uv/normal triple share a vertex; polygons are fan-triangulated.
// Groups naming an unknown material get a material without maps.
func PartsFromOBJ(obj *formats.OBJ, materials map[string]*formats.Material) []Part {
	parts := make([]Part, 0, len(obj.Groups))
	for gi := range obj.Groups {
		g := &obj.Groups[gi]

		mat := Material{Name: g.Material}
		if m := materials[g.Material]; m != nil {
			mat.DiffuseMap = m.DiffuseMap
			mat.NormalMap = m.NormalMap
			mat.DisplacementMap = m.DisplacementMap
		}

		p := Part{
			Name:     g.Name,
			Indices:  make([]uint32, 0, g.TriangleCount()*3),
			Material: mat,
		}

		lookup := make(map[formats.OBJCorner]uint32)
		vertex := func(c formats.OBJCorner) uint32 {
			if idx, ok := lookup[c]; ok {
				return idx
			}
			v := StaticVertex{Position: obj.Positions[c.Position]}
			if c.TexCoord >= 0 {
				v.TexCoord = obj.TexCoords[c.TexCoord]
			}
			if c.Normal >= 0 {
				v.Normal = obj.Normals[c.Normal]
			}
			idx := uint32(len(p.Vertices))
			p.Vertices = append(p.Vertices, v)
			lookup[c] = idx
			return idx
		}

		for _, f := range g.Faces {
			first := vertex(f.Corners[0])
			prev := vertex(f.Corners[1])
			for _, c := range f.Corners[2:] {
				next := vertex(c)
				p.Indices = append(p.Indices, first, prev, next)
				prev = next
			}
		}
		parts = append(parts, p)
	}
	return parts
}

// LoadOBJ returns the vertices of every part concatenated, and the indices of
// every part rebased onto that array.
func LoadOBJ(src FileSource, objPath string) ([]StaticVertex, []uint32, error) {
	parts, err := LoadParts(src, objPath)
	if err != nil {
		return nil, nil, err
	}

	var vertices []StaticVertex
	var indices []uint32
	for _, p := range parts {
		base := uint32(len(vertices))
		vertices = append(vertices, p.Vertices...)
		for _, idx := range p.Indices {
			indices = append(indices, idx+base)
		}
	}
	return vertices, indices, nil
}

// VerticesFromOBJ returns the concatenated vertices of an OBJ model.
func VerticesFromOBJ(src FileSource, objPath string) ([]StaticVertex, error) {
	vertices, _, err := LoadOBJ(src, objPath)
	return vertices, err
}

// IndicesFromOBJ returns the rebased indices of an OBJ model.
func IndicesFromOBJ(src FileSource, objPath string) ([]uint32, error) {
	_, indices, err := LoadOBJ(src, objPath)
	return indices, err
}

// StaticFromOBJ loads an OBJ model as a static-vertex mesh.
func StaticFromOBJ(src FileSource, objPath string, textures TextureLoader) (*Mesh[StaticVertex], error) {
	parts, err := LoadParts(src, objPath)
	if err != nil {
		return nil, err
	}
	return AggregateStatic(parts, filepath.Dir(objPath), textures)
}

// NormalMappedFromOBJ loads an OBJ model as a tangent-vertex mesh with
// diffuse and normal maps per subset.
func NormalMappedFromOBJ(src FileSource, objPath string, textures TextureLoader) (*Mesh[TangentVertex], error) {
	parts, err := LoadParts(src, objPath)
	if err != nil {
		return nil, err
	}
	return AggregateNormalMapped(parts, filepath.Dir(objPath), textures)
}
