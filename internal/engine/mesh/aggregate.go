package mesh

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/Faultbox/tessellation-demo/internal/engine/texture"
)

// ErrNoParts is returned when there is nothing to aggregate.
var ErrNoParts = errors.New("mesh has no parts")

// TextureLoader loads a texture file and returns its handle.
// Implementations own the handles they return.
type TextureLoader interface {
	Load(path string) (texture.ID, error)
}

// AggregateStatic merges parts into one static-vertex mesh. Each part's diffuse
// map, when named, is loaded from modelDir; parts without one get a flat white color.
func AggregateStatic(parts []Part, modelDir string, textures TextureLoader) (*Mesh[StaticVertex], error) {
	return aggregate(parts,
		func(p Part) ([]StaticVertex, error) {
			return p.Vertices, nil
		},
		func(p Part, s *Subset) error {
			if p.Material.DiffuseMap == "" {
				return nil
			}
			var err error
			s.DiffuseMap, err = textures.Load(MapPath(modelDir, p.Material.DiffuseMap))
			return err
		},
	)
}

// AggregateNormalMapped merges parts into one tangent-vertex mesh. Tangents are
// computed per part. A part with a diffuse map also needs a normal map: the one
// its material names, or else one named after the diffuse file with an "N"
// before the extension. A displacement map named by the material is bound too.
func AggregateNormalMapped(parts []Part, modelDir string, textures TextureLoader) (*Mesh[TangentVertex], error) {
	return aggregate(parts,
		func(p Part) ([]TangentVertex, error) {
			tangents, binormals, err := CalculateTangents(p.Vertices, p.Indices)
			if err != nil {
				return nil, err
			}
			return WithTangents(p.Vertices, tangents, binormals), nil
		},
		func(p Part, s *Subset) error {
			var err error
			if p.Material.DisplacementMap != "" {
				if s.DisplacementMap, err = textures.Load(MapPath(modelDir, p.Material.DisplacementMap)); err != nil {
					return err
				}
			}
			if p.Material.DiffuseMap == "" {
				return nil
			}
			diffuse := MapPath(modelDir, p.Material.DiffuseMap)
			if s.DiffuseMap, err = textures.Load(diffuse); err != nil {
				return err
			}
			normal := NormalMapPath(diffuse)
			if p.Material.NormalMap != "" {
				normal = MapPath(modelDir, p.Material.NormalMap)
			}
			s.NormalMap, err = textures.Load(normal)
			return err
		},
	)
}

// aggregate concatenates part vertices and rebased part indices, emitting one
// subset per part in input order. Any failure discards the whole mesh.
func aggregate[V any](parts []Part, vertices func(Part) ([]V, error), material func(Part, *Subset) error) (*Mesh[V], error) {
	if len(parts) == 0 {
		return nil, ErrNoParts
	}

	m := &Mesh[V]{
		Stride:  strideOf[V](),
		Subsets: make([]Subset, 0, len(parts)),
	}

	vertexOffset := 0
	indexOffset := 0
	for _, p := range parts {
		if err := ValidateIndices(p.Indices, len(p.Vertices)); err != nil {
			return nil, fmt.Errorf("part %q: %w", p.Name, err)
		}

		vs, err := vertices(p)
		if err != nil {
			return nil, fmt.Errorf("part %q: %w", p.Name, err)
		}
		m.Vertices = append(m.Vertices, vs...)
		for _, idx := range p.Indices {
			m.Indices = append(m.Indices, idx+uint32(vertexOffset))
		}

		s := Subset{
			StartIndex:   indexOffset,
			IndexCount:   len(p.Indices),
			DiffuseColor: White,
		}
		if err := material(p, &s); err != nil {
			return nil, fmt.Errorf("part %q: %w", p.Name, err)
		}
		m.Subsets = append(m.Subsets, s)

		vertexOffset += len(p.Vertices)
		indexOffset += len(p.Indices)
	}

	return m, nil
}

// MapPath resolves a texture map named in a material library against the
// model directory. Only the file name of the map is kept; directories in the
// material library (with either separator) are ignored.
func MapPath(modelDir, mapFile string) string {
	name := path.Base(strings.ReplaceAll(mapFile, `\`, "/"))
	return filepath.Join(modelDir, name)
}

// NormalMapPath derives the normal map for a diffuse texture by inserting "N"
// before the extension: "dir/stone.jpg" becomes "dir/stoneN.jpg".
func NormalMapPath(diffusePath string) string {
	ext := filepath.Ext(diffusePath)
	return strings.TrimSuffix(diffusePath, ext) + "N" + ext
}
