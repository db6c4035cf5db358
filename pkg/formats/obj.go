package formats

import (
	"bytes"
	"fmt"
	"math"

	"github.com/g3n/engine/loader/obj"
)

const (
	// Material name the decoder gives faces that follow no usemtl statement.
	decoderDefaultMaterial = "internal default"
	// Index the decoder stores for a corner without uv or normal.
	missingIndex = math.MaxUint32
)

// OBJ holds the decoded contents of a Wavefront .obj file.
// Indices in faces are resolved to zero-based positions in the attribute arrays.
type OBJ struct {
	MaterialLib string       // mtllib file name, empty when absent
	Positions   [][3]float32 // v
	TexCoords   [][2]float32 // vt
	Normals     [][3]float32 // vn
	Groups      []OBJGroup   // contiguous face runs sharing one material, file order
}

// OBJGroup is a contiguous run of faces rendered with the same material.
// A new group starts at every o or g statement and whenever the active
// material changes.
type OBJGroup struct {
	Name     string
	Material string
	Faces    []OBJFace
}

// OBJFace is a polygon with three or more corners.
type OBJFace struct {
	Corners []OBJCorner
}

// OBJCorner references one vertex of a face. TexCoord and Normal are -1 when absent.
type OBJCorner struct {
	Position int
	TexCoord int
	Normal   int
}

// TriangleCount returns the number of triangles the group yields after fan triangulation.
func (g *OBJGroup) TriangleCount() int {
	n := 0
	for _, f := range g.Faces {
		n += len(f.Corners) - 2
	}
	return n
}

// ParseOBJ decodes OBJ data. Material libraries are not read; the name of
// the referenced one is kept in MaterialLib.
func ParseOBJ(data []byte) (*OBJ, error) {
	dec, err := decode("obj", bytes.NewReader(data), nil)
	if err != nil {
		return nil, err
	}

	if err := validate(dec); err != nil {
		return nil, err
	}

	o := &OBJ{
		MaterialLib: dec.Matlib,
		Positions:   triples(dec.Vertices),
		TexCoords:   pairs(dec.Uvs),
		Normals:     triples(dec.Normals),
	}
	for i := range dec.Objects {
		o.Groups = append(o.Groups, groupsOf(&dec.Objects[i])...)
	}
	return o, nil
}

// groupsOf splits a decoded object into runs of faces sharing a material.
// Objects without faces yield nothing.
func groupsOf(ob *obj.Object) []OBJGroup {
	var groups []OBJGroup
	for _, f := range ob.Faces {
		material := f.Material
		if material == decoderDefaultMaterial {
			material = ""
		}
		if len(groups) == 0 || groups[len(groups)-1].Material != material {
			groups = append(groups, OBJGroup{Name: ob.Name, Material: material})
		}
		g := &groups[len(groups)-1]
		g.Faces = append(g.Faces, faceOf(f))
	}
	return groups
}

func faceOf(f obj.Face) OBJFace {
	face := OBJFace{Corners: make([]OBJCorner, len(f.Vertices))}
	for i := range f.Vertices {
		face.Corners[i] = OBJCorner{
			Position: f.Vertices[i],
			TexCoord: optionalIndex(f.Uvs[i]),
			Normal:   optionalIndex(f.Normals[i]),
		}
	}
	return face
}

// optionalIndex maps the decoder's marker for a missing uv or normal to -1.
func optionalIndex(i int) int {
	if i == missingIndex {
		return -1
	}
	return i
}

func triples(flat []float32) [][3]float32 {
	out := make([][3]float32, len(flat)/3)
	for i := range out {
		copy(out[i][:], flat[i*3:])
	}
	return out
}

func pairs(flat []float32) [][2]float32 {
	out := make([][2]float32, len(flat)/2)
	for i := range out {
		copy(out[i][:], flat[i*2:])
	}
	return out
}

// validate checks every face reference against the attribute counts.
// The decoder resolves relative indices without bounds checks.
func validate(dec *obj.Decoder) error {
	check := func(what string, idx, count int) error {
		if idx < 0 || idx >= count {
			return &ParseError{Kind: "obj", Msg: fmt.Sprintf("%s index %d out of range (%d defined)", what, idx+1, count)}
		}
		return nil
	}

	positions, uvs, normals := len(dec.Vertices)/3, len(dec.Uvs)/2, len(dec.Normals)/3
	for oi := range dec.Objects {
		for _, f := range dec.Objects[oi].Faces {
			for i := range f.Vertices {
				if err := check("position", f.Vertices[i], positions); err != nil {
					return err
				}
				if f.Uvs[i] != missingIndex {
					if err := check("texture coordinate", f.Uvs[i], uvs); err != nil {
						return err
					}
				}
				if f.Normals[i] != missingIndex {
					if err := check("normal", f.Normals[i], normals); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}
