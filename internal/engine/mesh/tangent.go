package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tessellation-demo/pkg/math"
)

// Index validation errors.
var (
	ErrIndexCount = errors.New("index count is not a multiple of 3")
	ErrIndexRange = errors.New("index out of range")
)

// CalculateTangents accumulates per-vertex tangent and binormal directions over
// every triangle in indices. The results are sums over incident triangles and
// are not normalized.
//
// The UV determinant is not checked: a triangle whose texture coordinates are
// collinear contributes Inf/NaN to its three vertices.
func CalculateTangents(vertices []StaticVertex, indices []uint32) (tangents, binormals []math.Vec3, err error) {
	if err := ValidateIndices(indices, len(vertices)); err != nil {
		return nil, nil, err
	}

	tangents = make([]math.Vec3, len(vertices))
	binormals = make([]math.Vec3, len(vertices))

	for i := 0; i < len(indices); i += 3 {
		i1, i2, i3 := indices[i], indices[i+1], indices[i+2]

		v1 := math.V3(vertices[i1].Position)
		e1 := math.V3(vertices[i2].Position).Sub(v1)
		e2 := math.V3(vertices[i3].Position).Sub(v1)

		w1 := math.V2(vertices[i1].TexCoord)
		d1 := math.V2(vertices[i2].TexCoord).Sub(w1)
		d2 := math.V2(vertices[i3].TexCoord).Sub(w1)
		s1, t1 := d1.X, d1.Y
		s2, t2 := d2.X, d2.Y

		r := 1 / (s1*t2 - s2*t1)

		sdir := math.Vec3{
			X: (t2*e1.X - t1*e2.X) * r,
			Y: (t2*e1.Y - t1*e2.Y) * r,
			Z: (t2*e1.Z - t1*e2.Z) * r,
		}
		tdir := math.Vec3{
			X: (s1*e2.X - s2*e1.X) * r,
			Y: (s1*e2.Y - s2*e1.Y) * r,
			Z: (s1*e2.Z - s2*e1.Z) * r,
		}

		for _, v := range [3]uint32{i1, i2, i3} {
			tangents[v] = tangents[v].Add(sdir)
			binormals[v] = binormals[v].Add(tdir)
		}
	}

	return tangents, binormals, nil
}

// ValidateIndices checks that indices form whole triangles over vertexCount vertices.
func ValidateIndices(indices []uint32, vertexCount int) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrIndexCount, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("%w: indices[%d] = %d, %d vertices", ErrIndexRange, i, idx, vertexCount)
		}
	}
	return nil
}

// WithTangents combines static vertices with their computed basis.
func WithTangents(vertices []StaticVertex, tangents, binormals []math.Vec3) []TangentVertex {
	out := make([]TangentVertex, len(vertices))
	for i, v := range vertices {
		out[i] = TangentVertex{
			Position: v.Position,
			TexCoord: v.TexCoord,
			Normal:   v.Normal,
			Binormal: binormals[i].Array(),
			Tangent:  tangents[i].Array(),
		}
	}
	return out
}

// NormalizeBasis normalizes accumulated tangents and binormals in place.
// Zero sums (vertices referenced by no triangle) stay zero.
func NormalizeBasis(tangents, binormals []math.Vec3) {
	for i := range tangents {
		tangents[i] = tangents[i].Normalize()
	}
	for i := range binormals {
		binormals[i] = binormals[i].Normalize()
	}
}

// NonFinite returns the indices of vertices whose tangent or binormal holds NaN
// or Inf, as produced by triangles with degenerate texture coordinates.
func NonFinite(tangents, binormals []math.Vec3) []int {
	var bad []int
	for i := range tangents {
		if !tangents[i].IsFinite() || !binormals[i].IsFinite() {
			bad = append(bad, i)
		}
	}
	return bad
}
