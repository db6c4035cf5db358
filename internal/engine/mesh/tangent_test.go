package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tessellation-demo/pkg/math"
)

// unitQuad has positions equal to texture coordinates, so the tangent is +X
// and the binormal +Y on both triangles.
func unitQuad() ([]StaticVertex, []uint32) {
	n := [3]float32{0, 0, 1}
	return []StaticVertex{
		{Position: [3]float32{0, 0, 0}, TexCoord: [2]float32{0, 0}, Normal: n},
		{Position: [3]float32{1, 0, 0}, TexCoord: [2]float32{1, 0}, Normal: n},
		{Position: [3]float32{0, 1, 0}, TexCoord: [2]float32{0, 1}, Normal: n},
		{Position: [3]float32{1, 1, 0}, TexCoord: [2]float32{1, 1}, Normal: n},
	}, []uint32{0, 1, 2, 2, 1, 3}
}

func TestCalculateTangentsSingleTriangle(t *testing.T) {
	vertices, _ := unitQuad()
	tangents, binormals, err := CalculateTangents(vertices[:3], []uint32{0, 1, 2})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.Equal(t, math.Vec3{X: 1}, tangents[i], "tangent %d", i)
		assert.Equal(t, math.Vec3{Y: 1}, binormals[i], "binormal %d", i)
	}
}

func TestCalculateTangentsAccumulates(t *testing.T) {
	vertices, indices := unitQuad()
	tangents, binormals, err := CalculateTangents(vertices, indices)
	require.NoError(t, err)

	// Vertices 1 and 2 are shared by both triangles and are not renormalized.
	assert.Equal(t, math.Vec3{X: 1}, tangents[0])
	assert.Equal(t, math.Vec3{X: 2}, tangents[1])
	assert.Equal(t, math.Vec3{X: 2}, tangents[2])
	assert.Equal(t, math.Vec3{X: 1}, tangents[3])
	assert.Equal(t, math.Vec3{Y: 2}, binormals[1])
	assert.Equal(t, math.Vec3{Y: 1}, binormals[3])
}

func TestCalculateTangentsOrderIndependent(t *testing.T) {
	vertices, indices := unitQuad()
	reversed := append(append([]uint32{}, indices[3:]...), indices[:3]...)

	t1, b1, err := CalculateTangents(vertices, indices)
	require.NoError(t, err)
	t2, b2, err := CalculateTangents(vertices, reversed)
	require.NoError(t, err)

	assert.Equal(t, t1, t2)
	assert.Equal(t, b1, b2)
}

func TestCalculateTangentsEmptyIndices(t *testing.T) {
	vertices, _ := unitQuad()
	tangents, binormals, err := CalculateTangents(vertices, nil)
	require.NoError(t, err)

	require.Len(t, tangents, len(vertices))
	require.Len(t, binormals, len(vertices))
	for i := range vertices {
		assert.Equal(t, math.Vec3{}, tangents[i])
		assert.Equal(t, math.Vec3{}, binormals[i])
	}
}

func TestCalculateTangentsUnreferencedVertexStaysZero(t *testing.T) {
	vertices, _ := unitQuad()
	tangents, binormals, err := CalculateTangents(vertices, []uint32{0, 1, 2})
	require.NoError(t, err)

	assert.Equal(t, math.Vec3{}, tangents[3])
	assert.Equal(t, math.Vec3{}, binormals[3])
}

func TestCalculateTangentsDegenerateUV(t *testing.T) {
	vertices, _ := unitQuad()
	for i := range vertices {
		vertices[i].TexCoord = [2]float32{0.5, 0.5}
	}
	tangents, binormals, err := CalculateTangents(vertices[:3], []uint32{0, 1, 2})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, NonFinite(tangents, binormals))
}

func TestCalculateTangentsRejectsBadIndices(t *testing.T) {
	vertices, _ := unitQuad()

	_, _, err := CalculateTangents(vertices, []uint32{0, 1})
	assert.ErrorIs(t, err, ErrIndexCount)

	_, _, err = CalculateTangents(vertices, []uint32{0, 1, 4})
	assert.ErrorIs(t, err, ErrIndexRange)
}

func TestWithTangents(t *testing.T) {
	vertices, indices := unitQuad()
	tangents, binormals, err := CalculateTangents(vertices, indices)
	require.NoError(t, err)

	out := WithTangents(vertices, tangents, binormals)
	require.Len(t, out, 4)
	assert.Equal(t, vertices[1].Position, out[1].Position)
	assert.Equal(t, vertices[1].TexCoord, out[1].TexCoord)
	assert.Equal(t, vertices[1].Normal, out[1].Normal)
	assert.Equal(t, [3]float32{2, 0, 0}, out[1].Tangent)
	assert.Equal(t, [3]float32{0, 2, 0}, out[1].Binormal)
}

func TestNormalizeBasis(t *testing.T) {
	tangents := []math.Vec3{{X: 2}, {}}
	binormals := []math.Vec3{{Y: 3}, {}}

	NormalizeBasis(tangents, binormals)
	assert.Equal(t, math.Vec3{X: 1}, tangents[0])
	assert.Equal(t, math.Vec3{Y: 1}, binormals[0])
	assert.Equal(t, math.Vec3{}, tangents[1])
	assert.Empty(t, NonFinite(tangents, binormals))
}
