package mesh

// Create wraps ready-made vertices and indices in a mesh with a single subset
// covering every index, colored flat white.
func Create[V any](vertices []V, indices []uint32) (*Mesh[V], error) {
	if err := ValidateIndices(indices, len(vertices)); err != nil {
		return nil, err
	}
	return &Mesh[V]{
		Vertices: vertices,
		Indices:  indices,
		Stride:   strideOf[V](),
		Subsets: []Subset{{
			IndexCount:   len(indices),
			DiffuseColor: White,
		}},
	}, nil
}

// Quad returns a clip-space quad covering the viewport, used for full-screen passes.
func Quad() *Mesh[[3]float32] {
	m, _ := Create([][3]float32{
		{-1, 1, 0},
		{-1, -1, 0},
		{1, 1, 0},
		{1, -1, 0},
	}, []uint32{0, 2, 1, 2, 3, 1})
	return m
}

// BuildTangentMesh computes the tangent basis for a flat vertex/index pair and
// wraps the result with Create.
func BuildTangentMesh(vertices []StaticVertex, indices []uint32) (*Mesh[TangentVertex], error) {
	tangents, binormals, err := CalculateTangents(vertices, indices)
	if err != nil {
		return nil, err
	}
	return Create(WithTangents(vertices, tangents, binormals), indices)
}
