package math

import "github.com/spaghettifunk/anima-assets/engine/core"

// GenerateNormals writes a face normal into every vertex of every triangle.
// Vertices shared between faces end up with the normal of the last face.
func GenerateNormals(vertices []Vertex3D, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)

		// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
		normal := edge1.Cross(edge2).Normalized()
		vertices[i0].Normal = normal
		vertices[i1].Normal = normal
		vertices[i2].Normal = normal
	}
}

// DeduplicateVertices merges bitwise identical vertices and returns the new
// vertex buffer with a rewritten index buffer. The inputs are not modified.
func DeduplicateVertices(vertices []Vertex3D, indices []uint32) ([]Vertex3D, []uint32) {
	unique := make([]Vertex3D, 0, len(vertices))
	remap := make([]uint32, len(vertices))
	seen := make(map[Vertex3D]uint32, len(vertices))

	for i, v := range vertices {
		if at, ok := seen[v]; ok {
			remap[i] = at
			continue
		}
		at := uint32(len(unique))
		seen[v] = at
		remap[i] = at
		unique = append(unique, v)
	}

	outIndices := make([]uint32, len(indices))
	for i, idx := range indices {
		outIndices[i] = remap[idx]
	}

	core.LogDebug("DeduplicateVertices: removed %d vertices, orig/now %d/%d.", len(vertices)-len(unique), len(vertices), len(unique))

	return unique, outIndices
}

// CalculateExtents returns the axis aligned bounds of the vertex positions.
func CalculateExtents(vertices []Vertex3D) Extents3D {
	if len(vertices) == 0 {
		return Extents3D{}
	}
	ext := Extents3D{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		ext.Min = ext.Min.Min(v.Position)
		ext.Max = ext.Max.Max(v.Position)
	}
	return ext
}
