package scene

// Orientation tags a prototype's source winding, as supplied by the scene
// loader per face group.
type Orientation uint8

const (
	RightHanded Orientation = iota
	LeftHanded
)

// Triangulate fans an n-gon face (given as a slice of vertex indices in
// loader order) from vertex 0: (0,1,2), (0,2,3), .... Left-handed input
// orientation has its winding reversed per triangle so downstream geometry
// is uniformly right-handed with counter-clockwise front faces.
func Triangulate(face []uint32, orientation Orientation) []Triangle {
	if len(face) < 3 {
		return nil
	}
	triangles := make([]Triangle, 0, len(face)-2)
	for i := 1; i < len(face)-1; i++ {
		tri := Triangle{face[0], face[i], face[i+1]}
		if orientation == LeftHanded {
			tri[1], tri[2] = tri[2], tri[1]
		}
		triangles = append(triangles, tri)
	}
	return triangles
}

// TriangulateFaces triangulates a whole face-vertex buffer described as a
// sequence of per-face vertex counts plus a flat index buffer, the shape a
// USD-style loader yields before per-prototype triangle lists exist.
func TriangulateFaces(faceVertexCounts []int, faceVertexIndices []uint32, orientation Orientation) []Triangle {
	var triangles []Triangle
	offset := 0
	for _, count := range faceVertexCounts {
		face := faceVertexIndices[offset : offset+count]
		triangles = append(triangles, Triangulate(face, orientation)...)
		offset += count
	}
	return triangles
}
