package scene

import (
	"math"

	"github.com/achilleasa/scenecore/types"
)

// PrototypeID uniquely identifies a prototype over the scene's lifetime.
// IDs are never reused, even after the prototype they named is removed.
type PrototypeID uint32

// Triangle is an ordered triple of indices into a Prototype's vertex arrays.
type Triangle [3]uint32

// Prototype is a shared, read-only triangle mesh plus its material binding.
// It is referenced by zero or more Instances and owns no transform of its
// own; its local-space bound is what the acceleration structure's BLAS is
// built over.
type Prototype struct {
	ID   PrototypeID
	Name string

	Positions []types.Vec3
	Normals   []types.Vec3 // len(Normals) == len(Positions) or 0 if absent
	UVs       []types.Vec2 // len(UVs) == len(Positions) or 0 if absent
	Triangles []Triangle

	Material *Material

	// LocalBound is the AABB of Positions in the prototype's own space,
	// cached at construction time since it never changes afterward.
	LocalBound types.AABB
}

// TriangleCount returns the number of triangles in the mesh.
func (p *Prototype) TriangleCount() int {
	return len(p.Triangles)
}

// newPrototype validates and constructs a prototype from raw mesh data,
// computing missing normals and the local bound. Returns ErrInvalidGeometry
// if the mesh fails validation.
func newPrototype(id PrototypeID, name string, positions []types.Vec3, normals []types.Vec3, uvs []types.Vec2, triangles []Triangle, material *Material) (*Prototype, error) {
	for _, p := range positions {
		if !finiteVec3(p) {
			return nil, ErrInvalidGeometry
		}
	}
	if normals != nil && len(normals) != len(positions) {
		return nil, ErrInvalidGeometry
	}
	if uvs != nil && len(uvs) != len(positions) {
		return nil, ErrInvalidGeometry
	}
	for _, tri := range triangles {
		for _, idx := range tri {
			if int(idx) >= len(positions) {
				return nil, ErrInvalidGeometry
			}
		}
	}

	bound := types.EmptyAABB()
	for _, p := range positions {
		bound = bound.ExpandPoint(p)
	}

	if normals == nil && len(positions) > 0 {
		normals = computeVertexNormals(positions, triangles)
	}

	if material == nil {
		material = DefaultMaterial()
	}

	return &Prototype{
		ID:         id,
		Name:       name,
		Positions:  positions,
		Normals:    normals,
		UVs:        uvs,
		Triangles:  triangles,
		Material:   material,
		LocalBound: bound,
	}, nil
}

func finiteVec3(v types.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}

// computeVertexNormals accumulates the cross product of two edges at each
// triangle vertex and normalizes per vertex, producing smooth shading
// across shared vertices. Degenerate (zero-area) triangles contribute a
// zero vector and are silently skipped by the accumulation.
func computeVertexNormals(positions []types.Vec3, triangles []Triangle) []types.Vec3 {
	normals := make([]types.Vec3, len(positions))
	for _, tri := range triangles {
		a, b, c := positions[tri[0]], positions[tri[1]], positions[tri[2]]
		faceNormal := b.Sub(a).Cross(c.Sub(a))
		normals[tri[0]] = normals[tri[0]].Add(faceNormal)
		normals[tri[1]] = normals[tri[1]].Add(faceNormal)
		normals[tri[2]] = normals[tri[2]].Add(faceNormal)
	}
	for i, n := range normals {
		normals[i] = n.Normalize()
	}
	return normals
}
