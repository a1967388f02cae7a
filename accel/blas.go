package accel

import (
	"github.com/achilleasa/scenecore/scene"
	"github.com/achilleasa/scenecore/types"
)

// BLAS is a bottom-level acceleration structure built once over a single
// prototype's triangles, in that prototype's local space.
type BLAS struct {
	nodes     []Node
	triangles []triangle
}

// BuildBLAS validates and builds a BLAS from a prototype's triangle mesh.
// An empty prototype (zero triangles) yields an empty BLAS that is a
// guaranteed miss, per spec §4.3's failure-mode contract.
func BuildBLAS(proto *scene.Prototype) (*BLAS, error) {
	tris := make([]triangle, 0, len(proto.Triangles))
	for i, idx := range proto.Triangles {
		v0, v1, v2 := proto.Positions[idx[0]], proto.Positions[idx[1]], proto.Positions[idx[2]]
		for _, v := range [3]types.Vec3{v0, v1, v2} {
			if !finite(v) {
				return nil, ErrInvalidGeometry
			}
		}
		var n0, n1, n2 types.Vec3
		if proto.Normals != nil {
			n0, n1, n2 = proto.Normals[idx[0]], proto.Normals[idx[1]], proto.Normals[idx[2]]
		}
		var uv0, uv1, uv2 types.Vec2
		if proto.UVs != nil {
			uv0, uv1, uv2 = proto.UVs[idx[0]], proto.UVs[idx[1]], proto.UVs[idx[2]]
		}
		tris = append(tris, newTriangle(v0, v1, v2, n0, n1, n2, uv0, uv1, uv2, uint32(i)))
	}

	return &BLAS{
		nodes:     Build(tris),
		triangles: tris,
	}, nil
}

func finite(v types.Vec3) bool {
	for _, c := range v {
		if c != c || c > 3.4e38 || c < -3.4e38 {
			return false
		}
	}
	return true
}

// blasHit is a local-space intersection result, returned with a triangle
// index so the caller can interpolate shading and attach material/instance
// identity after transforming back to world space.
type blasHit struct {
	T              float32
	Normal         types.Vec3
	UV             types.Vec2
	PrimitiveIndex uint32
}

// Hit intersects a local-space ray against the BLAS, narrowing interval as
// closer hits are found during traversal.
func (b *BLAS) Hit(r types.Ray, interval types.Interval) (blasHit, bool) {
	if len(b.nodes) == 0 {
		return blasHit{}, false
	}

	var found blasHit
	hitAny := false
	closest := interval

	Traverse(b.nodes, r, &closest, func(firstPrim, count uint32) {
		for i := firstPrim; i < firstPrim+count; i++ {
			tri := &b.triangles[i]
			dist, bary, ok := tri.hit(r, closest)
			if !ok {
				continue
			}
			normal, uv := tri.shading(bary)
			found = blasHit{T: dist, Normal: normal, UV: uv, PrimitiveIndex: tri.primitiveIndex}
			hitAny = true
			closest.Max = dist
		}
	})

	return found, hitAny
}
