package accel

import "github.com/achilleasa/scenecore/types"

// triangle is the BLAS-internal intersectable form of a prototype triangle:
// precomputed plane equations (normal plane + 3 edge planes) rather than
// raw vertices, the same Badouel-style representation the teacher's
// analytic `Primitive` triangle used (scene/primitive.go's NewTriangle) —
// here built from indexed mesh data instead of three free-standing points.
type triangle struct {
	v0, v1, v2 types.Vec3
	n0, n1, n2 types.Vec3
	uv0, uv1, uv2 types.Vec2

	bounds   types.AABB
	centroid types.Vec3

	normalPlane types.Vec4 // xyz = unit face normal, w = plane distance
	edgePlane   [3]types.Vec4

	primitiveIndex uint32
}

func (t *triangle) Bounds() types.AABB     { return t.bounds }
func (t *triangle) Centroid() types.Vec3   { return t.centroid }

func newTriangle(v0, v1, v2, n0, n1, n2 types.Vec3, uv0, uv1, uv2 types.Vec2, primIdx uint32) triangle {
	t := triangle{
		v0: v0, v1: v1, v2: v2,
		n0: n0, n1: n1, n2: n2,
		uv0: uv0, uv1: uv1, uv2: uv2,
		primitiveIndex: primIdx,
	}
	t.bounds = types.FromPoints(v0, v1, v2)
	t.centroid = t.bounds.Center()

	e1 := v1.Sub(v0)
	e2 := v2.Sub(v1)
	e3 := v0.Sub(v2)

	normal := e1.Cross(e2)
	// Degenerate (zero-area) triangles are stored but flagged so the
	// intersector always reports a miss for them (determinant underflow
	// below rather than a division by a zero-length normal here).
	if normal.Len() > 0 {
		normal = normal.Normalize()
	}
	t.normalPlane = normal.Vec4(normal.Dot(v0))

	e1p := normal.Cross(e1)
	e2p := normal.Cross(e2)
	e3p := normal.Cross(e3)
	if e1p.Len() > 0 {
		e1p = e1p.Normalize()
	}
	if e2p.Len() > 0 {
		e2p = e2p.Normalize()
	}
	if e3p.Len() > 0 {
		e3p = e3p.Normalize()
	}
	t.edgePlane[0] = e1p.Vec4(e1p.Dot(v0))
	t.edgePlane[1] = e2p.Vec4(e2p.Dot(v1))
	t.edgePlane[2] = e3p.Vec4(e3p.Dot(v2))

	return t
}

// hit intersects a ray against the triangle's plane equations, returning
// ok=false on a miss (including the degenerate zero-normal case, where the
// plane-distance test can never succeed since the "normal" is zero and the
// denominator below underflows to zero).
func (t *triangle) hit(r types.Ray, interval types.Interval) (dist float32, bary types.Vec2, ok bool) {
	normal := t.normalPlane.Vec3()
	denom := normal.Dot(r.Dir)
	if denom == 0 {
		return 0, types.Vec2{}, false
	}

	dist = (t.normalPlane[3] - normal.Dot(r.Origin)) / denom
	if !interval.Surrounds(dist) {
		return 0, types.Vec2{}, false
	}

	p := r.At(dist)

	// Barycentric-like edge coordinates via the precomputed edge planes;
	// a hit is inside the triangle iff the point is on the positive side
	// of all three edge planes.
	for _, plane := range t.edgePlane {
		n := plane.Vec3()
		if n.Dot(p)-plane[3] < 0 {
			return 0, types.Vec2{}, false
		}
	}

	// Recover barycentric weights for normal/UV interpolation from the
	// areas of the three sub-triangles formed with p.
	areaTotal := t.v1.Sub(t.v0).Cross(t.v2.Sub(t.v0)).Dot(normal)
	if areaTotal == 0 {
		return 0, types.Vec2{}, false
	}
	u := t.v0.Sub(t.v2).Cross(p.Sub(t.v2)).Dot(normal) / areaTotal
	v := t.v1.Sub(t.v0).Cross(p.Sub(t.v0)).Dot(normal) / areaTotal

	return dist, types.Vec2{u, v}, true
}

// shading interpolates the triangle's per-vertex normal/UV at barycentric
// coordinates (u, v), with w = 1-u-v implicitly the weight on v0.
func (t *triangle) shading(bary types.Vec2) (normal types.Vec3, uv types.Vec2) {
	w := 1 - bary[0] - bary[1]
	normal = t.n0.Mul(w).Add(t.n1.Mul(bary[0])).Add(t.n2.Mul(bary[1])).Normalize()
	uv = types.Vec2{
		t.uv0[0]*w + t.uv1[0]*bary[0] + t.uv2[0]*bary[1],
		t.uv0[1]*w + t.uv1[1]*bary[0] + t.uv2[1]*bary[1],
	}
	return normal, uv
}
