package types

import "math"

// Frustum plane indices.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// Frustum is a view frustum defined by 6 planes. Each plane is a Vec4 whose
// xyz is the inward-facing normal and w the signed distance, such that a point
// p is inside the half-space when dot(normal, p) + w >= 0.
type Frustum struct {
	Planes [6]Vec4
}

// FrustumFromViewProjection extracts the 6 frustum planes from a combined
// view-projection matrix using the Gribb/Hartmann method: each plane is a
// signed combination of the matrix's rows, requiring no knowledge of FOV,
// aspect or near/far individually.
func FrustumFromViewProjection(vp Mat4) Frustum {
	row0 := vp.Row(0)
	row1 := vp.Row(1)
	row2 := vp.Row(2)
	row3 := vp.Row(3)

	planes := [6]Vec4{
		addVec4(row3, row0), // left
		subVec4(row3, row0), // right
		addVec4(row3, row1), // bottom
		subVec4(row3, row1), // top
		addVec4(row3, row2), // near
		subVec4(row3, row2), // far
	}

	for i := range planes {
		n := Vec3{planes[i][0], planes[i][1], planes[i][2]}
		length := n.Len()
		if length > 0 {
			planes[i] = planes[i].Mul(1.0 / length)
		}
	}

	return Frustum{Planes: planes}
}

// DefaultFrustum returns a frustum that accepts every point and AABB, used
// before the first camera/projection update or in tests that don't care
// about culling.
func DefaultFrustum() Frustum {
	inf := float32(math.MaxFloat32)
	return Frustum{Planes: [6]Vec4{
		{1, 0, 0, inf},
		{-1, 0, 0, inf},
		{0, 1, 0, inf},
		{0, -1, 0, inf},
		{0, 0, 1, inf},
		{0, 0, -1, inf},
	}}
}

// IntersectsAABB reports whether the AABB is at least partially inside the
// frustum, using the p-vertex (positive vertex) early-rejection test: for
// each plane, only the corner furthest along the plane's normal needs
// testing, since if that corner is outside the box is entirely outside.
func (f Frustum) IntersectsAABB(b AABB) bool {
	for _, plane := range f.Planes {
		normal := Vec3{plane[0], plane[1], plane[2]}

		pVertex := Vec3{
			pick(normal[0] >= 0, b.Max[0], b.Min[0]),
			pick(normal[1] >= 0, b.Max[1], b.Min[1]),
			pick(normal[2] >= 0, b.Max[2], b.Min[2]),
		}

		if normal.Dot(pVertex)+plane[3] < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether point is inside all 6 half-spaces.
func (f Frustum) ContainsPoint(point Vec3) bool {
	for _, plane := range f.Planes {
		normal := Vec3{plane[0], plane[1], plane[2]}
		if normal.Dot(point)+plane[3] < 0 {
			return false
		}
	}
	return true
}

// DistanceToPoint approximates the distance from the camera to a point,
// using the near plane. Used for LOD distance selection where an exact
// eye-space distance isn't worth the extra transform.
func (f Frustum) DistanceToPoint(point Vec3) float32 {
	near := f.Planes[PlaneNear]
	normal := Vec3{near[0], near[1], near[2]}
	d := normal.Dot(point) + near[3]
	if d < 0 {
		return -d
	}
	return d
}

// DistanceToAABB approximates the distance from the camera to an AABB's
// center.
func (f Frustum) DistanceToAABB(b AABB) float32 {
	return f.DistanceToPoint(b.Center())
}

func addVec4(a, b Vec4) Vec4 {
	return Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func subVec4(a, b Vec4) Vec4 {
	return Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

func pick(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}
