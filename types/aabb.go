package types

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// EmptyAABB returns an AABB that contains no points; unioning it with any
// other AABB yields that AABB unchanged.
func EmptyAABB() AABB {
	return AABB{
		Min: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// FromPoints builds an AABB bounding the given points.
func FromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.ExpandPoint(p)
	}
	return box
}

// ExpandPoint returns an AABB that also contains p.
func (b AABB) ExpandPoint(p Vec3) AABB {
	return AABB{
		Min: MinVec3(b.Min, p),
		Max: MaxVec3(b.Max, p),
	}
}

// Union returns an AABB that bounds both b and other.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: MinVec3(b.Min, other.Min),
		Max: MaxVec3(b.Max, other.Max),
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extent returns the size of the box along each axis.
func (b AABB) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

// SurfaceArea returns the surface area of the box, used by leaf/LOD
// budgeting heuristics.
func (b AABB) SurfaceArea() float32 {
	e := b.Extent()
	if e[0] < 0 || e[1] < 0 || e[2] < 0 {
		return 0
	}
	return 2 * (e[0]*e[1] + e[1]*e[2] + e[2]*e[0])
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent.
func (b AABB) LongestAxis() int {
	e := b.Extent()
	if e[0] > e[1] && e[0] > e[2] {
		return 0
	}
	if e[1] > e[2] {
		return 1
	}
	return 2
}

// Hit tests a ray against the box using the slab method, reporting whether
// it intersects within the given interval.
func (b AABB) Hit(r Ray, interval Interval) bool {
	tMin, tMax := interval.Min, interval.Max
	for axis := 0; axis < 3; axis++ {
		invD := r.InvDir[axis]
		t0 := (b.Min[axis] - r.Origin[axis]) * invD
		t1 := (b.Max[axis] - r.Origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax < tMin {
			return false
		}
	}
	return true
}

// TransformAABB transforms an AABB through a matrix by transforming all 8
// corners as points and re-tightening the box around them. Transforming only
// the min/max corners is not correct under rotation, since the rotated min
// corner is not guaranteed to remain the tightest-fitting corner.
func TransformAABB(m Mat4, b AABB) AABB {
	corners := [8]Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}

	out := EmptyAABB()
	for _, c := range corners {
		out = out.ExpandPoint(m.TransformPoint(c))
	}
	return out
}
