package types

// Ray is a parametric ray: P(t) = Origin + t*Dir, for t in an Interval.
type Ray struct {
	Origin Vec3
	Dir    Vec3

	// InvDir is the reciprocal of Dir, precomputed for the slab AABB test.
	InvDir Vec3
}

// NewRay builds a ray and precomputes its inverse direction.
func NewRay(origin, dir Vec3) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir,
		InvDir: Vec3{1.0 / dir[0], 1.0 / dir[1], 1.0 / dir[2]},
	}
}

// At evaluates the ray at parameter t.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Transform applies a matrix to the ray's origin (as a point) and direction
// (as a vector), returning a new ray in the transformed space. The inverse
// direction is recomputed rather than transformed directly.
func (r Ray) Transform(m Mat4) Ray {
	return NewRay(m.TransformPoint(r.Origin), m.TransformVector(r.Dir))
}

// HitRecord describes a ray/geometry intersection.
type HitRecord struct {
	T        float32
	Point    Vec3
	Normal   Vec3
	UV       Vec2
	// InstanceIndex and PrimitiveIndex identify which instance/triangle was
	// hit. The hit's material is resolved separately by accel from the
	// instance's prototype.
	InstanceIndex uint32
	PrimitiveIndex uint32
}
