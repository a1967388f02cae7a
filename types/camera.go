package types

import "math"

// pitchEpsilon keeps the orbit camera from flipping over the poles, where
// the look-at direction becomes parallel to Up and LookAtV degenerates.
const pitchEpsilon = 0.01

// CornerRays caches the primary-ray directions for the four corners of the
// image plane, letting the integrator interpolate a per-pixel ray direction
// instead of re-deriving it from the projection matrix every sample.
type CornerRays [4]Vec3

// Camera is an orbit camera parametrized by a target point, a distance from
// it, and yaw/pitch angles, matching the spherical-coordinate control scheme
// an interactive viewport driver expects.
type Camera struct {
	Target   Vec3
	Distance float32
	Yaw      float32
	Pitch    float32
	Up       Vec3
	FOV      float32

	Position Vec3
	ViewMat  Mat4
	ProjMat  Mat4
	Corners  CornerRays

	// InvertY flips the corner-ray frustum vertically, so that PrimaryRay's
	// (0, 0) maps to the bottom-left corner instead of the top-left.
	InvertY bool
}

// NewOrbitCamera builds a camera looking at target from the given distance,
// with fov the vertical field of view in degrees.
func NewOrbitCamera(target Vec3, distance, fov float32) *Camera {
	c := &Camera{
		Target:   target,
		Distance: distance,
		Up:       Vec3{0, 1, 0},
		FOV:      fov,
		ViewMat:  Ident4(),
		ProjMat:  Ident4(),
	}
	c.updatePosition()
	return c
}

// Orbit adjusts yaw/pitch by the given deltas, clamping pitch away from the
// poles.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch += dPitch

	limit := float32(math.Pi/2) - pitchEpsilon
	if c.Pitch > limit {
		c.Pitch = limit
	}
	if c.Pitch < -limit {
		c.Pitch = -limit
	}
	c.updatePosition()
}

// Dolly adjusts the orbit distance by a multiplicative factor, clamping to a
// small positive minimum so the camera never crosses through the target.
func (c *Camera) Dolly(factor float32) {
	c.Distance *= factor
	if c.Distance < 1e-3 {
		c.Distance = 1e-3
	}
	c.updatePosition()
}

// Pan moves both the target and the camera by the same world-space offset.
func (c *Camera) Pan(offset Vec3) {
	c.Target = c.Target.Add(offset)
	c.updatePosition()
}

func (c *Camera) updatePosition() {
	cosPitch := float32(math.Cos(float64(c.Pitch)))
	sinPitch := float32(math.Sin(float64(c.Pitch)))
	cosYaw := float32(math.Cos(float64(c.Yaw)))
	sinYaw := float32(math.Sin(float64(c.Yaw)))

	offset := Vec3{
		c.Distance * cosPitch * sinYaw,
		c.Distance * sinPitch,
		c.Distance * cosPitch * cosYaw,
	}
	c.Position = c.Target.Add(offset)
	c.ViewMat = LookAtV(c.Position, c.Target, c.Up)
}

// SetupProjection rebuilds the projection matrix for the given aspect ratio
// and updates the cached corner rays.
func (c *Camera) SetupProjection(aspect, near, far float32) {
	c.ProjMat = Perspective4(c.FOV*float32(math.Pi/180), aspect, near, far)
	c.updateCorners()
}

// ViewProjection returns the combined view-projection matrix, the input to
// frustum extraction.
func (c *Camera) ViewProjection() Mat4 {
	return c.ProjMat.Mul4(c.ViewMat)
}

// updateCorners derives primary-ray directions for the four image corners by
// unprojecting clip-space corners through the inverse view-projection matrix.
func (c *Camera) updateCorners() {
	invVP := c.ViewProjection().Inv()

	yUp := float32(1.0)
	if c.InvertY {
		yUp = -1.0
	}

	corner := func(x, y float32) Vec3 {
		v := invVP.Mul4x1(Vec4{x, y, -1, 1})
		if v[3] == 0 {
			return Vec3{}
		}
		return v.Mul(1.0 / v[3]).Vec3().Sub(c.Position)
	}

	c.Corners[0] = corner(-1, yUp)
	c.Corners[1] = corner(1, yUp)
	c.Corners[2] = corner(-1, -yUp)
	c.Corners[3] = corner(1, -yUp)
}

// PrimaryRay interpolates a world-space ray direction for normalized image
// coordinates u, v in [0, 1), with (0, 0) the top-left corner.
func (c *Camera) PrimaryRay(u, v float32) Ray {
	top := LerpVec3(c.Corners[0], c.Corners[1], u)
	bottom := LerpVec3(c.Corners[2], c.Corners[3], u)
	dir := LerpVec3(top, bottom, v).Normalize()
	return NewRay(c.Position, dir)
}
