package integrator

import "github.com/achilleasa/scenecore/types"

// Environment supplies the radiance returned for a ray that misses the
// scene entirely. The default is a fixed procedural sky gradient; a
// caller may override it with a constant or HDRI-backed implementation
// without the integrator caring which.
type Environment interface {
	Radiance(dir types.Vec3) types.Vec3
}

// SkyGradient is a simple linear gradient from a horizon color to a
// zenith color based on the ray direction's vertical component, the
// default environment when none is configured.
type SkyGradient struct {
	Horizon types.Vec3
	Zenith  types.Vec3
}

// DefaultSky matches a neutral daylight gradient.
func DefaultSky() SkyGradient {
	return SkyGradient{
		Horizon: types.Vec3{1.0, 1.0, 1.0},
		Zenith:  types.Vec3{0.5, 0.7, 1.0},
	}
}

func (s SkyGradient) Radiance(dir types.Vec3) types.Vec3 {
	t := 0.5 * (dir.Normalize()[1] + 1)
	return types.LerpVec3(s.Horizon, s.Zenith, t)
}
