package integrator

import (
	"math"

	"github.com/achilleasa/scenecore/types"
)

// rng is the per-worker source of randomness. Each tile worker owns one,
// seeded independently, rather than sharing math/rand's global Source
// (which the teacher calls directly via rand.Float32() in
// renderer/opengl.go and tracer/opencl/pipeline.go) — the global source
// is mutex-guarded and would serialize every sample across all tile
// workers, which defeats the point of bucket-parallel dispatch.
type rng struct {
	state uint64
}

func newRNG(seed uint64) *rng {
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	return &rng{state: seed}
}

// next returns the next uint64 via a splitmix64 step; cheap and adequate
// for Monte Carlo sampling, not cryptographic use.
func (r *rng) next() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// float32 returns a uniform value in [0, 1).
func (r *rng) float32() float32 {
	return float32(r.next()>>40) / float32(1<<24)
}

// buildOrthonormalBasis constructs a tangent/bitangent pair around n,
// using Duff et al.'s branchless construction (the same one
// original_source's disney.rs uses for its GGX half-vector sampling).
func buildOrthonormalBasis(n types.Vec3) (tangent, bitangent types.Vec3) {
	sign := float32(1)
	if n[2] < 0 {
		sign = -1
	}
	a := -1.0 / (sign + n[2])
	b := n[0] * n[1] * a
	tangent = types.Vec3{1 + sign*n[0]*n[0]*a, sign * b, -sign * n[0]}
	bitangent = types.Vec3{b, sign + n[1]*n[1]*a, -n[1]}
	return tangent, bitangent
}

// cosineSampleHemisphere samples a direction around n with probability
// proportional to cos(theta), returning the direction and its PDF.
func cosineSampleHemisphere(n types.Vec3, r *rng) (dir types.Vec3, pdf float32) {
	u1, u2 := r.float32(), r.float32()
	radius := float32(math.Sqrt(float64(u1)))
	theta := 2 * math.Pi * float64(u2)
	x := radius * float32(math.Cos(theta))
	y := radius * float32(math.Sin(theta))
	z := float32(math.Sqrt(math.Max(0, float64(1-u1))))

	tangent, bitangent := buildOrthonormalBasis(n)
	dir = tangent.Mul(x).Add(bitangent.Mul(y)).Add(n.Mul(z)).Normalize()
	pdf = z / float32(math.Pi)
	return dir, pdf
}

// sampleGGX samples a microfacet normal around n with roughness alpha,
// following the same distribution original_source's disney.rs uses for
// its specular lobe.
func sampleGGX(n types.Vec3, alpha float32, r *rng) types.Vec3 {
	u1, u2 := r.float32(), r.float32()
	theta := math.Atan(float64(alpha) * math.Sqrt(float64(u1)) / math.Sqrt(float64(1-u1)))
	phi := 2 * math.Pi * float64(u2)

	sinTheta, cosTheta := math.Sincos(theta)
	sinPhi, cosPhi := math.Sincos(phi)

	hLocal := types.Vec3{
		float32(sinTheta * cosPhi),
		float32(sinTheta * sinPhi),
		float32(cosTheta),
	}

	tangent, bitangent := buildOrthonormalBasis(n)
	return tangent.Mul(hLocal[0]).Add(bitangent.Mul(hLocal[1])).Add(n.Mul(hLocal[2])).Normalize()
}

// reflect mirrors v about axis n (both expected unit length).
func reflect(v, n types.Vec3) types.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// schlickWeight is (1 - cosTheta)^5, clamped to avoid NaNs from a
// negative base when cosTheta is slightly above 1 due to rounding.
func schlickWeight(cosTheta float32) float32 {
	x := cosTheta
	if x < 0 {
		x = 0
	} else if x > 1 {
		x = 1
	}
	x = 1 - x
	x2 := x * x
	return x2 * x2 * x
}

func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func lerpVec3(a, b types.Vec3, t float32) types.Vec3 {
	return types.LerpVec3(a, b, t)
}

func luminance(c types.Vec3) float32 {
	return 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
}
