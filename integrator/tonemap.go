package integrator

import (
	"math"

	"github.com/achilleasa/scenecore/types"
)

// RGBA8 is a quantized, display-ready pixel.
type RGBA8 struct {
	R, G, B, A uint8
}

// Tonemap divides accumulated linear radiance by the sample count,
// applies exposure and firefly clamping, gamma-encodes to sRGB, and
// quantizes. The multiplier below is 255.0, not 256.0, so that pure
// white maps to 255 rather than overflowing to 0.
func Tonemap(accum types.Vec3, samples uint32, exposure float32) RGBA8 {
	if samples == 0 {
		return RGBA8{A: 255}
	}
	inv := 1.0 / float32(samples)
	c := accum.Mul(inv * exposure)

	const fireflyClamp = 16.0
	c = types.Vec3{
		clampMax(c[0], fireflyClamp),
		clampMax(c[1], fireflyClamp),
		clampMax(c[2], fireflyClamp),
	}

	return RGBA8{
		R: quantize(srgbEncode(c[0])),
		G: quantize(srgbEncode(c[1])),
		B: quantize(srgbEncode(c[2])),
		A: 255,
	}
}

func clampMax(v, max float32) float32 {
	if v > max {
		return max
	}
	if v < 0 {
		return 0
	}
	return v
}

// srgbEncode applies the piecewise sRGB OETF rather than a flat gamma2.2
// power curve, matching how scene.Texture.texel decodes sRGB on the way
// in (scene/texture.go's srgbToLinear), so the round trip is consistent.
func srgbEncode(v float32) float32 {
	v = clampMax(v, 1.0)
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return float32(1.055*math.Pow(float64(v), 1.0/2.4) - 0.055)
}

func quantize(v float32) uint8 {
	return uint8(math.Round(float64(v) * 255.0))
}
