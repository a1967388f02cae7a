package scene

import (
	"math"

	"github.com/achilleasa/scenecore/types"
)

// ColorSpace tags whether a texture's stored pixel values are gamma-encoded
// (sRGB) or already linear.
type ColorSpace uint8

const (
	ColorSpaceLinear ColorSpace = iota
	ColorSpaceSRGB
)

// Texture is an immutable image: width, height, a color-space tag, and
// pixel data stored as one Vec3 per texel (already expanded from whatever
// on-disk format the loader read). Sampling is bilinear with wrap mode
// "repeat"; sRGB textures are linearized on sample, never at load time, so
// the cache can serve the same bytes to both linear- and gamma-aware
// consumers.
type Texture struct {
	Width, Height int
	ColorSpace    ColorSpace
	Pixels        []types.Vec3
}

func (t *Texture) texel(x, y int) types.Vec3 {
	x = wrapRepeat(x, t.Width)
	y = wrapRepeat(y, t.Height)
	c := t.Pixels[y*t.Width+x]
	if t.ColorSpace == ColorSpaceSRGB {
		c = srgbToLinear(c)
	}
	return c
}

// Sample performs bilinear filtering at normalized coordinates u, v with
// repeat wrapping. sRGB-tagged texels are linearized individually before
// the filter weights are applied, so the blend happens in linear space.
func (t *Texture) Sample(u, v float32) types.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return types.Vec3{}
	}
	fx := u*float32(t.Width) - 0.5
	fy := v*float32(t.Height) - 0.5

	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := t.texel(x0, y0)
	c10 := t.texel(x0+1, y0)
	c01 := t.texel(x0, y0+1)
	c11 := t.texel(x0+1, y0+1)

	top := types.LerpVec3(c00, c10, tx)
	bottom := types.LerpVec3(c01, c11, tx)
	return types.LerpVec3(top, bottom, ty)
}

func wrapRepeat(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func srgbToLinear(c types.Vec3) types.Vec3 {
	decode := func(v float32) float32 {
		if v <= 0.04045 {
			return v / 12.92
		}
		return float32(math.Pow(float64((v+0.055)/1.055), 2.4))
	}
	return types.Vec3{decode(c[0]), decode(c[1]), decode(c[2])}
}
