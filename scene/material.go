package scene

import "github.com/achilleasa/scenecore/types"

// TextureSlot names a texture binding on a material. Resolution to actual
// pixel data is lazy, performed by the texture cache on first sample.
type TextureSlot uint8

const (
	TextureBaseColor TextureSlot = iota
	TextureRoughness
	TextureMetallic
	TextureNormal
	TextureEmissive
	textureSlotCount
)

// Material is a single principled PBR form whose parameters degenerate to
// the classic diffuse/metal/dielectric/emissive special cases, avoiding an
// open type hierarchy that would force virtual dispatch on every BSDF
// sample (see asset/scene's MaterialNode for the same tagged-shape idea
// applied to the compiled node tree).
type Material struct {
	Name string

	BaseColor types.Vec3
	Metallic  float32
	Roughness float32
	Specular  float32
	Opacity   float32
	Emissive  types.Vec3

	// Sheen and SpecularTint extend the minimum lobe set named by the
	// spec with cheap, visually useful Disney-principled parameters.
	Sheen        float32
	SpecularTint float32
	Subsurface   float32

	// Textures holds an optional resolved-path reference per slot; an
	// empty string means the slot has no texture and the scalar/color
	// fields above are used directly.
	Textures [textureSlotCount]string
}

// DefaultMaterial returns the material bound to new prototypes that don't
// specify one explicitly: a neutral grey dielectric.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "default",
		BaseColor: types.Vec3{0.8, 0.8, 0.8},
		Metallic:  0,
		Roughness: 0.5,
		Specular:  0.5,
		Opacity:   1,
	}
}

// IsEmissive reports whether the material contributes light to the scene.
func (m *Material) IsEmissive() bool {
	return m.Emissive[0] > 0 || m.Emissive[1] > 0 || m.Emissive[2] > 0
}
