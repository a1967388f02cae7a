package integrator

import (
	"math"

	"github.com/achilleasa/scenecore/scene"
	"github.com/achilleasa/scenecore/types"
)

// Sample produces one BSDF sample for the Disney-style principled material
// bound at a hit: a scattered direction wi, the raw (un-weighted-by-cosine,
// un-divided-by-pdf) BRDF value f, and the sample's combined PDF.
//
// The material is a convex combination of three lobes — Burley diffuse,
// GGX specular, and an optional sheen term — evaluated the way
// original_source's disney.rs derives them, but combined differently: the
// original stochastically picks exactly one lobe per sample and returns
// that lobe's contribution alone, with no PDF ever computed for the lobes
// it didn't pick (a shortcut that only works because its own throughput
// update folds the pdf cancellation into the per-lobe attenuation). This
// renderer tracks an explicit scalar PDF per sample (spec step 2), so the
// combination here evaluates every lobe's raw BRDF at the sampled
// direction and weights their PDFs by the same per-lobe selection
// probabilities used to pick the sampling technique — standard one-sample
// multiple importance sampling over two sampling techniques (cosine
// hemisphere for diffuse+sheen, GGX half-vector for specular).
func Sample(mat *scene.Material, wo, n types.Vec3, r *rng) (wi types.Vec3, f types.Vec3, pdf float32, ok bool) {
	diffuseBase := (1 - mat.Metallic) * (1 - 0.5*mat.Specular)
	specularProb := 1 - diffuseBase

	if r.float32() < diffuseBase {
		wi, _ = cosineSampleHemisphere(n, r)
	} else {
		alpha := clamp01(mat.Roughness * mat.Roughness)
		if alpha < 0.001 {
			alpha = 0.001
		}
		h := sampleGGX(n, alpha, r)
		wi = reflect(wo.Negate(), h)
	}

	nDotL := n.Dot(wi)
	if nDotL <= 0 {
		return types.Vec3{}, types.Vec3{}, 0, false
	}

	cosPdf := nDotL / float32(math.Pi)
	specF, specPdf := evalSpecular(mat, wo, wi, n)

	pdf = diffuseBase*cosPdf + specularProb*specPdf
	if pdf <= 0 {
		return types.Vec3{}, types.Vec3{}, 0, false
	}

	f = evalDiffuse(mat, wo, wi, n).Add(evalSheen(mat, wo, wi, n)).Add(specF)
	return wi, f, pdf, true
}

// evalDiffuse is the Burley (2012) diffuse term, Fresnel-weighted at
// grazing angles and blended towards a subsurface approximation.
func evalDiffuse(mat *scene.Material, wo, wi, n types.Vec3) types.Vec3 {
	nDotL := clampMin0(n.Dot(wi))
	nDotV := clampMin0(n.Dot(wo))
	if nDotL <= 0 || nDotV <= 0 {
		return types.Vec3{}
	}

	h := wo.Add(wi).Normalize()
	lDotH := clampMin0(wi.Dot(h))

	fd90 := 0.5 + 2*mat.Roughness*lDotH*lDotH
	fl := schlickWeight(nDotL)
	fv := schlickWeight(nDotV)
	fd := lerp(1, fd90, fl) * lerp(1, fd90, fv)

	fss90 := lDotH * lDotH * mat.Roughness
	fss := lerp(1, fss90, fl) * lerp(1, fss90, fv)
	ss := 1.25 * (fss*(1/(nDotL+nDotV)-0.5) + 0.5)

	diffuse := lerp(fd, ss, mat.Subsurface)
	return mat.BaseColor.Mul(diffuse / float32(math.Pi))
}

// evalSheen is the grazing-angle cloth-like term. scenecore's Material has
// no separate sheen-tint parameter, so SpecularTint does double duty
// tinting both the specular Fresnel and the sheen color towards the base
// color, a simplification over original_source's independently-tintable
// sheen.
func evalSheen(mat *scene.Material, wo, wi, n types.Vec3) types.Vec3 {
	if mat.Sheen <= 0 {
		return types.Vec3{}
	}
	h := wo.Add(wi).Normalize()
	lDotH := clampMin0(wi.Dot(h))

	tint := lerpVec3(types.Vec3{1, 1, 1}, tintColor(mat), mat.SpecularTint)
	return tint.Mul(schlickWeight(lDotH) * mat.Sheen)
}

// evalSpecular is the GGX microfacet lobe: the full D*G*F/(4 NdotL NdotV)
// BRDF value plus its sampling PDF under half-vector (non-VNDF) GGX
// sampling, pdf(wi) = D(h)*NdotH / (4*VdotH).
func evalSpecular(mat *scene.Material, wo, wi, n types.Vec3) (f types.Vec3, pdf float32) {
	nDotL := clampMin0(n.Dot(wi))
	nDotV := clampMin0(n.Dot(wo))
	if nDotL <= 0 || nDotV <= 0 {
		return types.Vec3{}, 0
	}

	h := wo.Add(wi).Normalize()
	nDotH := clampMin0(n.Dot(h))
	vDotH := clampMin0(wo.Dot(h))
	if nDotH <= 0 || vDotH <= 0 {
		return types.Vec3{}, 0
	}

	alpha := clamp01(mat.Roughness * mat.Roughness)
	if alpha < 0.001 {
		alpha = 0.001
	}

	d := ggxD(nDotH, alpha)
	g := smithGGXG(nDotL, nDotV, alpha)
	fr := fresnelSchlick(fresnel0(mat), vDotH)

	denom := 4 * nDotL * nDotV
	if denom <= 0 {
		return types.Vec3{}, 0
	}

	f = fr.Mul(d * g / denom)
	pdf = d * nDotH / (4 * vDotH)
	return f, pdf
}

// fresnel0 computes F0 (Fresnel reflectance at normal incidence),
// blending a specular-derived dielectric F0 towards the base color as
// metallic increases, the same derivation original_source's disney.rs
// uses.
func fresnel0(mat *scene.Material) types.Vec3 {
	dielectric := 0.08 * mat.Specular
	cSpec := lerpVec3(types.Vec3{dielectric, dielectric, dielectric}, tintColor(mat).Mul(dielectric), mat.SpecularTint)
	return lerpVec3(cSpec, mat.BaseColor, mat.Metallic)
}

func tintColor(mat *scene.Material) types.Vec3 {
	l := luminance(mat.BaseColor)
	if l <= 0 {
		return types.Vec3{1, 1, 1}
	}
	return mat.BaseColor.Mul(1 / l)
}

func fresnelSchlick(f0 types.Vec3, cosTheta float32) types.Vec3 {
	w := schlickWeight(cosTheta)
	return f0.Add(types.Vec3{1, 1, 1}.Sub(f0).Mul(w))
}

func ggxD(nDotH, alpha float32) float32 {
	a2 := alpha * alpha
	denom := nDotH*nDotH*(a2-1) + 1
	return a2 / (float32(math.Pi) * denom * denom)
}

func smithGGXG(nDotL, nDotV, alpha float32) float32 {
	a2 := alpha * alpha
	g1L := 2 * nDotL / (nDotL + float32(math.Sqrt(float64(a2+(1-a2)*nDotL*nDotL))))
	g1V := 2 * nDotV / (nDotV + float32(math.Sqrt(float64(a2+(1-a2)*nDotV*nDotV))))
	return g1L * g1V
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampMin0(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}
