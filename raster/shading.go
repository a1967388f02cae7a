package raster

// meshVertexShader transforms per-vertex position/normal/uv by the
// instance's model matrix (four vec4 attributes, vertex-step-mode =
// per-instance, per spec §4.5) and the camera's view-projection uniform.
const meshVertexShader = `
#version 330 core

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec4 inModelCol0;
layout(location = 4) in vec4 inModelCol1;
layout(location = 5) in vec4 inModelCol2;
layout(location = 6) in vec4 inModelCol3;

uniform mat4 viewProj;

out vec3 vWorldPos;
out vec3 vWorldNormal;
out vec2 vUV;

void main() {
	mat4 model = mat4(inModelCol0, inModelCol1, inModelCol2, inModelCol3);
	vec4 worldPos = model * vec4(inPosition, 1.0);
	vWorldPos = worldPos.xyz;

	mat3 normalMat = mat3(model);
	vWorldNormal = normalize(normalMat * inNormal);
	vUV = inUV;

	gl_Position = viewProj * worldPos;
}
`

// meshFragmentShader implements spec §4.5's viewport shading model: a
// Lambertian diffuse term plus Blinn-Phong specular, with a Schlick
// Fresnel blend between a dielectric F0 (~0.04) and the material's base
// color driven by metallic — "a simplified PBR approximation sufficient
// for preview", not expected to match the path tracer numerically.
const meshFragmentShader = `
#version 330 core

in vec3 vWorldPos;
in vec3 vWorldNormal;
in vec2 vUV;

uniform vec3 cameraPos;
uniform vec3 lightDir;
uniform vec4 baseColor;
uniform vec4 materialParams; // metallic, roughness, specular, unused (packed, explicit no implicit padding beyond this)
uniform vec3 emissiveColor;

out vec4 outColor;

void main() {
	vec3 n = normalize(vWorldNormal);
	vec3 v = normalize(cameraPos - vWorldPos);
	vec3 l = normalize(-lightDir);
	vec3 h = normalize(v + l);

	float metallic = materialParams.x;
	float roughness = max(materialParams.y, 0.04);
	float specularParam = materialParams.z;

	float nDotL = max(dot(n, l), 0.0);
	float nDotH = max(dot(n, h), 0.0);
	float vDotH = max(dot(v, h), 0.0);

	vec3 dielectricF0 = vec3(0.04 * specularParam * 2.0);
	vec3 f0 = mix(dielectricF0, baseColor.rgb, metallic);
	vec3 fresnel = f0 + (vec3(1.0) - f0) * pow(1.0 - vDotH, 5.0);

	float shininess = mix(8.0, 256.0, 1.0 - roughness);
	float specular = pow(nDotH, shininess);

	vec3 diffuse = baseColor.rgb * (1.0 - metallic) * nDotL / 3.14159265;
	vec3 color = diffuse + fresnel * specular * nDotL + emissiveColor;

	outColor = vec4(color, baseColor.a);
}
`

// uiVertexShader/uiFragmentShader render the non-depth-tested overlay
// pass (spec §4.5's second pass): flat-shaded 2D screen-space quads in an
// orthographic projection, no lighting.
const uiVertexShader = `
#version 330 core

layout(location = 0) in vec2 inPosition;
layout(location = 1) in vec4 inColor;

uniform mat4 ortho;

out vec4 vColor;

void main() {
	vColor = inColor;
	gl_Position = ortho * vec4(inPosition, 0.0, 1.0);
}
`

const uiFragmentShader = `
#version 330 core

in vec4 vColor;
out vec4 outColor;

void main() {
	outColor = vColor;
}
`
