package shader

// Uniform names shared by the avatar programs.
const (
	UniformMVP       = "uMVP"
	UniformTexture   = "uTexture"
	UniformVScale    = "uVScale"
	UniformAlphaTest = "uAlphaTest"
	UniformColor     = "uColor"
)

// BoxVertex transforms interleaved position/normal/uv vertices. The V
// coordinate is scaled per draw for atlases shorter than they are wide.
const BoxVertex = `#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 uMVP;
uniform float uVScale;

out vec2 vUV;

void main() {
	vUV = vec2(aUV.x, aUV.y * uVScale);
	gl_Position = uMVP * vec4(aPos, 1.0);
}
`

// BoxFragment samples the atlas unlit.
const BoxFragment = `#version 410 core

in vec2 vUV;

uniform sampler2D uTexture;
uniform bool uAlphaTest;

out vec4 FragColor;

void main() {
	vec4 texel = texture(uTexture, vUV);
	if (uAlphaTest && texel.a == 0.0) {
		discard;
	}
	FragColor = texel;
}
`

// LineVertex transforms grid line endpoints.
const LineVertex = `#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uMVP;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
}
`

// LineFragment fills with a solid color.
const LineFragment = `#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`
