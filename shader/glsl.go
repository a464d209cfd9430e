package shader

// Sources for the GL hosts. The glass itself is evaluated by Compositor; GL
// hosts upload the composited frame as a texture and draw it with the quad
// program below.

const vertexSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const vertexSourceGLES = `#version 300 es
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// presentSource is WebGL2 and must go through the translator. Frames are
// stored top row first, so v is flipped.
const presentSource = `#version 300 es
precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_frame;
uniform bool u_premultiply;
void main() {
    vec4 c = texture(u_frame, vec2(frag_uv.x, 1.0 - frag_uv.y));
    fragColor = u_premultiply ? vec4(c.rgb * c.a, c.a) : c;
}
`

// Uniform names declared by the present program before translation.
const (
	FrameSampler       = "u_frame"
	PremultiplyUniform = "u_premultiply"
)

// VertexSource returns the full-screen quad vertex shader.
func VertexSource(isGLES bool) string {
	if isGLES {
		return vertexSourceGLES
	}
	return vertexSourceGL
}

// PresentSource returns the WebGL2 fragment shader that draws a frame.
func PresentSource() string {
	return presentSource
}

// QuadVertices is the full-screen quad as a triangle strip.
var QuadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}
