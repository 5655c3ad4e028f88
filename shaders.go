package boids

// Names shared between the shader text and the binding lookups.
const (
	attribVertexPosition    = "aVertexPosition"
	uniformProjectionMatrix = "uProjectionMatrix"
	uniformModelViewMatrix  = "uModelViewMatrix"
)

const vertexGLSL410 = `#version 410 core
in vec4 aVertexPosition;

uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;

void main() {
	gl_Position = uProjectionMatrix * uModelViewMatrix * aVertexPosition;
}
`

const fragmentGLSL410 = `#version 410 core
out vec4 fragColor;

void main() {
	fragColor = vec4(1.0, 1.0, 1.0, 1.0);
}
`

const vertexGLSLES100 = `attribute vec4 aVertexPosition;

uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;

void main() {
	gl_Position = uProjectionMatrix * uModelViewMatrix * aVertexPosition;
}
`

const fragmentGLSLES100 = `precision mediump float;

void main() {
	gl_FragColor = vec4(1.0, 1.0, 1.0, 1.0);
}
`

// ShaderSources returns the fixed vertex and fragment shader pair written
// in dialect d. ok is false for an unknown dialect.
func ShaderSources(d Dialect) (vertex, fragment string, ok bool) {
	switch d {
	case DialectGLSL410:
		return vertexGLSL410, fragmentGLSL410, true
	case DialectGLSLES100:
		return vertexGLSLES100, fragmentGLSLES100, true
	}
	return "", "", false
}
