package boids

// Handles to GPU objects. The zero value is never a valid object.
type (
	Shader  uint32
	Program uint32
	Buffer  uint32
)

// Uniform is a resolved uniform location. The zero value means the uniform
// is absent from the linked program.
type Uniform struct {
	loc   int32
	valid bool
}

// MakeUniform returns a present uniform at location loc.
func MakeUniform(loc int32) Uniform { return Uniform{loc: loc, valid: true} }

// Location returns the uniform location and whether the uniform is present.
func (u Uniform) Location() (int32, bool) { return u.loc, u.valid }

// Valid reports whether the uniform is present in the program.
func (u Uniform) Valid() bool { return u.valid }

// ShaderKind is the pipeline stage a shader is compiled for.
type ShaderKind uint8

const (
	_ ShaderKind = iota
	ShaderVertex
	ShaderFragment
)

func (k ShaderKind) String() string {
	switch k {
	case ShaderVertex:
		return "vertex"
	case ShaderFragment:
		return "fragment"
	}
	return "ShaderKind(invalid)"
}

// Dialect is the shading language a [Device] compiles.
type Dialect uint8

const (
	_ Dialect = iota
	// DialectGLSL410 is desktop OpenGL 4.1+ core profile GLSL.
	DialectGLSL410
	// DialectGLSLES100 is GLSL ES 1.00 as accepted by WebGL 1.
	DialectGLSLES100
)

func (d Dialect) String() string {
	switch d {
	case DialectGLSL410:
		return "GLSL 4.10 core"
	case DialectGLSLES100:
		return "GLSL ES 1.00"
	}
	return "Dialect(invalid)"
}

// ClearMask selects buffers cleared by [Device.Clear].
type ClearMask uint8

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
)

// Primitive is the topology used to assemble vertices in a draw call.
type Primitive uint8

const (
	_ Primitive = iota
	Triangles
	TriangleStrip
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle strip"
	}
	return "Primitive(invalid)"
}

// DepthFunc is the depth comparison used when depth testing is enabled.
type DepthFunc uint8

const (
	_ DepthFunc = iota
	DepthLess
	// DepthLessEqual lets nearer fragments occlude farther ones, keeping equal depths.
	DepthLessEqual
)

// Device is the graphics context through which every GPU call is issued.
// Implementations are not required to be safe for concurrent use and
// usually must be called from the thread that owns the context.
type Device interface {
	// Dialect is the shading language accepted by CompileShader.
	Dialect() Dialect

	SetClearColor(r, g, b, a float32)
	SetClearDepth(d float32)
	Clear(mask ClearMask)
	// EnableDepthTest turns on depth testing with the given comparison.
	EnableDepthTest(fn DepthFunc)

	CreateShader(kind ShaderKind) Shader
	// CompileShader compiles source into s. On failure ok is false and
	// infoLog holds the compiler diagnostics.
	CompileShader(s Shader, source string) (ok bool, infoLog string)
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	// LinkProgram links p. On failure ok is false and infoLog holds the
	// linker diagnostics.
	LinkProgram(p Program) (ok bool, infoLog string)
	DeleteProgram(p Program)
	UseProgram(p Program)

	// AttribLocation returns the location of an active attribute or -1.
	AttribLocation(p Program, name string) int32
	// UniformLocation returns the location of an active uniform. ok is false
	// when the program has no such uniform.
	UniformLocation(p Program, name string) (loc int32, ok bool)

	CreateBuffer() Buffer
	// BufferStaticData uploads data into b as a static vertex array buffer.
	BufferStaticData(b Buffer, data []float32)
	DeleteBuffer(b Buffer)
	// VertexAttribFloats binds b and sources attribute loc from it as tightly
	// packed vectors of size float32 components, then enables the attribute.
	VertexAttribFloats(b Buffer, loc uint32, size int)

	// UniformMatrix4 uploads a column-major 4x4 matrix.
	UniformMatrix4(loc int32, m *[16]float32)
	DrawArrays(mode Primitive, first, count int)

	// Err returns and clears the first pending device error, if any.
	Err() error
}

// Surface is a mounted drawing surface of known pixel size from which a
// graphics context is derived.
type Surface interface {
	// Size returns the drawing surface size in pixels.
	Size() (width, height int)
	// Context returns the graphics context attached to the surface.
	Context() (Device, error)
}

// Bindings are the attribute and uniform slots resolved from a linked program.
type Bindings struct {
	// VertexPosition is the aVertexPosition attribute location or -1 if absent.
	VertexPosition   int32
	ProjectionMatrix Uniform
	ModelViewMatrix  Uniform
}
