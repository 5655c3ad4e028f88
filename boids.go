// Package boids stands up a minimal GPU pipeline and renders one static
// frame: a full-viewport quad drawn in opaque white through a perspective
// projection.
//
// The GPU is reached through the [Device] interface. Desktop OpenGL is
// provided by package gldevice and browser WebGL by package webgl.
package boids

import (
	"errors"
	"fmt"
	"log/slog"
)

const (
	// QuadVertexCount is the number of vertices in the quad triangle strip.
	QuadVertexCount = 4
	// PositionComponents is the number of float32 components per vertex position.
	PositionComponents = 2
)

// quadPositions are drawn as a triangle strip forming two triangles.
var quadPositions = [QuadVertexCount * PositionComponents]float32{
	-1, 1,
	1, 1,
	-1, -1,
	1, -1,
}

// Status is the lifecycle state of a [Renderer].
type Status uint8

const (
	StatusUninitialized Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}
	return "Status(invalid)"
}

// Renderer owns a graphics context and the GPU objects needed to draw
// the quad. The zero value is ready for [Renderer.Setup].
// A Renderer is not safe for concurrent use.
type Renderer struct {
	dev      Device
	width    int
	height   int
	status   Status
	err      error
	program  Program
	buffer   Buffer
	bindings Bindings
	tf       Transforms
}

// Status returns the lifecycle state of the renderer.
func (r *Renderer) Status() Status { return r.status }

// Err returns the reason the renderer failed, or nil.
func (r *Renderer) Err() error { return r.err }

// Bindings returns the attribute and uniform slots resolved during setup.
func (r *Renderer) Bindings() Bindings { return r.bindings }

// Transforms returns the matrices uploaded in the last rendered frame.
func (r *Renderer) Transforms() Transforms { return r.tf }

// Program returns the linked shader program, zero before a successful setup.
func (r *Renderer) Program() Program { return r.program }

// Size returns the surface size recorded during setup.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// QuadPositions returns the vertex data uploaded to the vertex buffer.
func (r *Renderer) QuadPositions() [QuadVertexCount * PositionComponents]float32 {
	return quadPositions
}

// Setup derives the graphics context from s, builds the shader program,
// resolves its bindings, uploads the quad and renders one frame.
//
// If compilation or linking fails the renderer moves permanently to
// [StatusFailed] and the returned error is a [*ShaderCompileError] or
// [*ProgramLinkError]. Setup may only succeed once per Renderer.
func (r *Renderer) Setup(s Surface) error {
	switch r.status {
	case StatusReady:
		return ErrAlreadySetup
	case StatusFailed:
		return r.err
	}
	width, height := s.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSurface, width, height)
	}
	dev, err := s.Context()
	if err != nil {
		return fmt.Errorf("acquiring graphics context: %w", err)
	} else if dev == nil {
		return ErrNoContext
	}
	r.dev = dev
	r.width = width
	r.height = height
	log := Logger()
	log.Debug("graphics context acquired", slog.Int("width", width), slog.Int("height", height), slog.String("dialect", dev.Dialect().String()))

	dev.SetClearColor(0, 0, 0, 1)
	dev.Clear(ClearColor)

	vert, frag, ok := ShaderSources(dev.Dialect())
	if !ok {
		return r.fail(fmt.Errorf("no shaders for dialect %s", dev.Dialect()))
	}
	prog, err := r.LoadShaderProgram(vert, frag)
	if err != nil {
		return r.fail(err)
	}
	r.program = prog
	r.bindings = resolveBindings(dev, prog)

	r.buffer = dev.CreateBuffer()
	dev.BufferStaticData(r.buffer, quadPositions[:])
	if err = dev.Err(); err != nil {
		r.releaseObjects()
		return r.fail(fmt.Errorf("uploading vertex buffer: %w", err))
	}
	log.Debug("vertex buffer uploaded", slog.Int("vertices", QuadVertexCount))

	r.status = StatusReady
	return r.Render()
}

func (r *Renderer) fail(err error) error {
	r.status = StatusFailed
	r.err = err
	return err
}

func resolveBindings(dev Device, prog Program) Bindings {
	log := Logger()
	var b Bindings
	b.VertexPosition = dev.AttribLocation(prog, attribVertexPosition)
	if b.VertexPosition < 0 {
		log.Warn("attribute not active in program", slog.String("name", attribVertexPosition))
	}
	if loc, ok := dev.UniformLocation(prog, uniformProjectionMatrix); ok {
		b.ProjectionMatrix = MakeUniform(loc)
	} else {
		log.Warn("uniform not active in program", slog.String("name", uniformProjectionMatrix))
	}
	if loc, ok := dev.UniformLocation(prog, uniformModelViewMatrix); ok {
		b.ModelViewMatrix = MakeUniform(loc)
	} else {
		log.Warn("uniform not active in program", slog.String("name", uniformModelViewMatrix))
	}
	return b
}

// LoadShader compiles source as a shader of the given kind. On failure the
// shader object is deleted and a [*ShaderCompileError] is returned.
func (r *Renderer) LoadShader(kind ShaderKind, source string) (Shader, error) {
	if r.dev == nil {
		return 0, ErrNoContext
	}
	s := r.dev.CreateShader(kind)
	if s == 0 {
		return 0, glErrOrMessage(r.dev, "creating "+kind.String()+" shader")
	}
	ok, infoLog := r.dev.CompileShader(s, source)
	if !ok {
		r.dev.DeleteShader(s)
		return 0, &ShaderCompileError{Kind: kind, InfoLog: infoLog}
	}
	Logger().Debug("shader compiled", slog.String("kind", kind.String()))
	return s, nil
}

// LoadShaderProgram compiles both stages and links them into a program.
// Linking is not attempted if either stage fails to compile. On link failure
// the program is deleted and a [*ProgramLinkError] is returned. The stage
// objects are released once linking is over, whatever its outcome.
func (r *Renderer) LoadShaderProgram(vertexSource, fragmentSource string) (Program, error) {
	vs, err := r.LoadShader(ShaderVertex, vertexSource)
	if err != nil {
		return 0, err
	}
	defer r.dev.DeleteShader(vs)
	fs, err := r.LoadShader(ShaderFragment, fragmentSource)
	if err != nil {
		return 0, err
	}
	defer r.dev.DeleteShader(fs)

	prog := r.dev.CreateProgram()
	if prog == 0 {
		return 0, glErrOrMessage(r.dev, "creating program")
	}
	r.dev.AttachShader(prog, vs)
	r.dev.AttachShader(prog, fs)
	ok, infoLog := r.dev.LinkProgram(prog)
	if !ok {
		r.dev.DeleteProgram(prog)
		return 0, &ProgramLinkError{InfoLog: infoLog}
	}
	Logger().Debug("program linked", slog.Uint64("program", uint64(prog)))
	return prog, nil
}

// Render draws the quad into the surface. It recomputes the projection from
// the surface aspect ratio and the fixed model-view translation on every call.
func (r *Renderer) Render() error {
	if r.status != StatusReady {
		if r.err != nil {
			return fmt.Errorf("%w: %w", ErrNotReady, r.err)
		}
		return ErrNotReady
	}
	dev := r.dev
	dev.SetClearColor(0, 0, 0, 1)
	dev.SetClearDepth(1)
	dev.EnableDepthTest(DepthLessEqual)
	dev.Clear(ClearColor | ClearDepth)

	r.tf = frameTransforms(r.width, r.height)

	if r.bindings.VertexPosition >= 0 {
		dev.VertexAttribFloats(r.buffer, uint32(r.bindings.VertexPosition), PositionComponents)
	}
	dev.UseProgram(r.program)
	if loc, ok := r.bindings.ProjectionMatrix.Location(); ok {
		dev.UniformMatrix4(loc, (*[16]float32)(&r.tf.Projection))
	}
	if loc, ok := r.bindings.ModelViewMatrix.Location(); ok {
		dev.UniformMatrix4(loc, (*[16]float32)(&r.tf.ModelView))
	}
	dev.DrawArrays(TriangleStrip, 0, QuadVertexCount)
	if err := dev.Err(); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	Logger().Debug("frame drawn", slog.String("mode", TriangleStrip.String()), slog.Int("count", QuadVertexCount))
	return nil
}

// Release deletes the vertex buffer and program. The renderer cannot be
// set up again afterwards.
func (r *Renderer) Release() {
	if r.dev == nil {
		return
	}
	r.releaseObjects()
	if r.status != StatusFailed {
		r.fail(ErrReleased)
	}
}

// releaseObjects deletes whichever GPU objects the renderer still owns.
func (r *Renderer) releaseObjects() {
	if r.buffer != 0 {
		r.dev.DeleteBuffer(r.buffer)
		r.buffer = 0
	}
	if r.program != 0 {
		r.dev.DeleteProgram(r.program)
		r.program = 0
	}
	r.bindings = Bindings{}
}

func glErrOrMessage(dev Device, defaultMsg string) (err error) {
	err = dev.Err()
	if err == nil {
		err = errors.New(defaultMsg)
	} else {
		err = fmt.Errorf("%s: %w", defaultMsg, err)
	}
	return err
}
