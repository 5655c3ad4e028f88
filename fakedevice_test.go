package boids

import (
	"errors"
	"strings"
)

// fakeDevice records GPU calls and emulates compilation and linking from
// shader text so the renderer can be exercised without a GPU.
type fakeDevice struct {
	dialect Dialect
	nextID  uint32
	pending error
	// Forced failures for shaders that would otherwise compile and link.
	rejectKind   ShaderKind
	rejectLink   bool
	rejectUpload bool

	shaders  map[Shader]*fakeShader
	programs map[Program]*fakeProgram
	buffers  map[Buffer][]float32

	deletedShaders  []Shader
	deletedPrograms []Program
	deletedBuffers  []Buffer

	clearColor [4]float32
	clearDepth float32
	clears     []ClearMask
	depthFunc  DepthFunc
	current    Program
	attribs    map[uint32]fakeAttrib
	uniforms   map[int32][16]float32
	draws      []fakeDraw
}

type fakeShader struct {
	kind     ShaderKind
	source   string
	compiled bool
}

type fakeProgram struct {
	stages   []Shader
	linked   bool
	attribs  map[string]int32
	uniforms map[string]int32
}

type fakeAttrib struct {
	buffer Buffer
	size   int
}

type fakeDraw struct {
	mode        Primitive
	first       int
	count       int
	program     Program
	depthFunc   DepthFunc
	attribs     map[uint32]fakeAttrib
	uniforms    map[int32][16]float32
	boundBuffer []float32
}

func newFakeDevice(d Dialect) *fakeDevice {
	return &fakeDevice{
		dialect:  d,
		shaders:  make(map[Shader]*fakeShader),
		programs: make(map[Program]*fakeProgram),
		buffers:  make(map[Buffer][]float32),
		attribs:  make(map[uint32]fakeAttrib),
		uniforms: make(map[int32][16]float32),
	}
}

func (d *fakeDevice) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *fakeDevice) Dialect() Dialect { return d.dialect }

func (d *fakeDevice) SetClearColor(r, g, b, a float32) { d.clearColor = [4]float32{r, g, b, a} }
func (d *fakeDevice) SetClearDepth(depth float32)      { d.clearDepth = depth }
func (d *fakeDevice) Clear(mask ClearMask)             { d.clears = append(d.clears, mask) }
func (d *fakeDevice) EnableDepthTest(fn DepthFunc)     { d.depthFunc = fn }

func (d *fakeDevice) CreateShader(kind ShaderKind) Shader {
	s := Shader(d.id())
	d.shaders[s] = &fakeShader{kind: kind}
	return s
}

func (d *fakeDevice) CompileShader(s Shader, source string) (bool, string) {
	sh := d.shaders[s]
	sh.source = source
	if sh.kind == d.rejectKind {
		return false, "ERROR: 0:1: rejected " + sh.kind.String() + " stage"
	}
	if strings.Count(source, "{") != strings.Count(source, "}") {
		return false, "ERROR: 0:1: syntax error: unbalanced braces"
	}
	if !strings.Contains(source, "void main()") {
		return false, "ERROR: 0:1: missing main function"
	}
	sh.compiled = true
	return true, ""
}

func (d *fakeDevice) DeleteShader(s Shader) {
	delete(d.shaders, s)
	d.deletedShaders = append(d.deletedShaders, s)
}

func (d *fakeDevice) CreateProgram() Program {
	p := Program(d.id())
	d.programs[p] = &fakeProgram{}
	return p
}

func (d *fakeDevice) AttachShader(p Program, s Shader) {
	prog := d.programs[p]
	prog.stages = append(prog.stages, s)
}

// LinkProgram fails when the fragment stage reads a varying the vertex
// stage does not write.
func (d *fakeDevice) LinkProgram(p Program) (bool, string) {
	prog := d.programs[p]
	if d.rejectLink {
		return false, "ERROR: link rejected"
	}
	var vert, frag *fakeShader
	for _, s := range prog.stages {
		sh := d.shaders[s]
		if sh == nil || !sh.compiled {
			return false, "ERROR: attached shader not compiled"
		}
		switch sh.kind {
		case ShaderVertex:
			vert = sh
		case ShaderFragment:
			frag = sh
		}
	}
	if vert == nil || frag == nil {
		return false, "ERROR: program requires vertex and fragment stages"
	}
	outputs := declared(vert.source, "out", "varying")
	for _, in := range declared(frag.source, "in", "varying") {
		found := false
		for _, out := range outputs {
			found = found || out == in
		}
		if !found {
			return false, "ERROR: Input of fragment shader '" + in + "' not written by vertex shader"
		}
	}
	prog.attribs = make(map[string]int32)
	prog.uniforms = make(map[string]int32)
	for i, name := range declared(vert.source, "in", "attribute") {
		prog.attribs[name] = int32(i)
	}
	var nuni int32
	for _, src := range []string{vert.source, frag.source} {
		for _, name := range declared(src, "uniform") {
			if _, ok := prog.uniforms[name]; !ok {
				prog.uniforms[name] = nuni
				nuni++
			}
		}
	}
	prog.linked = true
	return true, ""
}

// declared returns names of variables declared with one of the qualifiers.
func declared(source string, qualifiers ...string) (names []string) {
	for _, line := range strings.Split(source, "\n") {
		fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
		if len(fields) != 3 {
			continue
		}
		for _, q := range qualifiers {
			if fields[0] == q {
				names = append(names, fields[2])
			}
		}
	}
	return names
}

func (d *fakeDevice) DeleteProgram(p Program) {
	delete(d.programs, p)
	d.deletedPrograms = append(d.deletedPrograms, p)
}

func (d *fakeDevice) UseProgram(p Program) { d.current = p }

func (d *fakeDevice) AttribLocation(p Program, name string) int32 {
	prog := d.programs[p]
	if prog == nil || !prog.linked {
		d.pending = errors.New("GL_INVALID_OPERATION")
		return -1
	}
	loc, ok := prog.attribs[name]
	if !ok {
		return -1
	}
	return loc
}

func (d *fakeDevice) UniformLocation(p Program, name string) (int32, bool) {
	prog := d.programs[p]
	if prog == nil || !prog.linked {
		d.pending = errors.New("GL_INVALID_OPERATION")
		return -1, false
	}
	loc, ok := prog.uniforms[name]
	return loc, ok
}

func (d *fakeDevice) CreateBuffer() Buffer {
	b := Buffer(d.id())
	d.buffers[b] = nil
	return b
}

func (d *fakeDevice) BufferStaticData(b Buffer, data []float32) {
	if d.rejectUpload {
		d.pending = errors.New("GL_OUT_OF_MEMORY")
		return
	}
	d.buffers[b] = append([]float32(nil), data...)
}

func (d *fakeDevice) DeleteBuffer(b Buffer) {
	delete(d.buffers, b)
	d.deletedBuffers = append(d.deletedBuffers, b)
}

func (d *fakeDevice) VertexAttribFloats(b Buffer, loc uint32, size int) {
	d.attribs[loc] = fakeAttrib{buffer: b, size: size}
}

func (d *fakeDevice) UniformMatrix4(loc int32, m *[16]float32) {
	d.uniforms[loc] = *m
}

func (d *fakeDevice) DrawArrays(mode Primitive, first, count int) {
	draw := fakeDraw{
		mode:      mode,
		first:     first,
		count:     count,
		program:   d.current,
		depthFunc: d.depthFunc,
		attribs:   make(map[uint32]fakeAttrib),
		uniforms:  make(map[int32][16]float32),
	}
	for k, v := range d.attribs {
		draw.attribs[k] = v
		draw.boundBuffer = d.buffers[v.buffer]
	}
	for k, v := range d.uniforms {
		draw.uniforms[k] = v
	}
	d.draws = append(d.draws, draw)
}

func (d *fakeDevice) Err() error {
	err := d.pending
	d.pending = nil
	return err
}

type fakeSurface struct {
	width, height int
	dev           Device
	err           error
}

func (s *fakeSurface) Size() (int, int) { return s.width, s.height }

func (s *fakeSurface) Context() (Device, error) { return s.dev, s.err }
