//go:build js && wasm

package webgl

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/soypat/boids"
)

// Canvas is an HTML canvas element. It implements [boids.Surface].
type Canvas struct {
	el  js.Value
	dev *Device
}

// CanvasByID looks up the canvas element with the given id in the document.
func CanvasByID(id string) (*Canvas, error) {
	el := js.Global().Get("document").Call("getElementById", id)
	if !valid(el) {
		return nil, fmt.Errorf("no element with id %q", id)
	}
	return &Canvas{el: el}, nil
}

// Size returns the canvas drawing buffer size in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.el.Get("width").Int(), c.el.Get("height").Int()
}

// Context returns the canvas WebGL context, creating it on first use.
func (c *Canvas) Context() (boids.Device, error) {
	if c.dev != nil {
		return c.dev, nil
	}
	gl := c.el.Call("getContext", "webgl")
	if !valid(gl) {
		return nil, errors.New("WebGL not supported by browser")
	}
	c.dev = newDevice(gl)
	return c.dev, nil
}

// Device issues WebGL calls. WebGL objects are JavaScript values so they are
// kept in a table indexed by the handles handed out to callers.
type Device struct {
	gl      js.Value
	objects objectTable[js.Value]

	vertexShader, fragmentShader    js.Value
	arrayBuffer, float, staticDraw  js.Value
	colorBit, depthBit              js.Value
	depthTest, less, lequal         js.Value
	triangles, triangleStrip        js.Value
	compileStatus, linkStatus, none js.Value
}

var _ boids.Device = (*Device)(nil)

func newDevice(gl js.Value) *Device {
	return &Device{
		gl:             gl,
		objects:        newObjectTable[js.Value](),
		vertexShader:   gl.Get("VERTEX_SHADER"),
		fragmentShader: gl.Get("FRAGMENT_SHADER"),
		arrayBuffer:    gl.Get("ARRAY_BUFFER"),
		float:          gl.Get("FLOAT"),
		staticDraw:     gl.Get("STATIC_DRAW"),
		colorBit:       gl.Get("COLOR_BUFFER_BIT"),
		depthBit:       gl.Get("DEPTH_BUFFER_BIT"),
		depthTest:      gl.Get("DEPTH_TEST"),
		less:           gl.Get("LESS"),
		lequal:         gl.Get("LEQUAL"),
		triangles:      gl.Get("TRIANGLES"),
		triangleStrip:  gl.Get("TRIANGLE_STRIP"),
		compileStatus:  gl.Get("COMPILE_STATUS"),
		linkStatus:     gl.Get("LINK_STATUS"),
		none:           gl.Get("NO_ERROR"),
	}
}

func valid(v js.Value) bool { return !v.IsUndefined() && !v.IsNull() }

func (d *Device) store(v js.Value) uint32 {
	if !valid(v) {
		return 0
	}
	return d.objects.store(v)
}

func (d *Device) load(id uint32) js.Value {
	v, ok := d.objects.load(id)
	if !ok {
		return js.Null()
	}
	return v
}

// free drops id from the object table along with any uniform locations
// resolved against it.
func (d *Device) free(id uint32) js.Value {
	v, ok := d.objects.free(id)
	if !ok {
		return js.Null()
	}
	return v
}

func (d *Device) Dialect() boids.Dialect { return boids.DialectGLSLES100 }

func (d *Device) SetClearColor(r, g, b, a float32) { d.gl.Call("clearColor", r, g, b, a) }

func (d *Device) SetClearDepth(depth float32) { d.gl.Call("clearDepth", depth) }

func (d *Device) Clear(mask boids.ClearMask) {
	var bits int
	if mask&boids.ClearColor != 0 {
		bits |= d.colorBit.Int()
	}
	if mask&boids.ClearDepth != 0 {
		bits |= d.depthBit.Int()
	}
	d.gl.Call("clear", bits)
}

func (d *Device) EnableDepthTest(fn boids.DepthFunc) {
	d.gl.Call("enable", d.depthTest)
	switch fn {
	case boids.DepthLess:
		d.gl.Call("depthFunc", d.less)
	case boids.DepthLessEqual:
		d.gl.Call("depthFunc", d.lequal)
	}
}

func (d *Device) CreateShader(kind boids.ShaderKind) boids.Shader {
	var typ js.Value
	switch kind {
	case boids.ShaderVertex:
		typ = d.vertexShader
	case boids.ShaderFragment:
		typ = d.fragmentShader
	default:
		return 0
	}
	return boids.Shader(d.store(d.gl.Call("createShader", typ)))
}

func (d *Device) CompileShader(s boids.Shader, source string) (ok bool, infoLog string) {
	sh := d.load(uint32(s))
	d.gl.Call("shaderSource", sh, source)
	d.gl.Call("compileShader", sh)
	if d.gl.Call("getShaderParameter", sh, d.compileStatus).Truthy() {
		return true, ""
	}
	return false, d.gl.Call("getShaderInfoLog", sh).String()
}

func (d *Device) DeleteShader(s boids.Shader) { d.gl.Call("deleteShader", d.free(uint32(s))) }

func (d *Device) CreateProgram() boids.Program {
	return boids.Program(d.store(d.gl.Call("createProgram")))
}

func (d *Device) AttachShader(p boids.Program, s boids.Shader) {
	d.gl.Call("attachShader", d.load(uint32(p)), d.load(uint32(s)))
}

func (d *Device) LinkProgram(p boids.Program) (ok bool, infoLog string) {
	prog := d.load(uint32(p))
	d.gl.Call("linkProgram", prog)
	if d.gl.Call("getProgramParameter", prog, d.linkStatus).Truthy() {
		return true, ""
	}
	return false, d.gl.Call("getProgramInfoLog", prog).String()
}

func (d *Device) DeleteProgram(p boids.Program) { d.gl.Call("deleteProgram", d.free(uint32(p))) }

func (d *Device) UseProgram(p boids.Program) { d.gl.Call("useProgram", d.load(uint32(p))) }

func (d *Device) AttribLocation(p boids.Program, name string) int32 {
	return int32(d.gl.Call("getAttribLocation", d.load(uint32(p)), name).Int())
}

// UniformLocation returns a handle into the object table since WebGL
// uniform locations are opaque objects rather than integers. The handle is
// owned by p and becomes invalid once p is deleted.
func (d *Device) UniformLocation(p boids.Program, name string) (int32, bool) {
	loc := d.gl.Call("getUniformLocation", d.load(uint32(p)), name)
	if !valid(loc) {
		return -1, false
	}
	return int32(d.objects.storeOwned(uint32(p), loc)), true
}

func (d *Device) CreateBuffer() boids.Buffer {
	return boids.Buffer(d.store(d.gl.Call("createBuffer")))
}

func (d *Device) BufferStaticData(b boids.Buffer, data []float32) {
	d.gl.Call("bindBuffer", d.arrayBuffer, d.load(uint32(b)))
	d.gl.Call("bufferData", d.arrayBuffer, float32Array(data), d.staticDraw)
}

func (d *Device) DeleteBuffer(b boids.Buffer) { d.gl.Call("deleteBuffer", d.free(uint32(b))) }

func (d *Device) VertexAttribFloats(b boids.Buffer, loc uint32, size int) {
	d.gl.Call("bindBuffer", d.arrayBuffer, d.load(uint32(b)))
	d.gl.Call("vertexAttribPointer", loc, size, d.float, false, 0, 0)
	d.gl.Call("enableVertexAttribArray", loc)
}

func (d *Device) UniformMatrix4(loc int32, m *[16]float32) {
	d.gl.Call("uniformMatrix4fv", d.load(uint32(loc)), false, float32Array(m[:]))
}

func (d *Device) DrawArrays(mode boids.Primitive, first, count int) {
	switch mode {
	case boids.Triangles:
		d.gl.Call("drawArrays", d.triangles, first, count)
	case boids.TriangleStrip:
		d.gl.Call("drawArrays", d.triangleStrip, first, count)
	}
}

func (d *Device) Err() error {
	code := d.gl.Call("getError")
	if code.Equal(d.none) {
		return nil
	}
	return fmt.Errorf("webgl error 0x%x", code.Int())
}

func float32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	for i, v := range data {
		arr.SetIndex(i, v)
	}
	return arr
}
