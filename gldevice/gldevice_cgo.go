//go:build !tinygo && cgo

package gldevice

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/boids"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

// Window is a GLFW window with a current OpenGL context. It implements
// [boids.Surface].
type Window struct {
	win       *glfw.Window
	dev       *Device
	terminate func()
}

// Open creates a window and makes its OpenGL context current on the calling thread.
func Open(cfg WindowConfig) (*Window, error) {
	cfg.defaults()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	win, terminate, err := glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:      cfg.Title,
		Version:    cfg.Version,
		Width:      cfg.Width,
		Height:     cfg.Height,
		HideWindow: cfg.Hidden,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenGL window: %w", err)
	}
	dev, err := newDevice()
	if err != nil {
		terminate()
		return nil, err
	}
	boids.Logger().Debug("opengl context created", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	return &Window{win: win.Window, dev: dev, terminate: terminate}, nil
}

// Size returns the framebuffer size in pixels, which may differ from the
// window size on high density displays.
func (w *Window) Size() (width, height int) { return w.win.GetFramebufferSize() }

// Context returns the OpenGL device bound to the window.
func (w *Window) Context() (boids.Device, error) {
	if w.dev == nil {
		return nil, errors.New("window closed")
	}
	return w.dev, nil
}

// Present swaps the front and back buffers, showing the last rendered frame.
func (w *Window) Present() { w.win.SwapBuffers() }

// ShouldClose reports whether the user requested the window be closed.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// WaitEvents blocks until an event arrives or timeout seconds elapse and
// processes pending events.
func (w *Window) WaitEvents(timeout float64) { glfw.WaitEventsTimeout(timeout) }

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	if w.dev == nil {
		return
	}
	w.dev.release()
	w.dev = nil
	w.terminate()
}

// Snapshot reads back the current contents of the back buffer.
// Rows are returned top to bottom.
func (w *Window) Snapshot() (*image.RGBA, error) {
	width, height := w.Size()
	img, err := newSnapshotImage(width, height)
	if err != nil {
		return nil, err
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&img.Pix[0]))
	if err := glgl.Err(); err != nil {
		return nil, fmt.Errorf("reading pixels: %w", err)
	}
	flipRows(img)
	return img, nil
}

// Device issues OpenGL calls on the current context.
type Device struct {
	// Core profile requires a bound vertex array object for attribute setup and draws.
	vao uint32
}

var _ boids.Device = (*Device)(nil)

func newDevice() (*Device, error) {
	var d Device
	gl.GenVertexArrays(1, &d.vao)
	if d.vao == 0 {
		return nil, glErrOrMessage("creating vertex array object")
	}
	gl.BindVertexArray(d.vao)
	return &d, nil
}

func (d *Device) release() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

func (d *Device) Dialect() boids.Dialect { return boids.DialectGLSL410 }

func (d *Device) SetClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *Device) SetClearDepth(depth float32) { gl.ClearDepth(float64(depth)) }

func (d *Device) Clear(mask boids.ClearMask) {
	var bits uint32
	if mask&boids.ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&boids.ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *Device) EnableDepthTest(fn boids.DepthFunc) {
	gl.Enable(gl.DEPTH_TEST)
	switch fn {
	case boids.DepthLess:
		gl.DepthFunc(gl.LESS)
	case boids.DepthLessEqual:
		gl.DepthFunc(gl.LEQUAL)
	}
}

func (d *Device) CreateShader(kind boids.ShaderKind) boids.Shader {
	switch kind {
	case boids.ShaderVertex:
		return boids.Shader(gl.CreateShader(gl.VERTEX_SHADER))
	case boids.ShaderFragment:
		return boids.Shader(gl.CreateShader(gl.FRAGMENT_SHADER))
	}
	return 0
}

func (d *Device) CompileShader(s boids.Shader, source string) (ok bool, infoLog string) {
	id := uint32(s)
	csrc, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csrc, nil)
	free()
	gl.CompileShader(id)
	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	return false, readInfoLog(logLength, func(buf *uint8) { gl.GetShaderInfoLog(id, logLength, nil, buf) })
}

func (d *Device) DeleteShader(s boids.Shader) { gl.DeleteShader(uint32(s)) }

func (d *Device) CreateProgram() boids.Program { return boids.Program(gl.CreateProgram()) }

func (d *Device) AttachShader(p boids.Program, s boids.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (d *Device) LinkProgram(p boids.Program) (ok bool, infoLog string) {
	id := uint32(p)
	gl.LinkProgram(id)
	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
	return false, readInfoLog(logLength, func(buf *uint8) { gl.GetProgramInfoLog(id, logLength, nil, buf) })
}

func readInfoLog(length int32, read func(buf *uint8)) string {
	if length <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length+1))
	read(gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Device) DeleteProgram(p boids.Program) { gl.DeleteProgram(uint32(p)) }

func (d *Device) UseProgram(p boids.Program) { gl.UseProgram(uint32(p)) }

func (d *Device) AttribLocation(p boids.Program, name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
}

func (d *Device) UniformLocation(p boids.Program, name string) (int32, bool) {
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	return loc, loc >= 0
}

func (d *Device) CreateBuffer() boids.Buffer {
	var id uint32
	gl.GenBuffers(1, &id)
	return boids.Buffer(id)
}

func (d *Device) BufferStaticData(b boids.Buffer, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Device) DeleteBuffer(b boids.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (d *Device) VertexAttribFloats(b boids.Buffer, loc uint32, size int) {
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	gl.VertexAttribPointer(loc, int32(size), gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(loc)
}

func (d *Device) UniformMatrix4(loc int32, m *[16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (d *Device) DrawArrays(mode boids.Primitive, first, count int) {
	var glmode uint32
	switch mode {
	case boids.Triangles:
		glmode = gl.TRIANGLES
	case boids.TriangleStrip:
		glmode = gl.TRIANGLE_STRIP
	default:
		return
	}
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(glmode, int32(first), int32(count))
}

func (d *Device) Err() error { return glgl.Err() }

func glErrOrMessage(defaultMsg string) (err error) {
	err = glgl.Err()
	if err == nil {
		err = errors.New(defaultMsg)
	} else {
		err = fmt.Errorf("%s: %w", defaultMsg, err)
	}
	return err
}
