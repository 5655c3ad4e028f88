//go:build !tinygo && cgo

package boidsaux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"runtime"
	"testing"

	"github.com/soypat/boids/gldevice"
)

var (
	errGPUInit error
	pngErr     error
	viewErr    error
)

func TestMain(m *testing.M) {
	runtime.LockOSThread()
	win, err := gldevice.Open(gldevice.WindowConfig{Width: 1, Height: 1, Hidden: true})
	if err != nil {
		errGPUInit = err
	} else {
		win.Close()
		pngErr = testRenderPNG()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		viewErr = View(ViewConfig{Width: 64, Height: 64, Context: ctx})
	}
	runtime.UnlockOSThread()
	os.Exit(m.Run())
}

func TestRenderPNG(t *testing.T) {
	if errGPUInit != nil {
		t.Skip("no OpenGL context available:", errGPUInit)
	}
	if pngErr != nil {
		t.Fatal(pngErr)
	}
}

func TestRenderPNGNoOutput(t *testing.T) {
	err := RenderPNG(ImageConfig{Width: 10, Height: 10})
	if err == nil {
		t.Fatal("expected error for missing output")
	}
}

func TestViewCancelled(t *testing.T) {
	if errGPUInit != nil {
		t.Skip("no OpenGL context available:", errGPUInit)
	}
	if !errors.Is(viewErr, context.Canceled) {
		t.Errorf("want context cancellation, got %v", viewErr)
	}
}

func testRenderPNG() error {
	var buf bytes.Buffer
	err := RenderPNG(ImageConfig{Width: 300, Height: 150, Output: &buf})
	if err != nil {
		return err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return err
	}
	b := img.Bounds()
	if b.Dx() < 300 || b.Dy() < 150 {
		return fmt.Errorf("image smaller than surface: %v", b)
	}
	r, g, bl, a := img.At(b.Dx()/2, b.Dy()/2).RGBA()
	if (color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(bl), A: uint16(a)}) != (color.RGBA64{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff}) {
		return errors.New("center pixel not white")
	}
	return nil
}
