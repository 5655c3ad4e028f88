// Package gldevice implements [boids.Device] on desktop OpenGL 4.x core
// profile through go-gl and GLFW.
//
// OpenGL calls must happen on the thread that created the window. Programs
// using this package should call runtime.LockOSThread from an init function.
package gldevice

import (
	"fmt"
	"image"
)

// WindowConfig configures the window and OpenGL context created by [Open].
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	// Version is the requested OpenGL core profile version. Defaults to 4.6.
	Version [2]int
	// Hidden creates the window without showing it, for offscreen rendering.
	Hidden bool
}

func (cfg *WindowConfig) defaults() {
	if cfg.Title == "" {
		cfg.Title = "boids"
	}
	if cfg.Version == ([2]int{}) {
		cfg.Version = [2]int{4, 6}
	}
}

// newSnapshotImage allocates the destination of a framebuffer read back.
func newSnapshotImage(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("cannot snapshot %dx%d framebuffer", width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

// flipRows reverses the row order of img in place. OpenGL reads pixels
// starting from the bottom left corner.
func flipRows(img *image.RGBA) {
	height := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < height/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bot := img.Pix[(height-1-y)*img.Stride : (height-y)*img.Stride]
		copy(row, top)
		copy(top, bot)
		copy(bot, row)
	}
}
