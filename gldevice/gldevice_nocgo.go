//go:build tinygo || !cgo

package gldevice

import (
	"errors"
	"image"

	"github.com/soypat/boids"
)

var errNoCGO = errors.New("OpenGL rendering requires CGo and is not supported on TinyGo")

// Open always fails without CGo.
func Open(cfg WindowConfig) (*Window, error) {
	return nil, errNoCGO
}

type Window struct{}

func (w *Window) Size() (width, height int)      { return 0, 0 }
func (w *Window) Context() (boids.Device, error) { return nil, errNoCGO }
func (w *Window) Present()                       {}
func (w *Window) ShouldClose() bool              { return true }
func (w *Window) WaitEvents(timeout float64)     {}
func (w *Window) Close()                         {}
func (w *Window) Snapshot() (*image.RGBA, error) { return nil, errNoCGO }
