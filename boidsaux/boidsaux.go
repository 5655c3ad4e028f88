// Package boidsaux contains host helpers to get a [boids.Renderer] on screen
// or into an image quickly. Applications with their own windowing should
// implement [boids.Surface] themselves instead.
package boidsaux

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"

	"github.com/soypat/boids"
	"github.com/soypat/boids/gldevice"
)

// ViewConfig configures [View].
type ViewConfig struct {
	Width  int
	Height int
	Title  string
	// Context, if set, closes the window when done.
	Context context.Context
}

// ImageConfig configures [RenderPNG].
type ImageConfig struct {
	Width  int
	Height int
	// Output receives the PNG encoded frame.
	Output io.Writer
}

// View opens a window, renders the frame once and shows it until the window
// is closed or the configured context is done. Must be called from the main
// thread with the OS thread locked.
func View(cfg ViewConfig) error {
	win, err := gldevice.Open(gldevice.WindowConfig{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
	})
	if err != nil {
		return err
	}
	defer win.Close()
	var r boids.Renderer
	err = r.Setup(win)
	if err != nil {
		return fmt.Errorf("setting up renderer: %w", err)
	}
	defer r.Release()
	win.Present()
	log := boids.Logger()
	log.Info("frame presented", slog.String("status", r.Status().String()))
	ctx := cfg.Context
	for !win.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		win.WaitEvents(0.1)
	}
	return nil
}

// RenderPNG renders the frame in a hidden window and writes it to cfg.Output as PNG.
// Must be called from the main thread with the OS thread locked.
func RenderPNG(cfg ImageConfig) error {
	if cfg.Output == nil {
		return errors.New("RenderPNG requires output writer in config")
	}
	win, err := gldevice.Open(gldevice.WindowConfig{
		Title:  "boids snapshot",
		Width:  cfg.Width,
		Height: cfg.Height,
		Hidden: true,
	})
	if err != nil {
		return err
	}
	defer win.Close()
	var r boids.Renderer
	err = r.Setup(win)
	if err != nil {
		return fmt.Errorf("setting up renderer: %w", err)
	}
	defer r.Release()
	img, err := win.Snapshot()
	if err != nil {
		return err
	}
	return png.Encode(cfg.Output, img)
}
