package gfx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kjkrol/glmin/internal/platform"
)

// Window pairs a platform context with the renderer drawing into it.
type Window struct {
	surface   platform.Context
	renderer  Renderer
	logger    *slog.Logger
	presented int
}

// NewWindow builds the renderer on the current context of surface. The
// window takes ownership of surface only when it succeeds.
func NewWindow(surface platform.Context, driver Driver, factory RendererFactory) (*Window, error) {
	if surface == nil {
		return nil, errors.New("gfx: platform context is required")
	}
	if factory == nil {
		return nil, errors.New("gfx: renderer factory is required")
	}
	renderer, err := factory(driver)
	if err != nil {
		return nil, err
	}
	return &Window{
		surface:  surface,
		renderer: renderer,
		logger:   slog.Default(),
	}, nil
}

func (w *Window) SetLogger(logger *slog.Logger) {
	if logger != nil {
		w.logger = logger
	}
}

func (w *Window) Size() (int, int) {
	if w == nil || w.surface == nil {
		return 0, 0
	}
	return w.surface.Size()
}

// Presented reports how many frames reached the screen.
func (w *Window) Presented() int { return w.presented }

// Run renders, presents and waits delay, frames times. It returns at the
// first render error, without presenting that frame, or when ctx is done.
// A close request from the window system ends it early without error.
func (w *Window) Run(ctx context.Context, frames int, delay time.Duration) error {
	if frames < 1 {
		return fmt.Errorf("gfx: frame count must be positive, got %d", frames)
	}
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.renderer.Render(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		w.surface.SwapBuffers()
		w.presented++
		w.logger.Debug("frame presented", "frame", i)
		if w.handleEvents() {
			return nil
		}
		w.surface.Delay(delay)
	}
	return nil
}

// handleEvents reports whether the user asked to close the window.
func (w *Window) handleEvents() bool {
	closed := false
	for _, event := range w.surface.PollEvents() {
		switch event.(type) {
		case platform.DestroyNotify:
			closed = true
		case platform.Expose:
			w.logger.Debug("window exposed")
		}
	}
	if closed {
		w.logger.Info("close requested", "frames", w.presented)
	}
	return closed
}

// Close releases the renderer, then the platform context.
func (w *Window) Close() {
	if w.renderer != nil {
		w.renderer.Close()
		w.renderer = nil
	}
	if w.surface != nil {
		w.surface.Close()
		w.surface = nil
	}
}
