package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/kjkrol/glmin/internal/platform"
	"github.com/kjkrol/glmin/pkg/gfx"
)

// Backend supplies the platform pieces a run needs.
type Backend struct {
	Open      platform.Opener
	NewDriver func() (gfx.Driver, error)
	// Describe, if set, names the driver behind the current context.
	Describe func() string
}

// Run opens the context, builds the pipeline, presents v.Frames frames and
// releases everything in reverse order. Cancelling ctx ends the run early
// without error; any other error is fatal to the caller.
func Run(ctx context.Context, v Variant, backend Backend, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if backend.Open == nil || backend.NewDriver == nil {
		return errors.New("app: incomplete backend")
	}

	surface, err := backend.Open(v.Context)
	if err != nil {
		return fmt.Errorf("open %s context: %w", v.Context.API, err)
	}
	width, height := surface.Size()
	logger.Info("context created",
		"variant", v.Name,
		"api", v.Context.API.String(),
		"version", fmt.Sprintf("%d.%d", v.Context.Major, v.Context.Minor),
		"size", fmt.Sprintf("%dx%d", width, height))

	driver, err := backend.NewDriver()
	if err != nil {
		surface.Close()
		return fmt.Errorf("load driver: %w", err)
	}
	if backend.Describe != nil {
		logger.Info("driver loaded", "driver", backend.Describe())
	}

	window, err := gfx.NewWindow(surface, driver, gfx.NewRendererFactory(v.Renderer))
	if err != nil {
		surface.Close()
		return fmt.Errorf("build pipeline: %w", err)
	}
	defer window.Close()
	window.SetLogger(logger)
	logger.Info("program linked",
		"validation", v.Renderer.Validation.String(),
		"bindings", len(v.Renderer.Pipeline.Bindings),
		"vertices", len(v.Renderer.Mesh.Vertices))

	if err := window.Run(ctx, v.Frames, v.FrameDelay); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("interrupted", "frames", window.Presented())
			return nil
		}
		return fmt.Errorf("render: %w", err)
	}
	logger.Info("shutdown", "frames", window.Presented())
	return nil
}

var exit = os.Exit

// Fatal prints a diagnostic for err and terminates the process.
func Fatal(logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{"error", err}
	var runtimeErr *gfx.RuntimeError
	var setupErr *gfx.SetupError
	switch {
	case errors.As(err, &runtimeErr):
		attrs = append(attrs, "call", runtimeErr.Call, "file", runtimeErr.File, "line", runtimeErr.Line, "code", runtimeErr.Code)
	case errors.As(err, &setupErr):
		attrs = append(attrs, "op", setupErr.Op)
		if setupErr.Stage != 0 {
			attrs = append(attrs, "stage", setupErr.Stage.String())
		}
	}
	logger.Error("fatal", attrs...)
	exit(1)
}
