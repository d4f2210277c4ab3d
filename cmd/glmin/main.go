package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/kjkrol/glmin/internal/app"
	"github.com/kjkrol/glmin/internal/cli"
	"github.com/kjkrol/glmin/internal/platform"
	"github.com/kjkrol/glmin/internal/renderer"
)

func init() {
	// the graphics context must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := app.Backend{Open: platform.Open, NewDriver: renderer.New, Describe: renderer.Info}
	if err := cli.NewRootCommand(defaultVariant(), backend).ExecuteContext(ctx); err != nil {
		stop()
		app.Fatal(slog.Default(), err)
	}
}
