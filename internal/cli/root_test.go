package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/glmin/internal/app"
	"github.com/kjkrol/glmin/internal/platform"
	"github.com/kjkrol/glmin/pkg/gfx"
	"github.com/kjkrol/glmin/pkg/gfx/gfxtest"
)

type harness struct {
	surface *gfxtest.Context
	driver  *gfxtest.Driver
	stderr  bytes.Buffer
}

func execute(t *testing.T, variant app.Variant, args ...string) (*harness, error) {
	t.Helper()
	h := &harness{
		surface: gfxtest.NewContext(platform.ContextConfig{}),
		driver:  gfxtest.NewDriver(),
	}
	return h, h.execute(variant, args...)
}

func (h *harness) execute(variant app.Variant, args ...string) error {
	backend := app.Backend{
		Open:      gfxtest.Opener(h.surface, nil),
		NewDriver: func() (gfx.Driver, error) { return h.driver, nil },
	}
	cmd := NewRootCommand(variant, backend)
	cmd.SetArgs(args)
	cmd.SetOut(&h.stderr)
	cmd.SetErr(&h.stderr)
	return cmd.ExecuteContext(context.Background())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glmin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRoot_Defaults(t *testing.T) {
	h, err := execute(t, app.Desktop())
	require.NoError(t, err)

	assert.Equal(t, 3, h.surface.Swaps)
	assert.Equal(t, "Minimal", h.surface.Config.Title)
	assert.Equal(t, 800, h.surface.Config.Width)
	assert.True(t, h.surface.Closed)
	assert.Contains(t, h.stderr.String(), "msg=shutdown")
	assert.NotContains(t, h.stderr.String(), "level=DEBUG")
}

func TestRoot_Flags(t *testing.T) {
	h, err := execute(t, app.Desktop(), "--frames", "2", "--delay", "0s", "--width", "64", "--height", "48", "--title", "square", "-v")
	require.NoError(t, err)

	assert.Equal(t, 2, h.surface.Swaps)
	assert.Equal(t, []int{64, 48}, []int{h.surface.Config.Width, h.surface.Config.Height})
	assert.Equal(t, "square", h.surface.Config.Title)
	assert.Zero(t, h.surface.Delays[0])
	assert.Contains(t, h.stderr.String(), "level=DEBUG")
}

func TestRoot_CheckedFlag(t *testing.T) {
	h := &harness{
		surface: gfxtest.NewContext(platform.ContextConfig{}),
		driver:  gfxtest.NewDriver(),
	}
	h.driver.FailOn("BindAttribLocation", gfxtest.OutOfMemory)

	err := h.execute(app.Desktop(), "--checked")

	var runtimeErr *gfx.RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	assert.Equal(t, "glBindAttribLocation(pos)", runtimeErr.Call)
	assert.Zero(t, h.surface.Swaps)
}

func TestRoot_Environment(t *testing.T) {
	t.Setenv("GLMIN_FRAMES", "4")
	t.Setenv("GLMIN_TITLE", "from-env")

	h, err := execute(t, app.Embedded())
	require.NoError(t, err)
	assert.Equal(t, 4, h.surface.Swaps)
	assert.Equal(t, "from-env", h.surface.Config.Title)
}

func TestRoot_ConfigFile(t *testing.T) {
	path := writeConfig(t, "frames: 6\ntitle: from-file\ndelay: 5ms\n")

	h, err := execute(t, app.Desktop(), "--config", path)
	require.NoError(t, err)
	assert.Equal(t, 6, h.surface.Swaps)
	assert.Equal(t, "from-file", h.surface.Config.Title)

	h, err = execute(t, app.Desktop(), "--config", path, "--frames", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, h.surface.Swaps, "flags take precedence over the config file")
}

func TestRoot_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "zero frames", args: []string{"--frames", "0"}, wantErr: "invalid options: frames must be at least 1"},
		{name: "negative delay", args: []string{"--delay=-1s"}, wantErr: "invalid options: delay must not be negative"},
		{name: "bad size", args: []string{"--width=-5"}, wantErr: "invalid options: platform: invalid window size"},
		{name: "positional args", args: []string{"extra"}, wantErr: `unknown command "extra"`},
		{name: "unknown flag", args: []string{"--fps", "60"}, wantErr: "unknown flag: --fps"},
		{name: "missing config", args: []string{"--config", "/nonexistent/glmin.yaml"}, wantErr: "read config /nonexistent/glmin.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := execute(t, app.Desktop(), tt.args...)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.Zero(t, h.surface.Swaps)
		})
	}
}

func TestRoot_BindFlags(t *testing.T) {
	cmd := NewRootCommand(app.Desktop(), app.Backend{})
	for _, key := range optionKeys {
		assert.NotNil(t, cmd.Flags().Lookup(key), key)
	}

	err := bindFlags(viper.New(), cmd.Flags(), "frames", "fps")
	assert.EqualError(t, err, `cli: no flag for option "fps"`)
}
