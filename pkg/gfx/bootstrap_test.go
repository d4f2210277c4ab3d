package gfx_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/glmin/pkg/gfx"
	"github.com/kjkrol/glmin/pkg/gfx/gfxtest"
)

const (
	vertexSource = `#version 330 core
in vec2 pos;
out vec4 v_color;
void main() {
    v_color = vec4(pos, 1.0 - pos.x, 0);
    gl_Position = vec4(pos, 0.0, 1.0);
}
`
	fragmentSource = `#version 330 core
in vec4 v_color;
out vec4 o_color;
void main() {
    o_color = v_color;
}
`
	// missing semicolon after the assignment
	brokenFragmentSource = `#version 330 core
in vec4 v_color;
out vec4 o_color;
void main() {
    o_color = v_color
}
`
	// declares an extra input ahead of pos, so pos would land in slot 1
	// unless it is bound explicitly
	twoInputVertexSource = `#version 330 core
in vec2 offset;
in vec2 pos;
out vec4 v_color;
void main() {
    v_color = vec4(pos, 0, 1);
    gl_Position = vec4(pos + offset, 0.0, 1.0);
}
`
	unmatchedFragmentSource = `#version 330 core
in vec4 v_missing;
out vec4 o_color;
void main() {
    o_color = v_missing;
}
`
)

func pipelineConf(vertex, fragment string) gfx.PipelineConfig {
	return gfx.PipelineConfig{
		Vertex:   gfx.ShaderSource{Stage: gfx.VertexStage, Text: vertex},
		Fragment: gfx.ShaderSource{Stage: gfx.FragmentStage, Text: fragment},
		Bindings: []gfx.AttributeBinding{{Name: "pos", Slot: 0}},
	}
}

var validations = []gfx.Validation{gfx.SpotCheck, gfx.CheckEveryCall}

func TestBootstrap_BuildValidPair(t *testing.T) {
	t.Parallel()

	for _, validation := range validations {
		t.Run(validation.String(), func(t *testing.T) {
			t.Parallel()
			d := gfxtest.NewDriver()
			check := gfx.NewChecker(d, validation)

			p, err := gfx.NewBootstrap(d, check).Build(pipelineConf(vertexSource, fragmentSource))
			require.NoError(t, err)
			assert.True(t, p.Usable())
			assert.Equal(t, gfx.Linked, p.State())
			require.Len(t, p.Stages, 2)
			assert.Equal(t, gfx.VertexStage, p.Stages[0].Stage)
			assert.Equal(t, gfx.FragmentStage, p.Stages[1].Stage)
			assert.Equal(t, []gfx.AttributeBinding{{Name: "pos", Slot: 0}}, p.Bindings)

			require.NoError(t, p.Use(d, check))
			assert.Equal(t, p.Handle, d.Current())
			assert.Zero(t, d.Error())
			assert.NoError(t, check.Err())
		})
	}
}

func TestBootstrap_CompileStage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      gfx.ShaderSource
		wantErr  error
		wantLog  string
		noDriver bool
	}{
		{
			name: "valid vertex",
			src:  gfx.ShaderSource{Stage: gfx.VertexStage, Text: vertexSource},
		},
		{
			name:    "missing semicolon",
			src:     gfx.ShaderSource{Stage: gfx.FragmentStage, Text: brokenFragmentSource},
			wantErr: gfx.ErrCompile,
			wantLog: "expecting ';'",
		},
		{
			name:    "no main",
			src:     gfx.ShaderSource{Stage: gfx.VertexStage, Text: "in vec2 pos;\n"},
			wantErr: gfx.ErrCompile,
			wantLog: "'main'",
		},
		{
			name:     "empty source",
			src:      gfx.ShaderSource{Stage: gfx.VertexStage, Text: " \n"},
			wantErr:  gfx.ErrInvalidSource,
			noDriver: true,
		},
		{
			name:     "unknown stage",
			src:      gfx.ShaderSource{Stage: gfx.Stage(9), Text: vertexSource},
			wantErr:  gfx.ErrInvalidSource,
			noDriver: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := gfxtest.NewDriver()
			b := gfx.NewBootstrap(d, gfx.NewChecker(d, gfx.CheckEveryCall))

			shader, err := b.CompileStage(tt.src)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, shader.Compiled)
				assert.Equal(t, tt.src.Stage, shader.Stage)
				assert.NotZero(t, shader.Handle)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, shader)
			var setupErr *gfx.SetupError
			require.ErrorAs(t, err, &setupErr)
			assert.Equal(t, "compile", setupErr.Op)
			assert.Contains(t, setupErr.Log, tt.wantLog)
			assert.Zero(t, d.Live(), "failed shader must be deleted")
			if tt.noDriver {
				assert.Empty(t, d.Calls)
			}
		})
	}
}

func TestBootstrap_BindingPrecedesLink(t *testing.T) {
	t.Parallel()

	t.Run("bound before link", func(t *testing.T) {
		t.Parallel()
		d := gfxtest.NewDriver()
		p, err := gfx.NewBootstrap(d, gfx.NewChecker(d, gfx.CheckEveryCall)).
			Build(pipelineConf(twoInputVertexSource, fragmentSource))
		require.NoError(t, err)
		assert.Equal(t, int32(0), d.AttribLocation(p.Handle, "pos"))
		assert.Equal(t, int32(1), d.AttribLocation(p.Handle, "offset"))
		assert.Less(t, indexOf(d.Calls, "BindAttribLocation"), indexOf(d.Calls, "LinkProgram"))
	})

	t.Run("bound after link has no effect", func(t *testing.T) {
		t.Parallel()
		d := gfxtest.NewDriver()
		conf := pipelineConf(twoInputVertexSource, fragmentSource)
		conf.Bindings = nil
		p, err := gfx.NewBootstrap(d, gfx.NewChecker(d, gfx.CheckEveryCall)).Build(conf)
		require.NoError(t, err)

		d.BindAttribLocation(p.Handle, 0, "pos")
		assert.Equal(t, int32(1), d.AttribLocation(p.Handle, "pos"))
	})
}

func indexOf(calls []string, call string) int {
	for i, c := range calls {
		if c == call {
			return i
		}
	}
	return -1
}

func TestBootstrap_BuildTwiceIsIndependent(t *testing.T) {
	t.Parallel()

	d := gfxtest.NewDriver()
	check := gfx.NewChecker(d, gfx.CheckEveryCall)
	b := gfx.NewBootstrap(d, check)
	conf := pipelineConf(vertexSource, fragmentSource)

	first, err := b.Build(conf)
	require.NoError(t, err)
	second, err := b.Build(conf)
	require.NoError(t, err)

	assert.NotEqual(t, first.Handle, second.Handle)
	assert.NotEqual(t, first.Stages[0].Handle, second.Stages[0].Handle)
	assert.True(t, first.Usable())
	assert.True(t, second.Usable())

	first.Release(d)
	assert.False(t, first.Usable())
	require.NoError(t, second.Use(d, check))
	assert.Equal(t, second.Handle, d.Current())
}

func TestBootstrap_LinkFailure(t *testing.T) {
	t.Parallel()

	for _, validation := range validations {
		t.Run(validation.String(), func(t *testing.T) {
			t.Parallel()
			d := gfxtest.NewDriver()
			p, err := gfx.NewBootstrap(d, gfx.NewChecker(d, validation)).
				Build(pipelineConf(vertexSource, unmatchedFragmentSource))
			require.ErrorIs(t, err, gfx.ErrLink)
			assert.Nil(t, p)
			var setupErr *gfx.SetupError
			require.ErrorAs(t, err, &setupErr)
			assert.Contains(t, setupErr.Log, "v_missing")
			assert.Zero(t, d.Live())
			assert.False(t, d.Called("UseProgram"))
		})
	}
}

func TestBootstrap_LinkProgramRejectsBadInput(t *testing.T) {
	t.Parallel()

	d := gfxtest.NewDriver()
	b := gfx.NewBootstrap(d, gfx.NewChecker(d, gfx.CheckEveryCall))
	vs, err := b.CompileStage(gfx.ShaderSource{Stage: gfx.VertexStage, Text: vertexSource})
	require.NoError(t, err)
	fs, err := b.CompileStage(gfx.ShaderSource{Stage: gfx.FragmentStage, Text: fragmentSource})
	require.NoError(t, err)

	tests := []struct {
		name     string
		vs, fs   *gfx.CompiledShader
		bindings []gfx.AttributeBinding
		wantErr  error
	}{
		{name: "stages swapped", vs: fs, fs: vs, wantErr: gfx.ErrCompile},
		{name: "missing fragment", vs: vs, wantErr: gfx.ErrCompile},
		{name: "uncompiled stage", vs: &gfx.CompiledShader{Stage: gfx.VertexStage}, fs: fs, wantErr: gfx.ErrCompile},
		{name: "duplicate slot", vs: vs, fs: fs, bindings: []gfx.AttributeBinding{{Name: "pos", Slot: 0}, {Name: "offset", Slot: 0}}, wantErr: gfx.ErrInvalidBinding},
		{name: "duplicate name", vs: vs, fs: fs, bindings: []gfx.AttributeBinding{{Name: "pos", Slot: 0}, {Name: "pos", Slot: 1}}, wantErr: gfx.ErrInvalidBinding},
		{name: "empty name", vs: vs, fs: fs, bindings: []gfx.AttributeBinding{{Name: "", Slot: 0}}, wantErr: gfx.ErrInvalidBinding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := len(d.Calls)
			p, err := b.LinkProgram(tt.vs, tt.fs, tt.bindings)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, p)
			assert.Len(t, d.Calls, calls, "rejected before touching the driver")
		})
	}

	p, err := b.LinkProgram(vs, fs, []gfx.AttributeBinding{{Name: "pos", Slot: 0}})
	require.NoError(t, err)
	assert.True(t, p.Usable())
}

func TestBootstrap_DeferredCompileCaughtAtUse(t *testing.T) {
	t.Parallel()

	d := gfxtest.NewDriver()
	d.DeferCompile = true
	check := gfx.NewChecker(d, gfx.CheckEveryCall)

	p, err := gfx.NewBootstrap(d, check).Build(pipelineConf(vertexSource, brokenFragmentSource))
	require.NoError(t, err, "the driver reports success until first use")

	err = p.Use(d, check)
	var runtimeErr *gfx.RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	assert.Equal(t, "glUseProgram", runtimeErr.Call)
	assert.Equal(t, gfxtest.InvalidOperation, runtimeErr.Code)
	assert.Zero(t, d.Current())
}

func TestBootstrap_CheckedCallStopsSequence(t *testing.T) {
	t.Parallel()

	d := gfxtest.NewDriver()
	d.FailOn("AttachShader", gfxtest.OutOfMemory)

	p, err := gfx.NewBootstrap(d, gfx.NewChecker(d, gfx.CheckEveryCall)).Build(pipelineConf(vertexSource, fragmentSource))
	assert.Nil(t, p)

	var runtimeErr *gfx.RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	assert.Equal(t, "glAttachShader(vertex)", runtimeErr.Call)
	assert.Equal(t, gfxtest.OutOfMemory, runtimeErr.Code)
	assert.Equal(t, "bootstrap.go", filepath.Base(runtimeErr.File))
	assert.Positive(t, runtimeErr.Line)

	assert.Equal(t, 1, d.Count("AttachShader"))
	assert.False(t, d.Called("BindAttribLocation"))
	assert.False(t, d.Called("LinkProgram"))
	assert.Zero(t, d.Live())
	assert.False(t, errors.Is(err, gfx.ErrLink))
}

func TestBootstrap_SpotCheckIgnoresErrorState(t *testing.T) {
	t.Parallel()

	d := gfxtest.NewDriver()
	d.FailOn("AttachShader", gfxtest.OutOfMemory)

	p, err := gfx.NewBootstrap(d, gfx.NewChecker(d, gfx.SpotCheck)).Build(pipelineConf(vertexSource, fragmentSource))
	require.NoError(t, err)
	assert.True(t, p.Usable())
	assert.Equal(t, gfxtest.OutOfMemory, d.Error(), "error stays pending in the driver")
}
