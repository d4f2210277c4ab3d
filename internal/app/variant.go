package app

import (
	"fmt"
	"time"

	"github.com/kjkrol/glmin/internal/platform"
	"github.com/kjkrol/glmin/pkg/gfx"
)

// Slot of the position attribute in every shipped pipeline.
const positionSlot = 0

const (
	desktopVertexShader = `#version 330 core
in vec2 pos;
out vec4 v_color;
void main() {
    v_color = vec4(pos, 1.0 - pos.x, 0);
    gl_Position = vec4(pos, 0.0, 1.0);
}
`
	desktopFragmentShader = `#version 330 core
in vec4 v_color;
out vec4 o_color;
void main() {
    o_color = v_color;
}
`
	// The Broadcom driver only compiles these when the program is first used.
	embeddedVertexShader = `attribute vec4 pos;
void main(void) {
    gl_Position = pos;
}
`
	embeddedFragmentShader = `void main() {
    gl_FragColor = vec4(1, 0, 0, 1);
}
`
)

// Variant is a complete description of one program run.
type Variant struct {
	Name       string
	Context    platform.ContextConfig
	Renderer   gfx.RendererConfig
	Frames     int
	FrameDelay time.Duration
}

func pipeline(vertex, fragment string) gfx.PipelineConfig {
	return gfx.PipelineConfig{
		Vertex:   gfx.ShaderSource{Stage: gfx.VertexStage, Text: vertex},
		Fragment: gfx.ShaderSource{Stage: gfx.FragmentStage, Text: fragment},
		Bindings: []gfx.AttributeBinding{{Name: "pos", Slot: positionSlot}},
	}
}

// Desktop is OpenGL 3.3 core, three frames, status checks only.
func Desktop() Variant {
	return Variant{
		Name: "desktop",
		Context: platform.ContextConfig{
			Title:        "Minimal",
			Width:        800,
			Height:       600,
			API:          platform.OpenGL,
			Major:        3,
			Minor:        3,
			CoreProfile:  true,
			DoubleBuffer: true,
		},
		Renderer: gfx.RendererConfig{
			Pipeline:   pipeline(desktopVertexShader, desktopFragmentShader),
			Mesh:       gfx.UnitSquare(),
			Slot:       positionSlot,
			ClearColor: [4]float32{0, 1, 0, 1},
			ClearMask:  gfx.ClearColorBuffer,
			Validation: gfx.SpotCheck,
		},
		Frames:     3,
		FrameDelay: 100 * time.Millisecond,
	}
}

// Embedded is OpenGL ES 2.0, five frames, every call checked.
func Embedded() Variant {
	return Variant{
		Name: "embedded",
		Context: platform.ContextConfig{
			Title:        "Minimal",
			Width:        800,
			Height:       600,
			API:          platform.OpenGLES,
			Major:        2,
			Minor:        0,
			DoubleBuffer: true,
		},
		Renderer: gfx.RendererConfig{
			Pipeline:   pipeline(embeddedVertexShader, embeddedFragmentShader),
			Mesh:       gfx.UnitSquare(),
			Slot:       positionSlot,
			ClearColor: [4]float32{0, 1, 0, 1},
			ClearMask:  gfx.ClearColorBuffer | gfx.ClearDepthBuffer,
			Validation: gfx.CheckEveryCall,
		},
		Frames:     5,
		FrameDelay: 100 * time.Millisecond,
	}
}

// Options are the user-tunable parts of a Variant.
type Options struct {
	Frames  int           `mapstructure:"frames"`
	Delay   time.Duration `mapstructure:"delay"`
	Width   int           `mapstructure:"width"`
	Height  int           `mapstructure:"height"`
	Title   string        `mapstructure:"title"`
	Checked bool          `mapstructure:"checked"`
}

// Options returns the current settings of v.
func (v Variant) Options() Options {
	return Options{
		Frames:  v.Frames,
		Delay:   v.FrameDelay,
		Width:   v.Context.Width,
		Height:  v.Context.Height,
		Title:   v.Context.Title,
		Checked: v.Renderer.Validation == gfx.CheckEveryCall,
	}
}

// Apply returns a copy of v with o applied. Checked can only raise the
// validation level; a variant that checks every call keeps doing so.
func (v Variant) Apply(o Options) (Variant, error) {
	if o.Frames < 1 {
		return v, fmt.Errorf("frames must be at least 1, got %d", o.Frames)
	}
	if o.Delay < 0 {
		return v, fmt.Errorf("delay must not be negative, got %s", o.Delay)
	}
	v.Frames = o.Frames
	v.FrameDelay = o.Delay
	v.Context.Width = o.Width
	v.Context.Height = o.Height
	v.Context.Title = o.Title
	if o.Checked {
		v.Renderer.Validation = gfx.CheckEveryCall
	}
	if err := v.Context.Validate(); err != nil {
		return v, err
	}
	return v, nil
}
