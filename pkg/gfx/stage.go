package gfx

import "fmt"

// Stage identifies one unit of the graphics pipeline.
type Stage uint8

const (
	VertexStage Stage = iota + 1
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

func (s Stage) valid() bool {
	return s == VertexStage || s == FragmentStage
}

// ShaderSource is the program text for a single stage.
type ShaderSource struct {
	Stage Stage
	Text  string
}

// AttributeBinding ties a named vertex input to the slot used to feed it.
type AttributeBinding struct {
	Name string
	Slot uint32
}

// Handle is an opaque driver object name.
type Handle uint32

type CompiledShader struct {
	Stage    Stage
	Handle   Handle
	Compiled bool
}
