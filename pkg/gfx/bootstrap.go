package gfx

import (
	"fmt"
	"slices"
	"strings"
)

// PipelineConfig is everything needed to build one program.
type PipelineConfig struct {
	Vertex   ShaderSource
	Fragment ShaderSource
	Bindings []AttributeBinding
}

// Bootstrap turns shader sources into a linked program. Every driver call
// goes through the checker, so the validation policy is applied uniformly.
type Bootstrap struct {
	driver Driver
	check  *Checker
}

func NewBootstrap(driver Driver, check *Checker) *Bootstrap {
	return &Bootstrap{driver: driver, check: check}
}

// Build compiles both stages and links them. On failure everything created
// so far is released and no program is returned.
func (b *Bootstrap) Build(conf PipelineConfig) (*Program, error) {
	p := &Program{}
	p.advance(StagesCompiling)

	vs, err := b.CompileStage(conf.Vertex)
	if err != nil {
		p.advance(Failed)
		return nil, err
	}
	fs, err := b.CompileStage(conf.Fragment)
	if err != nil {
		b.driver.DeleteShader(vs.Handle)
		p.advance(Failed)
		return nil, err
	}
	p.advance(StagesCompiled)

	if err := b.link(p, vs, fs, conf.Bindings); err != nil {
		return nil, err
	}
	return p, nil
}

// CompileStage compiles a single stage. A false compile status is reported
// as a SetupError carrying the driver's info log.
func (b *Bootstrap) CompileStage(src ShaderSource) (*CompiledShader, error) {
	if !src.Stage.valid() {
		return nil, &SetupError{Op: "compile", Stage: src.Stage, Err: fmt.Errorf("%w: unknown stage", ErrInvalidSource)}
	}
	if strings.TrimSpace(src.Text) == "" {
		return nil, &SetupError{Op: "compile", Stage: src.Stage, Err: fmt.Errorf("%w: empty source", ErrInvalidSource)}
	}
	if err := b.check.Err(); err != nil {
		return nil, err
	}

	var shader Handle
	var compiled bool
	b.check.Call("glCreateShader", func() { shader = b.driver.CreateShader(src.Stage) })
	b.check.Call("glShaderSource", func() { b.driver.ShaderSource(shader, src.Text) })
	b.check.Call("glCompileShader", func() { b.driver.CompileShader(shader) })
	b.check.Call("glGetShaderiv(GL_COMPILE_STATUS)", func() { compiled = b.driver.ShaderCompileStatus(shader) })
	if err := b.check.Err(); err != nil {
		if shader != 0 {
			b.driver.DeleteShader(shader)
		}
		return nil, err
	}

	if !compiled {
		var log string
		b.check.Call("glGetShaderInfoLog", func() { log = b.driver.ShaderInfoLog(shader) })
		b.driver.DeleteShader(shader)
		return nil, b.check.Fail(&SetupError{Op: "compile", Stage: src.Stage, Log: log, Err: ErrCompile})
	}
	return &CompiledShader{Stage: src.Stage, Handle: shader, Compiled: true}, nil
}

// LinkProgram links two compiled stages. Attribute bindings are applied
// before the link step; bindings issued after linking have no effect.
func (b *Bootstrap) LinkProgram(vs, fs *CompiledShader, bindings []AttributeBinding) (*Program, error) {
	p := &Program{state: StagesCompiled}
	if err := b.link(p, vs, fs, bindings); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *Bootstrap) link(p *Program, vs, fs *CompiledShader, bindings []AttributeBinding) error {
	p.advance(Linking)
	if err := validateStages(vs, fs); err != nil {
		p.advance(Failed)
		return err
	}
	if err := validateBindings(bindings); err != nil {
		p.advance(Failed)
		return err
	}
	if err := b.check.Err(); err != nil {
		p.advance(Failed)
		return err
	}

	var program Handle
	var linked bool
	b.check.Call("glCreateProgram", func() { program = b.driver.CreateProgram() })
	b.check.Call("glAttachShader(vertex)", func() { b.driver.AttachShader(program, vs.Handle) })
	b.check.Call("glAttachShader(fragment)", func() { b.driver.AttachShader(program, fs.Handle) })
	for _, binding := range bindings {
		b.check.Call("glBindAttribLocation("+binding.Name+")", func() {
			b.driver.BindAttribLocation(program, binding.Slot, binding.Name)
		})
	}
	b.check.Call("glLinkProgram", func() { b.driver.LinkProgram(program) })
	b.check.Call("glGetProgramiv(GL_LINK_STATUS)", func() { linked = b.driver.ProgramLinkStatus(program) })

	if err := b.check.Err(); err != nil {
		b.release(program, vs, fs)
		p.advance(Failed)
		return err
	}
	if !linked {
		var log string
		b.check.Call("glGetProgramInfoLog", func() { log = b.driver.ProgramInfoLog(program) })
		b.release(program, vs, fs)
		p.advance(Failed)
		return b.check.Fail(&SetupError{Op: "link", Log: log, Err: ErrLink})
	}

	// Attached shaders stay alive until the program is deleted.
	b.driver.DeleteShader(vs.Handle)
	b.driver.DeleteShader(fs.Handle)

	p.Handle = program
	p.Stages = []CompiledShader{*vs, *fs}
	p.Bindings = slices.Clone(bindings)
	p.advance(Linked)
	return nil
}

func (b *Bootstrap) release(program Handle, shaders ...*CompiledShader) {
	if program != 0 {
		b.driver.DeleteProgram(program)
	}
	for _, shader := range shaders {
		b.driver.DeleteShader(shader.Handle)
	}
}

func validateStages(vs, fs *CompiledShader) error {
	if vs == nil || !vs.Compiled || vs.Stage != VertexStage {
		return &SetupError{Op: "link", Stage: VertexStage, Err: ErrCompile}
	}
	if fs == nil || !fs.Compiled || fs.Stage != FragmentStage {
		return &SetupError{Op: "link", Stage: FragmentStage, Err: ErrCompile}
	}
	return nil
}

func validateBindings(bindings []AttributeBinding) error {
	names := make(map[string]struct{}, len(bindings))
	slots := make(map[uint32]string, len(bindings))
	for _, binding := range bindings {
		if binding.Name == "" {
			return &SetupError{Op: "link", Err: fmt.Errorf("%w: empty attribute name", ErrInvalidBinding)}
		}
		if _, ok := names[binding.Name]; ok {
			return &SetupError{Op: "link", Err: fmt.Errorf("%w: %q bound twice", ErrInvalidBinding, binding.Name)}
		}
		if other, ok := slots[binding.Slot]; ok {
			return &SetupError{Op: "link", Err: fmt.Errorf("%w: slot %d used by %q and %q", ErrInvalidBinding, binding.Slot, other, binding.Name)}
		}
		names[binding.Name] = struct{}{}
		slots[binding.Slot] = binding.Name
	}
	return nil
}
