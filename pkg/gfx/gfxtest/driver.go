// Package gfxtest provides in-memory doubles for gfx.Driver and
// platform.Context so pipelines can be exercised without a GPU.
package gfxtest

import (
	"slices"

	"github.com/kjkrol/glmin/pkg/gfx"
)

// OpenGL error codes raised by Driver.
const (
	InvalidEnum      uint32 = 0x0500
	InvalidValue     uint32 = 0x0501
	InvalidOperation uint32 = 0x0502
	OutOfMemory      uint32 = 0x0505
)

type shaderObject struct {
	stage    gfx.Stage
	source   string
	compiled bool
	syntax   error
	deleted  bool
	attached int
}

type programObject struct {
	shaders   []gfx.Handle
	bindings  map[string]uint32
	locations map[string]int32
	linked    bool
	log       string
}

// Driver records every call and emulates enough of the OpenGL object model
// to compile, link and draw. It implements gfx.Driver and gfx.VertexArrays.
type Driver struct {
	// DeferCompile reports every shader as compiled and raises
	// InvalidOperation only when a program built from a broken shader is
	// first used, like some embedded drivers do.
	DeferCompile bool

	// Calls lists driver methods in invocation order, Error excluded.
	Calls []string

	Draws   int
	Clears  int
	Color   [4]float32
	Buffers map[gfx.Handle][]float32

	next     gfx.Handle
	shaders  map[gfx.Handle]*shaderObject
	programs map[gfx.Handle]*programObject
	arrays   map[gfx.Handle]bool
	enabled  map[uint32]bool
	inject   map[string]uint32
	pending  []uint32

	current     gfx.Handle
	boundBuffer gfx.Handle
	boundArray  gfx.Handle
}

func NewDriver() *Driver {
	return &Driver{
		Buffers:  make(map[gfx.Handle][]float32),
		shaders:  make(map[gfx.Handle]*shaderObject),
		programs: make(map[gfx.Handle]*programObject),
		arrays:   make(map[gfx.Handle]bool),
		enabled:  make(map[uint32]bool),
		inject:   make(map[string]uint32),
	}
}

// ES2 hides the vertex array methods of d, like an OpenGL ES 2.0 context.
func ES2(d *Driver) gfx.Driver {
	return struct{ gfx.Driver }{d}
}

// FailOn makes the next call to the named method raise code.
func (d *Driver) FailOn(call string, code uint32) {
	d.inject[call] = code
}

// Called reports whether the named method was invoked.
func (d *Driver) Called(call string) bool {
	return slices.Contains(d.Calls, call)
}

// Count reports how many times the named method was invoked.
func (d *Driver) Count(call string) int {
	n := 0
	for _, c := range d.Calls {
		if c == call {
			n++
		}
	}
	return n
}

// Live reports the number of shader, program, buffer and vertex array
// objects not yet deleted.
func (d *Driver) Live() int {
	n := len(d.programs) + len(d.Buffers) + len(d.arrays)
	for _, s := range d.shaders {
		if !s.deleted || s.attached > 0 {
			n++
		}
	}
	return n
}

func (d *Driver) Current() gfx.Handle { return d.current }

func (d *Driver) record(call string) {
	d.Calls = append(d.Calls, call)
	if code, ok := d.inject[call]; ok {
		delete(d.inject, call)
		d.raise(code)
	}
}

func (d *Driver) raise(code uint32) {
	d.pending = append(d.pending, code)
}

func (d *Driver) handle() gfx.Handle {
	d.next++
	return d.next
}

func (d *Driver) Error() uint32 {
	if len(d.pending) == 0 {
		return 0
	}
	code := d.pending[0]
	d.pending = d.pending[1:]
	return code
}

func (d *Driver) CreateShader(stage gfx.Stage) gfx.Handle {
	d.record("CreateShader")
	if stage != gfx.VertexStage && stage != gfx.FragmentStage {
		d.raise(InvalidEnum)
		return 0
	}
	h := d.handle()
	d.shaders[h] = &shaderObject{stage: stage}
	return h
}

func (d *Driver) shader(h gfx.Handle) *shaderObject {
	s, ok := d.shaders[h]
	if !ok || s.deleted {
		d.raise(InvalidValue)
		return nil
	}
	return s
}

func (d *Driver) ShaderSource(shader gfx.Handle, source string) {
	d.record("ShaderSource")
	if s := d.shader(shader); s != nil {
		s.source = source
	}
}

func (d *Driver) CompileShader(shader gfx.Handle) {
	d.record("CompileShader")
	s := d.shader(shader)
	if s == nil {
		return
	}
	s.syntax = CheckSyntax(s.source)
	s.compiled = s.syntax == nil
}

func (d *Driver) ShaderCompileStatus(shader gfx.Handle) bool {
	d.record("ShaderCompileStatus")
	s := d.shader(shader)
	if s == nil {
		return false
	}
	return s.compiled || d.DeferCompile
}

func (d *Driver) ShaderInfoLog(shader gfx.Handle) string {
	d.record("ShaderInfoLog")
	s := d.shader(shader)
	if s == nil || s.syntax == nil || d.DeferCompile {
		return ""
	}
	return s.syntax.Error() + "\n"
}

func (d *Driver) DeleteShader(shader gfx.Handle) {
	d.record("DeleteShader")
	s, ok := d.shaders[shader]
	if !ok {
		if shader != 0 {
			d.raise(InvalidValue)
		}
		return
	}
	s.deleted = true
	if s.attached == 0 {
		delete(d.shaders, shader)
	}
}

func (d *Driver) CreateProgram() gfx.Handle {
	d.record("CreateProgram")
	h := d.handle()
	d.programs[h] = &programObject{
		bindings:  make(map[string]uint32),
		locations: make(map[string]int32),
	}
	return h
}

func (d *Driver) program(h gfx.Handle) *programObject {
	p, ok := d.programs[h]
	if !ok {
		d.raise(InvalidValue)
		return nil
	}
	return p
}

func (d *Driver) AttachShader(program, shader gfx.Handle) {
	d.record("AttachShader")
	p := d.program(program)
	s := d.shader(shader)
	if p == nil || s == nil {
		return
	}
	if slices.Contains(p.shaders, shader) {
		d.raise(InvalidOperation)
		return
	}
	p.shaders = append(p.shaders, shader)
	s.attached++
}

func (d *Driver) BindAttribLocation(program gfx.Handle, slot uint32, name string) {
	d.record("BindAttribLocation")
	if p := d.program(program); p != nil {
		p.bindings[name] = slot
	}
}

func (d *Driver) LinkProgram(program gfx.Handle) {
	d.record("LinkProgram")
	p := d.program(program)
	if p == nil {
		return
	}
	p.linked, p.log = false, ""
	clear(p.locations)

	var vertex, fragment *shaderObject
	for _, h := range p.shaders {
		s := d.shaders[h]
		if !s.compiled && !d.DeferCompile {
			p.log = "error: linking with uncompiled " + s.stage.String() + " shader"
			return
		}
		switch s.stage {
		case gfx.VertexStage:
			vertex = s
		case gfx.FragmentStage:
			fragment = s
		}
	}
	if vertex == nil || fragment == nil {
		p.log = "error: program needs a vertex and a fragment shader"
		return
	}
	outputs := Outputs(vertex.source)
	for _, name := range Varyings(fragment.source) {
		if !slices.Contains(outputs, name) {
			p.log = "error: fragment input '" + name + "' is not written by the vertex shader"
			return
		}
	}

	used := make(map[int32]bool)
	var unbound []string
	for _, name := range Attributes(vertex.source) {
		if slot, ok := p.bindings[name]; ok {
			p.locations[name] = int32(slot)
			used[int32(slot)] = true
			continue
		}
		unbound = append(unbound, name)
	}
	var slot int32
	for _, name := range unbound {
		for used[slot] {
			slot++
		}
		p.locations[name] = slot
		used[slot] = true
	}
	p.linked = true
}

func (d *Driver) ProgramLinkStatus(program gfx.Handle) bool {
	d.record("ProgramLinkStatus")
	p := d.program(program)
	return p != nil && p.linked
}

func (d *Driver) ProgramInfoLog(program gfx.Handle) string {
	d.record("ProgramInfoLog")
	if p := d.program(program); p != nil {
		return p.log
	}
	return ""
}

func (d *Driver) AttribLocation(program gfx.Handle, name string) int32 {
	d.record("AttribLocation")
	p := d.program(program)
	if p == nil {
		return -1
	}
	if !p.linked {
		d.raise(InvalidOperation)
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return -1
}

func (d *Driver) UseProgram(program gfx.Handle) {
	d.record("UseProgram")
	if program == 0 {
		d.current = 0
		return
	}
	p := d.program(program)
	if p == nil {
		return
	}
	if !p.linked {
		d.raise(InvalidOperation)
		return
	}
	for _, h := range p.shaders {
		if !d.shaders[h].compiled {
			d.raise(InvalidOperation)
			return
		}
	}
	d.current = program
}

func (d *Driver) DeleteProgram(program gfx.Handle) {
	d.record("DeleteProgram")
	p := d.program(program)
	if p == nil {
		return
	}
	for _, h := range p.shaders {
		s := d.shaders[h]
		s.attached--
		if s.deleted && s.attached == 0 {
			delete(d.shaders, h)
		}
	}
	delete(d.programs, program)
	if d.current == program {
		d.current = 0
	}
}

func (d *Driver) GenVertexArray() gfx.Handle {
	d.record("GenVertexArray")
	h := d.handle()
	d.arrays[h] = true
	return h
}

func (d *Driver) BindVertexArray(array gfx.Handle) {
	d.record("BindVertexArray")
	if array != 0 && !d.arrays[array] {
		d.raise(InvalidOperation)
		return
	}
	d.boundArray = array
}

func (d *Driver) DeleteVertexArray(array gfx.Handle) {
	d.record("DeleteVertexArray")
	delete(d.arrays, array)
	if d.boundArray == array {
		d.boundArray = 0
	}
}

func (d *Driver) GenBuffer() gfx.Handle {
	d.record("GenBuffer")
	h := d.handle()
	d.Buffers[h] = nil
	return h
}

func (d *Driver) BindArrayBuffer(buffer gfx.Handle) {
	d.record("BindArrayBuffer")
	if _, ok := d.Buffers[buffer]; !ok && buffer != 0 {
		d.raise(InvalidOperation)
		return
	}
	d.boundBuffer = buffer
}

func (d *Driver) ArrayBufferData(data []float32) {
	d.record("ArrayBufferData")
	if d.boundBuffer == 0 {
		d.raise(InvalidOperation)
		return
	}
	d.Buffers[d.boundBuffer] = slices.Clone(data)
}

func (d *Driver) DeleteBuffer(buffer gfx.Handle) {
	d.record("DeleteBuffer")
	delete(d.Buffers, buffer)
	if d.boundBuffer == buffer {
		d.boundBuffer = 0
	}
}

func (d *Driver) EnableVertexAttribArray(slot uint32) {
	d.record("EnableVertexAttribArray")
	d.enabled[slot] = true
}

func (d *Driver) VertexAttribPointer(slot uint32, size, stride int32, offset int) {
	d.record("VertexAttribPointer")
	if size < 1 || size > 4 || stride < 0 || offset < 0 {
		d.raise(InvalidValue)
	}
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.record("ClearColor")
	d.Color = [4]float32{r, g, b, a}
}

func (d *Driver) Clear(mask gfx.ClearMask) {
	d.record("Clear")
	if mask == 0 || mask&^(gfx.ClearColorBuffer|gfx.ClearDepthBuffer) != 0 {
		d.raise(InvalidValue)
		return
	}
	d.Clears++
}

func (d *Driver) DrawTriangles(first, count int32) {
	d.record("DrawTriangles")
	if d.current == 0 {
		d.raise(InvalidOperation)
		return
	}
	if first < 0 || count < 0 {
		d.raise(InvalidValue)
		return
	}
	d.Draws++
}
