//go:build cgo && !gles

package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/kjkrol/glmin/pkg/gfx"
)

// glDriver implements gfx.Driver and gfx.VertexArrays on desktop OpenGL
// 3.3 core.
type glDriver struct{}

// New loads the OpenGL entry points of the current context.
func New() (gfx.Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init error: %w", err)
	}
	return glDriver{}, nil
}

// Info reports the vendor strings of the current context.
func Info() string {
	return fmt.Sprintf("%s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
}

func (glDriver) CreateShader(stage gfx.Stage) gfx.Handle {
	return gfx.Handle(gl.CreateShader(shaderType(stage)))
}

func shaderType(stage gfx.Stage) uint32 {
	if stage == gfx.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (glDriver) ShaderSource(shader gfx.Handle, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(shader), 1, csources, nil)
	free()
}

func (glDriver) CompileShader(shader gfx.Handle) { gl.CompileShader(uint32(shader)) }

func (glDriver) ShaderCompileStatus(shader gfx.Handle) bool {
	var status int32
	gl.GetShaderiv(uint32(shader), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (glDriver) ShaderInfoLog(shader gfx.Handle) string {
	var logLength int32
	gl.GetShaderiv(uint32(shader), gl.INFO_LOG_LENGTH, &logLength)
	return readInfoLog(logLength, func(size int32, buf *uint8) {
		gl.GetShaderInfoLog(uint32(shader), size, nil, buf)
	})
}

func (glDriver) DeleteShader(shader gfx.Handle) { gl.DeleteShader(uint32(shader)) }

func (glDriver) CreateProgram() gfx.Handle { return gfx.Handle(gl.CreateProgram()) }

func (glDriver) AttachShader(program, shader gfx.Handle) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (glDriver) BindAttribLocation(program gfx.Handle, slot uint32, name string) {
	gl.BindAttribLocation(uint32(program), slot, gl.Str(name+"\x00"))
}

func (glDriver) LinkProgram(program gfx.Handle) { gl.LinkProgram(uint32(program)) }

func (glDriver) ProgramLinkStatus(program gfx.Handle) bool {
	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (glDriver) ProgramInfoLog(program gfx.Handle) string {
	var logLength int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLength)
	return readInfoLog(logLength, func(size int32, buf *uint8) {
		gl.GetProgramInfoLog(uint32(program), size, nil, buf)
	})
}

func (glDriver) AttribLocation(program gfx.Handle, name string) int32 {
	return gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00"))
}

func (glDriver) UseProgram(program gfx.Handle) { gl.UseProgram(uint32(program)) }

func (glDriver) DeleteProgram(program gfx.Handle) { gl.DeleteProgram(uint32(program)) }

func (glDriver) GenVertexArray() gfx.Handle {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return gfx.Handle(vao)
}

func (glDriver) BindVertexArray(array gfx.Handle) { gl.BindVertexArray(uint32(array)) }

func (glDriver) DeleteVertexArray(array gfx.Handle) {
	vao := uint32(array)
	gl.DeleteVertexArrays(1, &vao)
}

func (glDriver) GenBuffer() gfx.Handle {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return gfx.Handle(vbo)
}

func (glDriver) BindArrayBuffer(buffer gfx.Handle) { gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buffer)) }

func (glDriver) ArrayBufferData(data []float32) {
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (glDriver) DeleteBuffer(buffer gfx.Handle) {
	vbo := uint32(buffer)
	gl.DeleteBuffers(1, &vbo)
}

func (glDriver) EnableVertexAttribArray(slot uint32) { gl.EnableVertexAttribArray(slot) }

func (glDriver) VertexAttribPointer(slot uint32, size, stride int32, offset int) {
	gl.VertexAttribPointer(slot, size, gl.FLOAT, false, stride, gl.PtrOffset(offset))
}

func (glDriver) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (glDriver) Clear(mask gfx.ClearMask) {
	var bits uint32
	if mask&gfx.ClearColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gfx.ClearDepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (glDriver) DrawTriangles(first, count int32) { gl.DrawArrays(gl.TRIANGLES, first, count) }

func (glDriver) Error() uint32 { return gl.GetError() }
