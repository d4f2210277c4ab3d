//go:build cgo && gles

package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/kjkrol/glmin/pkg/gfx"
)

// glesDriver implements gfx.Driver on OpenGL ES 2.0, which has no vertex
// array objects.
type glesDriver struct{}

// New loads the OpenGL ES entry points of the current context.
func New() (gfx.Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gles2.Init error: %w", err)
	}
	return glesDriver{}, nil
}

// Info reports the vendor strings of the current context.
func Info() string {
	return fmt.Sprintf("%s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
}

func (glesDriver) CreateShader(stage gfx.Stage) gfx.Handle {
	return gfx.Handle(gl.CreateShader(shaderType(stage)))
}

func shaderType(stage gfx.Stage) uint32 {
	if stage == gfx.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (glesDriver) ShaderSource(shader gfx.Handle, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(shader), 1, csources, nil)
	free()
}

func (glesDriver) CompileShader(shader gfx.Handle) { gl.CompileShader(uint32(shader)) }

func (glesDriver) ShaderCompileStatus(shader gfx.Handle) bool {
	var status int32
	gl.GetShaderiv(uint32(shader), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (glesDriver) ShaderInfoLog(shader gfx.Handle) string {
	var logLength int32
	gl.GetShaderiv(uint32(shader), gl.INFO_LOG_LENGTH, &logLength)
	return readInfoLog(logLength, func(size int32, buf *uint8) {
		gl.GetShaderInfoLog(uint32(shader), size, nil, buf)
	})
}

func (glesDriver) DeleteShader(shader gfx.Handle) { gl.DeleteShader(uint32(shader)) }

func (glesDriver) CreateProgram() gfx.Handle { return gfx.Handle(gl.CreateProgram()) }

func (glesDriver) AttachShader(program, shader gfx.Handle) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (glesDriver) BindAttribLocation(program gfx.Handle, slot uint32, name string) {
	gl.BindAttribLocation(uint32(program), slot, gl.Str(name+"\x00"))
}

func (glesDriver) LinkProgram(program gfx.Handle) { gl.LinkProgram(uint32(program)) }

func (glesDriver) ProgramLinkStatus(program gfx.Handle) bool {
	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (glesDriver) ProgramInfoLog(program gfx.Handle) string {
	var logLength int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLength)
	return readInfoLog(logLength, func(size int32, buf *uint8) {
		gl.GetProgramInfoLog(uint32(program), size, nil, buf)
	})
}

func (glesDriver) AttribLocation(program gfx.Handle, name string) int32 {
	return gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00"))
}

func (glesDriver) UseProgram(program gfx.Handle) { gl.UseProgram(uint32(program)) }

func (glesDriver) DeleteProgram(program gfx.Handle) { gl.DeleteProgram(uint32(program)) }

func (glesDriver) GenBuffer() gfx.Handle {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return gfx.Handle(vbo)
}

func (glesDriver) BindArrayBuffer(buffer gfx.Handle) { gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buffer)) }

func (glesDriver) ArrayBufferData(data []float32) {
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (glesDriver) DeleteBuffer(buffer gfx.Handle) {
	vbo := uint32(buffer)
	gl.DeleteBuffers(1, &vbo)
}

func (glesDriver) EnableVertexAttribArray(slot uint32) { gl.EnableVertexAttribArray(slot) }

func (glesDriver) VertexAttribPointer(slot uint32, size, stride int32, offset int) {
	gl.VertexAttribPointer(slot, size, gl.FLOAT, false, stride, gl.PtrOffset(offset))
}

func (glesDriver) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (glesDriver) Clear(mask gfx.ClearMask) {
	var bits uint32
	if mask&gfx.ClearColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gfx.ClearDepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (glesDriver) DrawTriangles(first, count int32) { gl.DrawArrays(gl.TRIANGLES, first, count) }

func (glesDriver) Error() uint32 { return gl.GetError() }
