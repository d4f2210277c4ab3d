package gfx

// ClearMask selects the buffers reset by Driver.Clear.
type ClearMask uint8

const (
	ClearColorBuffer ClearMask = 1 << iota
	ClearDepthBuffer
)

// Driver is the subset of the OpenGL / OpenGL ES API used to build a
// pipeline and draw a mesh. Implementations must be called from the thread
// that owns the current context.
type Driver interface {
	CreateShader(stage Stage) Handle
	ShaderSource(shader Handle, source string)
	CompileShader(shader Handle)
	ShaderCompileStatus(shader Handle) bool
	ShaderInfoLog(shader Handle) string
	DeleteShader(shader Handle)

	CreateProgram() Handle
	AttachShader(program, shader Handle)
	BindAttribLocation(program Handle, slot uint32, name string)
	LinkProgram(program Handle)
	ProgramLinkStatus(program Handle) bool
	ProgramInfoLog(program Handle) string
	AttribLocation(program Handle, name string) int32
	UseProgram(program Handle)
	DeleteProgram(program Handle)

	GenBuffer() Handle
	BindArrayBuffer(buffer Handle)
	ArrayBufferData(data []float32)
	DeleteBuffer(buffer Handle)
	EnableVertexAttribArray(slot uint32)
	VertexAttribPointer(slot uint32, size, stride int32, offset int)

	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	DrawTriangles(first, count int32)

	// Error returns and resets the oldest pending error code, 0 if none.
	Error() uint32
}

// VertexArrays is implemented by drivers whose context requires a bound
// vertex array object before vertex attributes can be wired (core profiles).
type VertexArrays interface {
	GenVertexArray() Handle
	BindVertexArray(array Handle)
	DeleteVertexArray(array Handle)
}
