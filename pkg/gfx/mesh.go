package gfx

const floatsPerVertex = 2

type Vertex struct {
	X, Y float32
}

// Mesh is a flat triangle list.
type Mesh struct {
	Vertices []Vertex
}

// UnitSquare returns two triangles covering the clip-space square
// [-1, 1] x [-1, 1].
func UnitSquare() Mesh {
	return Mesh{Vertices: []Vertex{
		{-1, -1},
		{-1, +1},
		{+1, -1},

		{-1, -1},
		{+1, +1},
		{+1, -1},
	}}
}

func (m Mesh) Floats() []float32 {
	out := make([]float32, 0, len(m.Vertices)*floatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out, v.X, v.Y)
	}
	return out
}

// VertexBuffer is a mesh living in driver memory.
type VertexBuffer struct {
	Buffer Handle
	Slot   uint32
	Count  int32
}

// BindVertexArray creates and binds a vertex array object when the driver
// needs one. It must happen before any attribute is wired.
func BindVertexArray(driver Driver, check *Checker) (Handle, error) {
	arrays, ok := driver.(VertexArrays)
	if !ok {
		return 0, check.Err()
	}
	var array Handle
	check.Call("glGenVertexArrays", func() { array = arrays.GenVertexArray() })
	check.Call("glBindVertexArray", func() { arrays.BindVertexArray(array) })
	return array, check.Err()
}

// UploadMesh creates the array buffer, wires slot to two floats per vertex
// and uploads the vertices.
func UploadMesh(driver Driver, check *Checker, mesh Mesh, slot uint32) (*VertexBuffer, error) {
	vb := &VertexBuffer{Slot: slot, Count: int32(len(mesh.Vertices))}
	data := mesh.Floats()

	check.Call("glGenBuffers", func() { vb.Buffer = driver.GenBuffer() })
	check.Call("glBindBuffer(GL_ARRAY_BUFFER)", func() { driver.BindArrayBuffer(vb.Buffer) })
	check.Call("glEnableVertexAttribArray", func() { driver.EnableVertexAttribArray(slot) })
	check.Call("glVertexAttribPointer", func() {
		driver.VertexAttribPointer(slot, floatsPerVertex, floatsPerVertex*4, 0)
	})
	check.Call("glBufferData(GL_ARRAY_BUFFER)", func() { driver.ArrayBufferData(data) })
	if err := check.Err(); err != nil {
		vb.Release(driver)
		return nil, err
	}
	return vb, nil
}

func (vb *VertexBuffer) Release(driver Driver) {
	if vb == nil {
		return
	}
	if vb.Buffer != 0 {
		driver.DeleteBuffer(vb.Buffer)
		vb.Buffer = 0
	}
}

// ReleaseVertexArray deletes an array created by BindVertexArray.
func ReleaseVertexArray(driver Driver, array Handle) {
	if array == 0 {
		return
	}
	if arrays, ok := driver.(VertexArrays); ok {
		arrays.DeleteVertexArray(array)
	}
}
