package gfx

// MeshRenderer clears the target and draws one mesh with one program.
type MeshRenderer struct {
	driver  Driver
	check   *Checker
	conf    RendererConfig
	array   Handle
	program *Program
	vb      *VertexBuffer
}

// NewMeshRenderer binds a vertex array, builds and binds the program, then
// uploads the mesh. Nothing is left allocated when it fails.
func NewMeshRenderer(driver Driver, conf RendererConfig) (*MeshRenderer, error) {
	r := &MeshRenderer{
		driver: driver,
		check:  NewChecker(driver, conf.Validation),
		conf:   conf,
	}

	var err error
	if r.array, err = BindVertexArray(driver, r.check); err != nil {
		r.Close()
		return nil, err
	}
	if r.program, err = NewBootstrap(driver, r.check).Build(conf.Pipeline); err != nil {
		r.Close()
		return nil, err
	}
	if err = r.program.Use(driver, r.check); err != nil {
		r.Close()
		return nil, err
	}
	if r.vb, err = UploadMesh(driver, r.check, conf.Mesh, conf.Slot); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *MeshRenderer) Program() *Program { return r.program }

func (r *MeshRenderer) Checker() *Checker { return r.check }

func (r *MeshRenderer) Render() error {
	c := r.conf.ClearColor
	r.check.Call("glClearColor", func() { r.driver.ClearColor(c[0], c[1], c[2], c[3]) })
	r.check.Call("glClear", func() { r.driver.Clear(r.conf.ClearMask) })
	r.check.Call("glDrawArrays(GL_TRIANGLES)", func() { r.driver.DrawTriangles(0, r.vb.Count) })
	return r.check.Err()
}

// Close releases in reverse order of acquisition: buffer, program, array.
func (r *MeshRenderer) Close() {
	if r.vb != nil {
		r.vb.Release(r.driver)
		r.vb = nil
	}
	if r.program != nil {
		r.program.Release(r.driver)
		r.program = nil
	}
	ReleaseVertexArray(r.driver, r.array)
	r.array = 0
}
