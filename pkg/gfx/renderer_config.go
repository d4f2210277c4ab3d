package gfx

// RendererConfig describes the pipeline and geometry drawn every frame.
// Slot must match the binding of the position input in Pipeline.Bindings.
type RendererConfig struct {
	Pipeline   PipelineConfig
	Mesh       Mesh
	Slot       uint32
	ClearColor [4]float32
	ClearMask  ClearMask
	Validation Validation
}
