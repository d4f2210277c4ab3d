package gfx

type Renderer interface {
	Render() error
	Close()
}

type RendererFactory func(driver Driver) (Renderer, error)

func NewRendererFactory(conf RendererConfig) RendererFactory {
	return func(driver Driver) (Renderer, error) {
		return NewMeshRenderer(driver, conf)
	}
}
