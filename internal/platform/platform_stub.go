//go:build !cgo

package platform

func Open(conf ContextConfig) (Context, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return nil, ErrUnavailable
}
