//go:build !cgo

package renderer

import (
	"errors"

	"github.com/kjkrol/glmin/pkg/gfx"
)

var errNoCgo = errors.New("renderer: OpenGL bindings require cgo")

func New() (gfx.Driver, error) { return nil, errNoCgo }

func Info() string { return "unavailable" }
