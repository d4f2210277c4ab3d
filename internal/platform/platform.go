package platform

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnavailable = errors.New("platform: no windowing backend in this build")

type API uint8

const (
	OpenGL API = iota
	OpenGLES
)

func (a API) String() string {
	if a == OpenGLES {
		return "OpenGL ES"
	}
	return "OpenGL"
}

// ContextConfig describes the window and the graphics context requested
// from the backend.
type ContextConfig struct {
	Title        string
	Width        int
	Height       int
	API          API
	Major        int
	Minor        int
	CoreProfile  bool
	DoubleBuffer bool
}

func (c ContextConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("platform: invalid window size %dx%d", c.Width, c.Height)
	}
	if c.Major <= 0 || c.Minor < 0 {
		return fmt.Errorf("platform: invalid context version %d.%d", c.Major, c.Minor)
	}
	if c.API == OpenGLES && c.CoreProfile {
		return errors.New("platform: core profile does not apply to OpenGL ES")
	}
	return nil
}

// Profile is the kind of context a backend asks the driver for.
type Profile uint8

const (
	ProfileES Profile = iota
	ProfileCompatibility
	ProfileCore
)

func (c ContextConfig) Profile() Profile {
	switch {
	case c.API == OpenGLES:
		return ProfileES
	case c.CoreProfile:
		return ProfileCore
	default:
		return ProfileCompatibility
	}
}

// supports rejects a config whose API the named backend cannot open.
func (c ContextConfig) supports(backend string, apis ...API) error {
	for _, api := range apis {
		if c.API == api {
			return nil
		}
	}
	return fmt.Errorf("platform: %s backend cannot open an %s context", backend, c.API)
}

// Context is a window with a current graphics context. All methods must be
// called from the thread that opened it.
type Context interface {
	SwapBuffers()
	// PollEvents drains the events received since the previous call.
	PollEvents() []Event
	Delay(d time.Duration)
	Size() (int, int)
	Close()
}

// Opener creates a Context; Open is the build's backend.
type Opener func(conf ContextConfig) (Context, error)
