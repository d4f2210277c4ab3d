//go:build cgo && !gles && !sdl

package platform

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type glfwContext struct {
	window *glfw.Window
	events []Event
}

// Open creates a GLFW window with a desktop OpenGL context made current on
// the calling thread, which stays locked until Close. GLFW must run on the
// main thread.
func Open(conf ContextConfig) (Context, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if err := conf.supports("GLFW", OpenGL); err != nil {
		return nil, err
	}
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("glfw.Init error: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.DoubleBuffer, boolHint(conf.DoubleBuffer))
	glfw.WindowHint(glfw.ContextVersionMajor, conf.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, conf.Minor)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	if conf.Profile() == ProfileCore {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	window, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("glfw.CreateWindow error: %w", err)
	}
	window.MakeContextCurrent()

	c := &glfwContext{window: window}
	window.SetCloseCallback(func(*glfw.Window) {
		c.events = append(c.events, DestroyNotify{})
	})
	window.SetRefreshCallback(func(*glfw.Window) {
		c.events = append(c.events, Expose{})
	})
	return c, nil
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

func (c *glfwContext) SwapBuffers() {
	c.window.SwapBuffers()
}

func (c *glfwContext) PollEvents() []Event {
	glfw.PollEvents()
	events := c.events
	c.events = nil
	return events
}

func (c *glfwContext) Delay(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func (c *glfwContext) Size() (int, int) {
	return c.window.GetSize()
}

func (c *glfwContext) Close() {
	if c.window == nil {
		return
	}
	c.window.Destroy()
	glfw.Terminate()
	c.window = nil
	runtime.UnlockOSThread()
}
