//go:build cgo && (gles || sdl)

package platform

/*
#cgo pkg-config: sdl2
#include <stdlib.h>
#include <SDL2/SDL.h>

static inline SDL_Window* my_SDL_CreateGLWindow(const char* title, int w, int h) {
	return SDL_CreateWindow(title, SDL_WINDOWPOS_CENTERED, SDL_WINDOWPOS_CENTERED,
		w, h, SDL_WINDOW_OPENGL | SDL_WINDOW_SHOWN);
}
*/
import "C"

import (
	"fmt"
	"runtime"
	"time"
	"unsafe"
)

type sdlContext struct {
	window  *C.SDL_Window
	context C.SDL_GLContext
	width   int
	height  int
}

// Open creates a centered SDL window with an OpenGL or OpenGL ES context
// made current on the calling thread, which stays locked until Close. It
// serves the gles build and, with the sdl tag, the desktop build.
func Open(conf ContextConfig) (Context, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if err := conf.supports("SDL", OpenGL, OpenGLES); err != nil {
		return nil, err
	}
	runtime.LockOSThread()
	if C.SDL_Init(C.SDL_INIT_VIDEO) != 0 {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("SDL_Init error: %s", C.GoString(C.SDL_GetError()))
	}

	doubleBuffer := 0
	if conf.DoubleBuffer {
		doubleBuffer = 1
	}
	profile := C.int(C.SDL_GL_CONTEXT_PROFILE_ES)
	switch conf.Profile() {
	case ProfileCore:
		profile = C.int(C.SDL_GL_CONTEXT_PROFILE_CORE)
	case ProfileCompatibility:
		profile = C.int(C.SDL_GL_CONTEXT_PROFILE_COMPATIBILITY)
	}
	C.SDL_GL_SetAttribute(C.SDL_GL_DOUBLEBUFFER, C.int(doubleBuffer))
	C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_PROFILE_MASK, profile)
	C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_MAJOR_VERSION, C.int(conf.Major))
	C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_MINOR_VERSION, C.int(conf.Minor))

	cTitle := C.CString(conf.Title)
	defer C.free(unsafe.Pointer(cTitle))

	window := C.my_SDL_CreateGLWindow(cTitle, C.int(conf.Width), C.int(conf.Height))
	if window == nil {
		err := fmt.Errorf("SDL_CreateWindow error: %s", C.GoString(C.SDL_GetError()))
		C.SDL_Quit()
		runtime.UnlockOSThread()
		return nil, err
	}

	context := C.SDL_GL_CreateContext(window)
	if context == nil {
		err := fmt.Errorf("SDL_GL_CreateContext error: %s", C.GoString(C.SDL_GetError()))
		C.SDL_DestroyWindow(window)
		C.SDL_Quit()
		runtime.UnlockOSThread()
		return nil, err
	}

	return &sdlContext{
		window:  window,
		context: context,
		width:   conf.Width,
		height:  conf.Height,
	}, nil
}

func (c *sdlContext) SwapBuffers() {
	C.SDL_GL_SwapWindow(c.window)
}

func (c *sdlContext) PollEvents() []Event {
	var events []Event
	var e C.SDL_Event
	for C.SDL_PollEvent(&e) != 0 {
		if event := c.convert(&e); event != nil {
			events = append(events, event)
		}
	}
	return events
}

func (c *sdlContext) convert(event *C.SDL_Event) Event {
	switch *(*C.Uint32)(unsafe.Pointer(event)) {
	case C.SDL_QUIT:
		return DestroyNotify{}
	case C.SDL_WINDOWEVENT:
		windowEvent := (*C.SDL_WindowEvent)(unsafe.Pointer(event))
		switch windowEvent.event {
		case C.SDL_WINDOWEVENT_EXPOSED:
			return Expose{}
		case C.SDL_WINDOWEVENT_CLOSE:
			return DestroyNotify{}
		}
	}
	return nil
}

func (c *sdlContext) Delay(d time.Duration) {
	if d <= 0 {
		return
	}
	C.SDL_Delay(C.Uint32(d / time.Millisecond))
}

func (c *sdlContext) Size() (int, int) {
	return c.width, c.height
}

func (c *sdlContext) Close() {
	if c.window == nil {
		return
	}
	C.SDL_GL_DeleteContext(c.context)
	C.SDL_DestroyWindow(c.window)
	C.SDL_Quit()
	c.window = nil
	runtime.UnlockOSThread()
}
