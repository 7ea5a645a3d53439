//go:build !js

package window

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/kjkrol/metaball/internal/platform"
	"github.com/kjkrol/metaball/pkg/gl"
	"github.com/kjkrol/metaball/pkg/gl/backend"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

type glfwSurface struct {
	window *glfw.Window
	funcs  *backend.Functions
	events eventQueue
	start  time.Time
	closed bool

	canvasWidth  int
	canvasHeight int
}

// NewSurface opens a resizable window with an OpenGL 3.3 core context made
// current on the calling thread. Must be called from the main goroutine.
func NewSurface(conf platform.WindowConfig) (platform.Surface, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	funcs, err := backend.NewFunctions()
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, err
	}

	s := &glfwSurface{
		window: window,
		funcs:  funcs,
		events: newEventQueue(64),
		start:  time.Now(),
	}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w, h := window.GetSize()
		s.events.push(platform.Resize{Width: w, Height: h})
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		s.events.push(platform.KeyPress{Code: uint64(key), Label: glfw.GetKeyName(key, scancode)})
		if key == glfw.KeyEscape {
			w.SetShouldClose(true)
		}
	})
	window.SetCloseCallback(func(*glfw.Window) {
		s.events.push(platform.DestroyNotify{})
	})
	return s, nil
}

func (s *glfwSurface) Context() gl.Context {
	return s.funcs
}

func (s *glfwSurface) Size() (int, int) {
	return s.window.GetSize()
}

// PixelRatio is the framebuffer to window size ratio, which is what the
// backing store scales by on every platform GLFW supports.
func (s *glfwSurface) PixelRatio() float32 {
	fbWidth, _ := s.window.GetFramebufferSize()
	width, _ := s.window.GetSize()
	if width <= 0 || fbWidth <= 0 {
		return 1
	}
	return float32(fbWidth) / float32(width)
}

// SetCanvasSize only records the size: the window system owns the
// framebuffer of a desktop window.
func (s *glfwSurface) SetCanvasSize(width, height, _, _ int) {
	s.canvasWidth = width
	s.canvasHeight = height
}

func (s *glfwSurface) NextEvent() (platform.Event, bool) {
	return s.events.next()
}

func (s *glfwSurface) WaitFrame(ctx context.Context) (time.Duration, error) {
	if s.closed || s.window.ShouldClose() {
		return 0, platform.ErrClosed
	}
	glfw.PollEvents()
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.window.ShouldClose() {
		return 0, platform.ErrClosed
	}
	return time.Since(s.start), nil
}

func (s *glfwSurface) EndFrame() {
	s.window.SwapBuffers()
}

func (s *glfwSurface) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.window.Destroy()
	glfw.Terminate()
}
