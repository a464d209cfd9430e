// Package glfwcontext presents frames in a GLFW window through an OpenGL 4.1
// core context.
package glfwcontext

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/go-gl/gl/v4.1-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goglass"
	"github.com/richinsley/goglass/graphics"
)

var (
	initialized atomic.Bool
	glOnce      sync.Once
	glErr       error
)

func init() {
	graphics.Register("window", 100, func(opts graphics.Options) (graphics.Context, error) {
		return New(opts)
	}, initialized.Load)
}

var (
	_ graphics.Context     = (*Context)(nil)
	_ graphics.InputSource = (*Context)(nil)
)

// Context is a window plus the GL objects that present composited frames.
type Context struct {
	window       *glfw.Window
	keyCallbacks map[glfw.Key]func()
	handler      graphics.InputHandler

	mu    sync.Mutex
	queue []func()

	gl    presenter
	ready bool
}

// New creates a window. InitGraphics must have been called on the main
// thread.
func New(opts graphics.Options) (*Context, error) {
	if !initialized.Load() {
		return nil, fmt.Errorf("%w: glfw not initialized", graphics.ErrCapabilityUnavailable)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)
	if opts.Visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	title := opts.Title
	if title == "" {
		title = "goglass"
	}
	win, err := glfw.CreateWindow(opts.Width, opts.Height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", graphics.ErrCapabilityUnavailable, err)
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}
	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetCursorPosCallback(c.glfwCursorPosCallback)
	win.SetCursorEnterCallback(c.glfwCursorEnterCallback)
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)
	return c, nil
}

// RegisterKeyCallback registers f to run when key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) glfwCursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if c.handler == nil {
		return
	}
	winWidth, winHeight := w.GetSize()
	if winWidth <= 0 || winHeight <= 0 {
		return
	}
	c.handler.PointerMove(xpos/float64(winWidth), 1-ypos/float64(winHeight))
}

func (c *Context) glfwCursorEnterCallback(w *glfw.Window, entered bool) {
	if !entered && c.handler != nil {
		c.handler.PointerLeave()
	}
}

func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	if c.handler != nil {
		c.handler.Resize()
	}
}

func (c *Context) SetInputHandler(h graphics.InputHandler) {
	c.handler = h
}

// MakeCurrent makes the window's GL context current and loads the GL
// entry points on first use.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
	glOnce.Do(func() {
		glErr = gl.Init()
		if glErr == nil {
			goglass.Logger().Info("OpenGL initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)))
		}
	})
}

func (c *Context) Setup() error {
	c.MakeCurrent()
	if glErr != nil {
		return fmt.Errorf("%w: %w", graphics.ErrCapabilityUnavailable, glErr)
	}
	glfw.SwapInterval(1)
	if err := c.gl.setup(); err != nil {
		return err
	}
	c.ready = true
	return nil
}

func (c *Context) Present(frame *image.NRGBA, premultiplied bool) error {
	if !c.ready {
		return errors.New("glfwcontext: present before setup")
	}
	fbWidth, fbHeight := c.window.GetFramebufferSize()
	c.gl.draw(frame, premultiplied, fbWidth, fbHeight)
	c.window.SwapBuffers()
	return nil
}

// RequestFrame queues fn for the next pass of Run and wakes the event loop.
func (c *Context) RequestFrame(fn func()) {
	c.mu.Lock()
	c.queue = append(c.queue, fn)
	c.mu.Unlock()
	if initialized.Load() {
		glfw.PostEmptyEvent()
	}
}

func (c *Context) runQueued() int {
	c.mu.Lock()
	queue := c.queue
	c.queue = nil
	c.mu.Unlock()
	for _, fn := range queue {
		fn()
	}
	return len(queue)
}

// Run processes events and queued frames until the window is closed. Frame
// pacing comes from the swap interval.
func (c *Context) Run() {
	for !c.window.ShouldClose() {
		if c.runQueued() == 0 {
			glfw.WaitEvents()
		} else {
			glfw.PollEvents()
		}
	}
}

func (c *Context) Release() {
	if c.ready {
		c.gl.release()
	}
	c.ready = false
}

func (c *Context) Invalidate() {
	c.gl = presenter{}
	c.ready = false
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: %w", graphics.ErrCapabilityUnavailable, err)
	}
	initialized.Store(true)
	goglass.Logger().Info("GLFW initialized")
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	initialized.Store(false)
	glfw.Terminate()
	goglass.Logger().Info("GLFW terminated")
}
