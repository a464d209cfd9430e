// Package headless provides an in-memory graphics.Context. Frames are kept
// as images and the display refresh is driven by calling Step.
package headless

import (
	"errors"
	"image"
	"sync"

	"github.com/richinsley/goglass/graphics"
)

// RefreshInterval is the simulated display period.
const RefreshInterval = 1.0 / 60

var errNotSetUp = errors.New("headless: present before setup")

func init() {
	graphics.Register("headless", 10, func(opts graphics.Options) (graphics.Context, error) {
		w, h := opts.Width, opts.Height
		if w <= 0 || h <= 0 {
			return nil, errors.New("headless: invalid size")
		}
		return New(w, h), nil
	}, nil)
}

// Context is a surface with no window.
type Context struct {
	mu       sync.Mutex
	width    int
	height   int
	frame    *image.NRGBA
	queue    []func()
	clock    float64
	ready    bool
	setupErr error
	handler  graphics.InputHandler

	setups, releases, presents int
	premultiplied              bool
}

func New(width, height int) *Context {
	return &Context{width: width, height: height}
}

func (c *Context) MakeCurrent() {}

func (c *Context) Setup() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setupErr != nil {
		return c.setupErr
	}
	c.ready = true
	c.setups++
	return nil
}

// FailSetup makes subsequent Setup calls return err. nil clears it.
func (c *Context) FailSetup(err error) {
	c.mu.Lock()
	c.setupErr = err
	c.mu.Unlock()
}

func (c *Context) GetFramebufferSize() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *Context) Present(frame *image.NRGBA, premultiplied bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return errNotSetUp
	}
	if c.frame == nil || c.frame.Rect != frame.Rect {
		c.frame = image.NewNRGBA(frame.Rect)
	}
	copy(c.frame.Pix, frame.Pix)
	c.premultiplied = premultiplied
	c.presents++
	return nil
}

func (c *Context) RequestFrame(fn func()) {
	c.mu.Lock()
	c.queue = append(c.queue, fn)
	c.mu.Unlock()
}

// Step simulates one display refresh: the clock advances and every callback
// queued before the call runs. It returns the number of callbacks run.
func (c *Context) Step() int {
	c.mu.Lock()
	queue := c.queue
	c.queue = nil
	c.clock += RefreshInterval
	c.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
	return len(queue)
}

// Pending returns the number of callbacks waiting for the next Step.
func (c *Context) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

func (c *Context) Time() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clock
}

func (c *Context) Release() {
	c.mu.Lock()
	c.ready = false
	c.releases++
	c.mu.Unlock()
}

func (c *Context) Invalidate() {
	c.mu.Lock()
	c.ready = false
	c.mu.Unlock()
}

func (c *Context) Shutdown() {
	c.mu.Lock()
	c.queue = nil
	c.mu.Unlock()
}

func (c *Context) SetInputHandler(h graphics.InputHandler) {
	c.mu.Lock()
	c.handler = h
	c.mu.Unlock()
}

func (c *Context) inputHandler() graphics.InputHandler {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler
}

// Resize changes the framebuffer size and notifies the input handler.
func (c *Context) Resize(width, height int) {
	c.mu.Lock()
	c.width, c.height = width, height
	c.mu.Unlock()
	if h := c.inputHandler(); h != nil {
		h.Resize()
	}
}

// MovePointer delivers a pointer move in normalized coordinates.
func (c *Context) MovePointer(x, y float64) {
	if h := c.inputHandler(); h != nil {
		h.PointerMove(x, y)
	}
}

// LeavePointer delivers a pointer-leave event.
func (c *Context) LeavePointer() {
	if h := c.inputHandler(); h != nil {
		h.PointerLeave()
	}
}

// Frame returns a copy of the last presented frame, or nil.
func (c *Context) Frame() *image.NRGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		return nil
	}
	out := image.NewNRGBA(c.frame.Rect)
	copy(out.Pix, c.frame.Pix)
	return out
}

// Premultiplied reports the blend mode of the last presented frame.
func (c *Context) Premultiplied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.premultiplied
}

// Presents, Setups and Releases count the calls made by the renderer.
func (c *Context) Presents() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.presents
}

func (c *Context) Setups() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setups
}

func (c *Context) Releases() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.releases
}
