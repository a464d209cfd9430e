package graphics

import "image"

// Context is a drawable surface the renderer presents composited frames to.
// All methods except RequestFrame must be called from the goroutine that
// owns the surface.
type Context interface {
	MakeCurrent()
	// Setup allocates the drawing resources: the present program, the
	// full-screen quad and the frame texture. It is called again after a
	// context loss.
	Setup() error
	GetFramebufferSize() (int, int)
	// Present draws frame over the whole surface. premultiplied selects
	// the blend mode used for the frame's alpha.
	Present(frame *image.NRGBA, premultiplied bool) error
	// RequestFrame queues fn to run once on the next display refresh. It
	// is safe to call from any goroutine.
	RequestFrame(fn func())
	Time() float64
	// Release frees the resources acquired by Setup.
	Release()
	// Invalidate forgets the resources acquired by Setup without freeing
	// them; the host has already discarded them.
	Invalidate()
	Shutdown()
}

// InputHandler receives pointer and resize events from a surface. Pointer
// coordinates are normalized with y pointing up.
type InputHandler interface {
	PointerMove(x, y float64)
	PointerLeave()
	Resize()
}

// InputSource is implemented by surfaces that deliver input events.
type InputSource interface {
	SetInputHandler(h InputHandler)
}
