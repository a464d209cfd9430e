package renderer

import (
	"image"
	"math"

	"github.com/richinsley/goglass"
	"github.com/richinsley/goglass/inputs"
	"github.com/richinsley/goglass/params"
	"github.com/richinsley/goglass/shader"
)

// StartAnimation enables the frame clock and schedules the next frame. While
// the context is lost the request is remembered and honoured on restore.
func (r *Renderer) StartAnimation() error {
	if r.state == Disposed {
		return ErrDisposed
	}
	r.store.Enqueue(params.SetAnimationEnabled(true))
	if r.state != Ready && r.state != Paused {
		return nil
	}
	r.state = Running
	r.gen++
	r.schedule(r.gen)
	return nil
}

// StopAnimation stops scheduling frames. The last frame stays presented.
func (r *Renderer) StopAnimation() error {
	if r.state == Disposed {
		return ErrDisposed
	}
	r.store.Enqueue(params.SetAnimationEnabled(false))
	if r.state == Running {
		r.state = Paused
		r.gen++
	}
	return nil
}

func (r *Renderer) schedule(gen uint64) {
	r.ctx.RequestFrame(func() { r.tick(gen) })
}

func (r *Renderer) tick(gen uint64) {
	if gen != r.gen || r.state != Running {
		return
	}
	if err := r.drawFrame(true); err != nil {
		r.fail(err)
		return
	}
	if gen == r.gen && r.state == Running {
		r.schedule(gen)
	}
}

// Render draws one frame from the current parameters without advancing the
// clock. It does nothing while the context is lost.
func (r *Renderer) Render() error {
	switch {
	case r.state == Disposed:
		return ErrDisposed
	case r.state == Errored:
		return r.err
	case !r.state.drawable():
		return nil
	}
	if err := r.drawFrame(false); err != nil {
		return r.fail(err)
	}
	return nil
}

// frameSize is the viewport scaled by the pixel ratio.
func frameSize(st params.State) (int, int) {
	ratio := st.Config.Performance.PixelRatio
	w := int(math.Round(float64(st.ViewportWidth) * ratio))
	h := int(math.Round(float64(st.ViewportHeight) * ratio))
	if st.ViewportWidth > 0 && w < 1 {
		w = 1
	}
	if st.ViewportHeight > 0 && h < 1 {
		h = 1
	}
	return w, h
}

// background picks the texture the compositor samples. The fallback
// gradient stands in while nothing is resident.
func (r *Renderer) background(tex *inputs.ImageTexture, p shader.Pattern) shader.Texture {
	if tex != nil {
		return tex
	}
	if p != shader.PatternTexture {
		return nil
	}
	if r.fallback == nil {
		r.fallback = inputs.Fallback()
	}
	return r.fallback
}

// drawFrame applies queued changes, composites one frame and presents it.
func (r *Renderer) drawFrame(advance bool) error {
	snap := r.store.Commit()
	if advance {
		r.time += FrameStep * snap.Config.Animation.Speed
	}
	tex := r.slot.Acquire()

	w, h := frameSize(snap)
	if w == 0 || h == 0 {
		return nil
	}
	perf := snap.Config.Performance
	if r.frame == nil || r.frame.Rect.Dx() != w || r.frame.Rect.Dy() != h {
		r.frame = image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	comp := shader.Compositor{
		Antialias: perf.Antialias,
		Preserve:  perf.PreserveDrawingBuffer,
	}
	comp.Draw(r.frame, snap.Uniforms(r.time), r.background(tex, snap.Config.BackgroundPattern))
	r.frames++
	goglass.Logger().Debug("frame", "n", r.frames, "time", r.time, "size", r.frame.Rect.Size())
	return r.ctx.Present(r.frame, perf.PremultipliedAlpha)
}
