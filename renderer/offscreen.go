package renderer

import (
	"errors"
	"image"
	"image/draw"

	"github.com/richinsley/goglass/shader"
)

var (
	errNoFrame     = errors.New("no frame drawn")
	errNotDrawable = errors.New("drawing context unavailable")
)

// Composite flattens the last frame onto the unrefracted background, the
// way a page shows the glass layer over its backdrop.
func (r *Renderer) Composite() (*image.RGBA, error) {
	if r.state == Disposed {
		return nil, ErrDisposed
	}
	if r.frame == nil {
		return nil, errNoFrame
	}
	cfg := r.store.Peek().Config
	backdrop := image.NewNRGBA(r.frame.Rect)
	shader.DrawBackdrop(backdrop, cfg.BackgroundPattern, r.background(r.slot.Current(), cfg.BackgroundPattern))

	out := image.NewRGBA(r.frame.Rect)
	draw.Draw(out, out.Rect, backdrop, image.Point{}, draw.Src)
	draw.Draw(out, out.Rect, r.frame, image.Point{}, draw.Over)
	return out, nil
}

// Record draws frames consecutive frames, advancing the clock between them,
// and hands each flattened frame to emit. The first frame shows the current
// clock.
func (r *Renderer) Record(frames int, emit func(i int, img *image.RGBA) error) error {
	for i := 0; i < frames; i++ {
		switch {
		case r.state == Disposed:
			return ErrDisposed
		case r.state == Errored:
			return r.err
		case !r.state.drawable():
			return errNotDrawable
		}
		if err := r.drawFrame(i > 0); err != nil {
			return r.fail(err)
		}
		img, err := r.Composite()
		if err != nil {
			return err
		}
		if err := emit(i, img); err != nil {
			return err
		}
	}
	return nil
}
