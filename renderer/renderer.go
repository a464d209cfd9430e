package renderer

import (
	"context"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/richinsley/goglass"
	"github.com/richinsley/goglass/graphics"
	"github.com/richinsley/goglass/inputs"
	"github.com/richinsley/goglass/params"
)

// FrameStep is the animation time added per frame at speed 1.
const FrameStep = 1.0 / 60

// Renderer drives the glass effect on a graphics.Context. Apart from the
// setters, which only queue changes, its methods must be called from the
// goroutine that drives the surface.
type Renderer struct {
	ctx     graphics.Context
	ownsCtx bool
	store   *params.Store
	cb      Callbacks

	slot     inputs.Slot
	fallback *inputs.ImageTexture
	loadCtx  context.Context
	cancel   context.CancelFunc

	frame *image.NRGBA
	state State
	err   error
	// gen invalidates scheduled ticks when animation stops or the context
	// goes away.
	gen     uint64
	time    float64
	frames  uint64
	started float64
	elapsed float64
}

// IsDrawingSupported reports whether the named surface backend is usable.
// An empty name asks whether any backend is.
func IsDrawingSupported(name string) bool {
	return graphics.IsSupported(name)
}

// New sets up a renderer on ctx and draws the first frame. Failures are
// returned and also reported to cb.OnError.
func New(ctx graphics.Context, cfg params.Config, cb Callbacks) (*Renderer, error) {
	if ctx == nil {
		err := fmt.Errorf("%w: no drawing context", graphics.ErrCapabilityUnavailable)
		notifyError(cb, err)
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		notifyError(cb, err)
		return nil, err
	}

	loadCtx, cancel := context.WithCancel(context.Background())
	r := &Renderer{
		ctx:     ctx,
		store:   params.NewStore(cfg),
		cb:      cb,
		loadCtx: loadCtx,
		cancel:  cancel,
		started: ctx.Time(),
	}
	w, h := ctx.GetFramebufferSize()
	r.store.Enqueue(params.SetViewport(w, h))

	if err := r.setup(); err != nil {
		cancel()
		return nil, err
	}
	if src, ok := ctx.(graphics.InputSource); ok {
		src.SetInputHandler(r)
	}
	if cfg.BackgroundTexture != "" {
		r.SetBackgroundTexture(inputs.ParseSource(cfg.BackgroundTexture))
	}

	goglass.Logger().Info("renderer ready", "width", w, "height", h, "shape", cfg.Shape)
	if r.cb.OnReady != nil {
		r.cb.OnReady()
	}
	if r.store.Peek().Config.Animation.Enabled {
		r.StartAnimation()
	}
	return r, nil
}

// NewFromTarget opens the named surface backend and sets up a renderer on
// it. The surface is shut down with the renderer.
func NewFromTarget(name string, opts graphics.Options, cfg params.Config, cb Callbacks) (*Renderer, error) {
	ctx, err := graphics.Open(name, opts)
	if err != nil {
		notifyError(cb, err)
		return nil, err
	}
	r, err := New(ctx, cfg, cb)
	if err != nil {
		ctx.Shutdown()
		return nil, err
	}
	r.ownsCtx = true
	return r, nil
}

func notifyError(cb Callbacks, err error) {
	if cb.OnError != nil {
		cb.OnError(err)
	}
}

// setup acquires the surface resources and draws the initial frame.
func (r *Renderer) setup() error {
	r.ctx.MakeCurrent()
	if err := r.ctx.Setup(); err != nil {
		return r.fail(fmt.Errorf("setup failed: %w", err))
	}
	r.state = Ready
	if err := r.drawFrame(false); err != nil {
		return r.fail(fmt.Errorf("initial frame failed: %w", err))
	}
	return nil
}

// fail moves the renderer to Errored and reports err.
func (r *Renderer) fail(err error) error {
	r.gen++
	r.state = Errored
	r.err = err
	goglass.Logger().Error("renderer failed", "err", err)
	notifyError(r.cb, err)
	return err
}

// State returns the lifecycle state.
func (r *Renderer) State() State {
	return r.state
}

// Err returns the error that moved the renderer to Errored.
func (r *Renderer) Err() error {
	return r.err
}

// Time returns the animation clock in seconds.
func (r *Renderer) Time() float64 {
	return r.time
}

func (r *Renderer) Stats() Stats {
	elapsed := r.elapsed
	if r.state != Disposed {
		elapsed = r.ctx.Time() - r.started
	}
	return Stats{State: r.state, Frames: r.frames, Time: r.time, Elapsed: elapsed}
}

// Config returns the configuration including changes not yet drawn.
func (r *Renderer) Config() params.Config {
	return r.store.Peek().Config
}

// Pointer returns the glass centre including changes not yet drawn.
func (r *Renderer) Pointer() mgl64.Vec2 {
	return r.store.Peek().Pointer
}

// Frame returns the last composited frame. It is overwritten by the next
// draw.
func (r *Renderer) Frame() *image.NRGBA {
	return r.frame
}

// Destroy releases every resource. It is safe to call more than once.
func (r *Renderer) Destroy() {
	if r.state == Disposed {
		return
	}
	r.gen++
	r.elapsed = r.ctx.Time() - r.started
	if r.state != Uninitialized {
		r.ctx.Release()
	}
	r.cancel()
	r.slot.Release()
	r.frame = nil
	if r.ownsCtx {
		r.ctx.Shutdown()
	}
	r.state = Disposed
	goglass.Logger().Info("renderer disposed", "frames", r.frames, "elapsed", r.elapsed)
}

// LoseContext handles the host discarding the drawing context. Surface
// resources are forgotten, not released, and scheduled frames are dropped.
func (r *Renderer) LoseContext() {
	if r.state == Disposed || r.state == Uninitialized {
		return
	}
	r.gen++
	r.ctx.Invalidate()
	r.state = Uninitialized
	goglass.Logger().Info("drawing context lost")
}

// RestoreContext re-runs setup after LoseContext and resumes animation if
// it is enabled.
func (r *Renderer) RestoreContext() error {
	switch r.state {
	case Disposed:
		return ErrDisposed
	case Uninitialized:
	default:
		return nil
	}
	if err := r.setup(); err != nil {
		return err
	}
	goglass.Logger().Info("drawing context restored")
	if r.store.Peek().Config.Animation.Enabled {
		r.StartAnimation()
	}
	return nil
}
