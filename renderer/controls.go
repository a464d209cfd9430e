package renderer

import (
	"errors"
	"fmt"

	"github.com/richinsley/goglass/inputs"
	"github.com/richinsley/goglass/params"
	"github.com/richinsley/goglass/shader"
)

// enqueue queues mutations for the next frame.
func (r *Renderer) enqueue(m ...params.Mutation) error {
	if r.state == Disposed {
		return ErrDisposed
	}
	r.store.Enqueue(m...)
	return nil
}

func (r *Renderer) SetShape(s shader.Shape) error {
	if !s.Valid() {
		return fmt.Errorf("%w: shape %v", params.ErrInvalidConfiguration, s)
	}
	if err := r.enqueue(params.SetShape(s)); err != nil {
		return err
	}
	if r.cb.OnShapeChange != nil {
		r.cb.OnShapeChange(s)
	}
	return nil
}

// SetShapeName selects a shape by name.
func (r *Renderer) SetShapeName(name string) error {
	s, err := shader.ParseShape(name)
	if err != nil {
		return fmt.Errorf("%w: %w", params.ErrInvalidConfiguration, err)
	}
	return r.SetShape(s)
}

// SetSize sets the glass radius in UV units, clamped to [0.01, 1].
func (r *Renderer) SetSize(v float64) error {
	return r.enqueue(params.SetSize(v))
}

// SetRefractionIndex is clamped to [1, 3].
func (r *Renderer) SetRefractionIndex(v float64) error {
	return r.enqueue(params.SetRefractionIndex(v))
}

// SetDispersion is clamped to [0, 0.2].
func (r *Renderer) SetDispersion(v float64) error {
	return r.enqueue(params.SetDispersion(v))
}

// SetThickness is clamped to [0.1, 2].
func (r *Renderer) SetThickness(v float64) error {
	return r.enqueue(params.SetThickness(v))
}

func (r *Renderer) SetBackgroundPattern(p shader.Pattern) error {
	if !p.Valid() {
		return fmt.Errorf("%w: pattern %v", params.ErrInvalidConfiguration, p)
	}
	return r.enqueue(params.SetPattern(p))
}

// SetBackgroundPatternName selects a pattern by name.
func (r *Renderer) SetBackgroundPatternName(name string) error {
	p, err := shader.ParsePattern(name)
	if err != nil {
		return fmt.Errorf("%w: %w", params.ErrInvalidConfiguration, err)
	}
	return r.SetBackgroundPattern(p)
}

// SetBackgroundTexture loads src in the background. The current texture
// stays bound until the new one is decoded; it becomes visible on the next
// frame. The channel receives the outcome once. Load failures are also
// reported to OnError on the surface goroutine.
func (r *Renderer) SetBackgroundTexture(src inputs.Source) <-chan error {
	out := make(chan error, 1)
	if r.state == Disposed {
		out <- ErrDisposed
		close(out)
		return out
	}
	if src.Path != "" || src.URL != "" {
		r.store.Enqueue(params.SetBackgroundTexture(src.String()))
	}
	done := r.slot.Load(r.loadCtx, src)
	go func() {
		defer close(out)
		err := <-done
		switch {
		case r.loadCtx.Err() != nil:
			// destroyed; the surface may already be gone
		case errors.Is(err, inputs.ErrSuperseded):
		case err != nil:
			r.ctx.RequestFrame(func() {
				if r.state != Disposed {
					notifyError(r.cb, err)
				}
			})
		default:
			// paused renderers would otherwise keep showing the old texture
			r.ctx.RequestFrame(func() {
				if r.state == Ready || r.state == Paused {
					r.Render()
				}
			})
		}
		out <- err
	}()
	return out
}

// SetMaterial applies a preset by name.
func (r *Renderer) SetMaterial(name string) error {
	m, err := params.MaterialByName(name)
	if err != nil {
		return err
	}
	return r.SetMaterialValues(m)
}

// SetMaterialValues sets the refraction index and dispersion together.
func (r *Renderer) SetMaterialValues(m params.Material) error {
	if err := r.enqueue(params.SetMaterial(m)); err != nil {
		return err
	}
	if r.cb.OnMaterialChange != nil {
		cfg := r.store.Peek().Config
		applied := cfg.Material()
		applied.Name = m.Name
		r.cb.OnMaterialChange(applied)
	}
	return nil
}

// Materials lists the material presets.
func (r *Renderer) Materials() []params.Material {
	return params.Materials()
}

// SetMousePosition moves the glass centre, in normalized coordinates with
// y up.
func (r *Renderer) SetMousePosition(x, y float64) error {
	return r.enqueue(params.SetPointer(x, y))
}

// EnableMouseTracking controls whether pointer events move the glass.
func (r *Renderer) EnableMouseTracking(enabled bool) error {
	return r.enqueue(params.SetMouseTracking(enabled))
}

// SetAnimationSpeed is clamped to [0, 5].
func (r *Renderer) SetAnimationSpeed(v float64) error {
	return r.enqueue(params.SetAnimationSpeed(v))
}

func (r *Renderer) SetSurfaceRipples(enabled bool) error {
	return r.enqueue(params.SetSurfaceRipples(enabled))
}

// Resize re-reads the surface size. The new viewport applies from the next
// frame.
func (r *Renderer) Resize() {
	if r.state == Disposed {
		return
	}
	w, h := r.ctx.GetFramebufferSize()
	r.store.Enqueue(params.SetViewport(w, h))
}

// PointerMove follows the pointer when tracking is enabled.
func (r *Renderer) PointerMove(x, y float64) {
	if r.state == Disposed {
		return
	}
	m := r.store.Peek().Config.Mouse
	if m.Enabled && m.FollowCursor {
		r.store.Enqueue(params.SetPointer(x, y))
	}
}

// PointerLeave returns the glass to the configured centre when tracking is
// enabled.
func (r *Renderer) PointerLeave() {
	if r.state == Disposed {
		return
	}
	if r.store.Peek().Config.Mouse.Enabled {
		r.store.Enqueue(params.ResetPointer())
	}
}
