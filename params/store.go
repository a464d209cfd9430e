package params

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/richinsley/goglass/shader"
)

// State is what one frame reads: the configuration plus the interaction
// state that is not part of it.
type State struct {
	Config  Config
	Pointer mgl64.Vec2

	ViewportWidth  int
	ViewportHeight int
}

// Center is the configured resting position of the glass.
func (s State) Center() mgl64.Vec2 {
	return mgl64.Vec2{s.Config.Mouse.CenterX, s.Config.Mouse.CenterY}
}

// Uniforms converts s into the compositor's parameter set at time t.
func (s State) Uniforms(t float64) shader.Uniforms {
	c := s.Config
	return shader.Uniforms{
		Shape:           c.Shape,
		Pattern:         c.BackgroundPattern,
		Size:            c.Size,
		RefractionIndex: c.RefractionIndex,
		Dispersion:      c.Dispersion,
		Thickness:       c.Thickness,
		Mouse:           s.Pointer,
		Time:            t,
		Ripples:         c.Animation.SurfaceRipples,
	}
}

// A Mutation edits a State between frames.
type Mutation func(*State)

func SetShape(shape shader.Shape) Mutation {
	return func(s *State) {
		if shape.Valid() {
			s.Config.Shape = shape
		}
	}
}

func SetPattern(p shader.Pattern) Mutation {
	return func(s *State) {
		if p.Valid() {
			s.Config.BackgroundPattern = p
		}
	}
}

func SetSize(v float64) Mutation {
	return func(s *State) { s.Config.Size = SizeRange.Clamp(v, s.Config.Size) }
}

func SetRefractionIndex(v float64) Mutation {
	return func(s *State) {
		s.Config.RefractionIndex = RefractionIndexRange.Clamp(v, s.Config.RefractionIndex)
	}
}

func SetDispersion(v float64) Mutation {
	return func(s *State) { s.Config.Dispersion = DispersionRange.Clamp(v, s.Config.Dispersion) }
}

func SetThickness(v float64) Mutation {
	return func(s *State) { s.Config.Thickness = ThicknessRange.Clamp(v, s.Config.Thickness) }
}

// SetMaterial applies both indices of m in one step.
func SetMaterial(m Material) Mutation {
	return func(s *State) {
		SetRefractionIndex(m.RefractionIndex)(s)
		SetDispersion(m.Dispersion)(s)
	}
}

func SetBackgroundTexture(name string) Mutation {
	return func(s *State) { s.Config.BackgroundTexture = name }
}

// SetPointer moves the glass centre, in normalized coordinates with y up.
func SetPointer(x, y float64) Mutation {
	return func(s *State) {
		s.Pointer = mgl64.Vec2{
			PointerRange.Clamp(x, s.Pointer[0]),
			PointerRange.Clamp(y, s.Pointer[1]),
		}
	}
}

// ResetPointer returns the glass to the configured centre.
func ResetPointer() Mutation {
	return func(s *State) { s.Pointer = s.Center() }
}

func SetMouseTracking(enabled bool) Mutation {
	return func(s *State) { s.Config.Mouse.Enabled = enabled }
}

func SetAnimationEnabled(enabled bool) Mutation {
	return func(s *State) { s.Config.Animation.Enabled = enabled }
}

func SetAnimationSpeed(v float64) Mutation {
	return func(s *State) { s.Config.Animation.Speed = SpeedRange.Clamp(v, s.Config.Animation.Speed) }
}

func SetSurfaceRipples(enabled bool) Mutation {
	return func(s *State) { s.Config.Animation.SurfaceRipples = enabled }
}

func SetViewport(width, height int) Mutation {
	return func(s *State) {
		if width > 0 && height > 0 {
			s.ViewportWidth, s.ViewportHeight = width, height
		}
	}
}

// Store queues mutations from setters and applies them once per frame.
type Store struct {
	mu        sync.Mutex
	committed State
	pending   []Mutation
}

// NewStore returns a store holding cfg, clamped, with the pointer at the
// configured centre.
func NewStore(cfg Config) *Store {
	st := State{Config: cfg.Clamped()}
	st.Pointer = st.Center()
	return &Store{committed: st}
}

// Enqueue schedules mutations for the next Commit.
func (s *Store) Enqueue(m ...Mutation) {
	s.mu.Lock()
	s.pending = append(s.pending, m...)
	s.mu.Unlock()
}

// Commit applies the pending mutations in order and returns the resulting
// snapshot.
func (s *Store) Commit() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.pending {
		m(&s.committed)
	}
	s.pending = s.pending[:0]
	return s.committed
}

// Peek returns the state the next Commit would produce without applying it.
func (s *Store) Peek() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.committed
	for _, m := range s.pending {
		m(&st)
	}
	return st
}

// Pending reports the number of queued mutations.
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
