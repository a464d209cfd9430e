package inputs

import (
	"context"
	"errors"
	"sync"

	"github.com/richinsley/goglass"
)

// ErrSuperseded is reported by a load whose result was discarded because a
// newer load was started or the slot was released.
var ErrSuperseded = errors.New("texture load superseded")

// SlotState is the lifecycle of a Slot's resource.
type SlotState int

const (
	// Ready means no load is outstanding; the current texture, if any, is final.
	Ready SlotState = iota
	// Pending means a load is in flight or its result awaits Acquire.
	Pending
)

func (s SlotState) String() string {
	if s == Pending {
		return "pending"
	}
	return "ready"
}

// Slot holds the one live background texture. Loads complete in the
// background; their result only becomes current when the frame loop calls
// Acquire, so a frame never sees a texture change mid-draw.
type Slot struct {
	mu       sync.Mutex
	current  *ImageTexture
	next     *ImageTexture
	seq      uint64
	inflight int
}

// Load starts decoding src. The returned channel receives the outcome once
// and is then closed.
func (s *Slot) Load(ctx context.Context, src Source) <-chan error {
	s.mu.Lock()
	s.seq++
	id := s.seq
	s.inflight++
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		defer close(done)
		tex, err := Load(ctx, src)

		s.mu.Lock()
		s.inflight--
		if err == nil && id != s.seq {
			tex.Release()
			err = ErrSuperseded
		}
		if err == nil {
			if s.next != nil {
				s.next.Release()
			}
			s.next = tex
		}
		s.mu.Unlock()

		if err != nil && !errors.Is(err, ErrSuperseded) {
			goglass.Logger().Warn("background texture failed", "source", src.String(), "err", err)
		}
		done <- err
	}()
	return done
}

// Acquire promotes a completed load to current, releasing the texture it
// replaces, and returns the current texture. It may return nil.
func (s *Slot) Acquire() *ImageTexture {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next != nil {
		old := s.current
		s.current, s.next = s.next, nil
		if old != nil {
			old.Release()
		}
		goglass.Logger().Info("background texture swapped", "width", s.current.Width(), "height", s.current.Height())
	}
	return s.current
}

// Current returns the texture bound for drawing without promoting a
// pending one.
func (s *Slot) Current() *ImageTexture {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Slot) State() SlotState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight > 0 || s.next != nil {
		return Pending
	}
	return Ready
}

// Release frees every texture held by the slot and discards loads still in
// flight.
func (s *Slot) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	for _, t := range []*ImageTexture{s.current, s.next} {
		if t != nil {
			t.Release()
		}
	}
	s.current, s.next = nil, nil
}
