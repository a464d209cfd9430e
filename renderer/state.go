package renderer

import (
	"errors"
	"fmt"

	"github.com/richinsley/goglass/params"
	"github.com/richinsley/goglass/shader"
)

// ErrDisposed is returned by every operation on a destroyed renderer.
var ErrDisposed = errors.New("renderer disposed")

// State is the renderer lifecycle.
type State int

const (
	Uninitialized State = iota
	Ready
	Running
	Paused
	Disposed
	Errored
)

var stateNames = [...]string{
	Uninitialized: "uninitialized",
	Ready:         "ready",
	Running:       "running",
	Paused:        "paused",
	Disposed:      "disposed",
	Errored:       "errored",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// drawable reports whether frames can be drawn in s.
func (s State) drawable() bool {
	return s == Ready || s == Running || s == Paused
}

// Callbacks are invoked on the goroutine driving the surface. Any of them
// may be nil.
type Callbacks struct {
	OnReady          func()
	OnError          func(err error)
	OnShapeChange    func(shape shader.Shape)
	OnMaterialChange func(m params.Material)
}

// Stats describes the renderer's progress.
type Stats struct {
	State  State
	Frames uint64
	// Time is the animation clock.
	Time float64
	// Elapsed is the surface clock since the renderer was created. It stops
	// at Destroy.
	Elapsed float64
}
