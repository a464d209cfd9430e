package graphics

import (
	"fmt"
	"sort"
	"sync"
)

// Options describes the drawable a backend should create.
type Options struct {
	Width   int
	Height  int
	Title   string
	Visible bool
}

// Factory creates a surface for a registered backend.
type Factory func(opts Options) (Context, error)

// Backend is a registered surface implementation.
type Backend struct {
	Name string
	// Priority orders automatic selection, higher first.
	Priority  int
	Factory   Factory
	Available func() bool
}

var (
	registryMu sync.RWMutex
	backends   = map[string]Backend{}
)

// Register adds or replaces a backend. A nil available func means the
// backend is always available.
func Register(name string, priority int, factory Factory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	registryMu.Lock()
	backends[name] = Backend{Name: name, Priority: priority, Factory: factory, Available: available}
	registryMu.Unlock()
}

func Unregister(name string) {
	registryMu.Lock()
	delete(backends, name)
	registryMu.Unlock()
}

func Get(name string) (Backend, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	b, ok := backends[name]
	return b, ok
}

// List returns the registered backend names, highest priority first.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := backends[names[i]], backends[names[j]]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.Name < b.Name
	})
	return names
}

// IsSupported reports whether name is registered and available. An empty
// name asks whether any backend is available.
func IsSupported(name string) bool {
	if name != "" {
		b, ok := Get(name)
		return ok && b.Available()
	}
	for _, n := range List() {
		if b, ok := Get(n); ok && b.Available() {
			return true
		}
	}
	return false
}

// Open creates a surface on the named backend, or on the best available one
// when name is empty.
func Open(name string, opts Options) (Context, error) {
	if name == "" {
		for _, n := range List() {
			if IsSupported(n) {
				return Open(n, opts)
			}
		}
		return nil, ErrCapabilityUnavailable
	}
	b, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTargetNotFound, name)
	}
	if !b.Available() {
		return nil, fmt.Errorf("%w: backend %q", ErrCapabilityUnavailable, name)
	}
	ctx, err := b.Factory(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCapabilityUnavailable, name, err)
	}
	return ctx, nil
}
