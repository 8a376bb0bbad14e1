package contract

import (
	"context"
	"sync"
)

// Observer is called when the current contract handle changes.
// h is nil when the contract became unresolved.
type Observer func(ctx context.Context, h *Handle)

// Ref holds the currently resolved contract handle and notifies observers
// whenever its identity changes.
type Ref struct {
	mu        sync.Mutex
	current   *Handle
	observers []Observer
}

// NewRef creates an empty Ref.
func NewRef() *Ref {
	return &Ref{}
}

// Subscribe registers an observer. Observers run synchronously, in
// registration order, on the goroutine calling Set.
func (r *Ref) Subscribe(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// Current returns the current handle, or nil.
func (r *Ref) Current() *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Set replaces the current handle. Observers are notified only when the new
// handle refers to a different contract than the previous one.
// Reports whether observers were notified.
func (r *Ref) Set(ctx context.Context, h *Handle) bool {
	r.mu.Lock()
	if r.current.Same(h) {
		r.mu.Unlock()
		return false
	}
	r.current = h
	observers := make([]Observer, len(r.observers))
	copy(observers, r.observers)
	r.mu.Unlock()

	for _, o := range observers {
		o(ctx, h)
	}
	return true
}
