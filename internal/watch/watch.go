// Package watch provides a minimal single-writer observable value: one
// owner publishes, any number of consumers read the current value or
// subscribe for pushes.
package watch

import "sync"

type Value[T any] struct {
	mu   sync.RWMutex
	v    T
	subs []func(T)
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{v: initial}
}

// Get returns the current value.
func (w *Value[T]) Get() T {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.v
}

// Set publishes a new value to every subscriber.
func (w *Value[T]) Set(next T) {
	w.mu.Lock()
	w.v = next
	subs := make([]func(T), len(w.subs))
	copy(subs, w.subs)
	w.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers fn for future publishes and calls it once with the
// current value, so late subscribers do not miss state.
func (w *Value[T]) Subscribe(fn func(T)) {
	w.mu.Lock()
	w.subs = append(w.subs, fn)
	current := w.v
	w.mu.Unlock()

	fn(current)
}
