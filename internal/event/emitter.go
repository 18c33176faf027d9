package event

import "sync"

type listener[T any] struct {
	sub *subscription
	fn  func(T)
}

// Emitter fans a notification out to its listeners synchronously.
// The zero value is ready to use.
type Emitter[T any] struct {
	mu        sync.Mutex
	listeners []*listener[T]
}

// Subscribe registers fn and returns the subscription controlling it.
func (e *Emitter[T]) Subscribe(fn func(T)) Subscription {
	l := &listener[T]{fn: fn}
	l.sub = newSubscription(func() { e.remove(l) })

	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	e.mu.Unlock()
	return l.sub
}

func (e *Emitter[T]) remove(target *listener[T]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, l := range e.listeners {
		if l == target {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return
		}
	}
}

// Emit delivers v to every active listener in registration order.
// Listeners may subscribe or dispose during delivery; changes apply to the
// next Emit.
func (e *Emitter[T]) Emit(v T) {
	e.mu.Lock()
	snapshot := make([]*listener[T], len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	for _, l := range snapshot {
		if l.sub.IsActive() {
			l.fn(v)
		}
	}
}

// Len returns the number of registered listeners.
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}
