package event

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Subscription represents a registered listener.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// IsActive returns true if the subscription still receives notifications.
	IsActive() bool

	// Dispose permanently removes the listener. Calling it twice is harmless.
	Dispose()
}

var subscriptionCounter atomic.Uint64

type subscription struct {
	id        string
	cancelled atomic.Bool
	remove    func()
}

func newSubscription(remove func()) *subscription {
	return &subscription{
		id:     fmt.Sprintf("sub-%d", subscriptionCounter.Add(1)),
		remove: remove,
	}
}

func (s *subscription) ID() string { return s.id }

func (s *subscription) IsActive() bool { return !s.cancelled.Load() }

func (s *subscription) Dispose() {
	if s.cancelled.CompareAndSwap(false, true) {
		s.remove()
	}
}

// Group manages multiple subscriptions and disposes them together.
type Group struct {
	mu   sync.Mutex
	subs []Subscription
}

// Add tracks a subscription.
func (g *Group) Add(subs ...Subscription) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subs = append(g.subs, subs...)
}

// Len returns the number of tracked subscriptions.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.subs)
}

// Dispose disposes every tracked subscription and forgets them.
func (g *Group) Dispose() {
	g.mu.Lock()
	subs := g.subs
	g.subs = nil
	g.mu.Unlock()

	for _, s := range subs {
		s.Dispose()
	}
}
