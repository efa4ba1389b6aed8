// Package watch provides the publish/subscribe primitive behind the quest
// store's live views.
//
// A Hub fans one value stream out to any number of subscribers. Each
// subscription carries a capacity-one channel with replace-on-publish
// delivery: a subscriber that keeps up receives every published state, a
// slow subscriber skips straight to the newest state — it can never observe
// a stale state after a newer one was published. New subscribers receive the
// most recently published value immediately, so they always start from
// current truth.
package watch

import "sync"

// Subscription is a single receiver attached to a Hub. Cancelling it does
// not disturb the hub or any other subscriber.
type Subscription[T any] struct {
	ch   chan T
	hub  *Hub[T]
	once sync.Once
}

// C returns the receive channel. The channel is closed when the
// subscription is cancelled or the hub is closed.
func (s *Subscription[T]) C() <-chan T { return s.ch }

// Cancel detaches the subscription and closes its channel. Safe to call
// multiple times.
func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Hub broadcasts values to all current subscribers.
type Hub[T any] struct {
	mu     sync.Mutex
	subs   map[*Subscription[T]]struct{}
	last   T
	seeded bool
	closed bool
}

// NewHub creates an empty hub with no subscribers and no published value.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[*Subscription[T]]struct{})}
}

// Subscribe attaches a new receiver. If the hub has published at least once,
// the newest value is already waiting on the returned channel. Subscribing
// to a closed hub returns a subscription whose channel is closed.
func (h *Hub[T]) Subscribe() *Subscription[T] {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscription[T]{ch: make(chan T, 1), hub: h}
	if h.closed {
		close(sub.ch)
		return sub
	}
	h.subs[sub] = struct{}{}
	if h.seeded {
		sub.ch <- h.last
	}
	return sub
}

// Publish delivers v to every subscriber on the caller's turn. An
// undelivered pending value is replaced rather than queued behind.
// Publish never blocks on a slow subscriber.
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.last = v
	h.seeded = true

	for sub := range h.subs {
		select {
		case sub.ch <- v:
		default:
			// Channel full: drop the stale pending value, deliver the new one.
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- v
		}
	}
}

// Close shuts the hub down and closes every subscriber channel. Subsequent
// publishes are discarded.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		close(sub.ch)
	}
	h.subs = nil
}

// SubscriberCount reports how many subscriptions are currently attached.
func (h *Hub[T]) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub[T]) remove(sub *Subscription[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return // Close already closed the channel
	}
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
}
