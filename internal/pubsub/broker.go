// Package pubsub is the in-process broker that fans newly created posts out
// to live feed subscribers.
package pubsub

import (
	"context"
	"sync"
)

// subscriberBufferSize is the channel buffer size for each subscriber.
const subscriberBufferSize = 64

// Broker is a generic, thread-safe publish/subscribe broker.
type Broker[T any] struct {
	mu   sync.RWMutex
	subs map[chan T]struct{}
}

// NewBroker creates a new Broker.
func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{
		subs: make(map[chan T]struct{}),
	}
}

// Subscribe creates a new subscription. The returned channel receives
// payloads until the provided context is cancelled, at which point the
// channel is closed and the subscription is removed.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, subscriberBufferSize)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Publish broadcasts a payload to all active subscribers. If a subscriber's
// buffer is full, the payload is dropped for that subscriber (non-blocking).
func (b *Broker[T]) Publish(payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs {
		select {
		case ch <- payload:
		default:
			// Drop for slow subscriber
		}
	}
}
