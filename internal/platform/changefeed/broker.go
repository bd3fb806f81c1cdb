// Package changefeed delivers "the companies collection changed" signals to
// live subscribers, within one process and across processes.
package changefeed

import (
	"context"
	"sync"
)

// Publisher announces a local change to other processes.
type Publisher interface {
	Publish(ctx context.Context) error
}

// Relay forwards changes between processes: Publish sends local changes out,
// Run receives remote changes and notifies the local Broker until ctx ends.
type Relay interface {
	Publisher
	Run(ctx context.Context) error
}

// Broker fans change signals out to registered listeners. Listeners are
// called synchronously from Notify and must not block.
type Broker struct {
	mu        sync.Mutex
	next      uint64
	listeners map[uint64]func()
}

// NewBroker creates an empty Broker.
func NewBroker() *Broker {
	return &Broker{listeners: map[uint64]func(){}}
}

// Register adds a listener and returns a detach function. Detach is idempotent.
func (b *Broker) Register(fn func()) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.listeners[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// Notify signals every registered listener.
func (b *Broker) Notify() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of registered listeners.
func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
