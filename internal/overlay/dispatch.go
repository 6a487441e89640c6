// Package overlay holds the platform-neutral side of the always-on-top overlays. Window
// state is owned by a single render thread; every other goroutine posts work to it.
package overlay

import (
	"errors"
	"sync"
)

var (
	ErrClosed    = errors.New("overlay dispatcher closed")
	ErrQueueFull = errors.New("overlay dispatcher queue full")
)

// Poster queues a function for the thread that owns the overlay windows.
type Poster interface {
	Post(fn func()) error
}

// Dispatcher is a bounded FIFO of functions drained by the owning thread.
type Dispatcher struct {
	mu       sync.Mutex
	queue    []func()
	capacity int
	closed   bool
}

func NewDispatcher(capacity int) *Dispatcher {
	if capacity <= 0 {
		capacity = 64
	}
	return &Dispatcher{capacity: capacity}
}

// Post never blocks. It fails once the dispatcher is closed or when the owning thread has
// fallen too far behind.
func (d *Dispatcher) Post(fn func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if len(d.queue) >= d.capacity {
		return ErrQueueFull
	}
	d.queue = append(d.queue, fn)
	return nil
}

// Drain runs everything posted so far, in order. Only the owning thread may call it.
func (d *Dispatcher) Drain() int {
	d.mu.Lock()
	pending := d.queue
	d.queue = nil
	d.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Close rejects further posts. Work already queued can still be drained.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
}
