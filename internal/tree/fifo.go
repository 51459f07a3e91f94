package tree

import "sync"

// fifo delivers queued values one at a time in the order they were pushed.
// The first pusher drains the queue; concurrent and re-entrant pushers
// return as soon as their value is queued.
type fifo[T any] struct {
	mu         sync.Mutex
	queue      []T
	delivering bool
}

// push runs update under the queue lock, so queue order matches the order
// in which updates were applied. Nothing is queued when update returns false.
func (f *fifo[T]) push(v T, update func() bool, deliver func(T)) {
	f.mu.Lock()
	if update != nil && !update() {
		f.mu.Unlock()
		return
	}
	f.queue = append(f.queue, v)
	if f.delivering {
		f.mu.Unlock()
		return
	}
	f.delivering = true

	for len(f.queue) > 0 {
		next := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()

		deliver(next)

		f.mu.Lock()
	}

	f.delivering = false
	f.mu.Unlock()
}
