package services

import (
	"context"
	"sync"
)

// outbox runs an auction's side effects (persistence, publication,
// subscriber registration) in FIFO order on a single goroutine, off the
// bidding path. It is unbounded so that the mailbox never waits on it.
type outbox struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	signal chan struct{}
	done   chan struct{}
}

func newOutbox() *outbox {
	o := &outbox{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go o.run()
	return o
}

// push reports false once the outbox has been closed.
func (o *outbox) push(task func()) bool {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return false
	}
	o.queue = append(o.queue, task)
	o.mu.Unlock()

	o.wake()
	return true
}

func (o *outbox) wake() {
	select {
	case o.signal <- struct{}{}:
	default:
	}
}

func (o *outbox) run() {
	defer close(o.done)

	for {
		o.mu.Lock()
		if len(o.queue) == 0 {
			closed := o.closed
			o.mu.Unlock()
			if closed {
				return
			}
			<-o.signal
			continue
		}
		task := o.queue[0]
		o.queue[0] = nil
		o.queue = o.queue[1:]
		o.mu.Unlock()

		task()
	}
}

// close runs what is already queued and waits for it, or for ctx.
func (o *outbox) close(ctx context.Context) error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	o.wake()

	select {
	case <-o.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
