// Package clock is the time source of the bidding engine. Production code runs
// on the wall clock; tests drive a benbjohnson/clock mock.
package clock

import (
	"time"

	bclock "github.com/benbjohnson/clock"
)

type Clock interface {
	Now() time.Time
	// AfterFunc runs f on its own goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type wrapped struct {
	c bclock.Clock
}

// New returns the wall clock.
func New() Clock {
	return wrapped{c: bclock.New()}
}

// Wrap adapts any benbjohnson clock, typically a *clock.Mock in tests.
func Wrap(c bclock.Clock) Clock {
	return wrapped{c: c}
}

func (w wrapped) Now() time.Time {
	return w.c.Now()
}

func (w wrapped) AfterFunc(d time.Duration, f func()) Timer {
	return w.c.AfterFunc(d, f)
}

// At schedules f for the instant t. A t that is not in the future runs f on a
// new goroutine right away and the returned Timer can no longer be stopped.
func At(c Clock, t time.Time, f func()) Timer {
	d := t.Sub(c.Now())
	if d <= 0 {
		go f()
		return firedTimer{}
	}
	return c.AfterFunc(d, f)
}

type firedTimer struct{}

func (firedTimer) Stop() bool { return false }
