package smbtest

import (
	"sync"
	"time"

	"github.com/jmgilman/go/smb"
)

// Clock hands out timers that fire immediately and records every delay
// they were asked to wait. Pass clock.NewTimer to smb.WithTimer.
type Clock struct {
	mu     sync.Mutex
	delays []time.Duration
}

// NewClock returns an empty Clock.
func NewClock() *Clock {
	return &Clock{}
}

// NewTimer returns a timer bound to the clock.
func (c *Clock) NewTimer() smb.Timer {
	return &timer{clock: c, c: make(chan time.Time, 1)}
}

// Delays returns the delays requested so far, in order.
func (c *Clock) Delays() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.delays...)
}

type timer struct {
	clock *Clock
	c     chan time.Time
}

func (t *timer) Start(d time.Duration) {
	t.clock.mu.Lock()
	t.clock.delays = append(t.clock.delays, d)
	t.clock.mu.Unlock()

	select {
	case t.c <- time.Now():
	default:
	}
}

func (t *timer) Stop() {}

func (t *timer) C() <-chan time.Time { return t.c }
