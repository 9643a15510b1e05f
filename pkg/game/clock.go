package game

import (
	"time"
)

// Clock is the time source of the tick loop. Gravity is measured against Now
// on every tick, so implementations must return monotonic readings.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// ManualClock only moves when told to. Sleeping advances it instantly.
type ManualClock struct {
	T time.Time
}

func NewManualClock() *ManualClock {
	return &ManualClock{T: time.Unix(0, 0)}
}

func (c *ManualClock) Now() time.Time { return c.T }

func (c *ManualClock) Sleep(d time.Duration) {
	c.Advance(d)
}

func (c *ManualClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}
