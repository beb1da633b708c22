package session

import "time"

// Clock turns frame timestamps into elapsed seconds. The first frame after a
// reset reports zero.
type Clock struct {
	last    time.Time
	started bool
	// MaxStep caps a single step, so a stall does not fling coins across the
	// road. Zero means no cap.
	MaxStep float64
}

func (c *Clock) Step(now time.Time) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	if c.MaxStep > 0 && dt > c.MaxStep {
		return c.MaxStep
	}
	return dt
}

// Reset makes the next Step report zero, e.g. after a pause.
func (c *Clock) Reset() {
	c.started = false
}
