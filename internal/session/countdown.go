package session

// Countdown drives timed-mode sessions. It is ticked once per second by
// the event loop, independent of keystrokes, and forces the session to
// complete exactly once when the clock reaches zero.
type Countdown struct {
	sess      *Session
	remaining int
	stopped   bool
	expired   bool
}

// NewCountdown creates a countdown over the given number of seconds.
func NewCountdown(sess *Session, seconds int) *Countdown {
	return &Countdown{sess: sess, remaining: seconds}
}

// Tick advances the clock by one second. On expiry it stops and forces
// the session into TimedOut; the expired guard keeps a tick racing a
// manual submit from completing the session twice.
func (c *Countdown) Tick() (remaining int, expired bool) {
	if c.stopped {
		return c.remaining, c.expired
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 && !c.expired {
		c.expired = true
		c.stopped = true
		c.sess.ForceComplete(ReasonTimeout)
	}
	return c.remaining, c.expired
}

// Stop halts the clock. Cancelling or leaving the session must stop the
// countdown so no orphaned tick fires against a torn-down session.
func (c *Countdown) Stop() {
	c.stopped = true
}

// Remaining returns the seconds left on the clock.
func (c *Countdown) Remaining() int { return c.remaining }

// Expired reports whether the clock already reached zero.
func (c *Countdown) Expired() bool { return c.expired }

// Running reports whether ticks still advance the clock.
func (c *Countdown) Running() bool { return !c.stopped }
