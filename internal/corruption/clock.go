package corruption

// ClockState is the state of a Clock after its last Advance.
type ClockState int

const (
	// ClockWaiting means the countdown is running.
	ClockWaiting ClockState = iota
	// ClockFired means the countdown elapsed at least once during the last
	// Advance and was immediately restarted.
	ClockFired
)

// DefaultMaxFires caps how many times one Advance may fire.
const DefaultMaxFires = 8

// Clock is a repeating countdown whose period shrinks by a constant decay
// factor. It is never cancelled; Reset starts it over for a new session.
type Clock struct {
	period    float64
	remaining float64
	decay     float64
	maxFires  int
	state     ClockState
	fires     uint64
}

// NewClock creates a clock that first fires after period seconds.
// A decay outside (0, 1] is treated as 1 (no acceleration).
func NewClock(period, decay float64) *Clock {
	c := &Clock{maxFires: DefaultMaxFires}
	c.SetDecay(decay)
	c.Reset(period)
	return c
}

// Reset restarts the countdown with a fresh period.
func (c *Clock) Reset(period float64) {
	c.period = period
	c.remaining = period
	c.state = ClockWaiting
	c.fires = 0
}

// SetDecay changes the decay factor applied on future accelerations.
func (c *Clock) SetDecay(decay float64) {
	if decay <= 0 || decay > 1 {
		decay = 1
	}
	c.decay = decay
}

// SetMaxFires bounds the catch-up work a single Advance may do. Time beyond
// the bound is dropped. Values below 1 are raised to 1.
func (c *Clock) SetMaxFires(n int) {
	c.maxFires = max(n, 1)
}

// Advance counts down dt seconds and returns how many times the clock fired.
//
// On every fire, onFire (if non-nil) runs first; when it reports success the
// period is multiplied by the decay factor. A nil onFire counts every fire
// as a success. The countdown then restarts from the current period,
// carrying any overshoot.
func (c *Clock) Advance(dt float64, onFire func() bool) int {
	c.state = ClockWaiting
	c.remaining -= dt

	fired := 0
	for c.remaining <= 0 {
		fired++
		c.fires++
		c.state = ClockFired

		if onFire == nil || onFire() {
			c.period *= c.decay
		}

		if fired >= c.maxFires || c.period <= 0 {
			c.remaining = c.period
			break
		}
		c.remaining += c.period
	}

	if c.remaining > c.period {
		c.remaining = c.period
	}
	return fired
}

// Period returns the current period in seconds.
func (c *Clock) Period() float64 { return c.period }

// Remaining returns the seconds left until the next fire.
func (c *Clock) Remaining() float64 { return c.remaining }

// Decay returns the decay factor.
func (c *Clock) Decay() float64 { return c.decay }

// State returns the state after the last Advance.
func (c *Clock) State() ClockState { return c.state }

// Fires returns the total number of fires since the last Reset.
func (c *Clock) Fires() uint64 { return c.fires }
