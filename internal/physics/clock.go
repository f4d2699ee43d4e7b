package physics

const (
	FixedDt     = 1.0 / 60.0
	MaxSubsteps = 3
	MaxFrameDt  = 0.1
)

// Clock converts wall-clock frame times into a bounded number of fixed
// substeps.
type Clock struct {
	last    float64
	acc     float64
	started bool
}

func NewClock() *Clock { return &Clock{} }

// Reset forgets the previous frame time and any accumulated debt.
func (c *Clock) Reset() {
	c.last = 0
	c.acc = 0
	c.started = false
}

// Advance records a frame at time now (seconds) and returns how many
// FixedDt substeps to run. The first call only establishes the time base.
func (c *Clock) Advance(now float64) int {
	if !c.started {
		c.last = now
		c.started = true
		return 0
	}
	dt := now - c.last
	c.last = now
	if dt < 0 {
		dt = 0
	}
	if dt > MaxFrameDt {
		dt = MaxFrameDt
	}
	c.acc += dt

	n := 0
	for c.acc >= FixedDt && n < MaxSubsteps {
		c.acc -= FixedDt
		n++
	}
	if c.acc > MaxFrameDt {
		c.acc = MaxFrameDt
	}
	return n
}

// Pending is the simulated time not yet consumed by substeps.
func (c *Clock) Pending() float64 { return c.acc }
