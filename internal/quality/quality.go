// Package quality adapts rendering cost to the measured frame rate.
//
// A Controller keeps an exponential moving average of frames per second
// and steps a discrete Level down when the average falls below DownFPS and
// up when it rises above UpFPS. The gap between the two thresholds and a
// cooldown after every change keep the level from oscillating.
package quality

import "fmt"

type Level int

const (
	Low Level = iota
	Medium
	High
	Ultra
)

func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	case Ultra:
		return "ultra"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel accepts the names produced by Level.String.
func ParseLevel(s string) (Level, error) {
	for l := Low; l <= Ultra; l++ {
		if l.String() == s {
			return l, nil
		}
	}
	return Low, fmt.Errorf("quality: unknown level %q", s)
}

// Settings are the render knobs controlled by a level.
type Settings struct {
	PixelScale float64
	Lighting   bool
	Specular   bool
	Vignette   bool
}

var levelSettings = [...]Settings{
	Low:    {PixelScale: 0.6},
	Medium: {PixelScale: 0.75, Lighting: true, Vignette: true},
	High:   {PixelScale: 0.9, Lighting: true, Specular: true, Vignette: true},
	Ultra:  {PixelScale: 1, Lighting: true, Specular: true, Vignette: true},
}

func (l Level) Settings() Settings {
	if l < Low {
		l = Low
	}
	if l > Ultra {
		l = Ultra
	}
	return levelSettings[l]
}

type Options struct {
	Enabled   bool
	TargetFPS float64
	DownFPS   float64
	UpFPS     float64
	Smoothing float64
	Cooldown  int
	Min       Level
	Max       Level
	Start     Level
}

func DefaultOptions() Options {
	return Options{
		Enabled:   true,
		TargetFPS: 60,
		DownFPS:   50,
		UpFPS:     58,
		Smoothing: 0.08,
		Cooldown:  30,
		Min:       Low,
		Max:       Ultra,
		Start:     Ultra,
	}
}

type Controller struct {
	opts     Options
	avg      float64
	level    Level
	cooldown int
}

func NewController(o Options) *Controller {
	if o.Min > o.Max {
		o.Min, o.Max = o.Max, o.Min
	}
	if o.Smoothing <= 0 || o.Smoothing > 1 {
		o.Smoothing = 0.08
	}
	if o.TargetFPS <= 0 {
		o.TargetFPS = 60
	}
	start := o.Start
	if start < o.Min {
		start = o.Min
	}
	if start > o.Max {
		start = o.Max
	}
	return &Controller{opts: o, avg: o.TargetFPS, level: start}
}

func (c *Controller) Level() Level     { return c.level }
func (c *Controller) FPS() float64     { return c.avg }
func (c *Controller) Options() Options { return c.opts }

// SetLevel forces the level within [Min, Max] and restarts the cooldown.
func (c *Controller) SetLevel(l Level) Level {
	c.level = max(c.opts.Min, min(l, c.opts.Max))
	c.cooldown = c.opts.Cooldown
	return c.level
}

// Observe feeds one frame duration in seconds and reports whether the
// level changed.
func (c *Controller) Observe(frame float64) (Level, bool) {
	if frame <= 0 {
		return c.level, false
	}
	a := c.opts.Smoothing
	c.avg = c.avg*(1-a) + (1/frame)*a
	if !c.opts.Enabled {
		return c.level, false
	}
	if c.cooldown > 0 {
		c.cooldown--
		return c.level, false
	}

	switch {
	case c.avg < c.opts.DownFPS && c.level > c.opts.Min:
		c.level--
	case c.avg > c.opts.UpFPS && c.level < c.opts.Max:
		c.level++
	default:
		return c.level, false
	}
	c.cooldown = c.opts.Cooldown
	return c.level, true
}
