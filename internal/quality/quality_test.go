package quality

import "testing"

func feed(c *Controller, fps float64, frames int) (changes []int) {
	for i := 0; i < frames; i++ {
		if _, changed := c.Observe(1 / fps); changed {
			changes = append(changes, i)
		}
	}
	return changes
}

func TestSteadyFrameRateKeepsLevel(t *testing.T) {
	c := NewController(DefaultOptions())
	if changes := feed(c, 60, 600); len(changes) != 0 {
		t.Errorf("expected no changes at 60 fps, got %d", len(changes))
	}
	if c.Level() != Ultra {
		t.Errorf("expected %s, got %s", Ultra, c.Level())
	}
}

func TestSlowFramesLowerLevel(t *testing.T) {
	opts := DefaultOptions()
	c := NewController(opts)
	changes := feed(c, 30, 600)
	if c.Level() != Low {
		t.Fatalf("expected %s after sustained 30 fps, got %s", Low, c.Level())
	}
	if len(changes) != int(Ultra-Low) {
		t.Fatalf("expected %d changes, got %d", Ultra-Low, len(changes))
	}
	for i := 1; i < len(changes); i++ {
		if gap := changes[i] - changes[i-1]; gap <= opts.Cooldown {
			t.Errorf("changes %d frames apart, cooldown is %d", gap, opts.Cooldown)
		}
	}
}

func TestRecovery(t *testing.T) {
	c := NewController(DefaultOptions())
	feed(c, 30, 600)
	feed(c, 120, 600)
	if c.Level() != Ultra {
		t.Errorf("expected recovery to %s, got %s", Ultra, c.Level())
	}
}

func TestHysteresisBand(t *testing.T) {
	opts := DefaultOptions()
	opts.Start = Medium
	opts.TargetFPS = 54
	c := NewController(opts)
	for i := 0; i < 1000; i++ {
		fps := 52.0
		if i%2 == 0 {
			fps = 56
		}
		if _, changed := c.Observe(1 / fps); changed {
			t.Fatalf("frame %d: level changed inside the hysteresis band", i)
		}
	}
}

func TestDisabledNeverChanges(t *testing.T) {
	opts := DefaultOptions()
	opts.Enabled = false
	c := NewController(opts)
	feed(c, 10, 300)
	if c.Level() != Ultra {
		t.Errorf("expected disabled controller to stay at %s, got %s", Ultra, c.Level())
	}
	if c.FPS() > 20 {
		t.Errorf("expected average to track frames even when disabled, got %f", c.FPS())
	}
}

func TestBoundsAndStart(t *testing.T) {
	opts := DefaultOptions()
	opts.Min, opts.Max, opts.Start = High, Medium, Low
	c := NewController(opts)
	if c.Level() != Medium {
		t.Errorf("expected start clamped to %s, got %s", Medium, c.Level())
	}
	feed(c, 10, 300)
	if c.Level() != Medium {
		t.Errorf("expected level to stay at min %s, got %s", Medium, c.Level())
	}
	c.Observe(0)
	c.Observe(-1)
}

func TestSettings(t *testing.T) {
	if s := Low.Settings(); s.Lighting || s.Specular || s.Vignette || s.PixelScale != 0.6 {
		t.Errorf("unexpected low settings %+v", s)
	}
	if s := Ultra.Settings(); !s.Specular || s.PixelScale != 1 {
		t.Errorf("unexpected ultra settings %+v", s)
	}
	if Level(42).Settings() != Ultra.Settings() {
		t.Error("out of range level should clamp")
	}
	for l := Low; l < Ultra; l++ {
		if l.Settings().PixelScale >= (l + 1).Settings().PixelScale {
			t.Errorf("pixel scale should grow with level at %s", l)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for l := Low; l <= Ultra; l++ {
		got, err := ParseLevel(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLevel(%q) = %v, %v", l.String(), got, err)
		}
	}
	if _, err := ParseLevel("extreme"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestSetLevelClampsAndHolds(t *testing.T) {
	opts := DefaultOptions()
	opts.Min = Medium
	c := NewController(opts)
	if got := c.SetLevel(Low); got != Medium {
		t.Errorf("expected clamp to %s, got %s", Medium, got)
	}
	if got := c.SetLevel(Level(99)); got != Ultra {
		t.Errorf("expected clamp to %s, got %s", Ultra, got)
	}
}

func TestSetLevelSlowFramesNeverRaise(t *testing.T) {
	c := NewController(DefaultOptions())
	c.SetLevel(Low)
	for i := 0; i < 300; i++ {
		if l, _ := c.Observe(1.0 / 20); l != Low {
			t.Fatalf("frame %d: expected %s under 20 fps, got %s", i, Low, l)
		}
	}
}

func TestSetLevelRestartsCooldown(t *testing.T) {
	opts := DefaultOptions()
	c := NewController(opts)
	c.SetLevel(Low)
	changes := feed(c, 60, opts.Cooldown+1)
	if len(changes) != 1 || changes[0] != opts.Cooldown {
		t.Errorf("expected one change at frame %d, got %v", opts.Cooldown, changes)
	}
	if c.Level() != Medium {
		t.Errorf("expected %s, got %s", Medium, c.Level())
	}
}
