package device

import "testing"

func TestEffectivePixelRatio(t *testing.T) {
	tests := []struct {
		name  string
		limit float64
		ratio float64
		want  float64
	}{
		{"below cap", 2, 1.5, 1.5},
		{"above cap", 2, 3, 2},
		{"zero cap uses default", 0, 3, DefaultPixelDensityCap},
		{"zero ratio", 2, 0, 1},
		{"negative ratio", 2, -2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Capabilities{PixelDensityCap: tt.limit}
			if got := c.EffectivePixelRatio(tt.ratio); got != tt.want {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		probe Probe
		want  Tier
	}{
		{Probe{ScreenWidth: 800, Cores: 4}, TierLow},
		{Probe{ScreenWidth: 800, Cores: 8}, TierMedium},
		{Probe{ScreenWidth: 1920, Cores: 6}, TierMedium},
		{Probe{ScreenWidth: 1920, Cores: 16}, TierHigh},
		{Probe{Cores: 16}, TierHigh},
	}
	for _, tt := range tests {
		if got := tt.probe.Classify(); got != tt.want {
			t.Errorf("%+v: expected %s, got %s", tt.probe, tt.want, got)
		}
	}
}

func TestDetect(t *testing.T) {
	env := func(v string) func(string) string {
		return func(k string) string {
			if k == LowPowerEnv {
				return v
			}
			return ""
		}
	}

	if c := Detect(Probe{Cores: 16, Env: env("")}); c.IsLowPower || c.PixelDensityCap != DefaultPixelDensityCap {
		t.Errorf("expected default capabilities, got %+v", c)
	}
	if c := Detect(Probe{Cores: 16, Env: env("true")}); !c.IsLowPower {
		t.Error("expected env to force low power")
	}
	if c := Detect(Probe{Cores: 16, Env: env("nonsense")}); c.IsLowPower {
		t.Error("unparseable env should be ignored")
	}
	if c := Detect(Probe{ForceLowPower: true, Cores: 16}); !c.IsLowPower {
		t.Error("expected flag to force low power")
	}
	c := Detect(Probe{ScreenWidth: 600, Cores: 2})
	if !c.IsLowPower || c.PixelDensityCap != 1 {
		t.Errorf("expected narrow low tier device, got %+v", c)
	}
}
