// Package device describes what the host machine can afford. The host
// computes Capabilities once and hands them to the engine, which never
// probes the platform itself.
package device

import (
	"math"
	"os"
	"runtime"
	"strconv"
)

const (
	DefaultPixelDensityCap = 2.0
	// LowPowerEnv forces low-power mode when set to a true value.
	LowPowerEnv = "LATTICE_LOW_POWER"
	// NarrowScreenWidth is the monitor width below which a device counts as handheld.
	NarrowScreenWidth = 1024
)

type Capabilities struct {
	IsLowPower      bool
	PixelDensityCap float64
}

func Default() Capabilities {
	return Capabilities{PixelDensityCap: DefaultPixelDensityCap}
}

// EffectivePixelRatio caps the device pixel ratio. Non-positive ratios are
// treated as 1.
func (c Capabilities) EffectivePixelRatio(deviceRatio float64) float64 {
	if deviceRatio <= 0 || math.IsNaN(deviceRatio) {
		deviceRatio = 1
	}
	limit := c.PixelDensityCap
	if limit <= 0 {
		limit = DefaultPixelDensityCap
	}
	return math.Min(deviceRatio, limit)
}

type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	default:
		return "high"
	}
}

// Probe is the raw host information Detect works from.
type Probe struct {
	ForceLowPower bool
	ScreenWidth   int
	Cores         int
	Env           func(string) string
}

// LocalProbe reads the core count and environment of the current process.
func LocalProbe() Probe {
	return Probe{Cores: runtime.NumCPU(), Env: os.Getenv}
}

// Classify rates a machine: small screens with few cores are low, small
// screens or modest core counts are medium.
func (p Probe) Classify() Tier {
	narrow := p.ScreenWidth > 0 && p.ScreenWidth < NarrowScreenWidth
	switch {
	case narrow && p.Cores <= 4:
		return TierLow
	case narrow || p.Cores <= 6:
		return TierMedium
	default:
		return TierHigh
	}
}

// Detect derives capabilities from a probe. Low power is on when forced,
// when the environment says so, or on narrow screens.
func Detect(p Probe) Capabilities {
	c := Default()
	if p.ForceLowPower {
		c.IsLowPower = true
	}
	if p.Env != nil {
		if v, err := strconv.ParseBool(p.Env(LowPowerEnv)); err == nil {
			c.IsLowPower = c.IsLowPower || v
		}
	}
	if p.ScreenWidth > 0 && p.ScreenWidth < NarrowScreenWidth {
		c.IsLowPower = true
	}
	if p.Classify() == TierLow {
		c.PixelDensityCap = 1
	}
	return c
}
