package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]func() *Config{
	// Fixed 80x45 grid stretched across the width.
	"crystal": DefaultConfig,

	// Density follows the viewport; a radial wave kicks the grid on start.
	"crystal-fluid": func() *Config {
		c := DefaultConfig()
		c.Planar.SpacingRatio = 0.015
		c.Planar.Stiffness = 90
		c.Planar.AnchorStiffness = 8
		c.Planar.Damping = 6
		c.Planar.PointerForce = 200
		c.Planar.PointerRadius = 20
		c.Planar.PointerFalloff = 2
		c.Planar.DotRadius = 0.05
		c.Planar.DotOpacity = 0.7
		c.Planar.IntroWave = 400
		return c
	},

	"sphere": func() *Config {
		c := DefaultConfig()
		c.Mode = ModeSphere
		return c
	},

	"sphere-still": func() *Config {
		c := DefaultConfig()
		c.Mode = ModeSphere
		c.Sphere.AutoRotate = false
		return c
	},

	"sphere-low": func() *Config {
		c := DefaultConfig()
		c.Mode = ModeSphere
		c.Sphere.Cols = 24
		c.Sphere.Rows = 16
		c.Render.Lighting = false
		c.Quality.Max = "medium"
		c.Quality.Start = "medium"
		return c
	},
}

// GetPreset returns a fresh copy of the named preset.
func GetPreset(name string) (*Config, error) {
	build, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return build(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
