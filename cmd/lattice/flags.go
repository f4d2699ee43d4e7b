package main

import (
	"fmt"

	"github.com/san-kum/lattice/internal/config"
	"github.com/san-kum/lattice/internal/quality"
	"github.com/spf13/cobra"
)

// overrides are the config values settable from the command line.
type overrides struct {
	mode       string
	cols, rows int
	color      string
	background string
	lighting   bool
	pointer    bool
	adaptive   bool
	level      string
	autoRotate bool
	vignette   float64
}

func (o *overrides) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.mode, "mode", config.ModePlanar, "lattice mode (planar, sphere)")
	f.IntVar(&o.cols, "cols", 0, "grid columns")
	f.IntVar(&o.rows, "rows", 0, "grid rows")
	f.StringVar(&o.color, "color", "#ffffff", "dot colour")
	f.StringVar(&o.background, "background", "#000000", "background colour")
	f.BoolVar(&o.lighting, "lighting", true, "sphere lighting")
	f.BoolVar(&o.pointer, "pointer", true, "pointer interaction")
	f.BoolVar(&o.adaptive, "adaptive", true, "adaptive quality")
	f.StringVar(&o.level, "quality", "high", "starting quality level (low, medium, high, ultra)")
	f.BoolVar(&o.autoRotate, "auto-rotate", true, "sphere auto-rotation")
	f.Float64Var(&o.vignette, "vignette", 1, "vignette strength")
}

// apply copies flags the user set onto cfg. Unset flags leave the preset
// and config file values alone.
func (o *overrides) apply(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("mode") {
		cfg.Mode = o.mode
	}
	if f.Changed("cols") {
		cfg.Planar.Cols, cfg.Sphere.Cols = o.cols, o.cols
	}
	if f.Changed("rows") {
		cfg.Planar.Rows, cfg.Sphere.Rows = o.rows, o.rows
	}
	if f.Changed("color") {
		cfg.Render.Color = o.color
	}
	if f.Changed("background") {
		cfg.Render.Background = o.background
	}
	if f.Changed("lighting") {
		cfg.Render.Lighting = o.lighting
	}
	if f.Changed("pointer") {
		cfg.Pointer.Enabled = o.pointer
	}
	if f.Changed("adaptive") {
		cfg.Quality.Adaptive = o.adaptive
	}
	if f.Changed("quality") {
		if _, err := quality.ParseLevel(o.level); err != nil {
			return fmt.Errorf("--quality: %w", err)
		}
		cfg.Quality.Start = o.level
	}
	if f.Changed("auto-rotate") {
		cfg.Sphere.AutoRotate = o.autoRotate
	}
	if f.Changed("vignette") {
		cfg.Planar.Vignette, cfg.Sphere.Vignette = o.vignette, o.vignette
	}
	cfg.Sanitize()
	return cfg.Validate()
}

// resolve loads the preset and config file, then applies o.
func (o *overrides) resolve(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	cfg, name, err := loadConfig(args)
	if err != nil {
		return nil, "", err
	}
	if err := o.apply(cmd, cfg); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}
