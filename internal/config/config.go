package config

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/lattice/internal/quality"
	"gopkg.in/yaml.v3"
)

const (
	ModePlanar = "planar"
	ModeSphere = "sphere"
)

const (
	DefaultPlanarCols       = 80
	DefaultPlanarRows       = 45
	DefaultPlanarStiffness  = 100.0
	DefaultPlanarAnchor     = 10.0
	DefaultPlanarDamping    = 4.0
	DefaultPlanarForce      = 3000.0
	DefaultPlanarRadius     = 400.0
	DefaultPlanarFalloff    = 3.0
	DefaultDotRadiusRatio   = 0.075
	DefaultDotOpacity       = 0.5
	DefaultVignetteStrength = 1.0
	DefaultIntroDelay       = 0.1

	DefaultSphereCols      = 32
	DefaultSphereRows      = 24
	DefaultSizeRel         = 0.62
	DefaultSphereStiffness = 80.0
	DefaultSphereAnchor    = 15.0
	DefaultSphereDamping   = 3.5
	DefaultSphereForce     = 2800.0
	DefaultSphereRadiusRel = 0.55
	DefaultSphereFalloff   = 2.5
	DefaultPointSize       = 2.0
	DefaultPointOpacity    = 0.85
	DefaultYawSpeed        = 0.08
	DefaultBasePitch       = -0.25
	DefaultRotSpring       = 1.2
	DefaultRotFriction     = 0.25
	DefaultDragGain        = 3.0

	DefaultFrameRate = 60.0
	DefaultFrames    = 300
)

type Config struct {
	Mode    string        `yaml:"mode"`
	Planar  PlanarConfig  `yaml:"planar"`
	Sphere  SphereConfig  `yaml:"sphere"`
	Pointer PointerConfig `yaml:"pointer"`
	Render  RenderConfig  `yaml:"render"`
	Quality QualityConfig `yaml:"quality"`
	Clock   ClockConfig   `yaml:"clock"`
}

// PlanarConfig describes the flat crystal lattice. With SpacingRatio zero
// the grid has a fixed Cols x Rows stretched across the width. Otherwise
// the spacing is SpacingRatio of the width, the grid grows to cover the
// viewport, and PointerForce, PointerRadius, IntroWave and the vignette
// bands are all multiples of the spacing.
type PlanarConfig struct {
	Cols            int     `yaml:"cols"`
	Rows            int     `yaml:"rows"`
	SpacingRatio    float64 `yaml:"spacing_ratio"`
	Stiffness       float64 `yaml:"stiffness"`
	AnchorStiffness float64 `yaml:"anchor_stiffness"`
	Damping         float64 `yaml:"damping"`
	PointerForce    float64 `yaml:"pointer_force"`
	PointerRadius   float64 `yaml:"pointer_radius"`
	PointerFalloff  float64 `yaml:"pointer_falloff"`
	DotRadius       float64 `yaml:"dot_radius"`
	DotOpacity      float64 `yaml:"dot_opacity"`
	Vignette        float64 `yaml:"vignette"`
	IntroWave       float64 `yaml:"intro_wave"`
	IntroDelay      float64 `yaml:"intro_delay"`
}

// SphereConfig describes the spherical lattice. PointerRadius is relative
// to the sphere radius.
type SphereConfig struct {
	Cols            int     `yaml:"cols"`
	Rows            int     `yaml:"rows"`
	SizeRel         float64 `yaml:"size_rel"`
	Stiffness       float64 `yaml:"stiffness"`
	AnchorStiffness float64 `yaml:"anchor_stiffness"`
	Damping         float64 `yaml:"damping"`
	PointerForce    float64 `yaml:"pointer_force"`
	PointerRadius   float64 `yaml:"pointer_radius"`
	PointerFalloff  float64 `yaml:"pointer_falloff"`
	PointSize       float64 `yaml:"point_size"`
	Opacity         float64 `yaml:"opacity"`
	Vignette        float64 `yaml:"vignette"`
	AutoRotate      bool    `yaml:"auto_rotate"`
	YawSpeed        float64 `yaml:"yaw_speed"`
	PitchSpeed      float64 `yaml:"pitch_speed"`
	BasePitch       float64 `yaml:"base_pitch"`
	RotSpring       float64 `yaml:"rot_spring"`
	RotFriction     float64 `yaml:"rot_friction"`
	DragGain        float64 `yaml:"drag_gain"`
	MaxYawSpeed     float64 `yaml:"max_yaw_speed"`
	MaxPitchSpeed   float64 `yaml:"max_pitch_speed"`
}

type PointerConfig struct {
	Enabled bool `yaml:"enabled"`
	// Drag lets pointer motion over the sphere spin it.
	Drag bool `yaml:"drag"`
}

type RenderConfig struct {
	Color             string     `yaml:"color"`
	Background        string     `yaml:"background"`
	Lighting          bool       `yaml:"lighting"`
	DepthBoost        float64    `yaml:"depth_boost"`
	Lambert           float64    `yaml:"lambert"`
	SpecularPower     float64    `yaml:"specular_power"`
	SpecularIntensity float64    `yaml:"specular_intensity"`
	RimIntensity      float64    `yaml:"rim_intensity"`
	RimPower          float64    `yaml:"rim_power"`
	Light             [3]float64 `yaml:"light,flow"`
}

type QualityConfig struct {
	Adaptive bool    `yaml:"adaptive"`
	Start    string  `yaml:"start"`
	Min      string  `yaml:"min"`
	Max      string  `yaml:"max"`
	DownFPS  float64 `yaml:"down_fps"`
	UpFPS    float64 `yaml:"up_fps"`
	Cooldown int     `yaml:"cooldown"`
}

// ClockConfig paces hosts and headless runs.
type ClockConfig struct {
	FrameRate float64 `yaml:"frame_rate"`
	Frames    int     `yaml:"frames"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode: ModePlanar,
		Planar: PlanarConfig{
			Cols:            DefaultPlanarCols,
			Rows:            DefaultPlanarRows,
			Stiffness:       DefaultPlanarStiffness,
			AnchorStiffness: DefaultPlanarAnchor,
			Damping:         DefaultPlanarDamping,
			PointerForce:    DefaultPlanarForce,
			PointerRadius:   DefaultPlanarRadius,
			PointerFalloff:  DefaultPlanarFalloff,
			DotRadius:       DefaultDotRadiusRatio,
			DotOpacity:      DefaultDotOpacity,
			Vignette:        DefaultVignetteStrength,
			IntroDelay:      DefaultIntroDelay,
		},
		Sphere: SphereConfig{
			Cols:            DefaultSphereCols,
			Rows:            DefaultSphereRows,
			SizeRel:         DefaultSizeRel,
			Stiffness:       DefaultSphereStiffness,
			AnchorStiffness: DefaultSphereAnchor,
			Damping:         DefaultSphereDamping,
			PointerForce:    DefaultSphereForce,
			PointerRadius:   DefaultSphereRadiusRel,
			PointerFalloff:  DefaultSphereFalloff,
			PointSize:       DefaultPointSize,
			Opacity:         DefaultPointOpacity,
			AutoRotate:      true,
			YawSpeed:        DefaultYawSpeed,
			BasePitch:       DefaultBasePitch,
			RotSpring:       DefaultRotSpring,
			RotFriction:     DefaultRotFriction,
			DragGain:        DefaultDragGain,
		},
		Pointer: PointerConfig{Enabled: true, Drag: true},
		Render: RenderConfig{
			Color:             "#ffffff",
			Background:        "#000000",
			Lighting:          true,
			DepthBoost:        0.65,
			Lambert:           0.4,
			SpecularPower:     24,
			SpecularIntensity: 0.55,
			RimIntensity:      0.2,
			RimPower:          2,
			Light:             [3]float64{0.4, 0.6, 1},
		},
		Quality: QualityConfig{
			Adaptive: true,
			Start:    quality.Ultra.String(),
			Min:      quality.Low.String(),
			Max:      quality.Ultra.String(),
			DownFPS:  50,
			UpFPS:    58,
			Cooldown: 30,
		},
		Clock: ClockConfig{
			FrameRate: DefaultFrameRate,
			Frames:    DefaultFrames,
		},
	}
}

// Load reads a YAML file over the defaults, then sanitizes and validates it.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay reads a YAML file over cfg; keys absent from the file keep their
// current values.
func Overlay(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func atLeast(v, lo float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	return v
}

// Sanitize clamps numeric fields into ranges the engine can run with.
func (c *Config) Sanitize() {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))

	p := &c.Planar
	p.Cols = max(p.Cols, 2)
	p.Rows = max(p.Rows, 2)
	p.SpacingRatio = clamp(p.SpacingRatio, 0, 0.5)
	p.Stiffness = atLeast(p.Stiffness, 0)
	p.AnchorStiffness = atLeast(p.AnchorStiffness, 0)
	p.Damping = atLeast(p.Damping, 0)
	p.PointerForce = atLeast(p.PointerForce, 0)
	p.PointerRadius = atLeast(p.PointerRadius, 1e-3)
	p.PointerFalloff = atLeast(p.PointerFalloff, 0.1)
	p.DotRadius = clamp(p.DotRadius, 0.001, 0.5)
	p.DotOpacity = clamp(p.DotOpacity, 0, 1)
	p.Vignette = clamp(p.Vignette, 0, 1)
	p.IntroWave = atLeast(p.IntroWave, 0)
	p.IntroDelay = atLeast(p.IntroDelay, 0)

	s := &c.Sphere
	s.Cols = max(s.Cols, 8)
	s.Rows = max(s.Rows, 6)
	s.SizeRel = clamp(s.SizeRel, 0.05, 0.95)
	s.Stiffness = atLeast(s.Stiffness, 0)
	s.AnchorStiffness = atLeast(s.AnchorStiffness, 0)
	s.Damping = atLeast(s.Damping, 0)
	s.PointerForce = atLeast(s.PointerForce, 0)
	s.PointerRadius = clamp(s.PointerRadius, 0.05, 2)
	s.PointerFalloff = atLeast(s.PointerFalloff, 0.1)
	s.PointSize = atLeast(s.PointSize, 0.5)
	s.Opacity = clamp(s.Opacity, 0, 1)
	s.Vignette = clamp(s.Vignette, 0, 1)
	s.RotSpring = atLeast(s.RotSpring, 0)
	s.RotFriction = atLeast(s.RotFriction, 0)
	s.DragGain = atLeast(s.DragGain, 0)
	s.MaxYawSpeed = atLeast(s.MaxYawSpeed, 0)
	s.MaxPitchSpeed = atLeast(s.MaxPitchSpeed, 0)

	r := &c.Render
	r.DepthBoost = atLeast(r.DepthBoost, 0)
	r.Lambert = clamp(r.Lambert, 0, 1)
	r.SpecularPower = atLeast(r.SpecularPower, 1)
	r.SpecularIntensity = atLeast(r.SpecularIntensity, 0)
	r.RimIntensity = atLeast(r.RimIntensity, 0)
	r.RimPower = atLeast(r.RimPower, 0.1)
	if r.Light == [3]float64{} {
		r.Light = [3]float64{0, 0, 1}
	}

	q := &c.Quality
	q.DownFPS = atLeast(q.DownFPS, 1)
	q.UpFPS = atLeast(q.UpFPS, q.DownFPS)
	q.Cooldown = max(q.Cooldown, 0)

	c.Clock.FrameRate = clamp(c.Clock.FrameRate, 1, 480)
	c.Clock.Frames = max(c.Clock.Frames, 1)
}

// Validate reports settings that cannot be clamped into something usable.
func (c *Config) Validate() error {
	if c.Mode != ModePlanar && c.Mode != ModeSphere {
		return &FieldError{Field: "mode", Value: c.Mode, Wrapped: ErrUnknownMode}
	}
	if _, err := ParseColor(c.Render.Color); err != nil {
		return &FieldError{Field: "render.color", Value: c.Render.Color, Wrapped: err}
	}
	if _, err := ParseColor(c.Render.Background); err != nil {
		return &FieldError{Field: "render.background", Value: c.Render.Background, Wrapped: err}
	}
	levels := []struct{ field, name string }{
		{"quality.start", c.Quality.Start},
		{"quality.min", c.Quality.Min},
		{"quality.max", c.Quality.Max},
	}
	for _, l := range levels {
		if _, err := quality.ParseLevel(l.name); err != nil {
			return &FieldError{Field: l.field, Value: l.name, Wrapped: ErrUnknownLevel}
		}
	}
	return nil
}

// QualityOptions converts the quality section. Low-power devices start one
// level lower. Unparseable names fall back to the defaults.
func (c *Config) QualityOptions(lowPower bool) quality.Options {
	o := quality.DefaultOptions()
	o.Enabled = c.Quality.Adaptive
	o.DownFPS = c.Quality.DownFPS
	o.UpFPS = c.Quality.UpFPS
	o.Cooldown = c.Quality.Cooldown
	o.TargetFPS = c.Clock.FrameRate
	if l, err := quality.ParseLevel(c.Quality.Start); err == nil {
		o.Start = l
	}
	if l, err := quality.ParseLevel(c.Quality.Min); err == nil {
		o.Min = l
	}
	if l, err := quality.ParseLevel(c.Quality.Max); err == nil {
		o.Max = l
	}
	if lowPower && o.Start > o.Min {
		o.Start--
	}
	return o
}

// ParseColor accepts #rgb, #rrggbb and #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, ErrInvalidColor
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, ErrInvalidColor
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
