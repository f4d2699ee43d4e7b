// Package engine composes the lattice, physics, render and quality packages
// into one animation instance driven by a host frame loop.
//
// An Engine is not safe for concurrent use. Hosts call Resize, the pointer
// methods and Frame from the same goroutine.
package engine

import (
	"image/color"
	"math"

	"github.com/san-kum/lattice/internal/config"
	"github.com/san-kum/lattice/internal/device"
	"github.com/san-kum/lattice/internal/lattice"
	"github.com/san-kum/lattice/internal/physics"
	"github.com/san-kum/lattice/internal/quality"
	"github.com/san-kum/lattice/internal/render"
	"github.com/san-kum/lattice/internal/vmath"
)

type FrameStats struct {
	Frame           int
	Substeps        int
	FrameTime       float64
	FPS             float64
	KineticEnergy   float64
	MaxDisplacement float64
	Drawn           int
	Level           quality.Level
	LevelChanged    bool
}

type Engine struct {
	cfg  *config.Config
	caps device.Capabilities

	state    *State
	rotation *render.Rotation
	quality  *quality.Controller
	style    render.SphereStyle
	fg, bg   color.NRGBA

	// Handles uploaded to the surface that last drew a frame.
	surface  render.Surface
	dot      render.Sprite
	vignette render.Image
	dirty    bool

	started bool
	lastNow float64
	stats   FrameStats
}

// New sanitizes a copy of cfg and builds an engine around it. Invalid
// colours fall back to white on black.
func New(cfg *config.Config, caps device.Capabilities) *Engine {
	c := *cfg
	c.Sanitize()
	if c.Mode != config.ModePlanar && c.Mode != config.ModeSphere {
		c.Mode = config.ModePlanar
	}

	fg, err := config.ParseColor(c.Render.Color)
	if err != nil {
		fg = color.NRGBA{255, 255, 255, 255}
	}
	bg, err := config.ParseColor(c.Render.Background)
	if err != nil {
		bg = color.NRGBA{0, 0, 0, 255}
	}

	r := c.Render
	e := &Engine{
		cfg:      &c,
		caps:     caps,
		rotation: newRotation(&c),
		quality:  quality.NewController(c.QualityOptions(caps.IsLowPower)),
		fg:       fg,
		bg:       bg,
		style: render.SphereStyle{
			Color:     fg,
			PointSize: c.Sphere.PointSize,
			Opacity:   c.Sphere.Opacity,
			Shading: render.Shading{
				DepthBoost:        r.DepthBoost,
				Lambert:           r.Lambert,
				SpecularPower:     r.SpecularPower,
				SpecularIntensity: r.SpecularIntensity,
				RimIntensity:      r.RimIntensity,
				RimPower:          r.RimPower,
				Light:             vmath.Vec3{X: r.Light[0], Y: r.Light[1], Z: r.Light[2]}.Normalize(),
			},
		},
	}
	e.stats.Level = e.quality.Level()
	e.Resize(1, 1)
	return e
}

func (e *Engine) Config() *config.Config           { return e.cfg }
func (e *Engine) Capabilities() device.Capabilities { return e.caps }
func (e *Engine) State() *State                     { return e.state }
func (e *Engine) Lattice() *lattice.Lattice         { return e.state.Lattice }
func (e *Engine) Rotation() *render.Rotation        { return e.rotation }
func (e *Engine) Stats() FrameStats                 { return e.stats }
func (e *Engine) Level() quality.Level              { return e.quality.Level() }
func (e *Engine) Background() color.NRGBA           { return e.bg }
func (e *Engine) Foreground() color.NRGBA           { return e.fg }
func (e *Engine) SphereStyle() render.SphereStyle   { return e.style }

// Size is the surface size the lattice was last built for.
func (e *Engine) Size() (int, int) { return e.state.Width, e.state.Height }

// Resize rebuilds the whole instance for a w x h surface. Pointer state is
// dropped and previously uploaded bitmaps are released.
func (e *Engine) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	e.release()
	e.state = build(e.cfg, e.caps, w, h, e.rotation, e.fg)
	e.dirty = true
	e.started = false
}

func (e *Engine) PointerMove(x, y float64) {
	if !e.cfg.Pointer.Enabled {
		return
	}
	pointerMove(e.state, x, y, e.cfg.Pointer.Drag)
}

// PointerEnter re-activates the cursor at its last known position.
func (e *Engine) PointerEnter() {
	if e.cfg.Pointer.Enabled {
		pointerEnter(e.state)
	}
}

func (e *Engine) PointerLeave() { pointerLeave(e.state) }

// Wave sends a radial impulse through a planar lattice, or spins a sphere.
func (e *Engine) Wave() {
	if e.state.Mode == config.ModeSphere {
		e.rotation.Drag(0.25, 0)
		return
	}
	wave(e.state)
}

// SetLevel forces the quality level, clamped to the configured range. The
// controller adapts from there after its cooldown.
func (e *Engine) SetLevel(l quality.Level) { e.stats.Level = e.quality.SetLevel(l) }

// Frame advances the simulation to now (seconds on a monotonic clock) and
// draws onto s. A surface whose size differs from the last Resize triggers
// a rebuild first.
func (e *Engine) Frame(now float64, s render.Surface) FrameStats {
	w, h := s.Size()
	if w != e.state.Width || h != e.state.Height {
		e.Resize(w, h)
	}
	st := e.state

	var raw float64
	if e.started {
		raw = now - e.lastNow
	}
	e.started = true
	e.lastNow = now
	dt := vmath.Clamp(raw, 0, physics.MaxFrameDt)

	stats := FrameStats{Frame: e.stats.Frame + 1, FrameTime: raw, Level: e.stats.Level}
	if raw > 0 {
		if l, changed := e.quality.Observe(raw); changed {
			stats.Level = l
			stats.LevelChanged = true
		}
	}
	stats.FPS = e.quality.FPS()

	stats.Substeps = st.Clock.Advance(now)
	advance(st, stats.Substeps, dt)
	project(st)

	if w > 0 && h > 0 {
		e.upload(s)
		stats.Drawn = e.draw(s, stats.Level.Settings())
	}

	stats.KineticEnergy = physics.KineticEnergy(st.Lattice)
	stats.MaxDisplacement = physics.MaxDisplacement(st.Lattice)
	e.stats = stats
	return stats
}

func (e *Engine) draw(s render.Surface, q quality.Settings) int {
	var vig render.Image
	if q.Vignette {
		vig = e.vignette
	}
	if e.state.Mode == config.ModeSphere {
		style := e.style
		style.Lighting = e.cfg.Render.Lighting && q.Lighting
		style.Specular = q.Specular
		return render.DrawSphere(s, &e.state.Projection, e.state.Lattice.Radius, style, vig)
	}
	return render.DrawPlanar(s, e.state.Lattice, e.dot, vig)
}

// upload moves the state's bitmaps onto s when they changed or the
// surface did.
func (e *Engine) upload(s render.Surface) {
	if !e.dirty && e.surface == s {
		return
	}
	e.release()
	e.surface = s
	if b := e.state.dotBitmap; b != nil {
		e.dot = render.Sprite{Image: s.Upload(b), Size: e.state.dotSize}
	}
	if b := e.state.vignetteBitmap; b != nil {
		e.vignette = s.Upload(b)
	}
	e.dirty = false
}

func (e *Engine) release() {
	if e.surface == nil {
		return
	}
	if e.dot.Image != nil {
		e.surface.Release(e.dot.Image)
	}
	if e.vignette != nil {
		e.surface.Release(e.vignette)
	}
	e.dot = render.Sprite{}
	e.vignette = nil
	e.surface = nil
	e.dirty = true
}

// Close releases every bitmap held on the last surface.
func (e *Engine) Close() { e.release() }

// PixelScale is the render resolution multiplier for the current quality
// level combined with the capped device pixel ratio.
func (e *Engine) PixelScale(deviceRatio float64) float64 {
	return math.Max(0.1, e.stats.Level.Settings().PixelScale*e.caps.EffectivePixelRatio(deviceRatio))
}
