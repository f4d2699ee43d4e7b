package engine

import (
	"image"
	"image/color"
	"math"

	"github.com/san-kum/lattice/internal/config"
	"github.com/san-kum/lattice/internal/device"
	"github.com/san-kum/lattice/internal/lattice"
	"github.com/san-kum/lattice/internal/physics"
	"github.com/san-kum/lattice/internal/render"
)

// lowPowerSpacing is the planar spacing on low-power devices, as a fraction
// of the viewport height.
const lowPowerSpacing = 0.02

// State is everything one animation instance owns. It is rebuilt from
// scratch on every resize.
type State struct {
	Mode          string
	Width, Height int

	Lattice    *lattice.Lattice
	Params     physics.Params
	Cursor     physics.Cursor
	Pick       physics.Pick
	Clock      *physics.Clock
	Rotation   *render.Rotation
	Camera     render.Camera
	Projection render.Projection

	// Planar intro wave.
	WaveForce   float64
	WavePending bool
	WaveDelay   float64
	Elapsed     float64

	// Host-independent bitmaps, uploaded lazily to the drawing surface.
	dotBitmap      *image.RGBA
	dotSize        int
	vignetteBitmap *image.RGBA

	// hadInside is the drag history; hasLast survives a leave so the
	// cursor can come back where it left.
	hadInside    bool
	hasLast      bool
	lastX, lastY float64
}

// build lays out a fresh lattice and its bitmaps for a w x h surface.
// Rotation survives rebuilds so a resize does not snap the sphere back.
func build(cfg *config.Config, caps device.Capabilities, w, h int, rot *render.Rotation, fg color.NRGBA) *State {
	st := &State{
		Mode:     cfg.Mode,
		Width:    w,
		Height:   h,
		Clock:    physics.NewClock(),
		Rotation: rot,
	}
	fw, fh := math.Max(1, float64(w)), math.Max(1, float64(h))

	switch cfg.Mode {
	case config.ModeSphere:
		buildSphere(st, cfg, fw, fh)
	default:
		buildPlanar(st, cfg, caps, fw, fh, fg)
	}
	st.Projection.Resize(st.Lattice.Count())
	return st
}

func buildPlanar(st *State, cfg *config.Config, caps device.Capabilities, w, h float64, fg color.NRGBA) {
	p := cfg.Planar
	st.Params = physics.Params{
		Stiffness:       p.Stiffness,
		AnchorStiffness: p.AnchorStiffness,
		Damping:         p.Damping,
		PointerForce:    p.PointerForce,
		PointerRadius:   p.PointerRadius,
		PointerFalloff:  p.PointerFalloff,
	}

	bands := render.DefaultBands(int(w), int(h))
	if p.SpacingRatio > 0 {
		spacing := w * p.SpacingRatio
		if caps.IsLowPower {
			spacing = h * lowPowerSpacing
		}
		st.Lattice = lattice.PlanarGrid(w, h, spacing)
		st.Params.PointerForce *= spacing
		st.Params.PointerRadius *= spacing
		st.WaveForce = p.IntroWave * spacing
		bands = render.SpacingBands(spacing)
	} else {
		st.Lattice = lattice.BuildPlanar(w, h, p.Cols, p.Rows)
		st.WaveForce = p.IntroWave
	}
	st.WavePending = st.WaveForce > 0
	st.WaveDelay = p.IntroDelay

	opacity := p.DotOpacity
	if caps.IsLowPower {
		opacity = math.Max(opacity, 0.85)
	}
	radius := st.Lattice.Spacing * p.DotRadius
	st.dotBitmap = render.NewDotSprite(radius, fg, opacity)
	st.dotSize = render.SpriteSize(radius)
	if p.Vignette > 0 {
		st.vignetteBitmap = render.NewVignette(int(w), int(h), p.Vignette, bands)
	}
}

func buildSphere(st *State, cfg *config.Config, w, h float64) {
	s := cfg.Sphere
	st.Camera = render.NewCamera(w, h)
	R := lattice.SphereRadius(w, h, s.SizeRel, st.Camera.Distance, st.Camera.Focal)
	st.Lattice = lattice.BuildSpherical(R, s.Cols, s.Rows)
	st.Params = physics.Params{
		Stiffness:       s.Stiffness,
		AnchorStiffness: s.AnchorStiffness,
		Damping:         s.Damping,
		PointerForce:    s.PointerForce,
		PointerRadius:   s.PointerRadius * R,
		PointerFalloff:  s.PointerFalloff,
	}
	if s.Vignette > 0 {
		st.vignetteBitmap = render.NewVignette(int(w), int(h), s.Vignette, render.DefaultBands(int(w), int(h)))
	}
}

func newRotation(cfg *config.Config) *render.Rotation {
	s := cfg.Sphere
	return render.NewRotation(render.RotationParams{
		AutoRotate:    s.AutoRotate,
		YawSpeed:      s.YawSpeed,
		PitchSpeed:    s.PitchSpeed,
		BasePitch:     s.BasePitch,
		Spring:        s.RotSpring,
		Friction:      s.RotFriction,
		DragGain:      s.DragGain,
		MaxYawSpeed:   s.MaxYawSpeed,
		MaxPitchSpeed: s.MaxPitchSpeed,
	})
}

// pointerMove updates the cursor from a surface-relative position. On the
// sphere, consecutive moves inside the surface drag the rotation.
func pointerMove(st *State, x, y float64, drag bool) {
	w, h := float64(st.Width), float64(st.Height)
	inside := x >= 0 && y >= 0 && x <= w && y <= h
	if !inside {
		pointerLeave(st)
		return
	}
	if st.Mode == config.ModeSphere && drag && st.hadInside {
		minDim := math.Max(1, math.Min(w, h))
		st.Rotation.Drag((x-st.lastX)/minDim, (y-st.lastY)/minDim)
	}
	st.lastX, st.lastY = x, y
	st.hadInside = true
	st.hasLast = true
	st.Cursor = physics.Cursor{X: x, Y: y, Active: true}
}

// pointerEnter re-activates the cursor at the last inside position without
// restoring drag history.
func pointerEnter(st *State) {
	if st.hasLast {
		st.Cursor = physics.Cursor{X: st.lastX, Y: st.lastY, Active: true}
	}
}

func pointerLeave(st *State) {
	st.Cursor.Active = false
	st.Pick.Active = false
	st.hadInside = false
}

// advance runs the fixed-step physics for one frame of length dt.
func advance(st *State, substeps int, dt float64) {
	switch st.Mode {
	case config.ModeSphere:
		st.Rotation.Advance(dt)
		st.Pick = physics.Pick{}
		if st.Cursor.Active {
			hit, ok := st.Camera.PickSphere(st.Rotation.Matrix(), st.Cursor.X, st.Cursor.Y, st.Lattice.Radius)
			st.Pick = physics.Pick{Point: hit, Active: ok}
		}
		for i := 0; i < substeps; i++ {
			physics.StepSpherical(st.Lattice, st.Params, st.Pick, physics.FixedDt)
		}
	default:
		st.Elapsed += dt
		if st.WavePending && st.Elapsed >= st.WaveDelay {
			wave(st)
		}
		for i := 0; i < substeps; i++ {
			physics.StepPlanar(st.Lattice, st.Params, st.Cursor, physics.FixedDt)
		}
	}
}

// wave kicks the planar lattice outward from the centre of the surface.
func wave(st *State) {
	st.WavePending = false
	if st.Mode == config.ModeSphere || st.WaveForce <= 0 {
		return
	}
	w, h := float64(st.Width), float64(st.Height)
	physics.Impulse(st.Lattice, w*0.5, h*0.5, st.WaveForce, math.Max(w, h)*0.8)
}

func project(st *State) {
	if st.Mode == config.ModeSphere {
		render.ProjectSphere(st.Lattice, st.Rotation.Matrix(), st.Camera, &st.Projection)
		return
	}
	render.ProjectPlanar(st.Lattice, &st.Projection)
}
