// Package trace records per-frame engine diagnostics from headless runs and
// stores them as run directories.
package trace

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/lattice/internal/engine"
	"github.com/san-kum/lattice/internal/metrics"
	"github.com/san-kum/lattice/internal/render"
)

type Sample struct {
	Frame           int
	Time            float64
	Substeps        int
	KineticEnergy   float64
	MaxDisplacement float64
	Drawn           int
	Level           int
}

// Recorder collects samples and feeds its metrics.
type Recorder struct {
	samples []Sample
	metrics []metrics.Metric
}

func NewRecorder(ms ...metrics.Metric) *Recorder {
	for _, m := range ms {
		m.Reset()
	}
	return &Recorder{metrics: ms}
}

func (r *Recorder) Observe(s engine.FrameStats, t float64) {
	r.samples = append(r.samples, Sample{
		Frame:           s.Frame,
		Time:            t,
		Substeps:        s.Substeps,
		KineticEnergy:   s.KineticEnergy,
		MaxDisplacement: s.MaxDisplacement,
		Drawn:           s.Drawn,
		Level:           int(s.Level),
	})
	for _, m := range r.metrics {
		m.Observe(s, t)
	}
}

func (r *Recorder) Samples() []Sample { return r.samples }

func (r *Recorder) Metrics() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Sweep is a synthetic pointer: it enters at Start, traces a Lissajous
// curve around the centre of a w x h surface and leaves at Stop (seconds).
type Sweep struct {
	Start, Stop float64
	Period      float64
}

func DefaultSweep() Sweep { return Sweep{Start: 0.5, Stop: 2.5, Period: 2} }

// At returns the pointer position at time t and whether it is on the surface.
func (s Sweep) At(t float64, w, h int) (x, y float64, active bool) {
	if t < s.Start || t >= s.Stop {
		return 0, 0, false
	}
	p := s.Period
	if p <= 0 {
		p = 1
	}
	phase := 2 * math.Pi * (t - s.Start) / p
	fw, fh := float64(w), float64(h)
	return fw * (0.5 + 0.3*math.Sin(phase)), fh * (0.5 + 0.3*math.Sin(2*phase)), true
}

type RunOptions struct {
	Frames    int
	FrameRate float64
	// Pointer drives the synthetic sweep when non-nil.
	Pointer *Sweep
	// OnFrame is called after frame i has been drawn.
	OnFrame func(i int)
}

// Run drives eng for opts.Frames frames on s at a fixed frame rate and
// records every frame. Cancelling ctx stops the run; rec keeps the frames
// recorded so far.
func Run(ctx context.Context, eng *engine.Engine, s render.Surface, rec *Recorder, opts RunOptions) error {
	if opts.Frames <= 0 {
		return ErrNoFrames
	}
	rate := opts.FrameRate
	if rate <= 0 {
		rate = 60
	}
	w, h := s.Size()
	if ew, eh := eng.Size(); ew != w || eh != h {
		eng.Resize(w, h)
	}
	inside := false

	for i := 0; i < opts.Frames; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("trace run stopped at frame %d: %w", i, ctx.Err())
		default:
		}

		t := float64(i) / rate
		if opts.Pointer != nil {
			x, y, on := opts.Pointer.At(t, w, h)
			switch {
			case on:
				if !inside {
					eng.PointerEnter()
				}
				eng.PointerMove(x, y)
			case inside:
				eng.PointerLeave()
			}
			inside = on
		}
		rec.Observe(eng.Frame(t, s), t)
		if opts.OnFrame != nil {
			opts.OnFrame(i)
		}
	}
	return nil
}

// Series extracts one column of samples.
func Series(samples []Sample, field func(Sample) float64) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = field(s)
	}
	return out
}

func KineticEnergy(s Sample) float64   { return s.KineticEnergy }
func MaxDisplacement(s Sample) float64 { return s.MaxDisplacement }
