// Package metrics reduces per-frame engine statistics to scalar summaries.
package metrics

import (
	"math"

	"github.com/san-kum/lattice/internal/engine"
)

// Metric observes one frame at a time.
type Metric interface {
	Name() string
	Observe(s engine.FrameStats, t float64)
	Value() float64
	Reset()
}

// Defaults is the set recorded with every trace.
func Defaults(spacing float64) []Metric {
	return []Metric{
		NewPeakEnergy(),
		NewMeanEnergy(),
		NewPeakDisplacement(),
		NewSettleTime(1e-3),
		NewMeanSubsteps(),
		NewQualityChanges(),
		NewStability(10 * math.Max(spacing, 1)),
	}
}

type PeakEnergy struct{ peak float64 }

func NewPeakEnergy() *PeakEnergy { return &PeakEnergy{} }

func (m *PeakEnergy) Name() string { return "peak_energy" }
func (m *PeakEnergy) Observe(s engine.FrameStats, _ float64) {
	m.peak = math.Max(m.peak, s.KineticEnergy)
}
func (m *PeakEnergy) Value() float64 { return m.peak }
func (m *PeakEnergy) Reset()         { m.peak = 0 }

type MeanEnergy struct {
	total   float64
	samples int
}

func NewMeanEnergy() *MeanEnergy { return &MeanEnergy{} }

func (m *MeanEnergy) Name() string { return "mean_energy" }
func (m *MeanEnergy) Observe(s engine.FrameStats, _ float64) {
	m.total += s.KineticEnergy
	m.samples++
}
func (m *MeanEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}
func (m *MeanEnergy) Reset() { m.total, m.samples = 0, 0 }

type PeakDisplacement struct{ peak float64 }

func NewPeakDisplacement() *PeakDisplacement { return &PeakDisplacement{} }

func (m *PeakDisplacement) Name() string { return "peak_displacement" }
func (m *PeakDisplacement) Observe(s engine.FrameStats, _ float64) {
	m.peak = math.Max(m.peak, s.MaxDisplacement)
}
func (m *PeakDisplacement) Value() float64 { return m.peak }
func (m *PeakDisplacement) Reset()         { m.peak = 0 }

// SettleTime is the time after which kinetic energy stayed below the
// threshold for the rest of the run, or -1 while it has not settled.
type SettleTime struct {
	threshold float64
	since     float64
	settled   bool
}

func NewSettleTime(threshold float64) *SettleTime {
	return &SettleTime{threshold: threshold}
}

func (m *SettleTime) Name() string { return "settle_time" }

func (m *SettleTime) Observe(s engine.FrameStats, t float64) {
	if s.KineticEnergy > m.threshold {
		m.settled = false
		return
	}
	if !m.settled {
		m.settled = true
		m.since = t
	}
}

func (m *SettleTime) Value() float64 {
	if !m.settled {
		return -1
	}
	return m.since
}

func (m *SettleTime) Reset() { m.since, m.settled = 0, false }

type MeanSubsteps struct {
	total, frames int
}

func NewMeanSubsteps() *MeanSubsteps { return &MeanSubsteps{} }

func (m *MeanSubsteps) Name() string { return "mean_substeps" }
func (m *MeanSubsteps) Observe(s engine.FrameStats, _ float64) {
	m.total += s.Substeps
	m.frames++
}
func (m *MeanSubsteps) Value() float64 {
	if m.frames == 0 {
		return 0
	}
	return float64(m.total) / float64(m.frames)
}
func (m *MeanSubsteps) Reset() { m.total, m.frames = 0, 0 }

type QualityChanges struct{ n int }

func NewQualityChanges() *QualityChanges { return &QualityChanges{} }

func (m *QualityChanges) Name() string { return "quality_changes" }
func (m *QualityChanges) Observe(s engine.FrameStats, _ float64) {
	if s.LevelChanged {
		m.n++
	}
}
func (m *QualityChanges) Value() float64 { return float64(m.n) }
func (m *QualityChanges) Reset()         { m.n = 0 }
