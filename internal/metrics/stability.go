package metrics

import (
	"math"

	"github.com/san-kum/lattice/internal/engine"
)

// Stability is the fraction of frames whose displacement stayed finite and
// under the threshold.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(st engine.FrameStats, _ float64) {
	s.samples++
	d := st.MaxDisplacement
	if math.IsNaN(d) || math.IsInf(d, 0) || math.IsNaN(st.KineticEnergy) || d > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1
	}
	return 1 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
