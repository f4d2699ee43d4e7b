package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/lattice/internal/engine"
)

func feed(m Metric, ke []float64) {
	for i, e := range ke {
		m.Observe(engine.FrameStats{KineticEnergy: e, MaxDisplacement: e, Substeps: i % 3}, float64(i))
	}
}

func TestEnergyMetrics(t *testing.T) {
	ke := []float64{0, 4, 2, 0}
	peak, mean := NewPeakEnergy(), NewMeanEnergy()
	feed(peak, ke)
	feed(mean, ke)
	if peak.Value() != 4 {
		t.Errorf("expected peak 4, got %f", peak.Value())
	}
	if mean.Value() != 1.5 {
		t.Errorf("expected mean 1.5, got %f", mean.Value())
	}
	mean.Reset()
	if mean.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", mean.Value())
	}
}

func TestSettleTime(t *testing.T) {
	m := NewSettleTime(0.5)
	feed(m, []float64{0, 3, 1, 0.2, 0.1})
	if m.Value() != 3 {
		t.Errorf("expected settle at t=3, got %f", m.Value())
	}
	feed(m, []float64{2})
	if m.Value() != -1 {
		t.Errorf("expected unsettled after a new spike, got %f", m.Value())
	}
}

func TestMeanSubsteps(t *testing.T) {
	m := NewMeanSubsteps()
	feed(m, []float64{0, 0, 0})
	if m.Value() != 1 {
		t.Errorf("expected mean 1, got %f", m.Value())
	}
}

func TestQualityChanges(t *testing.T) {
	m := NewQualityChanges()
	m.Observe(engine.FrameStats{LevelChanged: true}, 0)
	m.Observe(engine.FrameStats{}, 1)
	m.Observe(engine.FrameStats{LevelChanged: true}, 2)
	if m.Value() != 2 {
		t.Errorf("expected 2 changes, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	s := NewStability(5)
	if s.Value() != 1 {
		t.Errorf("expected 1 with no samples, got %f", s.Value())
	}
	s.Observe(engine.FrameStats{MaxDisplacement: 1}, 0)
	s.Observe(engine.FrameStats{MaxDisplacement: 10}, 1)
	s.Observe(engine.FrameStats{MaxDisplacement: math.NaN()}, 2)
	s.Observe(engine.FrameStats{MaxDisplacement: 2}, 3)
	if s.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", s.Value())
	}
}

func TestDefaultsNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Defaults(20) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
}
