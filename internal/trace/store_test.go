package trace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreSaveLoad(t *testing.T) {
	st := NewStore(t.TempDir())
	samples := []Sample{
		{Frame: 1, Time: 0, Substeps: 0, KineticEnergy: 0, MaxDisplacement: 0, Drawn: 100, Level: 3},
		{Frame: 2, Time: 0.5, Substeps: 1, KineticEnergy: 12.5, MaxDisplacement: 0.75, Drawn: 100, Level: 3},
	}
	meta := Metadata{Preset: "crystal", Mode: "planar", Width: 320, Height: 180, Frames: 2, Metrics: map[string]float64{"peak_energy": 12.5}}

	runID, err := st.Save(meta, samples)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	got, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.ID != runID || got.Preset != "crystal" || got.Width != 320 {
		t.Errorf("expected saved metadata, got %+v", got)
	}
	if got.Metrics["peak_energy"] != 12.5 {
		t.Errorf("expected peak_energy 12.5, got %f", got.Metrics["peak_energy"])
	}

	loaded, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(loaded))
	}
	if loaded[1] != samples[1] {
		t.Errorf("expected %+v, got %+v", samples[1], loaded[1])
	}
}

func TestStoreUniqueIDs(t *testing.T) {
	st := NewStore(t.TempDir())
	ts := time.Unix(1700000000, 0)
	a, err := st.Save(Metadata{Preset: "sphere", Timestamp: ts}, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := st.Save(Metadata{Preset: "sphere", Timestamp: ts}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("expected distinct ids, got %s twice", a)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir)

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list, got %v (%v)", runs, err)
	}

	st.Save(Metadata{Preset: "b", Timestamp: time.Unix(200, 0)}, nil)
	st.Save(Metadata{Preset: "a", Timestamp: time.Unix(100, 0)}, nil)
	os.MkdirAll(filepath.Join(dir, "junk"), 0755)

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Preset != "a" || runs[1].Preset != "b" {
		t.Errorf("expected oldest first, got %s, %s", runs[0].Preset, runs[1].Preset)
	}
}

func TestStoreMissingDir(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "nope"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list for a missing dir, got %v (%v)", runs, err)
	}
}

func TestStoreNotFound(t *testing.T) {
	st := NewStore(t.TempDir())
	if _, err := st.Load("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadSamples("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestLoadSamplesSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir)
	runDir := filepath.Join(dir, "run")
	os.MkdirAll(runDir, 0755)
	csv := "frame,time,substeps,kinetic_energy,max_displacement,drawn,level\n" +
		"1,0,0,0,0,10,3\n" +
		"x,0,0,0,0,10,3\n" +
		"2,0.5\n" +
		"3,0.05,2,1.5,0.25,10,2\n"
	os.WriteFile(filepath.Join(runDir, samplesFile), []byte(csv), 0644)

	samples, err := st.LoadSamples("run")
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 valid samples, got %d", len(samples))
	}
	if samples[1].KineticEnergy != 1.5 || samples[1].Level != 2 {
		t.Errorf("expected parsed row, got %+v", samples[1])
	}
}
