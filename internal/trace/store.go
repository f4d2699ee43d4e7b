package trace

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/lattice/internal/export"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var sampleHeader = []string{"frame", "time", "substeps", "kinetic_energy", "max_displacement", "drawn", "level"}

// Store keeps one directory per run under its base directory.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Mode      string             `json:"mode"`
	Timestamp time.Time          `json:"timestamp"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Points    int                `json:"points"`
	Frames    int                `json:"frames"`
	FrameRate float64            `json:"frame_rate"`
	LowPower  bool               `json:"low_power"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes meta and samples to a new run directory and returns its ID.
// meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta Metadata, samples []Sample) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	name := meta.Preset
	if name == "" {
		name = meta.Mode
	}

	base := fmt.Sprintf("%s_%d", name, meta.Timestamp.Unix())
	runID := base
	for n := 2; ; n++ {
		err := os.Mkdir(filepath.Join(s.baseDir, runID), 0755)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
		runID = fmt.Sprintf("%s-%d", base, n)
	}
	meta.ID = runID
	runDir := filepath.Join(s.baseDir, runID)

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	return export.WriteFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

func writeSamples(path string, samples []Sample) error {
	return export.WriteFile(path, func(f io.Writer) error { return encodeSamples(f, samples) })
}

func encodeSamples(f io.Writer, samples []Sample) error {
	w := csv.NewWriter(f)
	if err := w.Write(sampleHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Frame),
			strconv.FormatFloat(s.Time, 'f', 6, 64),
			strconv.Itoa(s.Substeps),
			strconv.FormatFloat(s.KineticEnergy, 'g', 10, 64),
			strconv.FormatFloat(s.MaxDisplacement, 'g', 10, 64),
			strconv.Itoa(s.Drawn),
			strconv.Itoa(s.Level),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first. A missing base directory
// is an empty list.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	runs := make([]Metadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads a run's samples. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < len(sampleHeader) {
			continue
		}
		s, err := parseSample(rec)
		if err != nil {
			continue
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func parseSample(rec []string) (Sample, error) {
	var s Sample
	var err error
	ints := []*int{&s.Frame, nil, &s.Substeps, nil, nil, &s.Drawn, &s.Level}
	floats := []*float64{nil, &s.Time, nil, &s.KineticEnergy, &s.MaxDisplacement, nil, nil}
	for i := range sampleHeader {
		if ints[i] != nil {
			if *ints[i], err = strconv.Atoi(rec[i]); err != nil {
				return s, err
			}
			continue
		}
		if *floats[i], err = strconv.ParseFloat(rec[i], 64); err != nil {
			return s, err
		}
	}
	return s, nil
}
