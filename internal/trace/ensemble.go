package trace

import (
	"context"
	"fmt"

	"github.com/san-kum/lattice/internal/config"
	"github.com/san-kum/lattice/internal/device"
	"github.com/san-kum/lattice/internal/engine"
	"github.com/san-kum/lattice/internal/metrics"
	"github.com/san-kum/lattice/internal/raster"
	"golang.org/x/sync/errgroup"
)

type Job struct {
	Name   string
	Config *config.Config
}

type Result struct {
	Name    string
	Points  int
	Samples []Sample
	Metrics map[string]float64
}

// Ensemble runs several configurations side by side, each on its own engine
// and raster surface. OnFrame in Options is ignored.
type Ensemble struct {
	Caps          device.Capabilities
	Width, Height int
	Options       RunOptions
	// Metrics builds a fresh metric set for a lattice spacing.
	Metrics func(spacing float64) []metrics.Metric
}

func NewEnsemble(caps device.Capabilities, w, h int, opts RunOptions) *Ensemble {
	opts.OnFrame = nil
	return &Ensemble{Caps: caps, Width: w, Height: h, Options: opts, Metrics: metrics.Defaults}
}

// Run returns one result per job in job order. The first failing job
// cancels the others and its error is returned.
func (e *Ensemble) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		g.Go(func() error {
			r, err := e.run(ctx, job)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Ensemble) run(ctx context.Context, job Job) (Result, error) {
	eng := engine.New(job.Config, e.Caps)
	defer eng.Close()
	canvas := raster.New(e.Width, e.Height)
	eng.Resize(e.Width, e.Height)

	var ms []metrics.Metric
	if e.Metrics != nil {
		ms = e.Metrics(eng.Lattice().Spacing)
	}
	rec := NewRecorder(ms...)
	opts := e.Options
	if opts.Pointer != nil {
		s := *opts.Pointer
		opts.Pointer = &s
	}
	if err := Run(ctx, eng, canvas, rec, opts); err != nil {
		return Result{}, err
	}
	return Result{
		Name:    job.Name,
		Points:  eng.Lattice().Count(),
		Samples: rec.Samples(),
		Metrics: rec.Metrics(),
	}, nil
}
