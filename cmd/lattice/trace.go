package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lattice/internal/analysis"
	"github.com/san-kum/lattice/internal/engine"
	"github.com/san-kum/lattice/internal/metrics"
	"github.com/san-kum/lattice/internal/raster"
	"github.com/san-kum/lattice/internal/trace"
	"github.com/spf13/cobra"
)

func newTraceCmd() *cobra.Command {
	var (
		o overrides
		h headless
	)
	cmd := &cobra.Command{
		Use:   "trace [preset]",
		Short: "record per-frame diagnostics of a headless run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := o.resolve(cmd, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("frames") {
				h.frames = cfg.Clock.Frames
			}
			if !cmd.Flags().Changed("rate") {
				h.rate = cfg.Clock.FrameRate
			}
			cfg.Quality.Adaptive = false

			caps := capabilities()
			eng := engine.New(cfg, caps)
			defer eng.Close()

			opts := trace.RunOptions{Frames: h.frames, FrameRate: h.rate}
			if h.sweep {
				s := trace.DefaultSweep()
				opts.Pointer = &s
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			canvas := raster.New(h.width, h.height)
			eng.Resize(h.width, h.height)
			rec := trace.NewRecorder(metrics.Defaults(eng.Lattice().Spacing)...)
			if err := trace.Run(ctx, eng, canvas, rec, opts); err != nil {
				return err
			}

			st := trace.NewStore(dataDir)
			runID, err := st.Save(trace.Metadata{
				Preset:    name,
				Mode:      cfg.Mode,
				Width:     h.width,
				Height:    h.height,
				Points:    eng.Lattice().Count(),
				Frames:    len(rec.Samples()),
				FrameRate: h.rate,
				LowPower:  caps.IsLowPower,
				Metrics:   rec.Metrics(),
			}, rec.Samples())
			if err != nil {
				return fmt.Errorf("save trace: %w", err)
			}
			logger.Info("trace saved", "id", runID, "frames", len(rec.Samples()))

			fmt.Printf("run: %s\n", runID)
			return printMetrics(rec.Metrics())
		},
	}
	o.register(cmd)
	h.register(cmd)
	return cmd
}

func printMetrics(m map[string]float64) error {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, k := range names {
		fmt.Fprintf(w, "%s\t%.6g\n", k, m[k])
	}
	return w.Flush()
}

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "list recorded traces",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := trace.NewStore(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRESET\tMODE\tTIME\tSIZE\tPOINTS\tFRAMES\tPEAK KE")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dx%d\t%d\t%d\t%.4g\n",
					run.ID,
					run.Preset,
					run.Mode,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Width, run.Height,
					run.Points,
					run.Frames,
					run.Metrics["peak_energy"],
				)
			}
			return w.Flush()
		},
	}
}

var traceFields = map[string]func(trace.Sample) float64{
	"energy":       trace.KineticEnergy,
	"displacement": trace.MaxDisplacement,
	"substeps":     func(s trace.Sample) float64 { return float64(s.Substeps) },
	"level":        func(s trace.Sample) float64 { return float64(s.Level) },
}

func newPlotCmd() *cobra.Command {
	var (
		field  string
		height int
	)
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			get, ok := traceFields[field]
			if !ok {
				return fmt.Errorf("unknown field %q (energy, displacement, substeps, level)", field)
			}
			st := trace.NewStore(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			samples, err := st.LoadSamples(args[0])
			if err != nil {
				return err
			}
			if len(samples) < 2 {
				fmt.Println("not enough samples to plot")
				return nil
			}

			fmt.Printf("%s (%s, %d frames)\n\n", meta.ID, meta.Mode, len(samples))
			fmt.Println(asciigraph.Plot(trace.Series(samples, get),
				asciigraph.Height(height),
				asciigraph.Width(80),
				asciigraph.Caption(field),
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&field, "field", "energy", "series to plot (energy, displacement, substeps, level)")
	cmd.Flags().IntVar(&height, "height", 12, "plot height")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "ringing frequency and decay of a recorded trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := trace.NewStore(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			samples, err := st.LoadSamples(args[0])
			if err != nil {
				return err
			}
			rate := meta.FrameRate
			if rate <= 0 {
				rate = 60
			}

			disp := trace.Series(samples, trace.MaxDisplacement)
			freq, err := analysis.DominantFrequency(disp, rate)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", meta.ID, err)
			}
			decay, derr := analysis.DecayRate(trace.Series(samples, trace.KineticEnergy), rate)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RUN\tSAMPLES\tRATE\tDOMINANT\tDECAY")
			decayStr := "n/a"
			if derr == nil {
				decayStr = fmt.Sprintf("%.3f/s", decay)
			}
			fmt.Fprintf(w, "%s\t%d\t%.0f Hz\t%.3f Hz\t%s\n", meta.ID, len(samples), rate, freq, decayStr)
			if err := w.Flush(); err != nil {
				return err
			}

			if ps := analysis.PowerSpectrum(disp); len(ps) > 1 {
				fmt.Println()
				fmt.Println(asciigraph.Plot(ps[1:],
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption("power spectrum (max displacement)"),
				))
			}
			return nil
		},
	}
}
