package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/lattice/internal/config"
	"github.com/san-kum/lattice/internal/trace"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	var h headless
	cmd := &cobra.Command{
		Use:   "compare [preset...]",
		Short: "trace several presets concurrently and compare their metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = config.ListPresets()
			}
			frames, rate := h.frames, h.rate
			var jobs []trace.Job
			for _, name := range names {
				cfg, _, err := loadConfig([]string{name})
				if err != nil {
					return err
				}
				cfg.Quality.Adaptive = false
				if frames <= 0 {
					frames = cfg.Clock.Frames
				}
				if rate <= 0 {
					rate = cfg.Clock.FrameRate
				}
				jobs = append(jobs, trace.Job{Name: name, Config: cfg})
			}

			opts := trace.RunOptions{Frames: frames, FrameRate: rate}
			if h.sweep {
				s := trace.DefaultSweep()
				opts.Pointer = &s
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			logger.Info("comparing", "presets", len(jobs), "frames", frames)
			results, err := trace.NewEnsemble(capabilities(), h.width, h.height, opts).Run(ctx, jobs)
			if err != nil {
				return err
			}

			var keys []string
			for k := range results[0].Metrics {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "PRESET\tPOINTS\t%s\n", strings.ToUpper(strings.Join(keys, "\t")))
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%d", r.Name, r.Points)
				for _, k := range keys {
					fmt.Fprintf(w, "\t%.4g", r.Metrics[k])
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}
	h.register(cmd)
	return cmd
}
