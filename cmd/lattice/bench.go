package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lattice/internal/config"
	"github.com/san-kum/lattice/internal/engine"
	"github.com/san-kum/lattice/internal/lattice"
	"github.com/san-kum/lattice/internal/physics"
	"github.com/san-kum/lattice/internal/raster"
	"github.com/san-kum/lattice/internal/render"
	"github.com/spf13/cobra"
)

var benchGrids = [][2]int{{20, 12}, {40, 22}, {80, 45}, {120, 68}, {160, 90}}

type benchRow struct {
	cols, rows, points  int
	step, project, draw time.Duration
}

func (r benchRow) frame() time.Duration { return r.step + r.project + r.draw }

func newBenchCmd() *cobra.Command {
	var (
		iters         int
		width, height int
		plot          bool
	)
	cmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "time step, project and draw per grid size",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := loadConfig(args)
			if err != nil {
				return err
			}
			cfg.Planar.SpacingRatio = 0
			cfg.Quality.Adaptive = false
			iters = max(iters, 1)

			fmt.Printf("benchmarking %s (%s) at %dx%d, %d iterations\n\n", name, cfg.Mode, width, height, iters)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "GRID\tPOINTS\tSTEP\tPROJECT\tDRAW\tFRAME\tFPS")

			var ms []float64
			for _, g := range benchGrids {
				c := *cfg
				c.Planar.Cols, c.Planar.Rows = g[0], g[1]
				c.Sphere.Cols, c.Sphere.Rows = g[0], max(g[1], 6)
				r := benchGrid(&c, width, height, iters)
				fmt.Fprintf(w, "%dx%d\t%d\t%v\t%v\t%v\t%v\t%.0f\n",
					r.cols, r.rows, r.points, r.step, r.project, r.draw, r.frame(), 1/r.frame().Seconds())
				ms = append(ms, float64(r.frame().Microseconds())/1000)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if plot && len(ms) > 1 {
				fmt.Println()
				fmt.Println(asciigraph.Plot(ms, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("frame ms per grid size")))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&iters, "iters", 200, "iterations per measurement")
	cmd.Flags().IntVar(&width, "width", 1280, "surface width")
	cmd.Flags().IntVar(&height, "height", 720, "surface height")
	cmd.Flags().BoolVar(&plot, "plot", true, "plot frame time")
	return cmd
}

// benchGrid builds an engine for the grid and times the three stages of a
// frame separately on a raster surface, with the pointer held at the centre.
func benchGrid(cfg *config.Config, w, h, iters int) benchRow {
	eng := engine.New(cfg, capabilities())
	defer eng.Close()
	canvas := raster.New(w, h)
	eng.Frame(0, canvas)

	st := eng.State()
	l := st.Lattice
	row := benchRow{cols: l.Cols, rows: l.Rows, points: l.Count()}
	sphere := l.Kind == lattice.Spherical
	cx, cy := float64(w)/2, float64(h)/2
	cur := physics.Cursor{X: cx, Y: cy, Active: true}
	var pick physics.Pick
	if sphere {
		hit, ok := st.Camera.PickSphere(eng.Rotation().Matrix(), cx, cy, l.Radius)
		pick = physics.Pick{Point: hit, Active: ok}
	}

	start := time.Now()
	for i := 0; i < iters; i++ {
		if sphere {
			physics.StepSpherical(l, st.Params, pick, physics.FixedDt)
		} else {
			physics.StepPlanar(l, st.Params, cur, physics.FixedDt)
		}
	}
	row.step = time.Since(start) / time.Duration(iters)

	rot := eng.Rotation().Matrix()
	start = time.Now()
	for i := 0; i < iters; i++ {
		if sphere {
			render.ProjectSphere(l, rot, st.Camera, &st.Projection)
		} else {
			render.ProjectPlanar(l, &st.Projection)
		}
	}
	row.project = time.Since(start) / time.Duration(iters)

	var dot render.Sprite
	if !sphere {
		radius := l.Spacing * cfg.Planar.DotRadius
		img := canvas.Upload(render.NewDotSprite(radius, eng.Foreground(), cfg.Planar.DotOpacity))
		dot = render.Sprite{Image: img, Size: render.SpriteSize(radius)}
		defer canvas.Release(img)
	}
	style := eng.SphereStyle()
	style.Lighting, style.Specular = cfg.Render.Lighting, cfg.Render.Lighting
	start = time.Now()
	for i := 0; i < iters; i++ {
		canvas.Clear()
		if sphere {
			render.DrawSphere(canvas, &st.Projection, l.Radius, style, nil)
		} else {
			render.DrawPlanar(canvas, l, dot, nil)
		}
	}
	row.draw = time.Since(start) / time.Duration(iters)
	return row
}
