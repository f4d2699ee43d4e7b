package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/san-kum/lattice/internal/config"
	"github.com/san-kum/lattice/internal/engine"
	"github.com/san-kum/lattice/internal/export"
	"github.com/san-kum/lattice/internal/raster"
	"github.com/san-kum/lattice/internal/trace"
	"github.com/spf13/cobra"
)

type headless struct {
	width, height int
	frames        int
	rate          float64
	sweep         bool
}

func (h *headless) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&h.width, "width", 640, "surface width")
	f.IntVar(&h.height, "height", 360, "surface height")
	f.IntVar(&h.frames, "frames", 0, "frames to simulate (default from config)")
	f.Float64Var(&h.rate, "rate", 0, "frame rate (default from config)")
	f.BoolVar(&h.sweep, "sweep", true, "drive a synthetic pointer sweep")
}

func rgba(c color.NRGBA) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func newRenderCmd() *cobra.Command {
	var (
		o     overrides
		h     headless
		out   string
		every int
	)
	cmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "render frames headlessly to png, gif or svg",
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
			if h.rate <= 0 {
				h.rate = 60
			}
			cfg.Quality.Adaptive = false

			ext := strings.ToLower(filepath.Ext(out))
			if ext != ".png" && ext != ".gif" && ext != ".svg" {
				return fmt.Errorf("unsupported output %q (want .png, .gif or .svg)", out)
			}

			eng := engine.New(cfg, capabilities())
			defer eng.Close()
			canvas := raster.New(h.width, h.height)
			canvas.SetBackground(rgba(eng.Background()))

			var frames []*image.Paletted
			palette := export.Ramp(eng.Background(), eng.Foreground(), export.DefaultPaletteSize)
			rec := trace.NewRecorder()
			opts := trace.RunOptions{Frames: h.frames, FrameRate: h.rate}
			if h.sweep {
				s := trace.DefaultSweep()
				opts.Pointer = &s
			}

			if ext == ".gif" {
				every = max(every, 1)
				opts.OnFrame = func(i int) {
					if i%every == 0 {
						frames = append(frames, export.Paletted(canvas.Image(), palette))
					}
				}
			}
			if err := trace.Run(context.Background(), eng, canvas, rec, opts); err != nil {
				return err
			}

			err = export.WriteFile(out, func(f io.Writer) error {
				switch ext {
				case ".png":
					return export.FrameToPNG(f, canvas.Image())
				case ".gif":
					return export.FramesToGIF(f, frames, int(100*float64(every)/h.rate+0.5))
				default:
					_, err := io.WriteString(f, svgFor(eng, h.width, h.height))
					return err
				}
			})
			if err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			logger.Info("rendered", "preset", name, "frames", h.frames, "out", out, "points", eng.Lattice().Count())
			return nil
		},
	}
	o.register(cmd)
	h.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "lattice.png", "output file (.png, .gif, .svg)")
	cmd.Flags().IntVar(&every, "every", 2, "gif: keep every n-th frame")
	return cmd
}

func svgFor(eng *engine.Engine, w, h int) string {
	cfg := eng.Config()
	st := eng.SphereStyle()
	opts := export.SVGOptions{
		Width:      w,
		Height:     h,
		Background: eng.Background(),
		Color:      eng.Foreground(),
		Radius:     st.PointSize,
		Opacity:    st.Opacity,
		Lighting:   cfg.Render.Lighting,
		Shading:    st.Shading,
	}
	if l := eng.Lattice(); cfg.Mode != config.ModeSphere {
		opts.Radius = l.Spacing * cfg.Planar.DotRadius
		opts.Opacity = cfg.Planar.DotOpacity
	}
	return export.LatticeToSVG(eng.Lattice(), &eng.State().Projection, opts)
}
